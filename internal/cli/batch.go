package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/kampuschat/kampuschat/internal/engine"
	"github.com/kampuschat/kampuschat/internal/worker"
	"github.com/spf13/cobra"
)

var (
	concurrency  int
	batchTimeout time.Duration
	batchOutput  string
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Answer multiple questions from a file in parallel",
	Long: `Batch answers questions concurrently:
- Read questions from the input file (one per line, # comments skipped)
- Fan out one task per question over a worker pool
- A failing question yields a fallback-error result in its slot
- Results always come back in input order

Example:
  kampuschat batch questions.txt
  kampuschat batch questions.txt --concurrency 8 --output results.json`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 5*time.Minute, "total timeout for the batch")
	batchCmd.Flags().StringVar(&batchOutput, "output", "", "write results as JSON to this file (default: stdout)")
	addEngineFlags(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	texts, err := worker.ReadTextsFromFile(file)
	if err != nil {
		return err
	}
	if len(texts) == 0 {
		return fmt.Errorf("no questions found in %s", file)
	}

	cfg := buildConfig()
	cfg.Concurrency.Workers = concurrency

	eng, err := engine.New(cfg)
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Questions: %d\n", len(texts))
		fmt.Fprintf(os.Stderr, "Workers:   %d\n", concurrency)
	}

	started := time.Now()
	responses := eng.Batch(ctx, texts)
	elapsed := time.Since(started)

	type batchItem struct {
		Question string `json:"question"`
		Response any    `json:"response"`
	}
	items := make([]batchItem, len(texts))
	for i, text := range texts {
		items[i] = batchItem{Question: text, Response: responses[i]}
	}

	summary := struct {
		Results        []batchItem `json:"results"`
		TotalProcessed int         `json:"total_processed"`
		TotalTimeMS    float64     `json:"total_time_ms"`
		AverageTimeMS  float64     `json:"average_time_ms"`
	}{
		Results:        items,
		TotalProcessed: len(texts),
		TotalTimeMS:    float64(elapsed.Microseconds()) / 1000.0,
		AverageTimeMS:  float64(elapsed.Microseconds()) / 1000.0 / float64(len(texts)),
	}

	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("encode results: %w", err)
	}

	if batchOutput == "" {
		fmt.Println(string(data))
		return nil
	}
	if err := os.WriteFile(batchOutput, data, 0644); err != nil {
		return fmt.Errorf("write results: %w", err)
	}

	if verbose {
		stats := eng.Stats()
		fmt.Fprintf(os.Stderr, "\nDone in %v\n", elapsed)
		fmt.Fprintf(os.Stderr, "Classification cache: %d hits / %d misses\n",
			stats.ClassificationCache.Hits, stats.ClassificationCache.Misses)
		fmt.Fprintf(os.Stderr, "Answer cache:         %d hits / %d misses\n",
			stats.AnswerCache.Hits, stats.AnswerCache.Misses)
	}
	fmt.Printf("Wrote %d results to %s\n", len(texts), batchOutput)
	return nil
}
