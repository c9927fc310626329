package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/kampuschat/kampuschat/internal/engine"
	"github.com/kampuschat/kampuschat/internal/model"
	"github.com/spf13/cobra"
)

var (
	askTimeout    time.Duration
	askDebug      bool
	askJSON       bool
	noCache       bool
	provider      string
	providerModel string
	baseURL       string
	knowledgeFile string
)

// askCmd represents the ask command
var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Answer a single question through the hybrid engine",
	Long: `Ask classifies the question, routes it to a response strategy and
prints the answer:
- knowledge intents run answer extraction over the knowledge base
- conversational intents pick a reply template
- anything else gets a clarification fallback

Example:
  kampuschat ask "Kapan jadwal kuliah Informatika besok?"
  kampuschat ask "Bagaimana cara bayar UKT?" --provider openai
  kampuschat ask "halo" --json --debug`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)

	askCmd.Flags().DurationVar(&askTimeout, "timeout", 30*time.Second, "overall request timeout")
	askCmd.Flags().BoolVar(&askDebug, "debug", false, "include decision metadata in the output")
	askCmd.Flags().BoolVar(&askJSON, "json", false, "print the full response as JSON")
	addEngineFlags(askCmd)
}

// addEngineFlags registers the flags shared by ask and batch.
func addEngineFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable both cache tiers")
	cmd.Flags().StringVar(&provider, "provider", "", "capability provider (openai; empty = keyword-only)")
	cmd.Flags().StringVar(&providerModel, "model", "", "capability model name")
	cmd.Flags().StringVar(&baseURL, "base-url", "", "OpenAI-compatible endpoint URL")
	cmd.Flags().StringVar(&knowledgeFile, "knowledge", "", "knowledge base YAML path (empty = built-in contexts)")
}

// buildConfig assembles the engine configuration from defaults, config
// file/env (viper) and flags, highest priority last.
func buildConfig() *model.Config {
	cfg := model.DefaultConfig()

	applyViper(cfg)

	if provider != "" {
		cfg.Capability.Provider = provider
	}
	if providerModel != "" {
		cfg.Capability.Model = providerModel
	}
	if baseURL != "" {
		cfg.Capability.BaseURL = baseURL
	}
	if knowledgeFile != "" {
		cfg.Knowledge.File = knowledgeFile
	}
	if noCache {
		cfg.Cache.Enabled = false
	}
	cfg.Output.Verbose = verbose
	cfg.Output.Debug = askDebug

	if cfg.Capability.Provider != "" && cfg.Capability.APIKey == "" {
		cfg.Capability.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	return cfg
}

func runAsk(cmd *cobra.Command, args []string) error {
	question := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), askTimeout)
	defer cancel()

	cfg := buildConfig()
	eng, err := engine.New(cfg)
	if err != nil {
		return err
	}

	response := eng.Respond(ctx, question)

	if askJSON {
		data, err := json.MarshalIndent(response, "", "  ")
		if err != nil {
			return fmt.Errorf("encode response: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Println(response.Message)
	if askDebug || verbose {
		fmt.Fprintf(os.Stderr, "\nintent:     %s\n", response.Intent)
		fmt.Fprintf(os.Stderr, "confidence: %.3f\n", response.Confidence)
		fmt.Fprintf(os.Stderr, "mode:       %s\n", response.Mode)
		fmt.Fprintf(os.Stderr, "source:     %s\n", response.Source)
		fmt.Fprintf(os.Stderr, "time:       %.2fms\n", response.ProcessingTimeMS)
		if askDebug {
			meta, _ := json.MarshalIndent(response.Metadata, "", "  ")
			fmt.Fprintf(os.Stderr, "metadata:   %s\n", meta)
		}
	}
	return nil
}
