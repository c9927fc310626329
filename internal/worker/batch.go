package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/kampuschat/kampuschat/internal/model"
)

// Responder answers a single query. Implementations always return a
// well-formed response, even under capability failure.
type Responder interface {
	Respond(ctx context.Context, text string) *model.HybridResponse
}

// AskJob is one query inside a batch. The index pins the result to the
// input slot regardless of completion order.
type AskJob struct {
	Index     int
	Text      string
	Responder Responder
}

// Execute runs the query. A panic inside the responder is confined to this
// slot and yields a fallback-error result instead of aborting the batch.
func (j *AskJob) Execute(ctx context.Context) (res Result) {
	result := &AskResult{Index: j.Index, Text: j.Text}
	res = result

	defer func() {
		if r := recover(); r != nil {
			result.Err = fmt.Errorf("respond panic: %v", r)
			result.Response = errorResponse(fmt.Sprint(r))
		}
	}()

	result.Response = j.Responder.Respond(ctx, j.Text)
	if result.Response == nil {
		result.Response = errorResponse("empty response")
	}
	return result
}

// AskResult is the outcome of one batch slot.
type AskResult struct {
	Index    int
	Text     string
	Response *model.HybridResponse
	Err      error
}

// GetError returns the error from the result, if any.
func (r *AskResult) GetError() error { return r.Err }

func errorResponse(detail string) *model.HybridResponse {
	return &model.HybridResponse{
		Message:    "I apologize, but I'm experiencing technical difficulties. Please try again later.",
		Intent:     model.IntentUnknown,
		Confidence: 0.1,
		Mode:       model.ModeFallback,
		Source:     model.SourceFallbackError,
		Metadata:   map[string]any{"error": detail},
	}
}

// BatchProcessor answers multiple queries concurrently.
type BatchProcessor struct {
	responder   Responder
	concurrency int
}

// NewBatchProcessor creates a batch processor.
func NewBatchProcessor(responder Responder, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		responder:   responder,
		concurrency: concurrency,
	}
}

// ProcessTexts answers all texts concurrently. Results are returned in
// input order regardless of completion order.
func (b *BatchProcessor) ProcessTexts(ctx context.Context, texts []string) []*model.HybridResponse {
	if len(texts) == 0 {
		return []*model.HybridResponse{}
	}

	// Sized to the batch: all jobs are submitted before Wait drains, so
	// smaller queues would fill up and block Submit forever.
	pool := NewSizedPool(b.concurrency, len(texts))
	pool.Start()

	for i, text := range texts {
		pool.Submit(&AskJob{Index: i, Text: text, Responder: b.responder})
	}

	results := pool.Wait()

	ordered := make([]*model.HybridResponse, len(texts))
	for _, result := range results {
		ask := result.(*AskResult)
		ordered[ask.Index] = ask.Response
	}
	// Cancelled jobs never produce a result; fill their slots.
	for i, resp := range ordered {
		if resp == nil {
			ordered[i] = errorResponse("batch cancelled")
		}
	}
	return ordered
}

// ProcessFile reads queries from a file (one per line) and answers them.
func (b *BatchProcessor) ProcessFile(ctx context.Context, filePath string) ([]*model.HybridResponse, []string, error) {
	texts, err := ReadTextsFromFile(filePath)
	if err != nil {
		return nil, nil, fmt.Errorf("read queries: %w", err)
	}
	return b.ProcessTexts(ctx, texts), texts, nil
}

// ReadTextsFromFile reads queries from a file, one per line. Empty lines
// and #-comments are skipped; duplicates are kept (same question may
// legitimately repeat, and warms the caches).
func ReadTextsFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var texts []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		texts = append(texts, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}
	return texts, nil
}
