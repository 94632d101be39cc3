// Package generate turns user prompts into stored website projects. It
// drives the LLM provider, recovers a file set from whatever the model
// returned, and persists the result.
package generate

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/sitewright/sitewright/internal/config"
	"github.com/sitewright/sitewright/internal/extract"
	"github.com/sitewright/sitewright/internal/llm"
	"github.com/sitewright/sitewright/internal/project"
	"github.com/sitewright/sitewright/internal/retrieval"
	"github.com/sitewright/sitewright/internal/store"
)

// How many retrieval hits to ground a modification prompt on.
const relevantFileCount = 5

// Service orchestrates generation and modification runs.
type Service struct {
	provider llm.Provider
	store    *store.Store
	index    *retrieval.Index
	cfg      *config.Config

	// OnChunk, when set, receives streamed content as it arrives. Used by
	// the CLI for progress display.
	OnChunk llm.StreamHandler
}

// NewService creates a generation service. The retrieval index may be nil.
func NewService(provider llm.Provider, st *store.Store, index *retrieval.Index, cfg *config.Config) *Service {
	if index == nil {
		index = retrieval.New(nil)
	}
	return &Service{provider: provider, store: st, index: index, cfg: cfg}
}

// Generate creates a new project from a prompt.
func (s *Service) Generate(ctx context.Context, name, prompt string) (*store.Project, *project.FileSet, error) {
	resp, err := s.completeWithRetry(ctx, llm.CompletionRequest{
		Model:       s.cfg.Model,
		Messages:    buildGenerateMessages(prompt),
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
		JSONMode:    true,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("llm completion: %w", err)
	}

	fs := extract.Extract(resp.Content)

	p, err := s.store.Create(ctx, store.Project{
		Name:     name,
		Prompt:   prompt,
		Provider: s.provider.Name(),
		Model:    resp.Model,
	})
	if err != nil {
		return nil, nil, err
	}

	if err := s.persistRun(ctx, p.ID, fs, store.GenerationGenerate, prompt, resp); err != nil {
		return nil, nil, err
	}
	return p, fs, nil
}

// Modify updates an existing project's site according to the prompt. The
// current files are fed back to the model, grounded on retrieval hits when
// an index is available.
func (s *Service) Modify(ctx context.Context, projectID, prompt string) (*project.FileSet, error) {
	current, err := s.store.FileSet(ctx, projectID)
	if err != nil {
		return nil, err
	}

	relevant, err := s.index.Relevant(ctx, projectID, prompt, relevantFileCount)
	if err != nil {
		log.Printf("generate: retrieval failed, sending full file set: %v", err)
		relevant = nil
	}
	// Grounding on a strict subset only pays off for larger sites.
	if len(relevant) >= current.Len() {
		relevant = nil
	}

	resp, err := s.completeWithRetry(ctx, llm.CompletionRequest{
		Model:       s.cfg.Model,
		Messages:    buildModifyMessages(prompt, current, relevant),
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
		JSONMode:    true,
	})
	if err != nil {
		return nil, fmt.Errorf("llm completion: %w", err)
	}

	fs := extract.Extract(resp.Content)

	if err := s.persistRun(ctx, projectID, fs, store.GenerationModify, prompt, resp); err != nil {
		return nil, err
	}
	return fs, nil
}

// persistRun saves the file set, reindexes, and records run accounting.
func (s *Service) persistRun(ctx context.Context, projectID string, fs *project.FileSet, kind store.GenerationKind, prompt string, resp *llm.CompletionResponse) error {
	if err := s.store.ReplaceFiles(ctx, projectID, fs); err != nil {
		return err
	}

	if err := s.index.IndexProject(ctx, projectID, fs); err != nil {
		log.Printf("generate: indexing project %s: %v", projectID, err)
	}

	if _, err := s.store.RecordGeneration(ctx, store.Generation{
		ProjectID:    projectID,
		Kind:         kind,
		Prompt:       prompt,
		Model:        resp.Model,
		InputTokens:  resp.InputTokens,
		OutputTokens: resp.OutputTokens,
		CostUSD:      llm.EstimateCost(resp.Model, resp.InputTokens, resp.OutputTokens),
		FileCount:    fs.Len(),
		Recovered:    !json.Valid([]byte(strings.TrimSpace(resp.Content))),
	}); err != nil {
		log.Printf("generate: recording run for %s: %v", projectID, err)
	}
	return nil
}

// completeWithRetry calls the LLM with exponential backoff on rate limit
// errors, streaming when the provider supports it.
func (s *Service) completeWithRetry(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	maxRetries := s.cfg.MaxAttempts - 1
	backoff := 15 * time.Second

	for attempt := 0; ; attempt++ {
		resp, err := s.complete(ctx, req)
		if err == nil {
			return resp, nil
		}

		errStr := err.Error()
		isRateLimit := strings.Contains(errStr, "rate_limit") || strings.Contains(errStr, "429") || strings.Contains(errStr, "too many requests")
		isOverloaded := strings.Contains(errStr, "overloaded")

		if !isRateLimit && !isOverloaded {
			return nil, err
		}

		if attempt >= maxRetries {
			return nil, fmt.Errorf("rate limited after %d retries: %w", maxRetries, err)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
			backoff = backoff * 2
			if backoff > 2*time.Minute {
				backoff = 2 * time.Minute
			}
		}
	}
}

func (s *Service) complete(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	if sp, ok := s.provider.(llm.StreamingProvider); ok {
		return sp.CompleteStream(ctx, req, s.OnChunk)
	}
	return s.provider.Complete(ctx, req)
}
