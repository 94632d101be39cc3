package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sitewright/sitewright/internal/config"
	"github.com/sitewright/sitewright/internal/db"
	"github.com/sitewright/sitewright/internal/embeddings"
	"github.com/sitewright/sitewright/internal/generate"
	"github.com/sitewright/sitewright/internal/llm"
	"github.com/sitewright/sitewright/internal/retrieval"
	"github.com/sitewright/sitewright/internal/store"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `sitewright init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// openStore opens the project database under the configured data dir.
func openStore(cfg *config.Config) (*db.DB, *store.Store, error) {
	database, err := db.Open(filepath.Join(cfg.DataDir, "sitewright.db"))
	if err != nil {
		return nil, nil, fmt.Errorf("opening database: %w", err)
	}
	return database, store.NewStore(database), nil
}

// createLLMProviderFromConfig creates an LLM provider based on config
// settings, rate limited when requests_per_min is set.
func createLLMProviderFromConfig(cfg *config.Config) (llm.Provider, error) {
	provider, err := llm.NewProvider(string(cfg.Provider), cfg.Model)
	if err != nil {
		return nil, err
	}
	if cfg.RequestsPerMin > 0 {
		provider = llm.NewRateLimitedProvider(provider, cfg.RequestsPerMin)
	}
	return provider, nil
}

// createEmbedderFromConfig creates an embeddings.Embedder based on config.
// Returns nil (no error) when no embedding credentials are available;
// retrieval then degrades to sending full file sets.
func createEmbedderFromConfig(cfg *config.Config) embeddings.Embedder {
	provider := cfg.EmbeddingProvider
	if provider == "" {
		provider = cfg.Provider
	}
	model := cfg.EmbeddingModel
	if model == "" {
		model = config.GetPreset(provider, cfg.Quality).EmbeddingModel
	}

	switch provider {
	case config.ProviderOllama:
		return embeddings.NewOllamaEmbedder(model, 768, "")
	default:
		// All cloud providers use OpenAI embeddings.
		apiKey := os.Getenv(config.APIKeyEnvVar(config.ProviderOpenAI))
		if apiKey == "" {
			if verbose {
				fmt.Fprintln(os.Stderr, "Warning: OPENAI_API_KEY not set; retrieval disabled, modifications send full file sets")
			}
			return nil
		}
		return embeddings.NewOpenAIEmbedder(apiKey, embeddings.OpenAIModel(model))
	}
}

// createRetrievalIndex opens the persistent retrieval index for the
// configured embedder.
func createRetrievalIndex(cfg *config.Config) *retrieval.Index {
	embedder := createEmbedderFromConfig(cfg)
	idx, err := retrieval.NewPersistent(filepath.Join(cfg.DataDir, "vectors"), embedder)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: retrieval index unavailable: %v\n", err)
		return retrieval.New(nil)
	}
	return idx
}

// createGenerateService wires provider, store and retrieval into a
// generation service.
func createGenerateService(cfg *config.Config, st *store.Store) (*generate.Service, error) {
	provider, err := createLLMProviderFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	return generate.NewService(provider, st, createRetrievalIndex(cfg), cfg), nil
}
