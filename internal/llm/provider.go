package llm

import "context"

// Provider defines the interface for LLM providers.
type Provider interface {
	// Complete sends a completion request and returns the response.
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)
	// Name returns the name of this provider.
	Name() string
}

// StreamHandler receives incremental content chunks during a streaming
// completion.
type StreamHandler func(chunk string)

// StreamingProvider is implemented by providers that can stream
// completions. Generation prefers streaming so partial output survives
// truncation; the accumulated content is returned as a regular
// CompletionResponse.
type StreamingProvider interface {
	Provider
	// CompleteStream runs a completion, invoking handler for each content
	// chunk as it arrives. The returned response carries the full
	// accumulated content.
	CompleteStream(ctx context.Context, req CompletionRequest, handler StreamHandler) (*CompletionResponse, error)
}
