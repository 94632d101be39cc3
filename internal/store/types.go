package store

import "time"

// Project is a stored website project.
type Project struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Prompt    string    `json:"prompt"`
	Provider  string    `json:"provider,omitempty"`
	Model     string    `json:"model,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GenerationKind distinguishes initial generation from modification runs.
type GenerationKind string

const (
	GenerationGenerate GenerationKind = "generate"
	GenerationModify   GenerationKind = "modify"
)

// Generation records one model run against a project.
type Generation struct {
	ID           string         `json:"id"`
	ProjectID    string         `json:"project_id"`
	Kind         GenerationKind `json:"kind"`
	Prompt       string         `json:"prompt"`
	Model        string         `json:"model"`
	InputTokens  int            `json:"input_tokens"`
	OutputTokens int            `json:"output_tokens"`
	CostUSD      float64        `json:"cost_usd"`
	FileCount    int            `json:"file_count"`
	Recovered    bool           `json:"recovered"`
	CreatedAt    time.Time      `json:"created_at"`
}
