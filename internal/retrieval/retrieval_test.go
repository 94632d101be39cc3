package retrieval

import (
	"context"
	"math"
	"testing"

	"github.com/sitewright/sitewright/internal/project"
)

// mockEmbedder returns deterministic embeddings based on text content,
// so similar texts land near each other without a real model.
type mockEmbedder struct {
	dims int
}

func (m *mockEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	results := make([][]float32, len(texts))
	for i, text := range texts {
		results[i] = m.deterministicVector(text)
	}
	return results, nil
}

func (m *mockEmbedder) Dimensions() int { return m.dims }
func (m *mockEmbedder) Name() string    { return "mock" }

func (m *mockEmbedder) deterministicVector(text string) []float32 {
	vec := make([]float32, m.dims)
	for i, ch := range text {
		idx := (int(ch) + i) % m.dims
		vec[idx] += 1.0
	}
	var norm float64
	for _, v := range vec {
		norm += float64(v * v)
	}
	norm = math.Sqrt(norm)
	if norm > 0 {
		for i := range vec {
			vec[i] = float32(float64(vec[i]) / norm)
		}
	}
	return vec
}

func siteSet() *project.FileSet {
	return project.NewFileSet(
		project.NewFile("index.html", "<html><body>Welcome to the bakery. Fresh bread daily.</body></html>"),
		project.NewFile("contact.html", "<html><body>Contact the bakery by phone or email.</body></html>"),
		project.NewFile("style.css", "body { font-family: serif; }"),
	)
}

func TestIndexAndQuery(t *testing.T) {
	ctx := context.Background()
	idx := New(&mockEmbedder{dims: 64})

	if err := idx.IndexProject(ctx, "p1", siteSet()); err != nil {
		t.Fatalf("IndexProject failed: %v", err)
	}

	snippets, err := idx.Relevant(ctx, "p1", "Contact the bakery by phone or email.", 2)
	if err != nil {
		t.Fatalf("Relevant failed: %v", err)
	}
	if len(snippets) != 2 {
		t.Fatalf("got %d snippets, want 2", len(snippets))
	}
	if snippets[0].Path != "contact.html" {
		t.Errorf("top hit = %q, want contact.html", snippets[0].Path)
	}
}

func TestReindexDropsRemovedFiles(t *testing.T) {
	ctx := context.Background()
	idx := New(&mockEmbedder{dims: 64})

	if err := idx.IndexProject(ctx, "p1", siteSet()); err != nil {
		t.Fatalf("IndexProject failed: %v", err)
	}

	smaller := project.NewFileSet(project.NewFile("index.html", "<html><body>only page</body></html>"))
	if err := idx.IndexProject(ctx, "p1", smaller); err != nil {
		t.Fatalf("re-IndexProject failed: %v", err)
	}

	snippets, err := idx.Relevant(ctx, "p1", "bakery contact", 10)
	if err != nil {
		t.Fatalf("Relevant failed: %v", err)
	}
	for _, s := range snippets {
		if s.Path == "contact.html" {
			t.Error("removed file still indexed")
		}
	}
}

func TestNilEmbedderDegrades(t *testing.T) {
	ctx := context.Background()
	idx := New(nil)

	if idx.Enabled() {
		t.Error("Enabled() should be false without an embedder")
	}
	if err := idx.IndexProject(ctx, "p1", siteSet()); err != nil {
		t.Fatalf("IndexProject should be a no-op, got: %v", err)
	}
	snippets, err := idx.Relevant(ctx, "p1", "anything", 3)
	if err != nil {
		t.Fatalf("Relevant should be a no-op, got: %v", err)
	}
	if snippets != nil {
		t.Errorf("expected no snippets, got %v", snippets)
	}
}

func TestUnknownProjectReturnsNothing(t *testing.T) {
	idx := New(&mockEmbedder{dims: 64})
	snippets, err := idx.Relevant(context.Background(), "ghost", "query", 3)
	if err != nil {
		t.Fatalf("Relevant failed: %v", err)
	}
	if len(snippets) != 0 {
		t.Errorf("expected no snippets for unknown project, got %v", snippets)
	}
}
