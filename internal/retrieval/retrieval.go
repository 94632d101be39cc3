// Package retrieval indexes project files into a vector store so
// modification prompts can be grounded in the most relevant existing
// files instead of the whole project.
package retrieval

import (
	"context"
	"fmt"

	chromem "github.com/philippgille/chromem-go"

	"github.com/sitewright/sitewright/internal/embeddings"
	"github.com/sitewright/sitewright/internal/project"
)

// Files longer than this are truncated before embedding; the head of a
// page carries most of the signal.
const maxEmbedChars = 4000

// Snippet is one retrieval hit.
type Snippet struct {
	Path       string
	Content    string
	Similarity float32
}

// Index maintains per-project vector collections.
type Index struct {
	db       *chromem.DB
	embedder embeddings.Embedder
	embedFn  chromem.EmbeddingFunc
}

// New creates an in-memory retrieval index. A nil embedder disables
// retrieval: indexing becomes a no-op and queries return nothing.
func New(embedder embeddings.Embedder) *Index {
	idx := &Index{db: chromem.NewDB(), embedder: embedder}
	if embedder != nil {
		idx.embedFn = embeddings.ToChromemFunc(embedder)
	}
	return idx
}

// NewPersistent creates a retrieval index persisted under dir.
func NewPersistent(dir string, embedder embeddings.Embedder) (*Index, error) {
	db, err := chromem.NewPersistentDB(dir, false)
	if err != nil {
		return nil, fmt.Errorf("opening vector store: %w", err)
	}
	idx := &Index{db: db, embedder: embedder}
	if embedder != nil {
		idx.embedFn = embeddings.ToChromemFunc(embedder)
	}
	return idx, nil
}

// Enabled reports whether an embedder is configured.
func (idx *Index) Enabled() bool { return idx.embedder != nil }

func collectionFor(projectID string) string {
	return "project-" + projectID
}

// IndexProject replaces the project's collection with the given file set.
func (idx *Index) IndexProject(ctx context.Context, projectID string, fs *project.FileSet) error {
	if idx.embedder == nil {
		return nil
	}

	// Drop and recreate so removed files do not linger.
	name := collectionFor(projectID)
	_ = idx.db.DeleteCollection(name)
	col, err := idx.db.GetOrCreateCollection(name, nil, idx.embedFn)
	if err != nil {
		return fmt.Errorf("creating collection: %w", err)
	}

	var docs []chromem.Document
	for _, f := range fs.Files {
		content := f.Content
		if len(content) > maxEmbedChars {
			content = content[:maxEmbedChars]
		}
		docs = append(docs, chromem.Document{
			ID:      f.Path,
			Content: content,
			Metadata: map[string]string{
				"path": f.Path,
				"kind": string(f.Kind),
			},
		})
	}
	if len(docs) == 0 {
		return nil
	}

	if err := col.AddDocuments(ctx, docs, 1); err != nil {
		return fmt.Errorf("indexing %d files: %w", len(docs), err)
	}
	return nil
}

// Relevant returns up to k files most similar to the query.
func (idx *Index) Relevant(ctx context.Context, projectID, query string, k int) ([]Snippet, error) {
	if idx.embedder == nil {
		return nil, nil
	}
	col := idx.db.GetCollection(collectionFor(projectID), idx.embedFn)
	if col == nil {
		return nil, nil
	}

	if k <= 0 {
		k = 5
	}
	// chromem-go requires nResults <= collection size.
	if count := col.Count(); count == 0 {
		return nil, nil
	} else if k > count {
		k = count
	}

	results, err := col.Query(ctx, query, k, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("querying project %s: %w", projectID, err)
	}

	snippets := make([]Snippet, len(results))
	for i, r := range results {
		snippets[i] = Snippet{
			Path:       r.Metadata["path"],
			Content:    r.Content,
			Similarity: r.Similarity,
		}
	}
	return snippets, nil
}

// DeleteProject removes a project's collection.
func (idx *Index) DeleteProject(projectID string) {
	_ = idx.db.DeleteCollection(collectionFor(projectID))
}
