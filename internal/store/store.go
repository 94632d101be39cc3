// Package store persists projects and their file sets. File order is
// stored explicitly so a loaded set previews in the same priority order
// it was saved with.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sitewright/sitewright/internal/db"
	"github.com/sitewright/sitewright/internal/project"
)

// Store manages persistence of projects and their files.
type Store struct {
	db *db.DB
}

// NewStore creates a new project store.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// Create adds a new project.
func (s *Store) Create(ctx context.Context, p Project) (*Project, error) {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	if p.Name == "" {
		p.Name = "untitled"
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO projects (id, name, prompt, provider, model, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.Prompt, p.Provider, p.Model, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting project: %w", err)
	}
	return &p, nil
}

// Get retrieves a project by its ID. Returns nil when not found.
func (s *Store) Get(ctx context.Context, id string) (*Project, error) {
	var p Project
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, prompt, provider, model, created_at, updated_at
		 FROM projects WHERE id = ?`, id,
	).Scan(&p.ID, &p.Name, &p.Prompt, &p.Provider, &p.Model, &p.CreatedAt, &p.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting project: %w", err)
	}
	return &p, nil
}

// List returns all projects, most recently updated first.
func (s *Store) List(ctx context.Context) ([]Project, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, prompt, provider, model, created_at, updated_at
		 FROM projects ORDER BY updated_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	defer rows.Close()

	var projects []Project
	for rows.Next() {
		var p Project
		if err := rows.Scan(&p.ID, &p.Name, &p.Prompt, &p.Provider, &p.Model, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning project: %w", err)
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// Delete removes a project and, via cascade, its files and generations.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("project %s not found", id)
	}
	return nil
}

// ReplaceFiles swaps a project's file set atomically, preserving the
// set's order in the position column.
func (s *Store) ReplaceFiles(ctx context.Context, projectID string, fs *project.FileSet) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM project_files WHERE project_id = ?`, projectID); err != nil {
		return fmt.Errorf("clearing files: %w", err)
	}

	for i, f := range fs.Files {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO project_files (project_id, path, kind, content, size, position)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			projectID, f.Path, string(f.Kind), f.Content, f.Size, i,
		)
		if err != nil {
			return fmt.Errorf("inserting file %s: %w", f.Path, err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE projects SET updated_at = ? WHERE id = ?`,
		time.Now().UTC(), projectID,
	); err != nil {
		return fmt.Errorf("touching project: %w", err)
	}

	return tx.Commit()
}

// FileSet loads a project's files in stored order.
func (s *Store) FileSet(ctx context.Context, projectID string) (*project.FileSet, error) {
	p, err := s.Get(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("project %s not found", projectID)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT path, kind, content, size FROM project_files
		 WHERE project_id = ? ORDER BY position`, projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("loading files: %w", err)
	}
	defer rows.Close()

	fs := project.NewFileSet()
	for rows.Next() {
		var f project.File
		var kind string
		if err := rows.Scan(&f.Path, &kind, &f.Content, &f.Size); err != nil {
			return nil, fmt.Errorf("scanning file: %w", err)
		}
		f.Kind = project.Kind(kind)
		fs.Add(f)
	}
	return fs, rows.Err()
}

// RecordGeneration stores the outcome of a model run.
func (s *Store) RecordGeneration(ctx context.Context, g Generation) (*Generation, error) {
	if g.ID == "" {
		g.ID = uuid.New().String()
	}
	g.CreatedAt = time.Now().UTC()

	recovered := 0
	if g.Recovered {
		recovered = 1
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO generations (id, project_id, kind, prompt, model, input_tokens, output_tokens, cost_usd, file_count, recovered, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		g.ID, g.ProjectID, g.Kind, g.Prompt, g.Model, g.InputTokens, g.OutputTokens, g.CostUSD, g.FileCount, recovered, g.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting generation: %w", err)
	}
	return &g, nil
}

// Generations returns a project's model runs, newest first.
func (s *Store) Generations(ctx context.Context, projectID string) ([]Generation, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, project_id, kind, prompt, model, input_tokens, output_tokens, cost_usd, file_count, recovered, created_at
		 FROM generations WHERE project_id = ? ORDER BY created_at DESC`, projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing generations: %w", err)
	}
	defer rows.Close()

	var gens []Generation
	for rows.Next() {
		var g Generation
		var recovered int
		if err := rows.Scan(&g.ID, &g.ProjectID, &g.Kind, &g.Prompt, &g.Model, &g.InputTokens, &g.OutputTokens, &g.CostUSD, &g.FileCount, &recovered, &g.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning generation: %w", err)
		}
		g.Recovered = recovered != 0
		gens = append(gens, g)
	}
	return gens, rows.Err()
}
