package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/sitewright/sitewright/internal/project"
	"github.com/sitewright/sitewright/internal/store"
)

var importCmd = &cobra.Command{
	Use:   "import <dir>",
	Short: "Import an existing static site directory as a project",
	Long: `Walks a directory of static site files and stores them as a new
project, so it can be previewed and modified like a generated one.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().String("name", "", "project name (defaults to the directory name)")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	root := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	fs, err := project.WalkDir(root, cfg.Exclude)
	if err != nil {
		return fmt.Errorf("walking %s: %w", root, err)
	}
	if fs.Empty() {
		return fmt.Errorf("no site files found under %s", root)
	}

	database, st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	name, _ := cmd.Flags().GetString("name")
	if name == "" {
		abs, err := filepath.Abs(root)
		if err != nil {
			abs = root
		}
		name = filepath.Base(abs)
	}

	ctx := context.Background()
	p, err := st.Create(ctx, store.Project{Name: name, Prompt: fmt.Sprintf("imported from %s", root)})
	if err != nil {
		return err
	}
	if err := st.ReplaceFiles(ctx, p.ID, fs); err != nil {
		return err
	}

	if idx := createRetrievalIndex(cfg); idx.Enabled() {
		if err := idx.IndexProject(ctx, p.ID, fs); err != nil && verbose {
			fmt.Fprintf(os.Stderr, "Warning: indexing project: %v\n", err)
		}
	}

	fmt.Printf("Imported %d file(s) as project %s (%s)\n", fs.Len(), p.Name, p.ID)
	return nil
}
