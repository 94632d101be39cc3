package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sitewright/sitewright/internal/compose"
)

var previewCmd = &cobra.Command{
	Use:   "preview <project-id>",
	Short: "Compose a project page into a standalone HTML document",
	Long: `Merges a project's styles and scripts into a single self-contained
document and writes it to stdout or a file. Useful for inspecting
exactly what the live preview serves.`,
	Args: cobra.ExactArgs(1),
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().String("target", "", "page to compose (defaults to the entry page)")
	previewCmd.Flags().StringP("output", "o", "", "write the document to a file instead of stdout")
	rootCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	database, st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	fs, err := st.FileSet(context.Background(), args[0])
	if err != nil {
		return err
	}

	target, _ := cmd.Flags().GetString("target")
	res := compose.New().Compose(fs, target)
	if res.Empty() {
		return fmt.Errorf("project %s has no previewable content", args[0])
	}

	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		fmt.Println(res.Document)
		return nil
	}
	if err := os.WriteFile(output, []byte(res.Document), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", output, err)
	}
	fmt.Fprintf(os.Stderr, "Wrote %s (%d bytes)\n", output, len(res.Document))
	return nil
}
