package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sitewright/sitewright/internal/generate"
	"github.com/sitewright/sitewright/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server on stdio",
	Long: `Exposes site generation, modification and previews as MCP tools for
AI assistants. All diagnostics go to stderr; stdout carries the
protocol.`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	database, st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	var generator *generate.Service
	if generator, err = createGenerateService(cfg, st); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\nGeneration tools will report the missing provider.\n", err)
		generator = nil
	}

	mcp.Version = Version
	srv := mcp.NewServer(st, generator)
	return srv.Serve()
}
