package cmd

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "sitewright",
	Short: "AI-powered static website generation with live previews",
	Long: `Sitewright turns natural language prompts into complete multi-page
static websites. Model responses are recovered even when truncated or
malformed, stored as projects, and served as self-contained live
previews with working page navigation.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".sitewright.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
