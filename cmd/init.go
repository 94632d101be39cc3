package cmd

import (
	"github.com/spf13/cobra"

	"github.com/sitewright/sitewright/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize sitewright configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure sitewright and generates a .sitewright.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard()
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
