package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sitewright/sitewright/internal/progress"
)

var modifyCmd = &cobra.Command{
	Use:   "modify <project-id> <prompt>",
	Short: "Modify an existing project with a prompt",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		projectID, prompt := args[0], args[1]

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		database, st, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer database.Close()

		svc, err := createGenerateService(cfg, st)
		if err != nil {
			return err
		}

		reporter := progress.NewReporter()
		reporter.Start("Modifying site")
		svc.OnChunk = func(chunk string) { reporter.Add(len(chunk)) }

		fs, err := svc.Modify(context.Background(), projectID, prompt)
		reporter.Finish()
		if err != nil {
			return err
		}

		fmt.Printf("Updated project %s; site now has %d file(s):\n", projectID, fs.Len())
		for _, f := range fs.Files {
			fmt.Printf("  %-30s %s, %d bytes\n", f.Path, f.Kind, f.Size)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(modifyCmd)
}
