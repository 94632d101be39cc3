package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/sitewright/sitewright/internal/progress"
)

var generateCmd = &cobra.Command{
	Use:   "generate <prompt>",
	Short: "Generate a new website from a prompt",
	Long:  `Sends the prompt to the configured LLM provider, recovers the returned file set, and stores it as a new project.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runGenerate,
}

func init() {
	generateCmd.Flags().String("name", "", "project name (defaults to the first words of the prompt)")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	start := time.Now()
	prompt := args[0]

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

	name, _ := cmd.Flags().GetString("name")
	if name == "" {
		name = defaultProjectName(prompt)
	}

	reporter := progress.NewReporter()
	reporter.Start("Generating site")
	svc.OnChunk = func(chunk string) { reporter.Add(len(chunk)) }

	p, fs, err := svc.Generate(context.Background(), name, prompt)
	reporter.Finish()
	if err != nil {
		return err
	}

	fmt.Printf("Created project %s (%s) in %s\n", p.Name, p.ID, time.Since(start).Round(time.Second))
	for _, f := range fs.Files {
		fmt.Printf("  %-30s %s, %d bytes\n", f.Path, f.Kind, f.Size)
	}
	fmt.Printf("\nPreview it with: sitewright serve  (then open /preview/%s)\n", p.ID)
	return nil
}

// defaultProjectName derives a short name from the prompt.
func defaultProjectName(prompt string) string {
	const max = 40
	if len(prompt) <= max {
		return prompt
	}
	return prompt[:max]
}
