package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/sitewright/sitewright/internal/generate"
	"github.com/sitewright/sitewright/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the sitewright HTTP server",
	Long: `Serves the project API and live previews. Generation endpoints are
only available when an LLM provider API key is configured.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().Int("port", 0, "port to listen on (overrides config)")
	serveCmd.Flags().Bool("allow-all-origins", false, "allow all CORS origins (dev mode)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
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
		fmt.Fprintf(os.Stderr, "Warning: %v\nGeneration endpoints disabled; projects remain browsable.\n", err)
		generator = nil
	}

	port := cfg.Port
	if flagPort, _ := cmd.Flags().GetInt("port"); flagPort != 0 {
		port = flagPort
	}
	allowAll, _ := cmd.Flags().GetBool("allow-all-origins")

	srv := server.New(server.Config{Port: port, AllowAll: allowAll}, database, st, generator)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
