package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bryanchriswhite/TableScout/internal/api"
	"github.com/bryanchriswhite/TableScout/internal/logger"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the TableScout API server",
	Long: `Start the TableScout HTTP server.

The server answers table queries over REST and WebSocket. Every request runs
a fresh discovery pass; nothing is cached between requests.`,
	Example: `  # Start server on default port (8080)
  tablescout serve

  # Start server on custom port
  tablescout serve --port 9090

  # Start with specific config file
  tablescout serve --config /path/to/config.yaml

  # Start with debug logging
  tablescout serve --log-level debug`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("serve")

	configMgr, cfg, err := loadConfig()
	if err != nil {
		return err
	}

	finder, src, err := newFinder(cfg)
	if err != nil {
		return err
	}
	defer src.Close()

	log.Info().
		Str("config", configMgr.GetConfigPath()).
		Str("source", src.Name()).
		Int("sites", len(cfg.Sites)).
		Msg("Configuration loaded")

	server := api.NewServer(finder, configMgr)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start(cfg.ServerPort)
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	log.Info().
		Str("api", fmt.Sprintf("http://localhost:%d/api", cfg.ServerPort)).
		Msg("TableScout is running, press Ctrl+C to stop")

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-sigChan:
	}

	log.Info().Msg("Shutting down gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(ctx)
}
