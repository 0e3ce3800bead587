// Package cli holds the cobra command tree of the service binary.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goodnessaig1/gidolee-video-share/internal/config"
	"github.com/goodnessaig1/gidolee-video-share/internal/logger"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "videoshare",
	Short: "Short-form video sharing backend",
	Long: `videoshare runs the HTTP API and its maintenance tasks.

Commands:
  serve     - Start the API server and background workers
  migrate   - Apply or roll back database migrations
  seed      - Install the default genres (and optional demo data)
  promote   - Change the role of an account`,
	SilenceUsage: true,
}

// Execute runs the root command. SIGINT and SIGTERM cancel the command context.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// bootstrap loads configuration and builds the root logger.
func bootstrap() (*config.Config, *zap.Logger, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	log, err := logger.New(cfg.Env)
	if err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}
