package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"claimlens/internal/pipeline"
	"claimlens/internal/server"
)

var serveAddr string

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP check endpoint",
	Long: `Serve exposes the check pipeline over HTTP:

  POST /api/check   {"x_url": "https://x.com/user/status/123"}
  GET  /healthz

The response is the full JSON report, or a degraded Inconclusive shape
when the primary model provider fails.

Example:
  claimlens serve
  claimlens serve --addr :9090`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config, :8080)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}

	checker, err := pipeline.NewChecker(context.Background(), cfg)
	if err != nil {
		return fmt.Errorf("build pipeline: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Listening on %s\n", cfg.Server.Addr)
	fmt.Fprintf(os.Stderr, "Primary provider: %s/%s\n", cfg.Primary.Provider, cfg.Primary.Model)
	if checker.SecondaryEnabled() {
		fmt.Fprintf(os.Stderr, "Secondary provider: %s/%s\n", cfg.Secondary.Provider, cfg.Secondary.Model)
	} else {
		fmt.Fprintf(os.Stderr, "Secondary provider: disabled\n")
	}

	return server.New(checker).Run(cfg.Server.Addr)
}
