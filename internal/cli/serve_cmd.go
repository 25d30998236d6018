package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/Dicklesworthstone/concord/internal/serve"
	"github.com/Dicklesworthstone/concord/internal/tui/theme"
)

func newServeCmd() *cobra.Command {
	var host string
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the confidence gate HTTP API",
		Long: `Start the HTTP API that evaluates prompts and enforces the confidence
gate over the wire. Evaluation events stream to websocket subscribers
on /api/events.

Examples:
  concord serve
  concord serve --host 0.0.0.0 --port 9090
  curl -s localhost:8389/api/evaluate -d '{"prompt": "hello", "num_samples": 3}'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.OutOrStdout(), host, port)
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "Bind address (default from config)")
	cmd.Flags().IntVar(&port, "port", 0, "Bind port (default from config)")

	return cmd
}

func runServe(w io.Writer, host string, port int) error {
	if host != "" {
		cfg.Server.Host = host
	}
	if port != 0 {
		cfg.Server.Port = port
	}

	s, err := buildSampler("", -1)
	if err != nil {
		return err
	}
	pol, err := loadPolicy()
	if err != nil {
		return err
	}

	// Long-running process, log at the configured level rather than the
	// quiet CLI default.
	var handler slog.Handler
	if cfg.Logging.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: serveLogLevel(cfg)})
	} else {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: serveLogLevel(cfg)})
	}
	slog.SetDefault(slog.New(handler))

	srv := serve.New(cfg, buildAnalyzer(s), pol, serve.WithVersion(Version))

	t := theme.Current()
	accent := lipgloss.NewStyle().Bold(true).Foreground(t.Lavender)
	fmt.Fprintf(w, "%s listening on http://%s\n", accent.Render("concord-gate"), srv.Addr())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return srv.Start(ctx)
}
