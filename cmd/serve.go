package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	mcpserver "github.com/vkozyrev/mcp-gerrit/internal/mcp"
	"github.com/vkozyrev/mcp-gerrit/internal/server"
)

var (
	serveTransport string
	serveAddr      string
	serveAllowAll  bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Gerrit MCP server",
	Long: `Starts the Model Context Protocol server exposing Gerrit review tools.

The default transport is stdio, for hosts that launch mcp-gerrit as a child
process. A typical .mcp.json entry:

    {
      "mcpServers": {
        "gerrit": {
          "command": "mcp-gerrit",
          "args": ["serve"],
          "env": {
            "GERRIT_HOST": "gerrit.example.com",
            "GERRIT_USER": "reviewbot",
            "GERRIT_HTTP_PASSWORD": "..."
          }
        }
      }
    }

Deployment wrappers that take a structured config object (gerritHost,
gerritUser, gerritHttpPassword) translate those fields into the same three
environment variables before starting the process.

With --transport http the server instead listens on --addr and serves the
MCP streamable HTTP transport at /mcp, plus a /healthz probe.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		logger, err := newLogger(cfg)
		if err != nil {
			return fmt.Errorf("building logger: %w", err)
		}
		defer logger.Sync()

		client := newClient(cfg, logger)
		if !client.Authenticated() {
			logger.Warn("GERRIT_HTTP_PASSWORD not set; running anonymously, mutating tools will fail")
		}

		srv := mcpserver.NewServer(client, mcpserver.Options{
			ReadOnly:     cfg.ReadOnly,
			EnabledTools: cfg.ConfiguredTools(),
			Logger:       logger.Named("mcp"),
		})

		logger.Info("mcp-gerrit server starting",
			zap.String("host", cfg.Host),
			zap.String("user", cfg.User),
			zap.String("transport", serveTransport),
			zap.Bool("read_only", cfg.ReadOnly),
			zap.Strings("tools", srv.RegisteredTools()),
		)

		switch serveTransport {
		case "stdio":
			return srv.Serve()
		case "http":
			host := server.New(server.Config{
				Addr:     serveAddr,
				AllowAll: serveAllowAll,
			}, srv.StreamableHandler(), logger.Named("http"))

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() { errCh <- host.Start() }()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			logger.Info("shutting down")
			return host.Shutdown(shutdownCtx)
		default:
			return fmt.Errorf("unknown transport %q: use stdio or http", serveTransport)
		}
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveTransport, "transport", "stdio", "transport to serve on (stdio or http)")
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8765", "listen address for the http transport")
	serveCmd.Flags().BoolVar(&serveAllowAll, "allow-all-origins", false, "allow all CORS origins (dev mode)")
	rootCmd.AddCommand(serveCmd)
}
