package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sprite-ai/codelens/internal/api"
	"github.com/sprite-ai/codelens/internal/assist"
	"github.com/sprite-ai/codelens/internal/gateway"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start an HTTP server that forwards snippets to the configured model.

Endpoints:
  GET  /health          Health check
  POST /api/review      Review a snippet
  POST /api/fix         Fix a snippet
  POST /api/complexity  Analyze time and space complexity
  POST /api/document    Generate documentation
  POST /api/convert     Convert between languages
  GET  /api/ws          WebSocket for interactive sessions
  GET  /metrics         Prometheus metrics`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringP("addr", "a", "", "address to listen on (default 127.0.0.1)")
	serveCmd.Flags().IntP("port", "p", 0, "port to listen on (default 6142)")
	serveCmd.Flags().Bool("mock", false, "use the offline mock model")
}

func runServe(cmd *cobra.Command, args []string) error {
	if cmd.Flags().Changed("addr") {
		cfg.Addr, _ = cmd.Flags().GetString("addr")
	}
	if cmd.Flags().Changed("port") {
		cfg.Port, _ = cmd.Flags().GetInt("port")
	}

	opts := cfg.GatewayOptions()
	if mock, _ := cmd.Flags().GetBool("mock"); mock {
		opts.Provider = gateway.ProviderMock
	}
	gw, err := gateway.New(opts)
	if err != nil {
		return err
	}

	srv := api.New(cfg.ListenAddr(), assist.New(gw, logger), logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down", zap.Duration("timeout", shutdownTimeout))
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
