package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"go-soiladvisor/advisory"
	"go-soiladvisor/config"
	"go-soiladvisor/routes"
)

const shutdownTimeout = 5 * time.Second

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web form and JSON API",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address, overrides server.addr")
}

func runServe(cmd *cobra.Command, args []string) error {
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}
	gin.SetMode(cfg.Server.Mode)

	ctx := cmd.Context()
	gen, err := advisory.NewGenerator(ctx, cfg.Gemini, logger)
	if err != nil {
		return fmt.Errorf("failed to create generator: %w", err)
	}

	deps := routes.Deps{
		Advisor: advisory.NewService(gen, logger),
		Logger:  logger,
	}
	// mock 后端不需要 key
	if cfg.Gemini.Backend != config.BackendMock {
		deps.Keys = advisory.NewClient(cfg.Gemini, logger)
	}

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           routes.SetupRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening",
			zap.String("addr", srv.Addr),
			zap.String("backend", cfg.Gemini.Backend),
			zap.Strings("models", cfg.Gemini.Models),
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}
