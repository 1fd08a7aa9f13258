package main

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

	httpLayer "loan-calculator/http"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the calculator over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if serveAddr != "" {
			cfg.HTTPAddr = serveAddr
		}

		store, cleanup, err := newStore(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer cleanup()

		rateLimiter := httpLayer.NewRateLimiter(cfg.RateLimitPerMinute, time.Minute)
		defer rateLimiter.Stop()

		handler := httpLayer.NewLoanHandler(store, logger)
		server := &http.Server{
			Addr:         cfg.HTTPAddr,
			Handler:      httpLayer.NewRouter(handler, rateLimiter, logger),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		}

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			logger.Info("loan calculator listening", zap.String("addr", cfg.HTTPAddr))
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			logger.Info("shutting down server")

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		})

		if err := g.Wait(); err != nil {
			return err
		}
		logger.Info("server exited")
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address; overrides HTTP_ADDR")
}
