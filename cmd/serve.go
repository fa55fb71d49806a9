package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"jobradar/internal/databank"
	"jobradar/internal/history"
	"jobradar/internal/metrics"
	"jobradar/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the answer engine HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		m := metrics.NewMetrics()
		svc, err := buildAnswerer(m)
		if err != nil {
			return err
		}

		store := databank.NewStore(cfg.Databank.Path)
		hist, err := history.Open(cfg.History.Path)
		if err != nil {
			return err
		}
		defer hist.Close()
		if err := hist.Migrate(ctx); err != nil {
			return err
		}

		srv := server.New(svc, store, hist, m, cfg.History.Keep)
		httpSrv := &http.Server{
			Addr:         cfg.Server.Addr,
			Handler:      srv.Routes(),
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		}

		errCh := make(chan error, 1)
		go func() {
			if err := httpSrv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
		}()
		zap.L().Info("listening",
			zap.String("addr", cfg.Server.Addr),
			zap.String("databank", cfg.Databank.Path),
		)

		select {
		case <-ctx.Done():
			zap.L().Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
			defer cancel()
			return httpSrv.Shutdown(shutdownCtx)
		case err := <-errCh:
			return err
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
