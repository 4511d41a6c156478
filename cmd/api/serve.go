package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"GestorChoferes/internal/handler"
	"GestorChoferes/internal/notify"
	"GestorChoferes/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 30 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE:  serve,
}

func serve(cmd *cobra.Command, _ []string) error {
	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	hub := notify.NewHub(a.log, a.metrics)
	defer hub.Close()

	// backup first: feed clients hear about a change once it is on disk
	records := service.NewRecordService(a.store, a.log, a.metrics, a.backup, hub)

	gin.SetMode(gin.ReleaseMode)
	router := handler.NewRouter(handler.RouterDeps{
		Records:   records,
		Hub:       hub,
		DB:        a.db,
		Metrics:   a.metrics.Handler(),
		Roster:    a.cfg.App.Roster,
		Log:       a.log,
		RateLimit: a.cfg.App.RateLimit,
		RateBurst: a.cfg.App.RateBurst,
	})

	server := &http.Server{
		Addr:              a.cfg.App.Addr(),
		Handler:           router,
		ReadTimeout:       a.cfg.App.ReadTimeout,
		ReadHeaderTimeout: a.cfg.App.ReadTimeout,
		WriteTimeout:      a.cfg.App.WriteTimeout,
		MaxHeaderBytes:    1 << 20,
	}

	errCh := make(chan error, 1)
	go func() {
		a.log.Info("serve(): server is running", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
	}
	a.log.Info("serve(): shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	hub.Close()
	if err := server.Shutdown(shutdownCtx); err != nil {
		a.log.Error("serve(): server forced to shutdown", zap.Error(err))
		return err
	}

	a.log.Info("serve(): server exited gracefully")
	return nil
}
