package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"agent-pipeline/internal/adapter/httpapi"
	"agent-pipeline/internal/di"
	"agent-pipeline/internal/infrastructure/env"

	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Expose the pipeline over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	return cmd
}

func runServer(addr string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	envService := env.NewEnvService()
	cfg := di.ConfigFromEnv(envService)
	cfg.LogName = "server"

	container, err := di.NewContainer(ctx, cfg)
	if err != nil {
		return err
	}
	defer container.Close()

	srv := httpapi.New(container.Orchestrator, container.Logger, httpapi.Config{
		Addr:            addr,
		DefaultLanguage: cfg.TargetLanguage,
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			container.Logger.Error("HTTP server failed", "addr", addr, "error", err)
		}
		return err
	case <-ctx.Done():
	}

	container.Logger.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
