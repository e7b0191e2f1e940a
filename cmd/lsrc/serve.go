package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"lsrc-api/internal/bootstrap"
	"lsrc-api/internal/config"
	"lsrc-api/internal/devserver"
	"lsrc-api/internal/logger"
	"lsrc-api/internal/metrics"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd() *cobra.Command {
	var addr, staticDir string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the chat and config handlers plus static files over plain HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := config.ParseRuntime()
			if err != nil {
				return fmt.Errorf("read runtime config: %w", err)
			}
			if cmd.Flags().Changed("addr") {
				rt.DevServerAddr = addr
			}
			if cmd.Flags().Changed("static") {
				rt.DevStaticDir = staticDir
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, rt)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides DEV_SERVER_ADDR)")
	cmd.Flags().StringVar(&staticDir, "static", "", "static file root (overrides DEV_STATIC_DIR)")
	return cmd
}

func serve(ctx context.Context, rt config.Runtime) error {
	log := logger.NewLogger("devserver", rt.LogLevel)

	provider, err := bootstrap.Provider(ctx, rt)
	if err != nil {
		return err
	}
	recorder := metrics.NewRecorder()
	chat, err := bootstrap.ChatHandler(provider, rt, recorder, log)
	if err != nil {
		return err
	}
	cfg, err := bootstrap.ConfigHandler(provider, log)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr: rt.DevServerAddr,
		Handler: devserver.NewRouter(devserver.Handlers{
			Chat:      chat.Handle,
			Config:    cfg.Handle,
			Metrics:   recorder.Handler(),
			StaticDir: rt.DevStaticDir,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", rt.DevServerAddr).Str("static", rt.DevStaticDir).Msg("dev server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down dev server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
