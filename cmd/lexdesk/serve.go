package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"lexdesk/handlers"
	"lexdesk/logger"
	"lexdesk/services"

	"github.com/spf13/cobra"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the local JSON API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			if _, err := services.SeedDefaultAdmin(ctx, a.svc.Repos.Users, a.cfg.DefaultAdminUsername, a.cfg.DefaultAdminPassword); err != nil {
				return err
			}

			port, _ := cmd.Flags().GetString("port")
			if port == "" {
				port = a.cfg.ServerPort
			}
			sessions := services.NewSessionStore(a.cfg.SessionTTL)
			e := handlers.NewServer(handlers.NewAPI(a.svc, sessions, a.cfg))

			errCh := make(chan error, 1)
			go func() {
				logger.L().Infow("server starting", "port", port, "environment", a.cfg.Environment)
				errCh <- e.Start("127.0.0.1:" + port)
			}()

			select {
			case err := <-errCh:
				if !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			case <-ctx.Done():
			}

			logger.L().Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return e.Shutdown(shutdownCtx)
		},
	}
	cmd.Flags().String("port", "", "port to listen on (defaults to SERVER_PORT)")
	return cmd
}
