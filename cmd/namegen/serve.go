package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/CTAG07/namegen/pkg/templating"
	"github.com/spf13/cobra"
)

func (c *cli) newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP JSON API",
		Long: `Serve exposes stored models and templates over HTTP:

  GET    /api/health
  GET    /api/models
  POST   /api/models/import
  DELETE /api/models/{name}
  POST   /api/models/{name}/train      ?engine=&order=&prior=&vowels=&case_preserving=&weighted=&blend=
  GET    /api/models/{name}/generate   ?n=&min=&max=&start=&end=&seed=&second=&separator=
  GET    /api/models/{name}/export
  GET    /api/templates
  GET    /api/templates/{name}/render  ?n=`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr != "" {
				c.config.Server.ApiAddr = addr
			}

			st, closeStore, err := c.openStore()
			if err != nil {
				return err
			}
			defer closeStore()

			tm, err := templating.NewTemplateManager(c.logger, st, c.config.Templates, c.config.Server.TemplateDir)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return c.serve(ctx, NewAPI(st, tm, c.config, c.logger))
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address, overrides the configuration")
	return cmd
}

// serve runs the API server until ctx is cancelled or the listener fails.
func (c *cli) serve(ctx context.Context, api *API) error {
	mux := http.NewServeMux()
	api.RegisterRoutes(mux)

	server := &http.Server{
		Addr:              c.config.Server.ApiAddr,
		Handler:           c.logRequests(mux),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.logger.Info("Starting api server", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	c.logger.Info("Stopping api server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		c.logger.Error("Api server shutdown failed", "error", err)
		return err
	}
	c.logger.Info("Api server stopped.")
	return nil
}

func (c *cli) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		c.logger.Debug("Request served", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}
