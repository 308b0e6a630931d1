// Command oauth-demo is a minimal host application for the oauth package:
// it signs users in with one provider and prints the normalized profile.
//
// Configuration comes from the environment, e.g.:
//
//	COOKIE_SECRET=... OAUTH_PROVIDER=github \
//	OAUTH_CLIENT_ID=... OAUTH_CLIENT_SECRET=... \
//	OAUTH_REDIRECT_URI=http://localhost:8080/auth/callback \
//	COOKIE_SECURE=false oauth-demo
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/oauthflow/pkg/authcookie"
	"github.com/dmitrymomot/oauthflow/pkg/logger"
	"github.com/dmitrymomot/oauthflow/pkg/oauth"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log := logger.New(cfg.Log, logger.FlowIDExtractor, logger.ProviderExtractor).With("app", "oauth-demo")

	provider, err := providerByName(cfg.Provider)
	if err != nil {
		return err
	}
	cookies, err := authcookie.New(cfg.CookieSecret, authcookie.WithSecure(cfg.SecureCookie))
	if err != nil {
		return err
	}

	h := &authHandler{
		strategy: oauth.New(provider,
			oauth.WithLogger(log),
			oauth.WithHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout}),
		),
		oauth:   cfg.OAuth,
		cookies: cookies,
		log:     log,
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           newRouter(h),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", slog.String("addr", cfg.Addr), slog.String("provider", provider.Name()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	log.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}

func newRouter(h *authHandler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/auth/login", h.login)
	r.Get("/auth/callback", h.callback)
	r.Post("/auth/callback", h.callback)
	return r
}
