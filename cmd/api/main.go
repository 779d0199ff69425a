package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"storefront-gateway/internal/commerce"
	"storefront-gateway/internal/config"
	"storefront-gateway/internal/httpserver"
	"storefront-gateway/internal/session"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[gateway] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	commerceClient := commerce.New(cfg.CommerceAPIURL, cfg.CommerceTimeout, logger)
	sessions := session.NewManager(commerceClient, commerceClient, logger, session.Options{
		TTL:         cfg.SessionTTL,
		Currency:    cfg.DefaultCurrency,
		MirrorCarts: cfg.CartMirror,
	})

	srv, err := httpserver.New(cfg.HTTPAddr, logger, httpserver.Deps{
		Sessions:       sessions,
		Commerce:       commerceClient,
		AllowedOrigins: cfg.AllowedOrigins,
	})
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
