package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/Malithmadhushantha/asali-frontend/internal/api"
	"github.com/Malithmadhushantha/asali-frontend/internal/cart"
	"github.com/Malithmadhushantha/asali-frontend/internal/checkout"
	"github.com/Malithmadhushantha/asali-frontend/internal/config"
	"github.com/Malithmadhushantha/asali-frontend/internal/currency"
	"github.com/Malithmadhushantha/asali-frontend/internal/handlers"
	"github.com/Malithmadhushantha/asali-frontend/internal/log"
	"github.com/Malithmadhushantha/asali-frontend/internal/notify"
	"github.com/Malithmadhushantha/asali-frontend/internal/server"
	"github.com/Malithmadhushantha/asali-frontend/internal/session"
	"github.com/Malithmadhushantha/asali-frontend/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := log.New(cfg.Environment)

	st, err := store.New(store.Config{
		Driver:    cfg.Store.Driver,
		Path:      cfg.Store.Path,
		Namespace: cfg.Store.Namespace,
		RedisAddr: cfg.Store.Redis.Addr,
		RedisPass: cfg.Store.Redis.Password,
		RedisDB:   cfg.Store.Redis.DB,
	}, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open state store")
	}

	backend := api.New(cfg.Backend.BaseURL, cfg.Backend.Timeout, logger)
	notices := notify.New(logger)
	if err := notices.Subscribe(func(n notify.Notice) {
		logger.Info().Str("kind", string(n.Kind)).Msg(n.Message)
	}); err != nil {
		logger.Fatal().Err(err).Msg("failed to subscribe notice log")
	}
	money := currency.New(cfg.Currency.Symbol)

	sessionManager := session.New(backend, st, notices, logger)
	cartManager := cart.New(st, notices, logger)
	checkoutService := checkout.NewService(backend, sessionManager, cartManager, checkout.Rates{
		FreeShippingThreshold: cfg.Checkout.FreeShippingThreshold,
		FlatShippingFee:       cfg.Checkout.FlatShippingFee,
		TaxRate:               cfg.Checkout.TaxRate,
	}, notices, logger)

	// Restore the persisted session before the UI comes up; rejection
	// of a stale credential is silent.
	bootCtx, cancel := context.WithTimeout(context.Background(), cfg.Backend.Timeout)
	sessionManager.Bootstrap(bootCtx)
	cancel()

	handlerSet := handlers.NewHandlerSet(logger, cfg, sessionManager, cartManager, checkoutService, backend, money, notices)
	uiServer := server.NewUIServer(cfg, logger, handlerSet)

	go func() {
		if err := uiServer.Start(); err != nil {
			logger.Fatal().Err(err).Msg("ui server failed")
		}
	}()

	waitForShutdown(logger, uiServer, st)
}

func waitForShutdown(logger zerolog.Logger, srv *server.UIServer, st store.Store) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()
	logger.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}

	if err := st.Close(); err != nil {
		logger.Error().Err(err).Msg("state store close error")
	}

	logger.Info().Msg("client exited cleanly")
}
