package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/01moynul/grocery-storefront/internal/backend"
	"github.com/01moynul/grocery-storefront/internal/cart"
	"github.com/01moynul/grocery-storefront/internal/catalog"
	"github.com/01moynul/grocery-storefront/internal/checkout"
	"github.com/01moynul/grocery-storefront/internal/config"
	"github.com/01moynul/grocery-storefront/internal/handlers"
	"github.com/01moynul/grocery-storefront/internal/logger"
	"github.com/01moynul/grocery-storefront/internal/notify"
	"github.com/01moynul/grocery-storefront/internal/routes"
	"github.com/01moynul/grocery-storefront/internal/storage"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	// 0. --- Load Configuration (.env + environment) ---
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("invalid configuration")
	}

	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. --- Cart Storage Slot ---
	kv, closeKV, err := storage.Open(ctx, cfg, log)
	if err != nil {
		log.WithError(err).Fatal("failed to open cart storage")
	}
	defer closeKV()

	// 2. --- Core Services ---
	notices := notify.NewFeed(notify.DefaultFeedSize, log)

	store := cart.NewStore(ctx, kv,
		cart.WithKey(cfg.CartKey),
		cart.WithNotifier(notices),
		cart.WithLogger(log),
		cart.WithPlaceholderImage(cfg.PlaceholderImage),
	)

	api := backend.New(cfg.BackendURL, cfg.BackendTimeout, log)

	// --- Application Setup ---
	// Every dependency is built here and injected into the Handlers struct.
	app := &handlers.Handlers{
		Cart:     store,
		Catalog:  catalog.NewClient(api),
		Checkout: checkout.NewService(store, api, cfg.OrderPath, notices, log),
		Notices:  notices,
		Log:      log,
	}

	// --- Router Setup ---
	router := routes.SetupRouter(app, cfg.CORSOrigin)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		log.Info("shutting down storefront API")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Error("graceful shutdown failed")
		}
	}()

	// --- Start Server ---
	log.WithFields(logrus.Fields{
		"addr":    srv.Addr,
		"backend": cfg.BackendURL,
		"storage": cfg.StorageDriver,
		"lines":   store.ItemCount(),
	}).Info("starting storefront API")

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.WithError(err).Fatal("failed to start server")
	}
}
