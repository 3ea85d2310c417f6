package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/avidela/product-catalog/internal/config"
	"github.com/avidela/product-catalog/internal/db"
	"github.com/avidela/product-catalog/internal/events"
	"github.com/avidela/product-catalog/internal/httpserver"
	"github.com/avidela/product-catalog/internal/logging"
	"github.com/avidela/product-catalog/internal/middleware/requestlog"
	"github.com/avidela/product-catalog/internal/middleware/session"
	"github.com/avidela/product-catalog/internal/repo"
	"github.com/avidela/product-catalog/internal/service"
)

func main() {
	cfg := config.Load()

	logger := logging.New(cfg.LogLevel)
	slog.SetDefault(logger)

	ctx := context.Background()
	database, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database init error: %v", err)
	}

	if len(cfg.JWTSecret) == 0 {
		// logins will answer 500 until the secret is provided; refusing to
		// sign with a default is deliberate
		logger.Warn("JWT_SECRET is not set, authentication is disabled")
	}

	prod := events.NewProducer(cfg.KafkaBrokers)

	e := echo.New()
	e.HideBanner = true
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())
	e.Use(requestlog.RequestLogger(logger))

	store := repo.New(database)
	deps := httpserver.Deps{
		AuthHandler: &httpserver.AuthHTTP{
			Svc:           &service.AuthService{Repo: store, JWTSecret: cfg.JWTSecret},
			Producer:      prod,
			SecureCookies: cfg.IsProduction(),
		},
		CatalogHandler: &httpserver.CatalogHTTP{
			Svc:      &service.CatalogService{Repo: store},
			Producer: prod,
		},
		Guard: session.NewGuard(cfg.JWTSecret),
	}

	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := database.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	} else {
		log.Printf("db() error: %v", err)
	}

	if err := prod.Close(); err != nil {
		log.Printf("kafka close error: %v", err)
	}

	log.Println("shutdown complete")
}
