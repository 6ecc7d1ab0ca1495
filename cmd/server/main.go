package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/mushroomery/shop/internal/config"
	"github.com/mushroomery/shop/internal/es"
	"github.com/mushroomery/shop/internal/events"
	"github.com/mushroomery/shop/internal/httpserver"
	"github.com/mushroomery/shop/internal/logging"
	"github.com/mushroomery/shop/internal/middleware"
	"github.com/mushroomery/shop/internal/repo"
	"github.com/mushroomery/shop/internal/service"
	"github.com/mushroomery/shop/internal/service/search"
)

func main() {
	cfg := config.Load()
	log := logging.New(cfg.LogLevel)

	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := config.InitDB(initCtx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Error("db init failed", "error", err)
		os.Exit(1)
	}

	producer := events.NewProducer(cfg.KafkaBrokers)

	var index *search.Index
	if cfg.ESURL != "" {
		client, err := es.NewClient(cfg.ESURL, cfg.ESUser, cfg.ESPassword)
		if err != nil {
			log.Error("elasticsearch init failed", "error", err)
			os.Exit(1)
		}
		index = &search.Index{ES: client, Name: "products"}
	} else {
		log.Warn("ES_URL not set, product search disabled")
	}

	r := &repo.GormRepo{DB: db}
	authSvc := &service.AuthService{Repo: r, JWTSecret: cfg.JWTSecret, Events: producer}
	catalogSvc := &service.CatalogService{Repo: r, Events: producer, Index: index}
	cartSvc := &service.CartService{Repo: r, Events: producer}

	e := echo.New()
	e.HideBanner = true
	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover(), echomw.RequestID())
	e.Use(middleware.RequestLogger(log))

	httpserver.Register(e, &httpserver.Deps{
		AuthHandler:    &httpserver.AuthHTTP{Svc: authSvc},
		ProductHandler: &httpserver.ProductHTTP{Svc: catalogSvc},
		CartHandler:    &httpserver.CartHTTP{Svc: cartSvc},
		Auth:           middleware.NewRequireAuth(authSvc),
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("listening", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server shutdown error", "error", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Error("db close error", "error", err)
		}
	}
	if err := producer.Close(); err != nil {
		log.Error("kafka close error", "error", err)
	}

	log.Info("shutdown complete")
}
