package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/api-sage/account-transaction-engine/src/internal/adapter/http/controller"
	"github.com/api-sage/account-transaction-engine/src/internal/adapter/http/middleware"
	"github.com/api-sage/account-transaction-engine/src/internal/adapter/http/router"
	"github.com/api-sage/account-transaction-engine/src/internal/adapter/repository/implementations"
	"github.com/api-sage/account-transaction-engine/src/internal/config"
	"github.com/api-sage/account-transaction-engine/src/internal/engine"
	"github.com/api-sage/account-transaction-engine/src/internal/logger"
	"github.com/api-sage/account-transaction-engine/src/internal/usecase/services"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	startupCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	db, err := implementations.Open(startupCtx, cfg.DatabaseDSN, implementations.PoolOptions{
		MaxOpenConns: cfg.DBMaxOpenConns,
		MaxIdleConns: cfg.DBMaxIdleConns,
	})
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	if err := implementations.RunMigrations(startupCtx, db, os.DirFS(cfg.MigrationsDir)); err != nil {
		log.Fatalf("run migrations: %v", err)
	}
	logger.Info("migrations completed successfully", logger.Fields{"dir": cfg.MigrationsDir})

	accountRepo := implementations.NewAccountRepository(db)
	accountService := services.NewAccountService(accountRepo, engine.New(cfg.Limits), cfg.Location, cfg.MaxAttempts)
	accountController := controller.NewAccountController(accountService)
	authMiddleware := middleware.BasicAuth(cfg.ChannelID, cfg.ChannelKey, cfg.ChannelKeyHash)

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router.New(accountController, authMiddleware),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("http server listening", logger.Fields{
			"addr":     cfg.HTTPAddr,
			"timezone": cfg.Location.String(),
		})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("http server shutting down", nil)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("http server stopped with error", err, nil)
		os.Exit(1)
	}
}
