package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rentstock/internal/auth"
	"rentstock/internal/config"
	"rentstock/internal/customer"
	"rentstock/internal/infrastructure/logger"
	"rentstock/internal/infrastructure/mysql"
	"rentstock/internal/product"
	"rentstock/internal/rental"
	"rentstock/internal/server"
	"rentstock/internal/store"
	"rentstock/internal/store/jsonfile"
	"rentstock/internal/store/memstore"
	"rentstock/internal/store/mysqlstore"

	"github.com/joho/godotenv"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer zapLogger.Sync()

	backend, cleanup, err := newStore(cfg, zapLogger)
	if err != nil {
		zapLogger.Fatal("initializing storage", zap.Error(err))
	}
	defer cleanup()

	coord := store.NewCoordinator(backend, zapLogger)

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	authSvc := auth.NewService(coord, tokens, zapLogger)
	authCtrl := auth.NewController(authSvc, zapLogger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := authSvc.EnsureAdmin(ctx, cfg.Auth.AdminEmail, cfg.Auth.AdminPassword); err != nil {
		cancel()
		zapLogger.Fatal("seeding admin user", zap.Error(err))
	}
	cancel()

	_, productCtrl := product.NewModule(coord, zapLogger)
	_, customerCtrl := customer.NewModule(coord, zapLogger)
	_, rentalCtrl := rental.NewModule(coord, zapLogger)

	router := server.NewRouter(authCtrl, tokens, productCtrl, customerCtrl, rentalCtrl, zapLogger)

	srv := server.New(cfg.Server.Port, router, zapLogger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil {
			zapLogger.Fatal("server error", zap.Error(err))
		}
	}()

	<-quit
	zapLogger.Info("received shutdown signal")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLogger.Fatal("server shutdown failed", zap.Error(err))
	}

	zapLogger.Info("server stopped gracefully")
}

func newStore(cfg *config.Config, zapLogger *zap.Logger) (store.Store, func(), error) {
	switch cfg.Storage.Backend {
	case "json":
		zapLogger.Info("using json file storage", zap.String("dataDir", cfg.Storage.DataDir))
		return jsonfile.New(afero.NewOsFs(), cfg.Storage.DataDir), func() {}, nil

	case "mysql":
		db, err := mysql.NewConnection(cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		s := mysqlstore.New(db)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		zapLogger.Info("using mysql storage", zap.String("database", cfg.Database.Name))
		return s, func() { db.Close() }, nil

	case "memory":
		zapLogger.Warn("using in-memory storage, data will not survive restarts")
		return memstore.New(), func() {}, nil
	}

	zapLogger.Warn("unknown storage backend, falling back to json",
		zap.String("backend", cfg.Storage.Backend))
	return jsonfile.New(afero.NewOsFs(), cfg.Storage.DataDir), func() {}, nil
}
