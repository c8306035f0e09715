package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/vit0-9/whois_api/config"
	"github.com/vit0-9/whois_api/pkg/utils/domain"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("WARN: Error loading .env file, using environment variables from system if set.")
	}

	cfg, err := config.Load(viper.New())
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := newLogger(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	if cfg.FileUsed == "" {
		logger.Warn("no config file found, using defaults and env vars")
	} else {
		logger.Info("loaded config file", zap.String("path", cfg.FileUsed))
	}

	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	resolver := domain.NewResolver(domain.ResolverConfig{
		HTTPTimeout:   cfg.Resolver.HTTPTimeout,
		WhoisTimeout:  cfg.Resolver.WhoisTimeout,
		WhoisFallback: cfg.Resolver.WhoisFallback,
		UserAgent:     cfg.Resolver.UserAgent,
	}, logger)

	app, err := NewApp(cfg, resolver, logger)
	if err != nil {
		logger.Fatal("Failed to initialize application", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Start(ctx, cfg.Addr()); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
}

func newLogger(cfg config.LogConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	zc := zap.NewProductionConfig()
	if cfg.Development {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}
