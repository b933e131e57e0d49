package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iwvelando/mortgage-calculator/internal/logging"
	"github.com/iwvelando/mortgage-calculator/internal/server"
	"github.com/iwvelando/mortgage-calculator/pkg/constants"
	"go.uber.org/zap"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	configLocation := flag.String("config", constants.DefaultServerConfigFile, "path to server configuration file")
	address := flag.String("address", "", "listen address override, e.g. :8080")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	flag.Parse()

	cfg, err := server.LoadConfig(*configLocation)
	if err != nil {
		logging.FallbackFatal("main", fmt.Sprintf("failed to load server configuration at %s", *configLocation), err)
		os.Exit(1)
	}
	if *address != "" {
		cfg.Address = *address
	}

	logger, err := logging.New(cfg.Logging, *logLevel)
	if err != nil {
		logging.FallbackFatal("main", "failed to initialize logger", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	opts := server.Options{
		MaxBodySize: cfg.BodySizeBytes(),
		Version:     version,
		Currency:    cfg.Currency,
	}

	switch {
	case cfg.Cache.Disabled:
	case cfg.Cache.RedisAddr != "":
		redisCache := server.NewRedisCache(cfg.Cache.RedisAddr, cfg.Cache.RedisDB, cfg.CacheTTL())
		defer func() {
			_ = redisCache.Close()
		}()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := redisCache.Ping(ctx); err != nil {
			// Requests still succeed; every lookup just misses.
			logger.Warn("redis cache unreachable at startup",
				zap.String("op", "main"),
				zap.String("addr", cfg.Cache.RedisAddr),
				zap.Error(err),
			)
		}
		cancel()
		opts.Cache = redisCache
	default:
		opts.Cache = server.NewMemoryCache(cfg.CacheTTL())
	}

	if rpm := cfg.RateLimit.RequestsPerMinute; rpm > 0 {
		limiter := server.NewRateLimiter(rpm, time.Minute)
		defer limiter.Stop()
		opts.Limiter = limiter
	}

	srv := &http.Server{
		Addr:              cfg.Address,
		Handler:           server.NewHandler(logger, opts),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("starting server",
			zap.String("op", "main"),
			zap.String("address", cfg.Address),
			zap.String("version", version),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		logger.Error("server failed",
			zap.String("op", "main"),
			zap.Error(err),
		)
		return
	case sig := <-quit:
		logger.Info("shutting down server",
			zap.String("op", "main"),
			zap.String("signal", sig.String()),
		)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("error during server shutdown",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
	logger.Info("server exited", zap.String("op", "main"))
}
