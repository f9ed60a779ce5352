package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/startuphub/startuphub/handlers"
	"github.com/startuphub/startuphub/internal/config"
	"github.com/startuphub/startuphub/internal/render"
	"github.com/startuphub/startuphub/internal/state"
	"github.com/startuphub/startuphub/internal/storage"
	"github.com/startuphub/startuphub/internal/tokens"
	"github.com/startuphub/startuphub/internal/users"
	"github.com/startuphub/startuphub/pkg/logger"
	"github.com/startuphub/startuphub/pkg/metrics"
	"github.com/startuphub/startuphub/pkg/middleware"
)

var startTime = time.Now()

func main() {
	// initialize logging (can be controlled with LOG_LEVEL env: debug|info|warn|error|fatal)
	logger.Init(os.Getenv("LOG_LEVEL"))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Init(cfg.LogLevel)
	logger.Infof("config loaded: storage=%s rate_limit=%v/%s", cfg.Storage.Backend, cfg.RateLimit.Enabled, cfg.RateLimit.Backend)

	ctx := context.Background()
	backend, err := storage.Open(ctx, cfg)
	if err != nil {
		logger.Fatalf("failed to open storage: %v", err)
	}
	defer func() { _ = backend.Close(context.Background()) }()

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)

	store := state.NewStore(backend.KV)
	store.Subscribe(state.LogListener())
	store.Subscribe(state.MetricsListener(store))
	var loaded atomic.Bool
	report := store.Load(ctx)
	loaded.Store(true)
	logger.Infof("state loaded: first_run=%v discarded=%v", report.FirstRun, report.Discarded)

	renderer, err := render.New()
	if err != nil {
		logger.Fatalf("failed to parse templates: %v", err)
	}
	confirmer, err := tokens.NewConfirmer(cfg.Confirm.Secret, cfg.Confirm.TTL)
	if err != nil {
		logger.Fatalf("failed to init confirmer: %v", err)
	}

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.Use(cors.New(corsConfig(cfg.Server.CORSOrigins)))
	r.Use(middleware.IdentityMiddleware(users.NewService(store)))

	var limiterRedis *redis.Client
	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.Backend == "redis" {
			limiterRedis = backend.Redis
			if limiterRedis == nil {
				if limiterRedis, err = storage.OpenRedis(ctx, cfg.Redis); err != nil {
					logger.Warnf("rate limiter: %v; falling back to in-memory limiter", err)
				} else {
					defer limiterRedis.Close()
				}
			}
			r.Use(middleware.RedisRateLimitMiddleware(limiterRedis, cfg.RateLimit.Limit, cfg.RateLimit.Window, cfg.RateLimit.RPS, cfg.RateLimit.Burst))
		} else {
			r.Use(middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
		}
	}

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})

	// readiness: state loaded and the storage backend answers
	r.GET("/ready", func(c *gin.Context) {
		deps := map[string]bool{"state": loaded.Load()}
		pctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		deps["storage"] = backend.Ping(pctx) == nil
		if limiterRedis != nil {
			deps["redis"] = limiterRedis.Ping(pctx).Err() == nil
		}
		ready := true
		for _, ok := range deps {
			ready = ready && ok
		}
		status, word := http.StatusOK, "ready"
		if !ready {
			status, word = http.StatusServiceUnavailable, "not_ready"
		}
		c.JSON(status, gin.H{"status": word, "backend": backend.Name, "deps": deps, "uptime": time.Since(startTime).String()})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	handlers.RegisterRoutes(r, handlers.Deps{Store: store, Renderer: renderer, Confirmer: confirmer})

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	go func() {
		logger.Infof("Starting startuphub on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		logger.Errorf("shutdown: %v", err)
	}
}

func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = origins
	}
	return c
}
