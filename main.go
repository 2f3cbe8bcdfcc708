package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ideagen/ideagen/backend/go-services/handlers"
	"github.com/ideagen/ideagen/backend/go-services/internal/config"
	"github.com/ideagen/ideagen/backend/go-services/internal/generate"
	genhandler "github.com/ideagen/ideagen/backend/go-services/internal/generate/handler"
	ideashandler "github.com/ideagen/ideagen/backend/go-services/internal/ideas/handler"
	"github.com/ideagen/ideagen/backend/go-services/internal/ideas/repository"
	"github.com/ideagen/ideagen/backend/go-services/internal/ideas/service"
	"github.com/ideagen/ideagen/backend/go-services/pkg/logger"
	"github.com/ideagen/ideagen/backend/go-services/pkg/metrics"
	"github.com/ideagen/ideagen/backend/go-services/pkg/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

var startTime = time.Now()

// app is the wired service: router plus the handles readiness and shutdown need.
type app struct {
	router  *gin.Engine
	ideas   *service.Service
	redis   *redis.Client
	backend string
}

func main() {
	// LOG_LEVEL: debug|info|warn|error|fatal
	logger.Init(os.Getenv("LOG_LEVEL"))
	defer logger.Sync()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Init(cfg.LogLevel)
	if cfg.LogFile != "" {
		logger.UseFile(cfg.LogFile)
	}
	logger.Debugf("startup: LOG_LEVEL=%s", logger.LevelString())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := newApp(ctx, cfg, prometheus.DefaultRegisterer)
	if a.redis != nil {
		defer func() { _ = a.redis.Close() }()
	}
	go a.ideas.RunSweeper(ctx, cfg.Store.SweepInterval)

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      a.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	logger.Infof("config summary: store=%s redis=%v upstream=%s model=%s timeout=%s",
		a.backend, a.redis != nil, cfg.Upstream.BaseURL, cfg.Upstream.Model, cfg.Upstream.Timeout)

	go func() {
		logger.Infof("starting ideagen service on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("server failed: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Infof("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warnf("graceful shutdown failed: %v", err)
	}
}

// newApp connects optional dependencies and registers every route. A Redis
// backend that cannot be reached falls back to memory so the service still
// starts.
func newApp(ctx context.Context, cfg *config.Config, reg prometheus.Registerer) *app {
	if cfg.Server.Environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.RequestLogger(), gin.Recovery(), middleware.CORS(cfg.CORS.AllowOrigin))

	a := &app{router: r, backend: config.BackendMemory}
	opts := repository.Options{Capacity: cfg.Store.Capacity, TTL: cfg.Store.TTL}

	var repo repository.Repository
	if cfg.Store.Backend == config.BackendRedis {
		if addr := cfg.RedisAddr(); addr == "" {
			logger.Warnf("STORE_BACKEND=redis but REDIS_HOST is empty; using memory store")
		} else {
			client := redis.NewClient(&redis.Options{Addr: addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
			pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			err := client.Ping(pingCtx).Err()
			cancel()
			if err != nil {
				logger.Warnf("failed to connect to Redis (%s): %v; using memory store", addr, err)
				_ = client.Close()
			} else {
				logger.Infof("connected to Redis for saved ideas: %s", addr)
				a.redis = client
				a.backend = config.BackendRedis
				repo = repository.NewRedisRepository(client, "ideas:", opts)
			}
		}
	}
	if repo == nil {
		repo = repository.NewMemoryRepo(opts)
	}
	a.ideas = service.New(repo)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})

	// ready only when the selected store backend answers
	r.GET("/ready", func(c *gin.Context) {
		deps := map[string]bool{"store": true}
		ready := true
		if a.redis != nil {
			pingCtx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			deps["redis"] = a.redis.Ping(pingCtx).Err() == nil
			cancel()
			ready = deps["redis"]
		}
		status, code := "ready", http.StatusOK
		if !ready {
			status, code = "not_ready", http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{"status": status, "backend": a.backend, "deps": deps, "uptime": time.Since(startTime).String()})
	})

	ideashandler.RegisterRoutes(r, a.ideas, middleware.FaceValueResolver{})
	genhandler.RegisterRoutes(r, generate.NewRelay(cfg.Upstream))
	handlers.NewAPIKeyHandler(cfg.Upstream).Register(r)
	handlers.RegisterCategories(r)
	handlers.RegisterSwagger(r)

	if reg != nil {
		metrics.RegisterCollectors(reg)
		if g, ok := reg.(prometheus.Gatherer); ok {
			r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(g, promhttp.HandlerOpts{})))
		}
	}
	return a
}
