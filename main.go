package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"github.com/nexoventlabs/business-tracker/handlers"
	"github.com/nexoventlabs/business-tracker/internal/business/repository"
	"github.com/nexoventlabs/business-tracker/internal/business/service"
	"github.com/nexoventlabs/business-tracker/internal/config"
	"github.com/nexoventlabs/business-tracker/internal/database"
	"github.com/nexoventlabs/business-tracker/pkg/logger"
	"github.com/nexoventlabs/business-tracker/pkg/metrics"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Init(cfg.Log.Level)
	logger.SetFormat(cfg.Log.Format)
	logger.Infof("config loaded: env=%s store=%s log_level=%s mongo=%v redis=%v rate_limit=%v",
		cfg.Server.Environment, cfg.Store.Driver, logger.LevelString(), cfg.MongoDB.URL != "", cfg.Redis.Host != "", cfg.RateLimit.Enabled)

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// The Mongo connection is lazy: a missing or unreachable store does not block
	// startup and is reported by the first request that needs it.
	var repo repository.Repository
	var mgr *database.Manager
	switch cfg.Store.Driver {
	case handlers.DriverMemory:
		logger.Warnf("using in-memory record store; data is lost on restart")
		if cfg.MongoDB.EnforceUniqueID {
			repo = repository.NewMemoryRepoUnique()
		} else {
			repo = repository.NewMemoryRepo()
		}
	default:
		if cfg.MongoDB.URL == "" {
			logger.Warnf("MONGODB_URL is not set; record endpoints will fail until it is configured")
		}
		mgr = database.NewManager(cfg.MongoDB.URL, cfg.MongoDB.Database, cfg.MongoDB.Collection, cfg.MongoDB.ConnectTimeout)
		if cfg.MongoDB.EnforceUniqueID {
			mgr.OnConnect = repository.EnsureUniqueIDIndex
		}
		repo = repository.NewMongoRepo(mgr, cfg.MongoDB.OpTimeout)
	}
	svc := service.New(repo)

	var rdb *redis.Client
	if cfg.Redis.Host != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.Redis.Host + ":" + cfg.Redis.Port, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			logger.Warnf("failed to connect to Redis (%s:%s): %v", cfg.Redis.Host, cfg.Redis.Port, err)
			_ = rdb.Close()
			rdb = nil
		} else {
			logger.Infof("connected to Redis %s:%s", cfg.Redis.Host, cfg.Redis.Port)
		}
		cancel()
	}

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r := newRouter(routerDeps{cfg: cfg, svc: svc, redis: rdb, gatherer: prometheus.DefaultGatherer})

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Infof("starting business-tracker API on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("server failed: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Infof("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("http shutdown: %v", err)
	}
	if mgr != nil {
		if err := mgr.Close(shutdownCtx); err != nil {
			logger.Errorf("mongo disconnect: %v", err)
		}
	}
	if rdb != nil {
		_ = rdb.Close()
	}
}
