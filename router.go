package main

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/nexoventlabs/business-tracker/handlers"
	"github.com/nexoventlabs/business-tracker/internal/business/handler"
	"github.com/nexoventlabs/business-tracker/internal/business/service"
	"github.com/nexoventlabs/business-tracker/internal/config"
	"github.com/nexoventlabs/business-tracker/pkg/logger"
	"github.com/nexoventlabs/business-tracker/pkg/middleware"
)

// routerDeps are the runtime dependencies the HTTP layer is built from.
type routerDeps struct {
	cfg      *config.Config
	svc      service.Service
	redis    *redis.Client // nil unless Redis is configured and reachable
	gatherer prometheus.Gatherer
}

func newRouter(d routerDeps) *gin.Engine {
	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(logger.Get(), middleware.LogSamplingConfig{Tick: time.Second, After: 500 * time.Millisecond}))
	r.Use(middleware.Instrumentation())
	r.Use(middleware.CORS(d.cfg.CORS.AllowedOrigins, "/api/"))

	if rl := d.cfg.RateLimit; rl.Enabled {
		if rl.UseRedis && d.redis != nil {
			win := time.Duration(rl.WindowSeconds) * time.Second
			r.Use(middleware.RedisRateLimitMiddleware(d.redis, rl.RPS, rl.Burst, win))
			logger.Infof("rate limiter: redis (rps=%.2f burst=%d window=%s)", rl.RPS, rl.Burst, win)
		} else {
			r.Use(middleware.RateLimitMiddleware(rl.RPS, rl.Burst))
			logger.Infof("rate limiter: memory (rps=%.2f burst=%d)", rl.RPS, rl.Burst)
		}
	}

	handlers.RegisterSystemRoutes(r, d.svc, d.cfg.Store.Driver)
	handlers.RegisterSwagger(r)
	handler.RegisterBusinessRoutes(r.Group("/api"), d.svc)

	if d.gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(d.gatherer, promhttp.HandlerOpts{})))
	}
	return r
}
