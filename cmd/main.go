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

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/mywallet/config"
	"github.com/oksasatya/mywallet/internal/infrastructure/memory"
	pginfra "github.com/oksasatya/mywallet/internal/infrastructure/postgres"
	"github.com/oksasatya/mywallet/internal/infrastructure/redisstore"
	"github.com/oksasatya/mywallet/internal/interface/middleware"
	"github.com/oksasatya/mywallet/internal/metrics"
	"github.com/oksasatya/mywallet/internal/router"
	"github.com/oksasatya/mywallet/pkg/helpers"
)

func main() {
	_ = godotenv.Load() // load .env if present

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName, cfg.Env, cfg.LogLevel)
	gin.SetMode(cfg.GinMode)

	ctx := context.Background()
	deps := router.Deps{Config: cfg, Logger: logger}

	var pool *pgxpool.Pool
	if cfg.InMemory() {
		store := memory.NewStore()
		deps.Users, deps.Sessions, deps.Movements = store.Users(), store.Sessions(), store.Movements()
		logger.Warn("STORAGE_DRIVER=memory; data is lost on restart")
	} else {
		var err error
		pool, err = pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
		if err != nil {
			log.Fatalf("failed to connect to postgres: %v", err)
		}
		defer pool.Close()

		if cfg.RunMigrations {
			if err := pginfra.RunMigrations(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
				log.Fatalf("migration failed: %v", err)
			}
		}
		deps.Users = pginfra.NewUserRepository(pool)
		deps.Sessions = pginfra.NewSessionRepository(pool)
		deps.Movements = pginfra.NewMovementRepository(pool)
	}

	// Redis backs sessions and the rate limiter
	var rdb *redis.Client
	redisSessions := !cfg.InMemory() && cfg.UseRedisSessions()
	if redisSessions || cfg.RateLimitEnabled {
		rdb = helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		defer func() { _ = rdb.Close() }()
		if err := helpers.PingRedis(ctx, rdb); err != nil {
			if redisSessions {
				log.Fatalf("failed to connect to redis: %v", err)
			}
			helpers.LogError(logger, "redis unreachable; rate limiter fails open", err, nil)
		}
		deps.Redis = rdb
	}
	if redisSessions {
		deps.Sessions = redisstore.NewSessionRepository(rdb, cfg.SessionTTL)
	}

	// Ledger events are best effort
	if cfg.EventsEnabled() {
		pub, err := helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQEventsQueue)
		if err != nil {
			helpers.LogError(logger, "rabbitmq unavailable; ledger events disabled", err, logrus.Fields{"queue": cfg.RabbitMQEventsQueue})
		} else {
			defer pub.Close()
			deps.Events = pub
		}
	}

	deps.Ready = func(ctx context.Context) error {
		if pool != nil {
			if err := pool.Ping(ctx); err != nil {
				return err
			}
		}
		if redisSessions {
			return helpers.PingRedis(ctx, rdb)
		}
		return nil
	}

	// Gin engine and global middleware
	r := gin.New()
	if err := r.SetTrustedProxies(nil); err != nil {
		log.Fatalf("trusted proxies: %v", err)
	}
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.RealIP(cfg.TrustProxyHeaders))
	// CORS
	corsCfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.HeaderRequestID},
		ExposeHeaders: []string{"Content-Length", middleware.HeaderRequestID},
		MaxAge:        12 * time.Hour,
	}
	if origins := cfg.CORSOrigins(); len(origins) > 0 {
		corsCfg.AllowOrigins = origins
	} else {
		corsCfg.AllowAllOrigins = true
	}
	r.Use(cors.New(corsCfg))
	if cfg.MetricsEnabled {
		deps.Metrics = metrics.New()
		r.Use(deps.Metrics.Middleware())
	}
	if cfg.Env == "development" || cfg.HTTPLogEnabled {
		r.Use(gin.Logger())
	}

	reg := router.NewRegistry(r)
	router.InitModules(reg, deps)
	reg.RegisterAll()

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
	}
	go func() {
		helpers.LogInfo(logger, "server starting", logrus.Fields{
			"port":     cfg.Port,
			"storage":  cfg.StorageDriver,
			"sessions": cfg.SessionStore,
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Fatalf("server forced to shutdown: %v", err)
	}
	logger.Info("server exited properly")
}
