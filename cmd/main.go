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

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/growth-partner/config"
	"github.com/oksasatya/growth-partner/internal/application"
	"github.com/oksasatya/growth-partner/internal/container"
	pginfra "github.com/oksasatya/growth-partner/internal/infrastructure/postgres"
	"github.com/oksasatya/growth-partner/internal/interface/middleware"
	"github.com/oksasatya/growth-partner/internal/router"
	"github.com/oksasatya/growth-partner/pkg/helpers"
	"github.com/oksasatya/growth-partner/pkg/validation"
)

func main() {
	_ = godotenv.Load() // load .env if present

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := helpers.NewLogger(cfg.AppName, cfg.Env, cfg.LogLevel)
	gin.SetMode(cfg.GinMode)
	validation.Init()

	ctx := context.Background()

	// Postgres
	pool, err := pginfra.NewPool(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()
	db := pginfra.OpenDB(pool)
	defer func() { _ = db.Close() }()

	if err := pginfra.RunMigrations(db.DB, cfg.MigrationsDir, logger); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	// Redis (rate limiting, snapshot dirty set)
	rdb := helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	defer func() { _ = rdb.Close() }()

	container.SetConfig(cfg)
	container.SetLogger(logger)
	container.SetPGPool(pool)
	container.SetDB(db)
	container.SetRedis(rdb)

	// GCS snapshots (optional)
	if cfg.GCSBucket != "" {
		gcsClient, err := helpers.NewGCSClient(ctx, cfg.GCSCredentialsJSONPath)
		if err != nil {
			log.Fatalf("failed to init GCS client: %v", err)
		}
		defer func() { _ = gcsClient.Close() }()
		container.SetGCS(gcsClient)
	}

	// RabbitMQ notifications (optional)
	if cfg.NotificationsEnabled && cfg.RabbitMQURL != "" {
		pub, err := helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQNotificationQueue, cfg.AppName)
		if err != nil {
			logger.WithError(err).Warn("rabbitmq unavailable; notifications disabled")
		} else {
			defer pub.Close()
			container.SetRabbitPub(pub)
		}
	}

	// Elasticsearch goal search (optional)
	if addrs := cfg.ESAddrs(); len(addrs) > 0 {
		es, err := helpers.NewESClient(ctx, addrs, cfg.ElasticsearchUser, cfg.ElasticsearchPass)
		if err != nil {
			logger.WithError(err).Warn("elasticsearch unavailable; goal search disabled")
		} else {
			container.SetES(es)
		}
	}

	services := router.BuildServices(ctx)

	// Gin engine and global middleware
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.RealIP())
	corsMW, err := middleware.CORS(cfg.CORSOrigins())
	if err != nil {
		logger.Fatalf("cors: %v", err)
	}
	if corsMW != nil {
		r.Use(corsMW)
	}
	if cfg.HTTPLogEnabled || cfg.Env == "development" {
		r.Use(gin.Logger())
	}

	reg := router.NewRegistry(r)
	router.InitModules(reg, services)
	reg.RegisterAll()
	logger.WithField("routes", reg.Routes()).Debug("routes registered")

	var autoSync *application.AutoSync
	if services.Snapshots.Dirty != nil {
		autoSync = application.NewAutoSync(services.Snapshots, cfg.SnapshotSyncInterval, logger)
		if err := autoSync.Start(ctx); err != nil {
			logger.WithError(err).Warn("auto sync not started")
		}
	}

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	go func() {
		logger.Infof("server starting on :%s", cfg.Port)
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
		logger.WithError(err).Error("server forced to shutdown")
	}

	// no request can mark users dirty any more; flush everything left
	if autoSync != nil {
		autoSync.Stop()
		total, err := autoSync.Flush(context.Background())
		if err != nil {
			logger.WithError(err).Warn("final snapshot sync failed")
		}
		if total > 0 {
			helpers.LogInfo(logger, "final snapshot sync", logrus.Fields{"users": total})
		}
	}
	logger.Info("server exited properly")
}
