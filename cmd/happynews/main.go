package main

import (
	"context"
	"database/sql"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/YusukeAsk/016-worldhappynews/internal/api"
	"github.com/YusukeAsk/016-worldhappynews/internal/config"
	"github.com/YusukeAsk/016-worldhappynews/internal/llm"
	"github.com/YusukeAsk/016-worldhappynews/internal/provider"
	"github.com/YusukeAsk/016-worldhappynews/internal/scheduler"
	"github.com/YusukeAsk/016-worldhappynews/internal/service"
	"github.com/YusukeAsk/016-worldhappynews/internal/store"
)

func main() {
	cfg := config.Load()
	logger := newLogger(cfg.LogLevel)

	var db *sql.DB
	if cfg.Database.Configured() {
		var err error
		db, err = sql.Open("postgres", cfg.Database.Effective())
		if err != nil {
			log.Fatalf("db open: %v", err)
		}
		// simple ping + wait (db might be starting in docker)
		for i := 0; i < 10; i++ {
			if err = db.Ping(); err == nil {
				break
			}
			logger.Info("waiting for db", "attempt", i+1, "err", err)
			time.Sleep(2 * time.Second)
		}
		if err != nil {
			log.Fatalf("could not connect to db: %v", err)
		}
		if err := store.RunMigrations(db); err != nil {
			log.Fatalf("migrations: %v", err)
		}
	} else {
		logger.Warn("no database configured, persistence disabled")
	}

	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Warn("redis ping failed, list cache disabled", "err", err)
			rdb = nil
		}
		cancel()
	}

	articles := store.NewArticleStore(db)
	comments := store.NewCommentStore(db)
	fetcher := provider.Select(cfg.Providers, logger)
	model := llm.NewClient(cfg.Gemini, nil, logger)

	svc := service.NewService(fetcher, model, model, articles, rdb, logger)
	handler := api.NewHandler(svc, comments, cfg.Cron.Secret, logger)

	if cfg.Schedule.Enabled {
		sched, err := scheduler.New(svc, cfg.Schedule.Timezone, logger)
		if err != nil {
			log.Fatalf("scheduler: %v", err)
		}
		sched.Start()
		defer sched.Stop()
	}

	router := gin.Default()
	api.RegisterRoutes(router, handler)

	logger.Info("listening", "port", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "error":
		lvl = slog.LevelError
	case "warn", "warning":
		lvl = slog.LevelWarn
	case "debug":
		lvl = slog.LevelDebug
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}
