// @title        Users API
// @version      1.0
// @description  使用者帳號管理 API
// @host         localhost:8080
// @BasePath     /api/v1
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"users-api/internal/cache"
	"users-api/internal/config"
	"users-api/internal/database"
	"users-api/internal/logger"
	"users-api/internal/middleware"
	"users-api/internal/router"
	"users-api/internal/store"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	_ "users-api/docs" // 引入 swag 產出的 docs

	echoSwagger "github.com/swaggo/echo-swagger"
)

var (
	newPgxPool                = database.NewPgxPool
	newRedisClient            = cache.NewRedisClient
	runMigrationsFn           = database.RunMigrations
	startServer               = func(e *echo.Echo, addr string) error { return e.Start(addr) }
	exitFunc                  = os.Exit
	logOutput       io.Writer = os.Stdout
)

func newServer(cfg *config.Config, sessions store.Sessions, db database.Pool, rdb cache.Cache, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.Debug = cfg.Debug
	e.HideBanner = true
	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLogger(log))
	e.Use(echomw.Recover())

	router.Setup(e, sessions, db, rdb, log)

	e.GET("/swagger/*", echoSwagger.WrapHandler)
	return e
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	zl, err := logger.New(cfg.LogLevel, logOutput)
	if err != nil {
		return err
	}
	ctx := context.Background()

	var (
		db       database.Pool
		sessions store.Sessions
	)
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		db, err = newPgxPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("DB 連線失敗: %w", err)
		}
		defer db.Close()

		if err := runMigrationsFn(cfg.DatabaseURL); err != nil {
			return fmt.Errorf("Migration 執行失敗: %w", err)
		}
		sessions = store.NewPostgresSessions(db)
	case config.DriverMemory:
		zl.Warn().Msg("using in-memory store, data is lost on restart")
		sessions = store.NewMemorySessions()
	}

	var rdb cache.Cache
	if cfg.RedisAddr != "" {
		// 連線檢查限時 5 秒
		rctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		rdb, err = newRedisClient(rctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		cancel()
		if err != nil {
			return fmt.Errorf("Redis 連線失敗: %w", err)
		}
		defer rdb.Close()
	}

	e := newServer(cfg, sessions, db, rdb, zl)
	zl.Info().Str("addr", cfg.HTTPAddr).Str("store", cfg.StoreDriver).Msg("starting server")
	return startServer(e, cfg.HTTPAddr)
}

func main() {
	if err := run(); err != nil {
		log.Print(err)
		exitFunc(1)
	}
}
