// Copyright 2025 Arcade Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package bootstrap

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/s-khaon/expert-tracking-site/internal/console/config"
	"github.com/s-khaon/expert-tracking-site/internal/console/guard"
	"github.com/s-khaon/expert-tracking-site/internal/console/navigation"
	"github.com/s-khaon/expert-tracking-site/internal/console/router"
	"github.com/s-khaon/expert-tracking-site/pkg/cache"
	"github.com/s-khaon/expert-tracking-site/pkg/database"
	"github.com/s-khaon/expert-tracking-site/pkg/log"
	"github.com/s-khaon/expert-tracking-site/pkg/metrics"
	"github.com/s-khaon/expert-tracking-site/pkg/pprof"
	"github.com/s-khaon/expert-tracking-site/pkg/retry"
	"github.com/s-khaon/expert-tracking-site/pkg/shutdown"
	"github.com/s-khaon/expert-tracking-site/pkg/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const dialAttempts = 5

type App struct {
	HttpApp  *fiber.App
	Loader   *navigation.Loader
	Metrics  *metrics.Server
	Pprof    *pprof.Server
	Shutdown *shutdown.Manager
	Logger   *zap.Logger
	AppConf  config.AppConfig
}

// InitAppFunc init app function type
type InitAppFunc func(appConf config.AppConfig, watcher *config.Watcher, db database.IDatabase, redisClient *redis.Client) (*App, func(), error)

func NewApp(
	rt *router.Router,
	loader *navigation.Loader,
	metricsSrv *metrics.Server,
	pprofSrv *pprof.Server,
	shutdownMgr *shutdown.Manager,
	watcher *config.Watcher,
	appConf config.AppConfig,
) (*App, func(), error) {
	httpApp := rt.Router()

	if err := metricsSrv.RegisterCollector(navigation.Collectors()...); err != nil {
		return nil, nil, err
	}
	if err := metricsSrv.RegisterCollector(guard.Collectors()...); err != nil {
		return nil, nil, err
	}

	// 菜单缓存窗口支持热更新
	watcher.OnChange(func(c config.Console) {
		loader.SetWindows(c.TreeTTLDuration(), c.FailureBackoffDuration())
		log.Infow("menu loader windows updated",
			"treeTTL", c.TreeTTLDuration(),
			"failureBackoff", c.FailureBackoffDuration(),
		)
	})

	cleanup := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := metricsSrv.Stop(ctx); err != nil {
			log.Errorw("failed to stop metrics server", "error", err)
		}
		if err := pprofSrv.Stop(ctx); err != nil {
			log.Errorw("failed to stop pprof server", "error", err)
		}
	}

	app := &App{
		HttpApp:  httpApp,
		Loader:   loader,
		Metrics:  metricsSrv,
		Pprof:    pprofSrv,
		Shutdown: shutdownMgr,
		Logger:   log.GetLogger(),
		AppConf:  appConf,
	}
	return app, cleanup, nil
}

// Bootstrap init app, return App instance and cleanup function
func Bootstrap(configFile string, initApp InitAppFunc) (*App, func(), error) {
	appConf, watcher, err := config.Load(configFile)
	if err != nil {
		return nil, nil, err
	}

	if _, err := log.NewLog(&appConf.Log); err != nil {
		return nil, nil, err
	}

	ctx := context.Background()
	shutdownTrace, err := trace.Init(ctx, appConf.Trace)
	if err != nil {
		return nil, nil, err
	}

	// 依赖服务可能晚于本进程就绪
	var redisClient *redis.Client
	if err := dial(ctx, "redis", func(context.Context) (err error) {
		redisClient, err = cache.NewRedis(appConf.Redis)
		return err
	}); err != nil {
		return nil, nil, err
	}
	var dbClient *gorm.DB
	if err := dial(ctx, "mysql", func(context.Context) (err error) {
		dbClient, err = database.NewDatabase(appConf.Database)
		return err
	}); err != nil {
		_ = redisClient.Close()
		return nil, nil, err
	}
	db := database.NewGormDB(dbClient)

	// Wire build App
	app, appCleanup, err := initApp(appConf, watcher, db, redisClient)
	if err != nil {
		_ = redisClient.Close()
		return nil, nil, err
	}

	cleanup := func() {
		appCleanup()
		if err := redisClient.Close(); err != nil {
			log.Errorw("failed to close redis client", "error", err)
		}
		if sqlDB, err := dbClient.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				log.Errorw("failed to close database", "error", err)
			}
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTrace(ctx); err != nil {
			log.Errorw("failed to shut down tracer provider", "error", err)
		}
		_ = log.Sync()
	}
	return app, cleanup, nil
}

func dial(ctx context.Context, name string, fn retry.Func) error {
	return retry.Do(ctx, fn,
		retry.WithAttempts(dialAttempts),
		retry.WithBackoff(retry.Exponential(time.Second, 10*time.Second)),
		retry.WithJitter(retry.FullJitter),
		retry.OnRetry(func(attempt int, err error) {
			log.Warnw("dependency not ready, retrying", "name", name, "attempt", attempt, "error", err)
		}),
	)
}

// Run start app and wait for exit signal, then gracefully shutdown
func Run(app *App, cleanup func()) {
	appConf := app.AppConf

	if err := app.Metrics.Start(); err != nil {
		log.Errorw("metrics server failed to start", "error", err)
	}
	if err := app.Pprof.Start(); err != nil {
		log.Errorw("pprof server failed to start", "error", err)
	}

	// set signal listener (graceful shutdown)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	// start HTTP server (async)
	go func() {
		addr := fmt.Sprintf("%s:%d", appConf.Http.Host, appConf.Http.Port)
		log.Infow("HTTP listener started", "address", addr)
		var err error
		if appConf.Http.TLS.CertFile != "" && appConf.Http.TLS.KeyFile != "" {
			err = app.HttpApp.ListenTLS(addr, appConf.Http.TLS.CertFile, appConf.Http.TLS.KeyFile)
		} else {
			err = app.HttpApp.Listen(addr)
		}
		if err != nil {
			log.Errorw("HTTP listener failed", "address", addr, "error", err)
		}
	}()

	// wait for exit signal
	sig := <-quit
	log.Infof("Received signal: %v, shutting down gracefully...", sig)

	// 先标记为 draining，健康检查随即返回 503
	app.Shutdown.Shutdown()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(),
		time.Duration(appConf.Http.ShutdownTimeout)*time.Second)
	defer shutdownCancel()
	if err := app.HttpApp.ShutdownWithContext(shutdownCtx); err != nil {
		log.Errorw("HTTP server shutdown error", "error", err)
	} else {
		log.Info("HTTP server shut down gracefully")
	}

	cleanup()

	log.Info("Server shutdown complete")
}
