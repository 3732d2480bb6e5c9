package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"visadesk/cmd"
	httpadapter "visadesk/internal/adapters/in/http"
	"visadesk/internal/adapters/out/postgres"
	"visadesk/internal/pkg/logger"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const shutdownTimeout = 15 * time.Second

func main() {
	envFile := flag.String("env", ".env", "optional dotenv file")
	flag.Parse()

	configs, err := cmd.LoadConfig(*envFile)
	log := logger.New(logger.Config{Level: configs.LogLevel, Format: configs.LogFormat})
	defer func() { _ = log.Sync() }()
	if err != nil {
		log.Fatal("failed to load configuration", zap.Error(err))
	}

	if err := run(configs, log); err != nil {
		log.Error("service stopped with error", zap.Error(err))
		os.Exit(1)
	}
}

func run(configs cmd.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gormDB, err := openDatabase(ctx, configs, log)
	if err != nil {
		return err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer func() { _ = sqlDB.Close() }()

	var redisClient *redis.Client
	if configs.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     configs.RedisAddr,
			Password: configs.RedisPassword,
			DB:       configs.RedisDB,
		})
		defer func() { _ = redisClient.Close() }()

		// notifications are best effort, an unreachable Redis is not fatal
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Warn("redis is unreachable", zap.String("addr", configs.RedisAddr), zap.Error(err))
		}
	}

	app := cmd.NewCompositionRoot(configs, gormDB, redisClient, log)
	e := httpadapter.NewEcho(app.CreateHTTPServer())
	server := &http.Server{
		Addr:              configs.HTTPAddr(),
		Handler:           e,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// stopped after the server so requests still in flight can notify
	dispatcher := app.Dispatcher()
	dispatcher.Start()
	defer dispatcher.Stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("http server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func openDatabase(ctx context.Context, configs cmd.Config, log *zap.Logger) (*gorm.DB, error) {
	gormDB, err := gorm.Open(gormpostgres.Open(configs.DSN()), &gorm.Config{
		TranslateError: true,
		Logger: logger.NewGormLogger(log, logger.GormLevel(configs.LogLevel),
			configs.DBSlowQueryThreshold),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(configs.DBMaxOpenConns)

	if configs.DBAutoMigrate {
		if err := postgres.Migrate(ctx, gormDB); err != nil {
			return nil, err
		}
		log.Info("database schema migrated")
	}
	return gormDB, nil
}
