package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"levain/internal/config"
	"levain/internal/db"
	"levain/internal/db/mock"
	applog "levain/internal/log"
	"levain/internal/server"
	"levain/internal/store"
)

type serverLifecycle interface {
	Start() error
	Stop() error
}

var (
	loadConfigFunc       = config.Load
	setLogLevelFunc      = applog.SetLevel
	newMockDatabaseFunc  = mock.New
	configureDatabase    = db.Configure
	connectRedisFunc     = db.ConnectRedis
	newServerFunc        = func(cfg server.Config) (serverLifecycle, error) { return server.New(cfg) }
	subscribeShutdownSig = func() (<-chan os.Signal, func()) {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
		return sigCh, func() { signal.Stop(sigCh) }
	}
)

func main() {
	os.Exit(run(context.Background()))
}

func run(ctx context.Context) int {
	defer func() { _ = applog.Sync() }()

	cfg, err := loadConfigFunc()
	if err != nil {
		applog.Error(ctx, "failed to load configuration", "error", err)
		return 1
	}
	if err := setLogLevelFunc(cfg.Logging.Level); err != nil {
		applog.Error(ctx, "invalid log level", "level", cfg.Logging.Level, "error", err)
		return 1
	}

	st, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		applog.Error(ctx, "failed to open notebook storage", "backend", cfg.Storage.Backend, "error", err)
		return 1
	}
	defer closeStore()

	srv, err := newServerFunc(server.Config{
		Addr: cfg.Server.Addr,
		Session: server.SessionConfig{
			Lifetime:     cfg.Session.Lifetime,
			CookieName:   cfg.Session.CookieName,
			CookieDomain: cfg.Session.CookieDomain,
			CookieSecure: cfg.Session.CookieSecure,
		},
		Store: st,
	})
	if err != nil {
		applog.Error(ctx, "failed to build http server", "error", err)
		return 1
	}

	sigCh, unsubscribe := subscribeShutdownSig()
	defer unsubscribe()

	errCh := make(chan error, 1)
	go func() {
		applog.Info(ctx, "starting http server", "addr", cfg.Server.Addr, "storage", cfg.Storage.Backend)
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			applog.Error(ctx, "server encountered an error", "error", err)
			return 1
		}
		return 0
	case sig := <-sigCh:
		applog.Info(ctx, "shutting down http server", "signal", sig.String())
	}

	if err := srv.Stop(); err != nil {
		applog.Error(ctx, "graceful shutdown failed", "error", err)
		return 1
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		applog.Error(ctx, "server stopped with error", "error", err)
		return 1
	}
	return 0
}

// openStore builds the notebook over the configured backend. The returned func
// releases the backend connection.
func openStore(ctx context.Context, cfg config.Config) (*store.Store, func(), error) {
	noop := func() {}

	if cfg.Storage.Backend == config.StorageRedis {
		client, err := connectRedisFunc(ctx, cfg.Storage.Redis)
		if err != nil {
			return nil, noop, err
		}
		kv, err := store.NewRedisStore(client, cfg.Storage.Redis.Prefix)
		if err != nil {
			return nil, noop, err
		}
		st, err := store.New(kv)
		if err != nil {
			return nil, noop, err
		}
		return st, closeRedis(ctx, client), nil
	}

	var (
		database *gorm.DB
		err      error
	)
	if cfg.Database.UseMock || cfg.Database.URL == "" {
		applog.Info(ctx, "using in-memory mock database")
		database, err = newMockDatabaseFunc(ctx)
	} else {
		database, err = configureDatabase(cfg.Database)
	}
	if err != nil {
		return nil, noop, fmt.Errorf("configure database: %w", err)
	}
	kv, err := store.NewSQLStore(database)
	if err != nil {
		return nil, noop, err
	}
	st, err := store.New(kv)
	if err != nil {
		return nil, noop, err
	}
	return st, noop, nil
}

func closeRedis(ctx context.Context, client *redis.Client) func() {
	return func() {
		if client == nil {
			return
		}
		if err := client.Close(); err != nil {
			applog.Error(ctx, "failed to close redis client", "error", err)
		}
	}
}
