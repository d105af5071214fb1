package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/atinyakov/go-webpages/internal/app/server"
	grpcserver "github.com/atinyakov/go-webpages/internal/app/server/grpc"
	"github.com/atinyakov/go-webpages/internal/app/service"
	"github.com/atinyakov/go-webpages/internal/cache"
	"github.com/atinyakov/go-webpages/internal/client"
	"github.com/atinyakov/go-webpages/internal/config"
	"github.com/atinyakov/go-webpages/internal/confirm"
	"github.com/atinyakov/go-webpages/internal/dashboard"
	"github.com/atinyakov/go-webpages/internal/effects"
	"github.com/atinyakov/go-webpages/internal/models"
	"github.com/atinyakov/go-webpages/internal/notify"
	"github.com/atinyakov/go-webpages/internal/repository"
	"github.com/atinyakov/go-webpages/internal/storage"
	"github.com/atinyakov/go-webpages/internal/store"
	"github.com/atinyakov/go-webpages/internal/table"
)

const cacheTTL = 10 * time.Minute

// app holds every long-lived component. It is built once in main.
type app struct {
	logger        *zap.Logger
	storage       storage.Storage
	cache         cache.Cache
	service       *service.WebpageService
	auth          *service.Auth
	effects       *effects.Effects
	store         *store.Store
	notifications *notify.Service
	view          *dashboard.ListView
	router        http.Handler
	grpc          *grpcserver.Server

	closers []func() error
}

// newApp wires the application. The batch delete worker stops when ctx is
// cancelled; everything else is released by close.
func newApp(ctx context.Context, o *config.Options, logger *zap.Logger) (*app, error) {
	a := &app{logger: logger}

	st, err := openStorage(ctx, o, logger)
	if err != nil {
		return nil, err
	}
	a.storage = st
	a.closers = append(a.closers, st.Close)

	a.cache = cache.NoOpCache{}
	if o.RedisAddr != "" {
		rc, err := cache.NewRedisCache(ctx, o.RedisAddr, cacheTTL)
		if err != nil {
			_ = a.close()
			return nil, fmt.Errorf("redis: %w", err)
		}
		logger.Info("using redis cache", zap.String("addr", o.RedisAddr))
		a.cache = rc
		a.closers = append(a.closers, rc.Close)
	}

	a.service, err = service.NewWebpage(ctx, st, logger.Named("service"), service.WithCache(a.cache))
	if err != nil {
		_ = a.close()
		return nil, err
	}
	a.auth = service.NewAuth(o.JWTSecret)

	fxOpts := []effects.Option{
		effects.WithLogger(logger.Named("effects")),
		effects.WithDelays(o.RefreshDelay, o.DeleteDelay),
	}
	backend, err := a.openBackend(o)
	if err != nil {
		_ = a.close()
		return nil, err
	}
	if backend != nil {
		fxOpts = append(fxOpts, effects.WithBackend(backend))
	}
	a.effects = effects.New(fxOpts...)

	a.store = store.New(store.SeededState(time.Now()),
		store.WithEffects(a.effects),
		store.WithLogger(logger.Named("store")),
	)

	a.notifications = notify.New(notify.WithLogger(logger.Named("notify")))
	// The HTTP dashboard has no dialog to show, so deletes are confirmed.
	confirmer := confirm.New(confirm.Auto(true))

	a.view = dashboard.New(a.store, a.notifications, confirmer,
		dashboard.WithLogger(logger.Named("dashboard")),
		dashboard.WithTableOptions(
			table.WithPageSize(o.PageSize),
			table.WithDebounce(o.SearchDebounce),
		),
	)
	// A remote backend owns the ids, so the seeded records are replaced by
	// what it actually stores before the first edit can be sent.
	if backend != nil {
		a.store.Dispatch(store.RefreshWebpages{})
	}

	a.router = server.Init(server.Deps{
		Logger:        logger,
		Service:       a.service,
		Auth:          a.auth,
		Dashboard:     a.view,
		Notifications: a.notifications,
		TrustedSubnet: o.TrustedSubnet,
		Pprof:         o.EnablePprof,
	})
	a.grpc = grpcserver.New(logger.Named("grpc"), a.service, a.auth, o.TrustedSubnet, o.GRPCPort)

	return a, nil
}

// openStorage picks postgres, then SQLite, then the JSON-lines file, and
// falls back to memory seeded with the mock records.
func openStorage(ctx context.Context, o *config.Options, logger *zap.Logger) (storage.Storage, error) {
	switch {
	case o.DatabaseDSN != "":
		logger.Info("using postgres")
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()

		db, err := repository.InitDB(ctx, o.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("postgres: %w", err)
		}
		return repository.CreateWebpageRepository(db, logger.Named("repository")), nil
	case o.SQLitePath != "":
		logger.Info("using sqlite", zap.String("path", o.SQLitePath))
		return storage.NewSQLiteStorage(o.SQLitePath, logger.Named("storage"))
	case o.FilePath != "":
		logger.Info("using file", zap.String("path", o.FilePath))
		return storage.NewFileStorage(o.FilePath, logger.Named("storage"))
	default:
		logger.Info("using in memory storage")
		return storage.CreateMemoryStorage(models.SeedWebpages(time.Now())...)
	}
}

// openBackend returns nil for the simulated backend.
func (a *app) openBackend(o *config.Options) (effects.Backend, error) {
	if o.Backend == config.BackendSimulated {
		return nil, nil
	}

	token, _, err := a.auth.BuildJWTString()
	if err != nil {
		return nil, fmt.Errorf("issue backend token: %w", err)
	}
	logger := a.logger.Named("client")

	switch o.Backend {
	case config.BackendHTTP:
		logger.Info("effects use the REST backend", zap.String("base_url", o.BaseURL))
		return client.NewHTTP(o.BaseURL, client.WithToken(token), client.WithLogger(logger)), nil
	case config.BackendGRPC:
		target := "localhost:" + o.GRPCPort
		logger.Info("effects use the gRPC backend", zap.String("target", target))
		c, err := client.DialGRPC(target, client.WithToken(token), client.WithLogger(logger))
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, c.Close)
		return c, nil
	}
	return nil, fmt.Errorf("unknown effects backend %q", o.Backend)
}

// close waits for in-flight effects, detaches the dashboard and releases
// storage, cache and client connections in reverse order of opening.
func (a *app) close() error {
	if a.effects != nil {
		a.effects.Wait()
	}
	if a.view != nil {
		a.view.Close()
	}

	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
