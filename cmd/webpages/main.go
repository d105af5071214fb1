package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/acme/autocert"
	"golang.org/x/sync/errgroup"

	"github.com/atinyakov/go-webpages/internal/config"
	"github.com/atinyakov/go-webpages/internal/logger"
)

var buildVersion string
var buildDate string
var buildCommit string

const shutdownTimeout = 10 * time.Second

func main() {
	options, err := config.Parse()
	if err != nil {
		panic(err)
	}

	fmt.Printf("Build version: %s\n", orNA(buildVersion))
	fmt.Printf("Build date: %s\n", orNA(buildDate))
	fmt.Printf("Build commit: %s\n", orNA(buildCommit))

	log := logger.New()
	if err := log.Init(options.LogLevel); err != nil {
		panic(err)
	}
	defer func() {
		_ = log.Sync()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	if err := run(ctx, options, log.Log); err != nil {
		log.Log.Error("server stopped", zap.Error(err))
		panic(err)
	}
}

// run serves HTTP and gRPC until ctx is cancelled, then shuts both down and
// waits for in-flight effects and queued deletes.
func run(ctx context.Context, o *config.Options, zapLogger *zap.Logger) error {
	workerCtx, cancelWorker := context.WithCancel(context.Background())
	defer cancelWorker()

	a, err := newApp(workerCtx, o, zapLogger)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              o.Port,
		Handler:           a.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		if o.EnableHTTPS {
			manager := &autocert.Manager{
				Cache:      autocert.DirCache("cache-dir"),
				Prompt:     autocert.AcceptTOS,
				HostPolicy: autocert.HostWhitelist("webpages.example.com"),
			}
			srv.Addr = ":443"
			srv.TLSConfig = manager.TLSConfig()
			zapLogger.Info("Server is running with TLS", zap.String("addr", srv.Addr))
			err = srv.ListenAndServeTLS("", "")
		} else {
			zapLogger.Info("Server is running", zap.String("addr", srv.Addr))
			err = srv.ListenAndServe()
		}
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})

	g.Go(func() error {
		return a.grpc.Start()
	})

	g.Go(func() error {
		<-gctx.Done()
		zapLogger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		a.grpc.GracefulStop()
		return srv.Shutdown(shutdownCtx)
	})

	serveErr := g.Wait()

	cancelWorker()
	select {
	case <-a.service.Done():
	case <-time.After(shutdownTimeout):
		zapLogger.Warn("batch delete worker did not stop in time")
	}

	return errors.Join(serveErr, a.close())
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
