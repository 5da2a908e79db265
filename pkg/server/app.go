package server

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"syscall"

	xhttp "PriceSampler/pkg/http"
	applogger "PriceSampler/pkg/logger"
)

// App encapsulates the application lifecycle.
type App struct {
	httpServer *xhttp.Server
	closers    []namedCloser
	log        *applogger.Logger
}

type namedCloser struct {
	name string
	c    io.Closer
}

// New creates a new App. Closers run in reverse registration order on
// shutdown, after the HTTP server has stopped.
func New(httpServer *xhttp.Server, l *applogger.Logger) *App {
	return &App{httpServer: httpServer, log: l}
}

// OnShutdown registers a resource to close when the app stops. Nil closers
// are ignored.
func (a *App) OnShutdown(name string, c io.Closer) {
	if c == nil {
		return
	}
	a.closers = append(a.closers, namedCloser{name: name, c: c})
}

// Run starts the HTTP server and blocks until SIGINT/SIGTERM, ctx is
// cancelled, or the listener fails.
func (a *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	var runErr error
	select {
	case err, ok := <-a.httpServer.Start():
		if ok && err != nil {
			a.log.Error("http server error", applogger.Error(err))
			runErr = err
		}
	case <-ctx.Done():
		a.log.Info("shutdown signal received")
	}

	return errors.Join(runErr, a.shutdown())
}

// shutdown gracefully stops all services.
func (a *App) shutdown() error {
	a.log.Info("shutting down...")

	var errs []error
	if err := a.httpServer.Stop(context.Background()); err != nil {
		a.log.Error("http shutdown error", applogger.Error(err))
		errs = append(errs, err)
	}

	for i := len(a.closers) - 1; i >= 0; i-- {
		nc := a.closers[i]
		if err := nc.c.Close(); err != nil {
			a.log.Warn("close error", applogger.String("resource", nc.name), applogger.Error(err))
			errs = append(errs, err)
		}
	}

	a.log.Info("shutdown complete")
	return errors.Join(errs...)
}
