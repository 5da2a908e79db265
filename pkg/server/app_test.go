package server

import (
	"context"
	"errors"
	"testing"
	"time"

	xhttp "PriceSampler/pkg/http"
	applogger "PriceSampler/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type closeRecorder struct {
	order *[]string
	name  string
	err   error
}

func (c closeRecorder) Close() error {
	*c.order = append(*c.order, c.name)
	return c.err
}

func newApp() *App {
	srv := xhttp.NewServer(nil,
		xhttp.WithHost("127.0.0.1"),
		xhttp.WithPort(0),
		xhttp.WithMetrics("", nil, nil),
	)
	return New(srv, applogger.Nop())
}

func TestAppRunStopsOnCancelAndClosesInReverse(t *testing.T) {
	app := newApp()
	var order []string
	app.OnShutdown("kafka", closeRecorder{order: &order, name: "kafka"})
	app.OnShutdown("redis", closeRecorder{order: &order, name: "redis"})
	app.OnShutdown("nil", nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("app did not stop")
	}
	assert.Equal(t, []string{"redis", "kafka"}, order)
}

func TestAppReportsCloseErrors(t *testing.T) {
	app := newApp()
	var order []string
	app.OnShutdown("kafka", closeRecorder{order: &order, name: "kafka", err: errors.New("flush failed")})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := app.Run(ctx)
	assert.ErrorContains(t, err, "flush failed")
}
