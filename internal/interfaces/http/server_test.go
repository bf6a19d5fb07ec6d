package http

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/voracio/sheetsense/internal/config"
	"github.com/voracio/sheetsense/internal/engine"
	"github.com/voracio/sheetsense/internal/infrastructure/monitoring/logging"
)

func TestServerGracefulShutdown(t *testing.T) {
	t.Parallel()

	router := NewRouter(RouterDeps{
		Resolver: engine.New(engine.Config{}, nil, nil, nil),
		Logger:   logging.NewNopLogger(),
	})
	srv := NewServer(config.ServerConfig{
		Host:            "127.0.0.1",
		Port:            0,
		ShutdownTimeout: time.Second,
	}, router, logging.NewNopLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not shut down")
	}
}
