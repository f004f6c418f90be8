package main

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/cloudmart/internal/events"
	"github.com/Skotchmaster/cloudmart/internal/lock"
	"github.com/Skotchmaster/cloudmart/pkg/config"
	"github.com/Skotchmaster/cloudmart/pkg/logging"
)

func TestRunReturnsErrorOnUnreachableRedis(t *testing.T) {
	cfg := config.Config{
		ServerPort:  0,
		SQLitePath:  ":memory:",
		SeedCatalog: true,
		RedisAddr:   "127.0.0.1:1",
		LockTTL:     time.Second,
	}

	err := run(context.Background(), cfg, logging.NewWithWriter(io.Discard, "error"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "unreachable")
}

func TestRunStopsWhenContextCancelled(t *testing.T) {
	cfg := config.Config{ServerPort: 0, SeedCatalog: true, DefaultUser: "demo"}

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(100*time.Millisecond, cancel)

	done := make(chan error, 1)
	go func() { done <- run(ctx, cfg, logging.NewWithWriter(io.Discard, "error")) }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("run did not return after cancellation")
	}
}

func TestDefaultsWithoutRedisOrKafka(t *testing.T) {
	logger := logging.NewWithWriter(io.Discard, "error")

	l, err := newLocker(context.Background(), config.Config{}, logger)
	require.NoError(t, err)
	require.IsType(t, &lock.Local{}, l)

	p, err := newPublisher(config.Config{}, logger)
	require.NoError(t, err)
	require.Equal(t, events.Nop{}, p)
}
