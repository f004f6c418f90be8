package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/cloudmart/internal/backend"
	"github.com/Skotchmaster/cloudmart/internal/events"
	"github.com/Skotchmaster/cloudmart/internal/httpserver"
	"github.com/Skotchmaster/cloudmart/internal/lock"
	"github.com/Skotchmaster/cloudmart/internal/service"
	"github.com/Skotchmaster/cloudmart/pkg/config"
	"github.com/Skotchmaster/cloudmart/pkg/logging"
	"github.com/Skotchmaster/cloudmart/pkg/metrics"
)

const testUser = "demo"

type captured struct {
	Topic string
	Key   string
	Event any
}

type capturePublisher struct {
	mu   sync.Mutex
	sent []captured
}

func (p *capturePublisher) Publish(_ context.Context, topic, key string, event any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sent = append(p.sent, captured{Topic: topic, Key: key, Event: event})
	return nil
}

func (p *capturePublisher) Close() error { return nil }

func (p *capturePublisher) all() []captured {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]captured(nil), p.sent...)
}

type testEnv struct {
	T       *testing.T
	E       *echo.Echo
	Backend *backend.Backend
	Pub     *capturePublisher
	Logger  *slog.Logger
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newEnv(t, config.Config{SQLitePath: ":memory:", SeedCatalog: true, DefaultUser: testUser})
}

func newDegradedEnv(t *testing.T) *testEnv {
	t.Helper()
	return newEnv(t, config.Config{SeedCatalog: true, DefaultUser: testUser})
}

func newEnv(t *testing.T, cfg config.Config) *testEnv {
	t.Helper()
	logger := logging.NewWithWriter(io.Discard, "error")

	b, err := backend.Open(context.Background(), cfg, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.Close() })

	pub := &capturePublisher{}
	e := newServer(logger, b, pub, cfg.DefaultUser)
	return &testEnv{T: t, E: e, Backend: b, Pub: pub, Logger: logger}
}

func newServer(logger *slog.Logger, b *backend.Backend, pub events.Publisher, user string) *echo.Echo {
	locker := lock.NewLocal()
	return httpserver.New(logger, metrics.NewServerMetrics("cloudmart"), &httpserver.Deps{
		CatalogHandler: &httpserver.CatalogHTTP{Svc: &service.CatalogService{Store: b.Catalog}},
		CartHandler: &httpserver.CartHTTP{Svc: &service.CartService{
			Store: b.Cart, Locker: locker, Publisher: pub,
		}},
		OrderHandler: &httpserver.OrderHTTP{Svc: &service.OrderService{
			Store: b.Orders, Locker: locker, Publisher: pub,
		}},
		HealthHandler: &httpserver.HealthHTTP{
			DB:       b,
			Mode:     string(b.Mode),
			Degraded: b.Mode == backend.ModeDegraded,
		},
		DefaultUser: user,
	})
}

func (env *testEnv) doJSONRequest(method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.T, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)
	return rec
}

func unexpectedStatus(code int) error {
	return fmt.Errorf("unexpected status %d", code)
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func addItem(t *testing.T, env *testEnv, productID string, qty int) string {
	t.Helper()
	rec := env.doJSONRequest(http.MethodPost, "/api/v1/cart/items", map[string]any{
		"product_id": productID,
		"quantity":   qty,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	return decode[map[string]string](t, rec)["message"]
}

// kafkaBroker returns the broker for tests that talk to a real Kafka, or
// skips the test when none is configured.
func kafkaBroker(t *testing.T) string {
	t.Helper()
	broker := os.Getenv("KAFKA_TEST_BROKER")
	if broker == "" {
		t.Skip("KAFKA_TEST_BROKER not set")
	}
	return broker
}

func ensureTopics(t *testing.T, broker string, topics ...string) {
	t.Helper()

	conn, err := kafka.Dial("tcp", broker)
	require.NoError(t, err)
	defer conn.Close()

	var cfgs []kafka.TopicConfig
	for _, tp := range topics {
		cfgs = append(cfgs, kafka.TopicConfig{
			Topic:             tp,
			NumPartitions:     1,
			ReplicationFactor: 1,
		})
	}

	err = conn.CreateTopics(cfgs...)
	if err != nil && !strings.Contains(err.Error(), "already exists") {
		require.NoError(t, err)
	}
}

func consumeNextEvent(t *testing.T, broker, topic string, produce func()) map[string]interface{} {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	conn, err := kafka.DialLeader(ctx, "tcp", broker, topic, 0)
	require.NoError(t, err)
	end, err := conn.ReadLastOffset()
	require.NoError(t, err)
	_ = conn.Close()

	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:   []string{broker},
		Topic:     topic,
		Partition: 0,
		MinBytes:  1,
		MaxBytes:  10e6,
		MaxWait:   time.Second,
	})
	defer r.Close()
	require.NoError(t, r.SetOffset(end))

	produce()

	m, err := r.ReadMessage(ctx)
	require.NoError(t, err)

	var event map[string]interface{}
	require.NoError(t, json.Unmarshal(m.Value, &event))
	return event
}
