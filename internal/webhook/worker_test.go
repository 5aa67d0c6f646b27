package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shenikar/guardian/internal/config"
	"github.com/shenikar/guardian/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWorker(t *testing.T, cfg *config.Config) (*WebhookWorker, *redis.Client) {
	t.Helper()
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})

	w := NewWebhookWorker(client, logger, cfg)
	w.sleep = func(context.Context, time.Duration) {}
	return w, client
}

func TestPublishAndDeliver(t *testing.T) {
	received := make(chan *http.Request, 1)
	bodies := make(chan []byte, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		received <- r
		bodies <- body
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	cfg := &config.Config{
		WebhookURL:        srv.URL,
		WebhookSecret:     "s3cret",
		WebhookTimeout:    time.Second,
		WebhookMaxRetries: 3,
	}
	worker, client := newTestWorker(t, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	worker.Start(ctx)

	event := AlertEvent{
		UserID:         "user-1",
		Status:         models.StatusAlert,
		TriggeredAt:    time.Now().UTC(),
		PrimaryContact: &models.EmergencyContact{ID: "1", Name: "Mom", IsPrimary: true},
	}
	require.NoError(t, NewRedisWebhookPublisher(client).Publish(ctx, event))

	select {
	case req := <-received:
		body := <-bodies
		assert.Equal(t, "application/json", req.Header.Get("Content-Type"))
		assert.Equal(t, generateHMACSHA256(string(body), "s3cret"), req.Header.Get("X-Webhook-Signature"))

		var got AlertEvent
		require.NoError(t, json.Unmarshal(body, &got))
		assert.Equal(t, "user-1", got.UserID)
		assert.Equal(t, "Mom", got.PrimaryContact.Name)
	case <-time.After(2 * time.Second):
		t.Fatal("webhook was not delivered")
	}

	cancel()
	worker.Wait()
}

func TestProcessWebhookEvent_RetriesThenSucceeds(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	worker, _ := newTestWorker(t, &config.Config{WebhookURL: srv.URL, WebhookTimeout: time.Second, WebhookMaxRetries: 3})
	ok := worker.processWebhookEvent(context.Background(), AlertEvent{UserID: "user-1"}, `{"user_id":"user-1"}`)

	assert.True(t, ok)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestProcessWebhookEvent_GivesUp(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	worker, _ := newTestWorker(t, &config.Config{WebhookURL: srv.URL, WebhookTimeout: time.Second, WebhookMaxRetries: 2})
	ok := worker.processWebhookEvent(context.Background(), AlertEvent{}, `{}`)

	assert.False(t, ok)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestProcessWebhookEvent_NoURL(t *testing.T) {
	worker, _ := newTestWorker(t, &config.Config{})
	assert.False(t, worker.processWebhookEvent(context.Background(), AlertEvent{}, `{}`))
}
