package location

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shenikar/guardian/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receive(t *testing.T, sub Subscription) Fix {
	t.Helper()
	select {
	case fix, ok := <-sub.Fixes():
		require.True(t, ok, "subscription closed")
		return fix
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for fix")
	}
	return Fix{}
}

func TestRelay_LocalPushAndFault(t *testing.T) {
	relay := NewRelay(nil, testLogger())
	sub, err := relay.Subscribe("user-1", Options{})
	require.NoError(t, err)
	defer sub.Unsubscribe()

	require.NoError(t, relay.Push(context.Background(), "user-1", coord(1, 2)))
	require.NoError(t, relay.Push(context.Background(), "user-2", coord(9, 9)))
	require.NoError(t, relay.PushFault(context.Background(), "user-1", "permission denied"))

	fix := receive(t, sub)
	assert.Equal(t, coord(1, 2), fix.Coordinate)

	fix = receive(t, sub)
	assert.ErrorContains(t, fix.Err, "permission denied")
}

func TestRelay_UnsubscribeIsIdempotent(t *testing.T) {
	relay := NewRelay(nil, testLogger())
	sub, err := relay.Subscribe("user-1", Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, relay.subscribers("user-1"))

	sub.Unsubscribe()
	sub.Unsubscribe()
	assert.Equal(t, 0, relay.subscribers("user-1"))

	_, ok := <-sub.Fixes()
	assert.False(t, ok)

	// после отписки Push не паникует
	require.NoError(t, relay.Push(context.Background(), "user-1", coord(1, 1)))
}

func TestRelay_EmptyUserUnsupported(t *testing.T) {
	relay := NewRelay(nil, testLogger())
	_, err := relay.Subscribe("", Options{})
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestRelay_MaxAgeControlsCachedFix(t *testing.T) {
	relay := NewRelay(nil, testLogger())
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	relay.now = func() time.Time { return now }

	cached := models.Coordinate{Latitude: 5, Longitude: 6, ObservedAt: now.Add(-10 * time.Second)}
	require.NoError(t, relay.Push(context.Background(), "user-1", cached))

	// MaxAge = 0: кэш не отдаётся
	fresh, err := relay.Subscribe("user-1", Options{MaxAge: 0})
	require.NoError(t, err)
	defer fresh.Unsubscribe()
	select {
	case fix := <-fresh.Fixes():
		t.Fatalf("unexpected cached fix %+v", fix)
	case <-time.After(50 * time.Millisecond):
	}

	tolerant, err := relay.Subscribe("user-1", Options{MaxAge: time.Minute})
	require.NoError(t, err)
	defer tolerant.Unsubscribe()
	assert.Equal(t, cached, receive(t, tolerant).Coordinate)

	strict, err := relay.Subscribe("user-1", Options{MaxAge: time.Second})
	require.NoError(t, err)
	defer strict.Unsubscribe()
	select {
	case fix := <-strict.Fixes():
		t.Fatalf("stale cached fix delivered %+v", fix)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestRelay_TimeoutFault(t *testing.T) {
	relay := NewRelay(nil, testLogger())
	sub, err := relay.Subscribe("user-1", Options{Timeout: 30 * time.Millisecond})
	require.NoError(t, err)
	defer sub.Unsubscribe()

	fix := receive(t, sub)
	assert.ErrorIs(t, fix.Err, ErrFixTimeout)

	// таймаут взводится заново
	fix = receive(t, sub)
	assert.ErrorIs(t, fix.Err, ErrFixTimeout)
}

func TestRelay_RedisRoundTrip(t *testing.T) {
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	defer client.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	relay := NewRelay(client, testLogger())
	require.NoError(t, relay.Start(ctx))

	sub, err := relay.Subscribe("user-1", Options{})
	require.NoError(t, err)
	defer sub.Unsubscribe()

	require.NoError(t, relay.Push(ctx, "user-1", coord(1, 2)))
	got := receive(t, sub).Coordinate
	assert.Equal(t, 1.0, got.Latitude)
	assert.Equal(t, 2.0, got.Longitude)
	assert.True(t, got.ObservedAt.Equal(coord(1, 2).ObservedAt))

	require.NoError(t, relay.PushFault(ctx, "user-1", "gps off"))
	assert.ErrorContains(t, receive(t, sub).Err, "gps off")
}

func TestRelayChannelHelpers(t *testing.T) {
	assert.Equal(t, "user-1", userIDFromChannel(relayChannel("user-1")))
	assert.Equal(t, "", userIDFromChannel("bad"))
}
