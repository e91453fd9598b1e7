package conversation

import (
	"context"
	"testing"
	"time"

	"advisordesk/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*miniredis.Miniredis, *RedisSessionStore) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return mr, NewRedisSessionStore(client, 30*time.Minute)
}

func TestSessionStoreRoundTrip(t *testing.T) {
	_, store := newTestStore(t)
	ctx := context.Background()

	topic := models.Topic{Label: "SIP/Mandates", Phrase: "sip"}
	session := &models.Session{
		ID:        "abc-123",
		State:     models.StateAwaitingTimePreference,
		Intent:    models.IntentBook,
		Topic:     &topic,
		Source:    "voice",
		Retries:   1,
		CreatedAt: testNow,
	}
	require.NoError(t, store.Save(ctx, session))

	loaded, err := store.Get(ctx, "abc-123")
	require.NoError(t, err)
	assert.Equal(t, session.State, loaded.State)
	assert.Equal(t, session.Intent, loaded.Intent)
	assert.Equal(t, "SIP/Mandates", loaded.Topic.Label)
	assert.Equal(t, "voice", loaded.Source)
	assert.Equal(t, 1, loaded.Retries)
}

func TestSessionStoreMissing(t *testing.T) {
	_, store := newTestStore(t)

	_, err := store.Get(context.Background(), "never-saved")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionStoreExpiry(t *testing.T) {
	mr, store := newTestStore(t)
	ctx := context.Background()

	session := &models.Session{ID: "expiring", State: models.StateAwaitingIntent}
	require.NoError(t, store.Save(ctx, session))

	mr.FastForward(31 * time.Minute)

	_, err := store.Get(ctx, "expiring")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionStoreDelete(t *testing.T) {
	_, store := newTestStore(t)
	ctx := context.Background()

	session := &models.Session{ID: "gone", State: models.StateAwaitingIntent}
	require.NoError(t, store.Save(ctx, session))
	require.NoError(t, store.Delete(ctx, "gone"))

	_, err := store.Get(ctx, "gone")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
