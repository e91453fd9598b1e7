package conversation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"advisordesk/models"

	"github.com/go-redis/redis/v8"
)

const sessionKeyPrefix = "conv:sess:"

// ErrSessionNotFound is returned when a session ID has no stored state,
// either because it never existed or because its TTL expired.
var ErrSessionNotFound = errors.New("session not found")

// SessionStore persists dialogue state between turns.
type SessionStore interface {
	Get(ctx context.Context, id string) (*models.Session, error)
	Save(ctx context.Context, session *models.Session) error
	Delete(ctx context.Context, id string) error
}

// RedisSessionStore keeps sessions as JSON blobs under a TTL, so an
// abandoned conversation evaporates on its own.
type RedisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSessionStore(client *redis.Client, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{client: client, ttl: ttl}
}

func (st *RedisSessionStore) Get(ctx context.Context, id string) (*models.Session, error) {
	data, err := st.client.Get(ctx, sessionKeyPrefix+id).Result()
	if err == redis.Nil {
		return nil, ErrSessionNotFound
	} else if err != nil {
		return nil, fmt.Errorf("failed to load session %s: %w", id, err)
	}
	var session models.Session
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to decode session %s: %w", id, err)
	}
	return &session, nil
}

func (st *RedisSessionStore) Save(ctx context.Context, session *models.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode session %s: %w", session.ID, err)
	}
	if err := st.client.Set(ctx, sessionKeyPrefix+session.ID, data, st.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session %s: %w", session.ID, err)
	}
	return nil
}

func (st *RedisSessionStore) Delete(ctx context.Context, id string) error {
	if err := st.client.Del(ctx, sessionKeyPrefix+id).Err(); err != nil {
		return fmt.Errorf("failed to delete session %s: %w", id, err)
	}
	return nil
}
