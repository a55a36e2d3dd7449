// internal/common/session/store.go
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"mortgage-dashboard/internal/common/config"
	apperrors "mortgage-dashboard/internal/common/errors"
	"mortgage-dashboard/internal/common/logger"
	"mortgage-dashboard/internal/common/metrics"
	"mortgage-dashboard/internal/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	sessionKeyPrefix    = "session:"
	submissionKeyPrefix = "submission:"
)

// Record is the cached state of one signed-in browser: the API token and the
// user snapshot returned at login, same data the old frontend kept in
// localStorage.
type Record struct {
	ID        string      `json:"id"`
	Token     string      `json:"token"`
	User      models.User `json:"user"`
	CreatedAt time.Time   `json:"created_at"`
}

// Store keeps session records in redis.
type Store struct {
	client *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

// NewStore creates a session store with its own redis connection.
func NewStore(cfg config.SessionConfig, log logger.Logger) (*Store, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Redis.GetAddr(),
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 5,
	})

	return NewStoreWithClient(rdb, time.Duration(cfg.TTLMinutes)*time.Minute, log), nil
}

// NewStoreWithClient wraps an existing redis client. Tests inject miniredis
// or redismock through this.
func NewStoreWithClient(client *redis.Client, ttl time.Duration, log logger.Logger) *Store {
	return &Store{
		client: client,
		ttl:    ttl,
		logger: log.WithFields(map[string]interface{}{"component": "session-store"}),
	}
}

// Ping tests the redis connection.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

// Close closes the redis connection.
func (s *Store) Close() error {
	if s.client != nil {
		return s.client.Close()
	}
	return nil
}

// Create stores a new session record and returns it with a fresh id.
func (s *Store) Create(ctx context.Context, token string, user models.User) (*Record, error) {
	rec := &Record{
		ID:        uuid.NewString(),
		Token:     token,
		User:      user,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.write(ctx, rec); err != nil {
		return nil, err
	}

	metrics.SessionsActive.Inc()
	s.logger.Info("Session created", map[string]interface{}{
		"session_id": rec.ID,
		"username":   user.Username,
	})
	return rec, nil
}

// Get retrieves a session record, returning ErrSessionNotFound for unknown
// or expired ids.
func (s *Store) Get(ctx context.Context, id string) (*Record, error) {
	raw, err := s.client.Get(ctx, sessionKeyPrefix+id).Result()
	if err == redis.Nil {
		return nil, apperrors.ErrSessionNotFound
	}
	if err != nil {
		return nil, apperrors.NewSessionStoreError(err)
	}

	var rec Record
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return nil, apperrors.NewSessionStoreError(err)
	}
	return &rec, nil
}

// Update rewrites a session record, refreshing its TTL. Used after profile
// updates to keep the cached user snapshot current.
func (s *Store) Update(ctx context.Context, rec *Record) error {
	return s.write(ctx, rec)
}

// Delete removes a session record. Deleting an unknown id is not an error.
func (s *Store) Delete(ctx context.Context, id string) error {
	deleted, err := s.client.Del(ctx, sessionKeyPrefix+id).Result()
	if err != nil {
		return apperrors.NewSessionStoreError(err)
	}
	if deleted > 0 {
		metrics.SessionsActive.Dec()
	}
	return nil
}

// ClaimSubmission registers a one-shot form submission key. The first claim
// wins; a rapid double-submit of the same form sees false and is dropped
// before any API call.
func (s *Store) ClaimSubmission(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	ok, err := s.client.SetNX(ctx, submissionKeyPrefix+key, "1", ttl).Result()
	if err != nil {
		return false, apperrors.NewSessionStoreError(err)
	}
	return ok, nil
}

func (s *Store) write(ctx context.Context, rec *Record) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return apperrors.NewSessionStoreError(err)
	}
	if err := s.client.Set(ctx, sessionKeyPrefix+rec.ID, raw, s.ttl).Err(); err != nil {
		return apperrors.NewSessionStoreError(err)
	}
	return nil
}
