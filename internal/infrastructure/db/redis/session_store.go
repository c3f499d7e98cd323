package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/stayware/hotel-console/internal/core/domain"
)

const sessionTTL = 30 * 24 * time.Hour

// SessionStore persists the last-known identity across console restarts.
// The Session Manager is the single writer.
type SessionStore struct {
	client *redis.Client
	secret []byte
	key    string
	log    zerolog.Logger
}

// NewSessionStore creates a store keyed to one console instance.
func NewSessionStore(client *redis.Client, secret, consoleID string, log zerolog.Logger) *SessionStore {
	return &SessionStore{
		client: client,
		secret: []byte(secret),
		key:    fmt.Sprintf("session:%s", consoleID),
		log:    log,
	}
}

func (s *SessionStore) Save(ctx context.Context, identity domain.Identity) error {
	token, err := encodeSession(s.secret, identity, sessionTTL)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.client.Set(ctx, s.key, token, sessionTTL).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Load returns the cached identity, or nil when none is cached. A payload
// that fails signature or structural validation is self-healed: the key
// is deleted and Load reports absence instead of an error.
func (s *SessionStore) Load(ctx context.Context) (*domain.Identity, error) {
	token, err := s.client.Get(ctx, s.key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	identity, err := decodeSession(s.secret, token)
	if err != nil {
		s.log.Warn().Err(err).Msg("discarding invalid session payload")
		if derr := s.client.Del(ctx, s.key).Err(); derr != nil {
			s.log.Warn().Err(derr).Msg("failed to delete invalid session payload")
		}
		return nil, nil
	}
	return identity, nil
}

func (s *SessionStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
