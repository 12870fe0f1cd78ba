// Package session keeps browser sessions in Redis. A session maps a random
// cookie token to the logged-in user plus a queue of one-shot flash messages.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	redisv9 "github.com/redis/go-redis/v9"
)

const CookieName = "session_id"

type Flash struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

type Record struct {
	UserID  uint    `json:"user_id"`
	Flashes []Flash `json:"flashes,omitempty"`
}

type Store struct {
	client *redisv9.Client
	ttl    time.Duration
}

func NewStore(client *redisv9.Client, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Store{client: client, ttl: ttl}
}

func (s *Store) TTL() time.Duration {
	return s.ttl
}

// Create opens a new session bound to userID and returns its token.
func (s *Store) Create(ctx context.Context, userID uint) (string, error) {
	sid := uuid.NewString()
	if err := s.set(ctx, sid, &Record{UserID: userID}); err != nil {
		return "", err
	}
	return sid, nil
}

// Get returns the session record, or nil if the session is missing or expired.
func (s *Store) Get(ctx context.Context, sid string) (*Record, error) {
	raw, err := s.client.Get(ctx, s.key(sid)).Result()
	if err == redisv9.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get session failed: %w", err)
	}

	var record Record
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		return nil, fmt.Errorf("unmarshal session failed: %w", err)
	}
	return &record, nil
}

func (s *Store) Delete(ctx context.Context, sid string) error {
	if err := s.client.Del(ctx, s.key(sid)).Err(); err != nil {
		return fmt.Errorf("redis delete session failed: %w", err)
	}
	return nil
}

// AddFlash appends a one-shot message to the session. A missing session is
// a no-op: the message simply has nowhere to be shown.
func (s *Store) AddFlash(ctx context.Context, sid, category, message string) error {
	record, err := s.Get(ctx, sid)
	if err != nil {
		return err
	}
	if record == nil {
		return nil
	}
	record.Flashes = append(record.Flashes, Flash{Category: category, Message: message})
	return s.set(ctx, sid, record)
}

// PopFlashes returns and clears the session's pending flash messages.
func (s *Store) PopFlashes(ctx context.Context, sid string) ([]Flash, error) {
	record, err := s.Get(ctx, sid)
	if err != nil {
		return nil, err
	}
	if record == nil || len(record.Flashes) == 0 {
		return nil, nil
	}
	flashes := record.Flashes
	record.Flashes = nil
	if err := s.set(ctx, sid, record); err != nil {
		return nil, err
	}
	return flashes, nil
}

func (s *Store) set(ctx context.Context, sid string, record *Record) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal session failed: %w", err)
	}
	if err := s.client.Set(ctx, s.key(sid), payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set session failed: %w", err)
	}
	return nil
}

func (s *Store) key(sid string) string {
	return "session:" + sid
}
