package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"gymboost-server/internal/domain"
	"gymboost-server/internal/repository"
)

const (
	// DefaultSessionTTL is how long an issued token stays valid.
	DefaultSessionTTL = 24 * time.Hour
	tokenBytes        = 64
)

// SessionAuthority issues, validates and revokes opaque bearer tokens.
type SessionAuthority interface {
	Issue(ctx context.Context, userID int64) (*domain.Session, error)
	Validate(ctx context.Context, token string) (int64, error)
	Revoke(ctx context.Context, userID int64) error
	PurgeExpired(ctx context.Context) (int64, error)
}

type sessionAuthority struct {
	sessions repository.SessionRepository
	ttl      time.Duration
	now      func() time.Time
}

// SessionOption customizes a SessionAuthority.
type SessionOption func(*sessionAuthority)

// WithClock replaces time.Now, used by tests to step across expiry.
func WithClock(now func() time.Time) SessionOption {
	return func(s *sessionAuthority) {
		s.now = now
	}
}

func NewSessionAuthority(sessions repository.SessionRepository, ttl time.Duration, opts ...SessionOption) SessionAuthority {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	s := &sessionAuthority{
		sessions: sessions,
		ttl:      ttl,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Issue does not invalidate earlier sessions; a user may hold several.
func (s *sessionAuthority) Issue(ctx context.Context, userID int64) (*domain.Session, error) {
	token, err := newToken()
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	session := &domain.Session{
		Token:     token,
		UserID:    userID,
		ExpiresAt: now.Add(s.ttl).Truncate(time.Millisecond),
		CreatedAt: now,
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}
	return session, nil
}

// Validate never extends a session's expiry.
func (s *sessionAuthority) Validate(ctx context.Context, token string) (int64, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return 0, ErrUnauthorized
	}

	session, err := s.sessions.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, ErrUnauthorized
		}
		return 0, err
	}
	if !session.ValidAt(s.now()) {
		return 0, ErrUnauthorized
	}
	return session.UserID, nil
}

func (s *sessionAuthority) Revoke(ctx context.Context, userID int64) error {
	if _, err := s.sessions.DeleteByUser(ctx, userID); err != nil {
		return err
	}
	return nil
}

func (s *sessionAuthority) PurgeExpired(ctx context.Context) (int64, error) {
	return s.sessions.DeleteExpired(ctx, s.now())
}

func newToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
