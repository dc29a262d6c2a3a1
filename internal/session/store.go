package session

import (
	"context"
	"time"
)

// TTL is the absolute session lifetime. There is no sliding renewal: a
// session expires 24h after login regardless of activity.
const TTL = 24 * time.Hour

// Session is the server-side state behind one browser-held token. It
// stores only the serialized principal token, never auth state.
type Session struct {
	SessionID string    `json:"session_id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"` // absolute expiry
}

// Expired reports whether the session's absolute expiry has passed.
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// New builds a session for the given principal token with a fresh
// random id and the absolute TTL applied.
func New(userID string) (Session, error) {
	id, err := GenerateID()
	if err != nil {
		return Session{}, err
	}

	now := time.Now()
	return Session{
		SessionID: id,
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(TTL),
	}, nil
}

// Store defines how sessions are persisted and retrieved. Get returns
// (nil, nil) for an unknown id.
type Store interface {
	Create(ctx context.Context, s Session) error
	Get(ctx context.Context, sessionID string) (*Session, error)
	Delete(ctx context.Context, sessionID string) error
}
