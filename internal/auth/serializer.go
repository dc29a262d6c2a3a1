package auth

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/prateek4576/mytodoapp/internal/user"
)

// Serializer reduces a principal to its durable session token (the user
// id) and reverses that mapping on every request carrying a session.
type Serializer struct {
	users user.Store
}

func NewSerializer(users user.Store) *Serializer {
	return &Serializer{users: users}
}

// Serialize returns the stable token for a principal.
func (s *Serializer) Serialize(p *user.User) string {
	return p.ID.String()
}

// Deserialize resolves a session token back to the live principal with a
// single point lookup. A token whose row no longer exists (or that never
// was an id) yields user.ErrNotFound; the session gate treats that the
// same as having no session.
func (s *Serializer) Deserialize(ctx context.Context, token string) (*user.User, error) {
	id, err := uuid.Parse(token)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed token", user.ErrNotFound)
	}

	return s.users.FindByID(ctx, id)
}
