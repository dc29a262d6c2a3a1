package resolver

import (
	"context"

	"github.com/prateek4576/mytodoapp/internal/auth"
)

// Resolver determines which local principal an external identity belongs
// to. It is the only place where identity-to-user mapping logic lives.
type Resolver interface {
	Resolve(ctx context.Context, identity *auth.Identity) auth.Outcome
}
