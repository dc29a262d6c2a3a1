package resolver

import (
	"context"
	"errors"
	"fmt"

	"github.com/prateek4576/mytodoapp/internal/auth"
	"github.com/prateek4576/mytodoapp/internal/logger"
	"github.com/prateek4576/mytodoapp/internal/user"
)

// StoreResolver resolves identities against the user store with a
// find-or-create by email. Accounts are linked by email match: an
// existing account with the identity's email is logged into, whatever
// credential type created it. Linking into a password account is logged
// so the trust decision stays visible.
type StoreResolver struct {
	users  user.Store
	logger *logger.Logger
}

func NewStoreResolver(users user.Store, logger *logger.Logger) *StoreResolver {
	return &StoreResolver{users: users, logger: logger}
}

func (r *StoreResolver) Resolve(ctx context.Context, identity *auth.Identity) auth.Outcome {
	if identity == nil {
		return auth.Fail(errors.New("identity is nil"))
	}

	u, err := r.users.FindByEmail(ctx, identity.Email)
	if err == nil {
		return r.link(ctx, u, identity)
	}
	if !errors.Is(err, user.ErrNotFound) {
		r.logger.Error("resolver: user lookup failed",
			"email", identity.Email,
			"error", err.Error())
		return auth.Fail(fmt.Errorf("lookup user by email: %w", err))
	}

	created, err := r.users.Insert(ctx, user.NewUser{
		Email:    identity.Email,
		GoogleID: &identity.ProviderUserID,
	})
	if errors.Is(err, user.ErrDuplicateEmail) {
		// Race loser of a concurrent first-time signup: the row now
		// exists, so retry once as a lookup.
		u, err = r.users.FindByEmail(ctx, identity.Email)
		if err != nil {
			r.logger.Error("resolver: lookup after duplicate insert failed",
				"email", identity.Email,
				"error", err.Error())
			return auth.Fail(fmt.Errorf("lookup after duplicate insert: %w", err))
		}
		return auth.Success(u)
	}
	if err != nil {
		r.logger.Error("resolver: user creation failed",
			"email", identity.Email,
			"error", err.Error())
		return auth.Fail(fmt.Errorf("create user: %w", err))
	}

	r.logger.Info("resolver: created user from provider identity",
		"email", identity.Email,
		"provider", identity.Provider)

	return auth.Success(created)
}

// link returns the existing account for the identity's email, filling in
// the provider id the first time the account completes a provider login.
func (r *StoreResolver) link(ctx context.Context, u *user.User, identity *auth.Identity) auth.Outcome {
	if u.GoogleID != nil {
		return auth.Success(u)
	}

	if u.PasswordHash != nil {
		r.logger.Warn("resolver: linking provider identity into password account",
			"email", identity.Email,
			"provider", identity.Provider,
			"email_verified", identity.EmailVerified)
	}

	linked, err := r.users.Update(ctx, u.ID, user.Update{
		GoogleID: &identity.ProviderUserID,
	})
	if err != nil {
		r.logger.Error("resolver: linking provider id failed",
			"email", identity.Email,
			"error", err.Error())
		return auth.Fail(fmt.Errorf("link provider id: %w", err))
	}

	return auth.Success(linked)
}
