package password

import (
	"context"
	"errors"
	"fmt"

	"github.com/prateek4576/mytodoapp/internal/auth"
	"github.com/prateek4576/mytodoapp/internal/logger"
	"github.com/prateek4576/mytodoapp/internal/user"
)

// Strategy verifies email+password pairs against the user store.
type Strategy struct {
	users  user.Store
	logger *logger.Logger
}

func NewStrategy(users user.Store, logger *logger.Logger) *Strategy {
	return &Strategy{users: users, logger: logger}
}

// Authenticate looks up the principal by email and verifies the supplied
// password against its stored hash. The two rejection reasons are kept
// distinct so the login form can render different messages. Passwords
// are never logged.
func (s *Strategy) Authenticate(ctx context.Context, email, password string) auth.Outcome {
	u, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, user.ErrNotFound) {
		s.logger.Info("login attempt for unregistered email", "email", email)
		return auth.Reject(auth.ReasonUnregisteredEmail)
	}
	if err != nil {
		s.logger.Error("password strategy: user lookup failed",
			"email", email,
			"error", err.Error())
		return auth.Fail(fmt.Errorf("lookup user by email: %w", err))
	}

	// Accounts created through an external provider only have no hash;
	// a password can never match one.
	if u.PasswordHash == nil {
		s.logger.Info("password login against provider-only account", "email", email)
		return auth.Reject(auth.ReasonIncorrectPassword)
	}

	if err := Verify(*u.PasswordHash, password); err != nil {
		if !IsMismatch(err) {
			s.logger.Error("password strategy: hash comparison failed",
				"email", email,
				"error", err.Error())
			return auth.Fail(fmt.Errorf("verify password: %w", err))
		}
		return auth.Reject(auth.ReasonIncorrectPassword)
	}

	return auth.Success(u)
}
