package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/prateek4576/mytodoapp/internal/auth"
	"github.com/prateek4576/mytodoapp/internal/logger"
	"github.com/prateek4576/mytodoapp/internal/session"
	"github.com/prateek4576/mytodoapp/internal/user"
)

// unexported, collision-proof context key
type principalContextKeyType struct{}

var principalKey = principalContextKeyType{}

// PrincipalFromContext extracts the authenticated principal from a
// request context. Handlers behind the gate can rely on ok being true.
func PrincipalFromContext(ctx context.Context) (*user.User, bool) {
	p, ok := ctx.Value(principalKey).(*user.User)
	return p, ok
}

// SessionGate decides per request whether the caller is authenticated.
// State machine: Anonymous until cookie, session, expiry, and principal
// deserialization all check out; anything short of that stays Anonymous
// and is redirected with no side effects on protected resources.
type SessionGate struct {
	store      session.Store
	serializer *auth.Serializer
	logger     *logger.Logger
}

func NewSessionGate(store session.Store, serializer *auth.Serializer, logger *logger.Logger) *SessionGate {
	return &SessionGate{store: store, serializer: serializer, logger: logger}
}

// Identify deserializes the principal on any request carrying a valid
// session and attaches it to the request context. It never denies; pages
// like the login form use it to show who is signed in.
func (g *SessionGate) Identify() gin.HandlerFunc {
	return func(c *gin.Context) {
		if p, ok := g.principal(c); ok {
			attachPrincipal(c, p)
		}
		c.Next()
	}
}

// RequireAuth attaches the deserialized principal to the request context
// or redirects anonymous callers to the login page.
func (g *SessionGate) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := PrincipalFromContext(c.Request.Context()); ok {
			c.Next()
			return
		}

		p, ok := g.principal(c)
		if !ok {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		attachPrincipal(c, p)
		c.Next()
	}
}

func attachPrincipal(c *gin.Context, p *user.User) {
	ctx := context.WithValue(c.Request.Context(), principalKey, p)
	c.Request = c.Request.WithContext(ctx)
}

func (g *SessionGate) principal(c *gin.Context) (*user.User, bool) {
	cookie, err := c.Request.Cookie(session.CookieName)
	if err != nil || cookie.Value == "" {
		return nil, false
	}

	sess, err := g.store.Get(c.Request.Context(), cookie.Value)
	if err != nil {
		g.logger.Error("session gate: session load failed", "error", err.Error())
		return nil, false
	}
	if sess == nil {
		return nil, false
	}

	if sess.Expired(time.Now()) {
		_ = g.store.Delete(c.Request.Context(), sess.SessionID)
		return nil, false
	}

	p, err := g.serializer.Deserialize(c.Request.Context(), sess.UserID)
	if errors.Is(err, user.ErrNotFound) {
		// Deleted account with a live session: same as no session.
		_ = g.store.Delete(c.Request.Context(), sess.SessionID)
		return nil, false
	}
	if err != nil {
		g.logger.Error("session gate: principal lookup failed",
			"user_id", sess.UserID,
			"error", err.Error())
		return nil, false
	}

	return p, true
}
