package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prateek4576/mytodoapp/internal/auth"
	"github.com/prateek4576/mytodoapp/internal/auth/password"
	"github.com/prateek4576/mytodoapp/internal/auth/provider"
	"github.com/prateek4576/mytodoapp/internal/auth/resolver"
	"github.com/prateek4576/mytodoapp/internal/logger"
	"github.com/prateek4576/mytodoapp/internal/middleware"
	"github.com/prateek4576/mytodoapp/internal/session"
	"github.com/prateek4576/mytodoapp/internal/user"
)

// Handler owns the authentication routes. Strategies are injected at
// construction; route selection decides which one runs.
type Handler struct {
	passwords  *password.Strategy
	providers  *provider.Registry
	resolver   resolver.Resolver
	serializer *auth.Serializer
	sessions   session.Store
	userStore  user.Store
	logger     *logger.Logger
}

func NewHandler(
	passwords *password.Strategy,
	providers *provider.Registry,
	resolver resolver.Resolver,
	serializer *auth.Serializer,
	sessions session.Store,
	userStore user.Store,
	logger *logger.Logger,
) *Handler {
	return &Handler{
		passwords:  passwords,
		providers:  providers,
		resolver:   resolver,
		serializer: serializer,
		sessions:   sessions,
		userStore:  userStore,
		logger:     logger,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/", h.index)
	r.GET("/login", h.loginPage)
	r.POST("/login", h.Login)
	r.GET("/register", h.registerPage)
	r.POST("/register", h.Register)
	r.GET("/auth/:provider", h.oauthLogin)
	r.GET("/auth/:provider/callback", h.oauthCallback)
	r.GET("/logout", h.Logout)
}

func (h *Handler) index(c *gin.Context) {
	p, _ := middleware.PrincipalFromContext(c.Request.Context())
	c.HTML(http.StatusOK, "index.html", gin.H{"user": p})
}

// establishSession serializes the principal, persists a fresh session,
// and issues the cookie. This is the single Anonymous -> Authenticated
// transition point.
func (h *Handler) establishSession(c *gin.Context, p *user.User) error {
	sess, err := session.New(h.serializer.Serialize(p))
	if err != nil {
		return err
	}

	if err := h.sessions.Create(c.Request.Context(), sess); err != nil {
		return err
	}

	session.SetCookie(c.Writer, sess.SessionID, sess.ExpiresAt, session.CookieOptions{
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})

	h.logger.Info("login success",
		"user_id", p.ID.String(),
		"ip", c.ClientIP())

	return nil
}

func (h *Handler) Logout(c *gin.Context) {
	cookie, err := c.Request.Cookie(session.CookieName)
	if err == nil && cookie.Value != "" {
		// best-effort: the cookie is cleared regardless
		_ = h.sessions.Delete(c.Request.Context(), cookie.Value)
	}

	session.ClearCookie(c.Writer, session.CookieOptions{
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})

	c.Redirect(http.StatusFound, "/login")
}
