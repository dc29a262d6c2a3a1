package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prateek4576/mytodoapp/internal/auth"
)

func (h *Handler) oauthLogin(c *gin.Context) {
	providerName := c.Param("provider")

	p, err := h.providers.Get(providerName)
	if err != nil {
		c.String(http.StatusBadRequest, "unknown oauth provider")
		return
	}

	state := generateState(c)
	_, codeChallenge := generatePKCE(c)

	c.Redirect(http.StatusFound, p.AuthCodeURL(state, codeChallenge))
}

func (h *Handler) oauthCallback(c *gin.Context) {
	providerName := c.Param("provider")

	p, err := h.providers.Get(providerName)
	if err != nil {
		c.String(http.StatusBadRequest, "unknown oauth provider")
		return
	}

	if !validateState(c) {
		h.logger.Warn("oauth callback with invalid state", "provider", providerName)
		c.Redirect(http.StatusFound, "/login")
		return
	}

	// The provider can bounce back with an error instead of a code
	// (user denied consent, expired flow).
	if errParam := c.Query("error"); errParam != "" {
		h.logger.Warn("oauth callback returned error",
			"provider", providerName,
			"error", errParam,
			"desc", c.Query("error_description"))
		c.Redirect(http.StatusFound, "/login")
		return
	}

	code := c.Query("code")
	if code == "" {
		h.logger.Error("oauth callback missing code and error", "provider", providerName)
		c.Redirect(http.StatusFound, "/login")
		return
	}

	codeVerifier := getPKCEVerifier(c)
	if codeVerifier == "" {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	identity, err := p.ExchangeCode(c.Request.Context(), code, codeVerifier)
	if err != nil {
		h.logger.Error("oauth code exchange failed",
			"provider", providerName,
			"error", err.Error())
		c.Redirect(http.StatusFound, "/login")
		return
	}

	out := h.resolver.Resolve(c.Request.Context(), identity)
	switch out.Kind {
	case auth.KindSuccess:
		if err := h.establishSession(c, out.Principal); err != nil {
			h.logger.Error("oauth login: session creation failed",
				"email", identity.Email,
				"error", err.Error())
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		c.Redirect(http.StatusFound, "/dashboard")

	case auth.KindRejected:
		c.Redirect(http.StatusFound, "/login")

	default:
		h.logger.Error("oauth login: resolver error",
			"email", identity.Email,
			"error", out.Err.Error())
		c.AbortWithStatus(http.StatusInternalServerError)
	}
}
