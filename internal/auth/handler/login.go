package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prateek4576/mytodoapp/internal/auth"
	"github.com/prateek4576/mytodoapp/internal/middleware"
)

func (h *Handler) loginPage(c *gin.Context) {
	p, _ := middleware.PrincipalFromContext(c.Request.Context())
	c.HTML(http.StatusOK, "login.html", gin.H{"user": p, "error": nil})
}

// rejectionMessage maps a strategy rejection reason to the message the
// login form shows. The two reasons render differently on purpose.
func rejectionMessage(reason, email string) string {
	switch reason {
	case auth.ReasonUnregisteredEmail:
		return fmt.Sprintf("Unregistered email attempted: %s. Please register yourself first.", email)
	case auth.ReasonIncorrectPassword:
		return "Incorrect password"
	default:
		return "Authentication failed"
	}
}

func (h *Handler) Login(c *gin.Context) {
	email := c.PostForm("email")
	pass := c.PostForm("password")

	out := h.passwords.Authenticate(c.Request.Context(), email, pass)
	switch out.Kind {
	case auth.KindSuccess:
		if err := h.establishSession(c, out.Principal); err != nil {
			h.logger.Error("login: session creation failed",
				"email", email,
				"error", err.Error())
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		c.Redirect(http.StatusSeeOther, "/dashboard")

	case auth.KindRejected:
		c.HTML(http.StatusUnauthorized, "login.html", gin.H{
			"user":  nil,
			"error": rejectionMessage(out.Reason, email),
		})

	default:
		h.logger.Error("login: strategy error",
			"email", email,
			"error", out.Err.Error())
		c.AbortWithStatus(http.StatusInternalServerError)
	}
}
