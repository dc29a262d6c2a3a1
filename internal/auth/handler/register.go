package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prateek4576/mytodoapp/internal/auth/password"
	"github.com/prateek4576/mytodoapp/internal/middleware"
	"github.com/prateek4576/mytodoapp/internal/user"
)

func (h *Handler) registerPage(c *gin.Context) {
	p, _ := middleware.PrincipalFromContext(c.Request.Context())
	c.HTML(http.StatusOK, "register.html", gin.H{"user": p, "error": nil})
}

func (h *Handler) Register(c *gin.Context) {
	email := c.PostForm("email")
	pass := c.PostForm("password")

	renderError := func(status int) {
		c.HTML(status, "register.html", gin.H{
			"user":  nil,
			"error": "Email already exists or invalid input",
		})
	}

	if email == "" {
		renderError(http.StatusBadRequest)
		return
	}

	hash, err := password.Hash(pass)
	if err != nil {
		if !errors.Is(err, password.ErrTooShort) {
			h.logger.Error("register: hashing failed", "email", email, "error", err.Error())
		}
		renderError(http.StatusBadRequest)
		return
	}

	if _, err := h.userStore.Insert(c.Request.Context(), user.NewUser{
		Email:        email,
		PasswordHash: &hash,
	}); err != nil {
		if !errors.Is(err, user.ErrDuplicateEmail) {
			h.logger.Error("register: insert failed", "email", email, "error", err.Error())
		}
		renderError(http.StatusConflict)
		return
	}

	h.logger.Info("user registered", "email", email)
	c.Redirect(http.StatusSeeOther, "/login")
}
