package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/prateek4576/mytodoapp/internal/logger"
	"github.com/prateek4576/mytodoapp/internal/middleware"
	"github.com/prateek4576/mytodoapp/internal/task"
	"github.com/prateek4576/mytodoapp/internal/user"
)

// Handler owns the task routes. All of them sit behind the session gate
// and scope every store call to the request's principal.
type Handler struct {
	tasks  task.Store
	logger *logger.Logger
}

func NewHandler(tasks task.Store, logger *logger.Logger) *Handler {
	return &Handler{tasks: tasks, logger: logger}
}

// RegisterRoutes mounts the task routes on a gated router group.
func (h *Handler) RegisterRoutes(r gin.IRoutes) {
	r.GET("/dashboard", h.Dashboard)
	r.POST("/task", h.Create)
	r.GET("/task/edit/:id", h.editPage)
	r.POST("/task/edit/:id", h.Update)
	r.GET("/task/delete/:id", h.Delete)
}

// principal returns the gated request's user. The gate guarantees it is
// set; a miss means a routing bug, answered with a bounce to login.
func principal(c *gin.Context) (*user.User, bool) {
	p, ok := middleware.PrincipalFromContext(c.Request.Context())
	if !ok {
		c.Redirect(http.StatusFound, "/login")
		c.Abort()
	}
	return p, ok
}

func (h *Handler) Dashboard(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	tasks, err := h.tasks.ListByUser(c.Request.Context(), p.ID)
	if err != nil {
		h.logger.Error("dashboard: task list failed",
			"user_id", p.ID.String(),
			"error", err.Error())
		c.Redirect(http.StatusFound, "/login")
		return
	}

	c.HTML(http.StatusOK, "dashboard.html", gin.H{
		"user":  p,
		"tasks": tasks,
	})
}

func (h *Handler) Create(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	title := c.PostForm("title")
	if title == "" {
		c.Redirect(http.StatusSeeOther, "/dashboard")
		return
	}

	_, err := h.tasks.Insert(c.Request.Context(), task.NewTask{
		UserID:      p.ID,
		Title:       title,
		Description: c.PostForm("description"),
	})
	if err != nil {
		h.logger.Error("task create failed",
			"user_id", p.ID.String(),
			"error", err.Error())
	}

	c.Redirect(http.StatusSeeOther, "/dashboard")
}

func (h *Handler) editPage(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}

	t, err := h.tasks.FindByID(c.Request.Context(), id, p.ID)
	if err != nil {
		h.logger.Error("task edit page: lookup failed",
			"user_id", p.ID.String(),
			"task_id", id.String(),
			"error", err.Error())
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}

	c.HTML(http.StatusOK, "edit-task.html", gin.H{
		"user": p,
		"task": t,
	})
}

func (h *Handler) Update(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Redirect(http.StatusSeeOther, "/dashboard")
		return
	}

	err = h.tasks.Update(c.Request.Context(), id, p.ID, task.Update{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		Completed:   c.PostForm("completed") == "on",
	})
	if err != nil {
		h.logger.Error("task update failed",
			"user_id", p.ID.String(),
			"task_id", id.String(),
			"error", err.Error())
	}

	c.Redirect(http.StatusSeeOther, "/dashboard")
}

// Delete removes a task only once it is completed; anything else is a
// no-op redirect, matching the dashboard's delete affordance.
func (h *Handler) Delete(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}

	t, err := h.tasks.FindByID(c.Request.Context(), id, p.ID)
	if err == nil && t.Completed {
		if err := h.tasks.Delete(c.Request.Context(), id, p.ID); err != nil {
			h.logger.Error("task delete failed",
				"user_id", p.ID.String(),
				"task_id", id.String(),
				"error", err.Error())
		} else {
			h.logger.Info("task deleted",
				"user_id", p.ID.String(),
				"task_id", id.String())
		}
	} else {
		h.logger.Info("task not deleted: not completed or not found",
			"user_id", p.ID.String(),
			"task_id", id.String())
	}

	c.Redirect(http.StatusFound, "/dashboard")
}
