package handler

import (
	"github.com/gin-gonic/gin"

	"taskhub/internal/repository"
	"taskhub/pkg/responses"
)

// StatusHandler serves the read-only ops endpoints.
type StatusHandler struct {
	repos    *repository.Repositories
	sessions func() int64
}

func NewStatusHandler(repos *repository.Repositories, sessions func() int64) *StatusHandler {
	return &StatusHandler{
		repos:    repos,
		sessions: sessions,
	}
}

// Healthz reports process liveness.
func (h *StatusHandler) Healthz(c *gin.Context) {
	c.JSON(200, gin.H{"status": "ok"})
}

// Stats reports entity counts and connected session workers.
func (h *StatusHandler) Stats(c *gin.Context) {
	users, err := h.repos.User.Count()
	if err != nil {
		responses.Error(c, err)
		return
	}
	projects, err := h.repos.Project.Count()
	if err != nil {
		responses.Error(c, err)
		return
	}
	tasks, err := h.repos.Task.Count()
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, gin.H{
		"users":           users,
		"projects":        projects,
		"tasks":           tasks,
		"active_sessions": h.sessions(),
	})
}
