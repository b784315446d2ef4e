package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/clinic-api/internal/session"
)

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct {
	db       *sqlx.DB
	sessions *session.Store
}

func NewHealthHandler(db *sqlx.DB, sessions *session.Store) *HealthHandler {
	return &HealthHandler{db: db, sessions: sessions}
}

func (h *HealthHandler) Liveness(c *gin.Context) {
	OK(c, http.StatusOK, gin.H{"status": "ok"})
}

// Readiness verifies the database and session store are reachable.
func (h *HealthHandler) Readiness(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	checks := gin.H{"database": "ok", "redis": "ok"}
	healthy := true

	if err := h.db.PingContext(ctx); err != nil {
		checks["database"] = err.Error()
		healthy = false
	}
	if err := h.sessions.Ping(ctx); err != nil {
		checks["redis"] = err.Error()
		healthy = false
	}

	if !healthy {
		c.JSON(http.StatusServiceUnavailable, NewErrorResponse("not ready"))
		return
	}
	OK(c, http.StatusOK, checks)
}
