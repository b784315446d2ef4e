package favorite

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jwalitptl/clinic-api/internal/handler"
	"github.com/jwalitptl/clinic-api/internal/middleware"
	"github.com/jwalitptl/clinic-api/internal/model"
	apperrors "github.com/jwalitptl/clinic-api/pkg/errors"
)

type Service interface {
	Add(ctx context.Context, patientID, doctorID uuid.UUID) error
	Remove(ctx context.Context, patientID, doctorID uuid.UUID) error
	List(ctx context.Context, patientID uuid.UUID) ([]*model.Doctor, error)
}

// Handler serves the authenticated patient's doctor bookmarks.
type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	favorites := r.Group("/favorites")
	{
		favorites.GET("", h.List)
		favorites.POST("/:doctorID", h.Add)
		favorites.DELETE("/:doctorID", h.Remove)
	}
}

func patientID(c *gin.Context) (uuid.UUID, error) {
	v, exists := c.Get(middleware.ContextPatientID)
	if !exists {
		return uuid.Nil, apperrors.Unauthorized("authentication required", nil)
	}
	id, ok := v.(uuid.UUID)
	if !ok {
		return uuid.Nil, apperrors.Unauthorized("authentication required", nil)
	}
	return id, nil
}

func (h *Handler) List(c *gin.Context) {
	pid, err := patientID(c)
	if err != nil {
		handler.Error(c, err)
		return
	}

	doctors, err := h.service.List(c.Request.Context(), pid)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, http.StatusOK, doctors)
}

func (h *Handler) Add(c *gin.Context) {
	pid, err := patientID(c)
	if err != nil {
		handler.Error(c, err)
		return
	}

	doctorID, err := uuid.Parse(c.Param("doctorID"))
	if err != nil {
		handler.Error(c, apperrors.Validation("invalid doctor ID", err))
		return
	}

	if err := h.service.Add(c.Request.Context(), pid, doctorID); err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, http.StatusCreated, gin.H{"status": "added"})
}

func (h *Handler) Remove(c *gin.Context) {
	pid, err := patientID(c)
	if err != nil {
		handler.Error(c, err)
		return
	}

	doctorID, err := uuid.Parse(c.Param("doctorID"))
	if err != nil {
		handler.Error(c, apperrors.Validation("invalid doctor ID", err))
		return
	}

	if err := h.service.Remove(c.Request.Context(), pid, doctorID); err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, http.StatusOK, gin.H{"status": "removed"})
}
