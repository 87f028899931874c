package settings

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"healthoffice-backend/internal/shared/server/respond"
)

// Handler exposes system setting management to admins.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches setting routes to the admin group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/settings", h.list)
	rg.PUT("/settings", h.set)
	rg.DELETE("/settings/:category/:key", h.delete)
}

func (h *Handler) list(c *gin.Context) {
	all, err := h.Svc.List(c.Request.Context(), c.Query("category"))
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list settings", nil)
		return
	}
	items := make([]SettingResponse, 0, len(all))
	for _, s := range all {
		items = append(items, toResponse(s))
	}
	respond.OK(c, items)
}

type setRequest struct {
	Category string `json:"category"`
	Key      string `json:"key"`
	Value    string `json:"value"`
}

func (h *Handler) set(c *gin.Context) {
	var req setRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	setting, err := h.Svc.Set(c.Request.Context(), req.Category, req.Key, req.Value)
	if err != nil {
		if errors.Is(err, ErrInvalidInput) {
			respond.Error(c, http.StatusBadRequest, "validation_error", "category, key and value are required", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to save setting", nil)
		return
	}
	respond.OK(c, toResponse(setting))
}

func (h *Handler) delete(c *gin.Context) {
	err := h.Svc.Delete(c.Request.Context(), c.Param("category"), c.Param("key"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "setting not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to delete setting", nil)
		return
	}
	c.Status(http.StatusNoContent)
}
