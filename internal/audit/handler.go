package audit

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"healthoffice-backend/internal/shared/server/respond"
)

// Handler exposes the audit trail to admins.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches audit log routes to the admin group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/audit-logs", h.list)
}

func (h *Handler) list(c *gin.Context) {
	limit := queryInt(c, "limit", 50)
	offset := queryInt(c, "offset", 0)
	entityType := c.Query("entityType")

	entries, total, err := h.Svc.List(c.Request.Context(), entityType, limit, offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list audit logs", nil)
		return
	}
	items := make([]EntryResponse, 0, len(entries))
	for _, e := range entries {
		items = append(items, toResponse(e))
	}
	respond.OK(c, respond.Page{Items: items, Limit: limit, Offset: offset, Total: total})
}

func queryInt(c *gin.Context, key string, def int) int {
	raw := c.Query(key)
	if raw == "" {
		return def
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return val
}
