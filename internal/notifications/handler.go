package notifications

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"healthoffice-backend/internal/shared/server/middleware"
	"healthoffice-backend/internal/shared/server/respond"
)

// Handler exposes notification routes to portal users.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterPortalRoutes attaches notification routes to the portal group.
func (h *Handler) RegisterPortalRoutes(rg *gin.RouterGroup) {
	rg.GET("/notifications", h.list)
	rg.GET("/notifications/unread-count", h.unreadCount)
	rg.PUT("/notifications/:id/read", h.markRead)
}

func (h *Handler) list(c *gin.Context) {
	userID := middleware.ActorIDFromContext(c)
	limit := queryInt(c, "limit", 20)
	offset := queryInt(c, "offset", 0)

	all, total, err := h.Svc.ListForUser(c.Request.Context(), userID, limit, offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list notifications", nil)
		return
	}
	items := make([]NotificationResponse, 0, len(all))
	for _, n := range all {
		items = append(items, toResponse(n))
	}
	respond.OK(c, respond.Page{Items: items, Limit: limit, Offset: offset, Total: total})
}

func (h *Handler) unreadCount(c *gin.Context) {
	userID := middleware.ActorIDFromContext(c)
	count, err := h.Svc.UnreadCount(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to count notifications", nil)
		return
	}
	respond.OK(c, gin.H{"unread": count})
}

func (h *Handler) markRead(c *gin.Context) {
	userID := middleware.ActorIDFromContext(c)
	n, err := h.Svc.MarkRead(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "notification not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to mark notification read", nil)
		return
	}
	respond.OK(c, toResponse(n))
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
