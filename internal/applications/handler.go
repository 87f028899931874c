package applications

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"healthoffice-backend/internal/facilities"
	"healthoffice-backend/internal/shared/server/middleware"
	"healthoffice-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterAdminRoutes attaches application review routes to the admin group.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/applications", h.list)
	rg.GET("/applications/:id", h.get)
	rg.PUT("/applications/:id/status", h.setStatus)
}

// RegisterPortalRoutes attaches application routes to the portal group.
func (h *Handler) RegisterPortalRoutes(rg *gin.RouterGroup) {
	rg.POST("/applications", h.submit)
	rg.GET("/applications", h.listMine)
	rg.GET("/applications/:id", h.getMine)
}

func (h *Handler) submit(c *gin.Context) {
	facilityID := middleware.FacilityIDFromContext(c)
	userID := middleware.ActorIDFromContext(c)

	app, err := h.Svc.Submit(c.Request.Context(), facilityID, userID)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "token is not scoped to a facility", nil)
		case errors.Is(err, facilities.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "facility not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to submit application", nil)
		}
		return
	}
	respond.JSON(c, http.StatusCreated, toResponse(app))
}

func (h *Handler) listMine(c *gin.Context) {
	facilityID := middleware.FacilityIDFromContext(c)
	all, err := h.Svc.ListByFacility(c.Request.Context(), facilityID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list applications", nil)
		return
	}
	items := make([]ApplicationResponse, 0, len(all))
	for _, a := range all {
		items = append(items, toResponse(a))
	}
	respond.OK(c, items)
}

func (h *Handler) getMine(c *gin.Context) {
	app, err := h.Svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "application not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch application", nil)
		return
	}
	// Portal callers only see applications belonging to their facility.
	if app.FacilityID != middleware.FacilityIDFromContext(c) {
		respond.Error(c, http.StatusNotFound, "not_found", "application not found", nil)
		return
	}
	respond.OK(c, toResponse(app))
}

func (h *Handler) list(c *gin.Context) {
	status := c.Query("status")
	limit := queryInt(c, "limit", 20)
	offset := queryInt(c, "offset", 0)

	all, total, err := h.Svc.List(c.Request.Context(), status, limit, offset)
	if err != nil {
		if errors.Is(err, ErrBadStatus) {
			respond.Error(c, http.StatusBadRequest, "validation_error", "unknown application status", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list applications", nil)
		return
	}
	items := make([]ApplicationResponse, 0, len(all))
	for _, a := range all {
		items = append(items, toResponse(a))
	}
	respond.OK(c, respond.Page{Items: items, Limit: limit, Offset: offset, Total: total})
}

func (h *Handler) get(c *gin.Context) {
	app, err := h.Svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "application not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch application", nil)
		return
	}
	respond.OK(c, toResponse(app))
}

type setStatusRequest struct {
	Status string `json:"status"`
	Note   string `json:"note"`
}

func (h *Handler) setStatus(c *gin.Context) {
	var req setStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	app, err := h.Svc.SetStatus(c.Request.Context(), c.Param("id"), req.Status, middleware.ActorIDFromContext(c), req.Note)
	if err != nil {
		switch {
		case errors.Is(err, ErrBadStatus):
			respond.Error(c, http.StatusBadRequest, "validation_error", "unknown application status", nil)
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "application not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to update application status", nil)
		}
		return
	}
	respond.OK(c, toResponse(app))
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
