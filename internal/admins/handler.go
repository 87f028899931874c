package admins

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

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

// RegisterRoutes attaches admin management routes to the admin group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/admins", h.create)
	rg.GET("/admins", h.list)
	rg.GET("/admins/:id", h.get)
	rg.PUT("/admins/:id", h.update)
	rg.PUT("/admins/:id/roles", h.assignRoles)
	rg.GET("/roles", h.roles)
}

type createRequest struct {
	Username string   `json:"username"`
	Password string   `json:"password"`
	FullName string   `json:"fullName"`
	Roles    []string `json:"roles"`
}

func (h *Handler) create(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	admin, err := h.Svc.Create(c.Request.Context(), req.Username, req.Password, req.FullName, req.Roles)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "username, password and fullName are required", nil)
		case errors.Is(err, ErrDuplicate):
			respond.Error(c, http.StatusConflict, "conflict", "username already taken", nil)
		case errors.Is(err, ErrRoleNotFound):
			respond.Error(c, http.StatusBadRequest, "validation_error", "unknown role code", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to create admin", nil)
		}
		return
	}
	respond.JSON(c, http.StatusCreated, toResponse(admin))
}

func (h *Handler) list(c *gin.Context) {
	all, err := h.Svc.List(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list admins", nil)
		return
	}
	out := make([]AdminResponse, 0, len(all))
	for _, a := range all {
		out = append(out, toResponse(a))
	}
	respond.OK(c, out)
}

func (h *Handler) get(c *gin.Context) {
	admin, err := h.Svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "admin not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch admin", nil)
		return
	}
	respond.OK(c, toResponse(admin))
}

type updateRequest struct {
	FullName string `json:"fullName"`
	Password string `json:"password"`
	Enabled  bool   `json:"enabled"`
}

func (h *Handler) update(c *gin.Context) {
	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	admin, err := h.Svc.Update(c.Request.Context(), c.Param("id"), req.FullName, req.Password, req.Enabled)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "admin not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to update admin", nil)
		return
	}
	respond.OK(c, toResponse(admin))
}

type assignRolesRequest struct {
	Roles []string `json:"roles"`
}

func (h *Handler) assignRoles(c *gin.Context) {
	var req assignRolesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	if err := h.Svc.AssignRoles(c.Request.Context(), c.Param("id"), req.Roles); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "admin not found", nil)
		case errors.Is(err, ErrRoleNotFound):
			respond.Error(c, http.StatusBadRequest, "validation_error", "unknown role code", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to assign roles", nil)
		}
		return
	}

	admin, err := h.Svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch admin", nil)
		return
	}
	respond.OK(c, toResponse(admin))
}

func (h *Handler) roles(c *gin.Context) {
	roles, err := h.Svc.Roles(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list roles", nil)
		return
	}
	out := make([]RoleResponse, 0, len(roles))
	for _, r := range roles {
		out = append(out, toRoleResponse(r))
	}
	respond.OK(c, out)
}
