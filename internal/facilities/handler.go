package facilities

import (
	"errors"
	"net/http"
	"strconv"

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

// RegisterRoutes attaches facility management routes to the admin group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/facilities", h.create)
	rg.GET("/facilities", h.list)
	rg.GET("/facilities/:id", h.get)
	rg.PUT("/facilities/:id", h.update)
	rg.DELETE("/facilities/:id", h.deactivate)
	rg.POST("/facilities/:id/users", h.createUser)
	rg.GET("/facilities/:id/users", h.listUsers)
}

type facilityRequest struct {
	FacilityCode string `json:"facilityCode"`
	NameAr       string `json:"nameAr"`
	NameEn       string `json:"nameEn"`
	FacilityType string `json:"facilityType"`
	LicenseType  string `json:"licenseType"`
	IsActive     *bool  `json:"isActive"`
}

func (h *Handler) create(c *gin.Context) {
	var req facilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	facility, err := h.Svc.Create(c.Request.Context(), Facility{
		FacilityCode: req.FacilityCode,
		NameAr:       req.NameAr,
		NameEn:       req.NameEn,
		FacilityType: req.FacilityType,
		LicenseType:  req.LicenseType,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "facilityCode, nameAr and facilityType are required", nil)
		case errors.Is(err, ErrDuplicate):
			respond.Error(c, http.StatusConflict, "conflict", "facility code already registered", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to create facility", nil)
		}
		return
	}
	respond.JSON(c, http.StatusCreated, toResponse(facility))
}

func (h *Handler) list(c *gin.Context) {
	limit := queryInt(c, "limit", 20)
	offset := queryInt(c, "offset", 0)

	all, total, err := h.Svc.List(c.Request.Context(), limit, offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list facilities", nil)
		return
	}
	items := make([]FacilityResponse, 0, len(all))
	for _, f := range all {
		items = append(items, toResponse(f))
	}
	respond.OK(c, respond.Page{Items: items, Limit: limit, Offset: offset, Total: total})
}

func (h *Handler) get(c *gin.Context) {
	facility, err := h.Svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "facility not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch facility", nil)
		return
	}
	respond.OK(c, toResponse(facility))
}

func (h *Handler) update(c *gin.Context) {
	var req facilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	existing, err := h.Svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "facility not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch facility", nil)
		return
	}

	if req.NameAr != "" {
		existing.NameAr = req.NameAr
	}
	if req.NameEn != "" {
		existing.NameEn = req.NameEn
	}
	if req.FacilityType != "" {
		existing.FacilityType = req.FacilityType
	}
	if req.LicenseType != "" {
		existing.LicenseType = req.LicenseType
	}
	if req.IsActive != nil {
		existing.IsActive = *req.IsActive
	}

	facility, err := h.Svc.Update(c.Request.Context(), existing)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to update facility", nil)
		return
	}
	respond.OK(c, toResponse(facility))
}

func (h *Handler) deactivate(c *gin.Context) {
	facility, err := h.Svc.Deactivate(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "facility not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to deactivate facility", nil)
		return
	}
	respond.OK(c, toResponse(facility))
}

type createUserRequest struct {
	FirstName   string `json:"firstName"`
	MiddleName  string `json:"middleName"`
	LastName    string `json:"lastName"`
	PhoneNumber string `json:"phoneNumber"`
	Password    string `json:"password"`
	UserType    string `json:"userType"`
}

func (h *Handler) createUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	user, err := h.Svc.CreateUser(c.Request.Context(), User{
		FacilityID:  c.Param("id"),
		FirstName:   req.FirstName,
		MiddleName:  req.MiddleName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
		UserType:    req.UserType,
	}, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "firstName, lastName, phoneNumber and password are required", nil)
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "facility not found", nil)
		case errors.Is(err, ErrDuplicate):
			respond.Error(c, http.StatusConflict, "conflict", "phone number already registered", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to create facility user", nil)
		}
		return
	}
	respond.JSON(c, http.StatusCreated, toUserResponse(user))
}

func (h *Handler) listUsers(c *gin.Context) {
	users, err := h.Svc.UsersOf(c.Request.Context(), c.Param("id"))
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list facility users", nil)
		return
	}
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	respond.OK(c, out)
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
