package auth

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"healthoffice-backend/internal/admins"
	"healthoffice-backend/internal/facilities"
	sharedauth "healthoffice-backend/internal/shared/auth"
	"healthoffice-backend/internal/shared/server/respond"
)

// Handler issues bearer tokens for the two actor kinds. Both login routes
// are public; everything behind the admin and portal prefixes requires the
// token issued here.
type Handler struct {
	Admins     *admins.Service
	Facilities *facilities.Service
	TokenTTL   time.Duration
}

// NewHandler constructs a Handler.
func NewHandler(adminSvc *admins.Service, facilitySvc *facilities.Service, tokenTTL time.Duration) *Handler {
	return &Handler{Admins: adminSvc, Facilities: facilitySvc, TokenTTL: tokenTTL}
}

// RegisterRoutes attaches the login routes to the public API group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/auth/admin/login", h.adminLogin)
	rg.POST("/auth/portal/login", h.portalLogin)
}

type adminLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	Actor     string    `json:"actor"`
	FullName  string    `json:"fullName,omitempty"`
	Roles     []string  `json:"roles,omitempty"`
}

func (h *Handler) adminLogin(c *gin.Context) {
	var req adminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Username == "" || req.Password == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "username and password are required", nil)
		return
	}

	admin, err := h.Admins.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "invalid credentials", nil)
		return
	}

	claims := sharedauth.Claims{
		Actor:    sharedauth.ActorAdmin,
		Roles:    admin.RoleCodes(),
		FullName: admin.FullName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: admin.ID,
		},
	}
	h.issue(c, claims)
}

type portalLoginRequest struct {
	PhoneNumber string `json:"phoneNumber"`
	Password    string `json:"password"`
}

func (h *Handler) portalLogin(c *gin.Context) {
	var req portalLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.PhoneNumber == "" || req.Password == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "phoneNumber and password are required", nil)
		return
	}

	user, err := h.Facilities.AuthenticateUser(c.Request.Context(), req.PhoneNumber, req.Password)
	if err != nil {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "invalid credentials", nil)
		return
	}

	claims := sharedauth.Claims{
		Actor:      sharedauth.ActorFacilityUser,
		FullName:   user.FullName(),
		FacilityID: user.FacilityID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: user.ID,
		},
	}
	h.issue(c, claims)
}

func (h *Handler) issue(c *gin.Context, claims sharedauth.Claims) {
	token, err := sharedauth.Sign(claims, h.TokenTTL)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to issue token", nil)
		return
	}
	ttl := h.TokenTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	respond.OK(c, loginResponse{
		Token:     token,
		ExpiresAt: time.Now().UTC().Add(ttl),
		Actor:     claims.Actor,
		FullName:  claims.FullName,
		Roles:     claims.Roles,
	})
}
