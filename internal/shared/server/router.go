package server

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"healthoffice-backend/internal/admins"
	"healthoffice-backend/internal/applications"
	"healthoffice-backend/internal/attachments"
	"healthoffice-backend/internal/audit"
	authlogin "healthoffice-backend/internal/auth"
	"healthoffice-backend/internal/facilities"
	"healthoffice-backend/internal/inspections"
	"healthoffice-backend/internal/notifications"
	"healthoffice-backend/internal/settings"
	"healthoffice-backend/internal/shared/config"
	"healthoffice-backend/internal/shared/metrics"
	"healthoffice-backend/internal/shared/server/middleware"
	"healthoffice-backend/internal/shared/server/respond"
)

// RouterDeps carries the handlers wired into the engine.
type RouterDeps struct {
	Config              config.Config
	AuthHandler         *authlogin.Handler
	AdminHandler        *admins.Handler
	FacilityHandler     *facilities.Handler
	ApplicationHandler  *applications.Handler
	InspectionHandler   *inspections.Handler
	NotificationHandler *notifications.Handler
	SettingHandler      *settings.Handler
	AuditHandler        *audit.Handler
	AttachmentHandler   *attachments.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.Auth(),
	)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	api.GET("/metrics", metrics.Handler())
	deps.AuthHandler.RegisterRoutes(api)

	admin := api.Group("/admin")
	deps.AdminHandler.RegisterRoutes(admin)
	deps.FacilityHandler.RegisterRoutes(admin)
	deps.ApplicationHandler.RegisterAdminRoutes(admin)
	deps.InspectionHandler.RegisterRoutes(admin)
	deps.SettingHandler.RegisterRoutes(admin)
	deps.AuditHandler.RegisterRoutes(admin)
	deps.AttachmentHandler.RegisterAdminRoutes(admin)

	portal := api.Group("/portal")
	deps.ApplicationHandler.RegisterPortalRoutes(portal)
	deps.NotificationHandler.RegisterPortalRoutes(portal)
	deps.AttachmentHandler.RegisterPortalRoutes(portal)

	r.NoRoute(spaFallback(deps.Config.StaticDir))

	return r
}

// spaFallback serves the single-page client. Unknown non-API paths return the
// built asset when one exists; otherwise HTML-accepting clients get
// index.html so client-side routing can resolve the path, and API-style
// clients get a JSON 404.
func spaFallback(staticDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if strings.HasPrefix(path, "/api/") {
			respond.Error(c, http.StatusNotFound, "not_found", "route not found", nil)
			return
		}

		if staticDir != "" {
			candidate := filepath.Join(staticDir, filepath.Clean("/"+path))
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				c.File(candidate)
				return
			}
			if strings.Contains(c.GetHeader("Accept"), "text/html") {
				index := filepath.Join(staticDir, "index.html")
				if _, err := os.Stat(index); err == nil {
					c.File(index)
					return
				}
			}
		}
		respond.Error(c, http.StatusNotFound, "not_found", "route not found", nil)
	}
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
