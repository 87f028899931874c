package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"healthoffice-backend/internal/shared/auth"
	"healthoffice-backend/internal/shared/server/respond"
)

const (
	actorIDKey    = "actorId"
	actorKey      = "actor"
	rolesKey      = "actorRoles"
	facilityIDKey = "actorFacilityId"
	fullNameKey   = "actorName"
)

const (
	adminPrefix  = "/api/v1/admin/"
	portalPrefix = "/api/v1/portal/"
)

// Auth validates bearer tokens and enforces the path-prefix access rules:
// admin-prefixed paths require an ACTOR_ADMIN token, portal-prefixed paths an
// ACTOR_FACILITY_USER token, everything else is public. Tokens on public
// paths are still parsed so handlers can see the caller's identity.
func Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			return
		}

		path := c.Request.URL.Path
		requiredActor := ""
		switch {
		case strings.HasPrefix(path, adminPrefix):
			requiredActor = auth.ActorAdmin
		case strings.HasPrefix(path, portalPrefix):
			requiredActor = auth.ActorFacilityUser
		}

		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
		if authHeader == "" {
			if requiredActor != "" {
				respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
				return
			}
			c.Next()
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
			return
		}
		token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer"))
		if token == "" {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
			return
		}

		claims, err := auth.Verify(token)
		if err != nil {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
			return
		}

		if requiredActor != "" && claims.Actor != requiredActor {
			respond.Error(c, http.StatusForbidden, "forbidden", "insufficient privileges", nil)
			return
		}

		c.Set(actorIDKey, claims.Subject)
		c.Set(actorKey, claims.Actor)
		c.Set(rolesKey, claims.Roles)
		if claims.FacilityID != "" {
			c.Set(facilityIDKey, claims.FacilityID)
		}
		if claims.FullName != "" {
			c.Set(fullNameKey, claims.FullName)
		}
		c.Next()
	}
}

// ActorIDFromContext fetches the authenticated subject set by the gate.
func ActorIDFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(actorIDKey)
	if id, ok := val.(string); ok {
		return id
	}
	return ""
}

// ActorFromContext fetches the actor kind set by the gate.
func ActorFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(actorKey)
	if actor, ok := val.(string); ok {
		return actor
	}
	return ""
}

// RolesFromContext fetches the role codes set by the gate.
func RolesFromContext(c *gin.Context) []string {
	if c == nil {
		return nil
	}
	val, _ := c.Get(rolesKey)
	if roles, ok := val.([]string); ok {
		return roles
	}
	return nil
}

// FacilityIDFromContext fetches the facility scope of a portal token.
func FacilityIDFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(facilityIDKey)
	if id, ok := val.(string); ok {
		return id
	}
	return ""
}
