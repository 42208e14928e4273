package middleware

import (
	"net/http"
	"strings"

	"hospital-appointment-api/internal/authz"
	"hospital-appointment-api/pkg/utils"

	"github.com/gin-gonic/gin"
)

// Context keys set by the auth middlewares
const (
	ContextUserID     = "userID"
	ContextRole       = "role"
	ContextHospitalID = "hospitalID"
)

// AuthMiddleware validates JWT access token from Authorization header
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := claimsFromHeader(c)
		if !ok {
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextRole, claims.Role)
		if claims.HospitalID != nil {
			c.Set(ContextHospitalID, *claims.HospitalID)
		}

		c.Next()
	}
}

// OptionalAuth injects claims when a valid bearer token is present but
// lets anonymous requests through. The public booking endpoint uses it
// to link a Booking row for signed-in patients.
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.Next()
			return
		}

		claims, err := utils.ValidateAccessToken(parts[1])
		if err != nil {
			c.Next()
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextRole, claims.Role)
		if claims.HospitalID != nil {
			c.Set(ContextHospitalID, *claims.HospitalID)
		}
		c.Next()
	}
}

// RequireRoles checks that the authenticated user holds one of the
// given roles
func RequireRoles(roles ...authz.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(ContextRole)
		if !exists {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Authentication required")
			c.Abort()
			return
		}

		for _, allowed := range roles {
			if role.(string) == string(allowed) {
				c.Next()
				return
			}
		}

		utils.ErrorResponse(c, http.StatusForbidden, "Access denied")
		c.Abort()
	}
}

// ActorFromContext rebuilds the authz actor from the request context
func ActorFromContext(c *gin.Context) authz.Actor {
	actor := authz.Actor{}
	if v, ok := c.Get(ContextUserID); ok {
		actor.UserID = v.(uint)
	}
	if v, ok := c.Get(ContextRole); ok {
		actor.Role = authz.Role(v.(string))
	}
	if v, ok := c.Get(ContextHospitalID); ok {
		id := v.(uint)
		actor.HospitalID = &id
	}
	return actor
}

func claimsFromHeader(c *gin.Context) (*utils.Claims, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Authorization header required")
		return nil, false
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Invalid authorization format. Use: Bearer <token>")
		return nil, false
	}

	claims, err := utils.ValidateAccessToken(parts[1])
	if err != nil {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Invalid or expired token")
		return nil, false
	}
	return claims, true
}
