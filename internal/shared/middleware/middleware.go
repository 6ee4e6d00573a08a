package middleware

import (
	"net/http"
	"strings"

	"nexusems/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

const (
	RoleOrganizer = "ORGANIZER"
	RoleAdmin     = "ADMIN"

	ctxUserID    = "user_id"
	ctxUserRole  = "user_role"
	ctxRequestID = "request_id"
)

// JWTAuth verifies an HS256 access token issued by the auth service and stores
// the caller's id and role on the context
func JWTAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.RespondJSON(c, http.StatusUnauthorized, "authorization header is required", nil)
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.RespondJSON(c, http.StatusUnauthorized, "authorization header format must be Bearer {token}", nil)
			c.Abort()
			return
		}

		token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			response.RespondJSON(c, http.StatusUnauthorized, "invalid or expired token", nil)
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok || claims["type"] != "access" {
			response.RespondJSON(c, http.StatusUnauthorized, "invalid token type", nil)
			c.Abort()
			return
		}

		userID, _ := claims["user_id"].(string)
		role, _ := claims["role"].(string)
		if userID == "" {
			response.RespondJSON(c, http.StatusUnauthorized, "token has no subject", nil)
			c.Abort()
			return
		}

		c.Set(ctxUserID, userID)
		c.Set(ctxUserRole, role)
		c.Next()
	}
}

// RequireRoles lets the request through when the caller has any of roles
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(ctxUserRole)
		if role == "" {
			response.RespondJSON(c, http.StatusUnauthorized, "user role not found in context", nil)
			c.Abort()
			return
		}

		for _, r := range roles {
			if role == r {
				c.Next()
				return
			}
		}

		response.RespondJSON(c, http.StatusForbidden, "insufficient permissions", nil)
		c.Abort()
	}
}

// RequireOrganizer admits organizers and admins
func RequireOrganizer() gin.HandlerFunc {
	return RequireRoles(RoleOrganizer, RoleAdmin)
}

// UserID returns the authenticated caller's id, empty when anonymous
func UserID(c *gin.Context) string {
	return c.GetString(ctxUserID)
}

// IsAdmin reports whether the authenticated caller is an admin
func IsAdmin(c *gin.Context) bool {
	return c.GetString(ctxUserRole) == RoleAdmin
}

// RequestID propagates X-Request-ID or assigns a new one
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader("X-Request-ID")
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set(ctxRequestID, rid)
		c.Writer.Header().Set("X-Request-ID", rid)
		c.Next()
	}
}
