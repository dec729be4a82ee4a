package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tsaci/backend/internal/domain/identity"
	"github.com/tsaci/backend/internal/domain/shared"
	"github.com/tsaci/backend/internal/infrastructure/auth"
	"github.com/tsaci/backend/internal/interfaces/http/dto"
)

// JWT context keys
const (
	JWTClaimsKey  = "jwt_claims"
	JWTUserIDKey  = "jwt_user_id"
	JWTRoleKey    = "jwt_role"
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
)

// JWTAuth authenticates requests with a Bearer token. Verification outcomes
// map to distinct wire codes so clients can tell a clock problem from a
// tampered token.
func JWTAuth(tokens *auth.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(AuthHeaderKey)
		if header == "" {
			abortUnauthorized(c, dto.ErrCodeUnauthorized, "Authorization header is required")
			return
		}
		if !strings.HasPrefix(header, BearerPrefix) {
			abortUnauthorized(c, dto.ErrCodeUnauthorized, "Authorization header must use the Bearer scheme")
			return
		}

		tokenString := strings.TrimSpace(strings.TrimPrefix(header, BearerPrefix))
		claims, err := tokens.Verify(tokenString)
		if err != nil {
			var domainErr *shared.DomainError
			code := dto.ErrCodeUnauthorized
			if errors.As(err, &domainErr) {
				code = dto.NormalizeErrorCode(domainErr.Code)
			}
			abortUnauthorized(c, code, err.Error())
			return
		}

		c.Set(JWTClaimsKey, claims)
		c.Set(JWTUserIDKey, claims.UserID)
		c.Set(JWTRoleKey, claims.Role)
		c.Next()
	}
}

// RequireRole allows the request through only when the authenticated user's
// role is in the given set. It must run after JWTAuth.
func RequireRole(roles ...identity.Role) gin.HandlerFunc {
	allowed := make(map[identity.Role]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}

	return func(c *gin.Context) {
		role, ok := GetJWTRole(c)
		if !ok {
			abortUnauthorized(c, dto.ErrCodeUnauthorized, "Authentication is required")
			return
		}
		if _, ok := allowed[identity.Role(role)]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponse(dto.ErrCodeForbidden, "Your role does not permit this operation"))
			return
		}
		c.Next()
	}
}

// GetJWTClaims returns the verified claims set by JWTAuth
func GetJWTClaims(c *gin.Context) (*auth.Claims, bool) {
	value, exists := c.Get(JWTClaimsKey)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*auth.Claims)
	return claims, ok
}

// GetJWTUserID returns the authenticated user's ID
func GetJWTUserID(c *gin.Context) (int64, bool) {
	value, exists := c.Get(JWTUserIDKey)
	if !exists {
		return 0, false
	}
	id, ok := value.(int64)
	return id, ok
}

// GetJWTRole returns the authenticated user's role
func GetJWTRole(c *gin.Context) (string, bool) {
	value, exists := c.Get(JWTRoleKey)
	if !exists {
		return "", false
	}
	role, ok := value.(string)
	return role, ok
}

func abortUnauthorized(c *gin.Context, code, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(code, message))
}
