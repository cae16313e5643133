package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/nandakusuma/blogsocial/internal/domain/entity"
	repo "github.com/nandakusuma/blogsocial/internal/domain/repository"
	"github.com/nandakusuma/blogsocial/pkg/helpers"
	"github.com/nandakusuma/blogsocial/pkg/response"
)

// Context keys set by the auth middleware.
const (
	CtxUserIDKey   = "userID"
	CtxUserRoleKey = "userRole"
)

// Policy selects how strict the gate is. PolicyUser requires a valid
// token whose subject resolves to a non-disabled account; PolicyAdmin
// additionally requires the admin role.
type Policy int

const (
	PolicyUser Policy = iota
	PolicyAdmin
)

// Auth reads the bearer token from the Authorization header, verifies
// it, resolves the subject and applies the policy. On success it sets
// userID and userRole in the Gin context.
func Auth(users repo.UserRepository, jwt *helpers.JWTManager, policy Policy) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			response.AbortError(c, http.StatusUnauthorized, "unauthorized")
			return
		}
		claims, err := jwt.Parse(token)
		if err != nil {
			response.AbortError(c, http.StatusUnauthorized, "unauthorized")
			return
		}

		u, err := users.GetByID(c.Request.Context(), claims.UserID)
		if err != nil {
			response.AbortError(c, http.StatusUnauthorized, "no user exists")
			return
		}
		if u.IsDisabled {
			response.AbortError(c, http.StatusUnauthorized, "user is disabled")
			return
		}
		if policy == PolicyAdmin && claims.Role != entity.RoleAdmin {
			response.AbortError(c, http.StatusUnauthorized, "unauthorized")
			return
		}

		c.Set(CtxUserIDKey, claims.UserID)
		c.Set(CtxUserRoleKey, claims.Role)
		c.Next()
	}
}

// bearerToken pulls the token from the Authorization header, accepting
// both the bare token and the "Bearer <token>" form.
func bearerToken(c *gin.Context) string {
	h := strings.TrimSpace(c.GetHeader("Authorization"))
	if h == "" {
		return ""
	}
	if strings.HasPrefix(strings.ToLower(h), "bearer ") {
		return strings.TrimSpace(h[len("bearer "):])
	}
	return h
}
