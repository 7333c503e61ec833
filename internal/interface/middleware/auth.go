package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	userapp "github.com/oksasatya/recipe-app-api/internal/application"
	"github.com/oksasatya/recipe-app-api/pkg/response"
)

const CtxUserIDKey = "userID"

// TokenAuth validates the "Authorization: Token <key>" header and
// resolves it to a user. It sets userID, userEmail, and isStaff in the
// Gin context on success. A missing, malformed, or unknown credential
// aborts with a uniform 401.
func TokenAuth(svc *userapp.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		key, ok := bearerKey(c.GetHeader("Authorization"))
		if !ok {
			response.Error[any](c, http.StatusUnauthorized, "authentication credentials were not provided", nil)
			c.Abort()
			return
		}
		u, err := svc.GetUserByTokenKey(c.Request.Context(), key)
		if err != nil || u == nil {
			response.Error[any](c, http.StatusUnauthorized, "invalid token", nil)
			c.Abort()
			return
		}
		c.Set(CtxUserIDKey, u.ID)
		c.Set("userEmail", u.Email)
		c.Set("isStaff", u.IsStaff)
		c.Next()
	}
}

func bearerKey(header string) (string, bool) {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Token") {
		return "", false
	}
	key := strings.TrimSpace(parts[1])
	if key == "" {
		return "", false
	}
	return key, true
}
