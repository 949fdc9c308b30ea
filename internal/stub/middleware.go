package stub

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	jwtsvc "holidaze/internal/pkg/jwt"
	"holidaze/internal/pkg/response"
)

// requireAuth validates the bearer token and stores the caller's profile
// name on the context, mirroring how the remote API keys identity.
func requireAuth(jwt *jwtsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" {
			response.Error(c, http.StatusUnauthorized, "No authorization header was found")
			return
		}
		if !strings.HasPrefix(h, "Bearer ") {
			response.Error(c, http.StatusUnauthorized, "Invalid authorization header")
			return
		}

		tokenStr := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
		claims, err := jwt.ValidateToken(tokenStr)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "Invalid authorization token")
			return
		}

		c.Set("name", claims.Name)
		c.Next()
	}
}

func callerName(c *gin.Context) string {
	return c.GetString("name")
}
