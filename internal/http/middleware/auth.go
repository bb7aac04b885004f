package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"meetroom/internal/service"
)

// Auth resolves the session cookie to a user and aborts with 401 when there
// is no valid session. The user lands in the gin context under "user".
func Auth(svc service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tok, _ := c.Cookie("session_token")
		u, err := svc.CurrentUser(c.Request.Context(), tok)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}
		c.Set("user", u)
		c.Next()
	}
}
