package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"meetroom/internal/models"
)

// parseTimeParam parses an RFC3339 query parameter; ok is false when the
// parameter is missing or malformed.
func parseTimeParam(c *gin.Context, name string) (time.Time, bool) {
	v := c.Query(name)
	if v == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// currentUser pulls the principal set by middleware.Auth.
func currentUser(c *gin.Context) *models.User {
	return c.MustGet("user").(*models.User)
}
