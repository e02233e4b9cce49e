// Package actor resolves the acting user from the X-Sharer-User-Id header.
// The gateway in front of this service authenticates users and forwards their
// id in that header; this service trusts it.
package actor

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Header carries the id of the user performing the request.
const Header = "X-Sharer-User-Id"

const contextKey = "actorID"

// Required extracts and validates the actor id header, aborting with 400 when
// it is missing or not a UUID.
func Required() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(Header)
		if id == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": Header + " header is required"})
			return
		}
		if _, err := uuid.Parse(id); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": Header + " header must be a valid UUID"})
			return
		}

		c.Set(contextKey, id)
		c.Next()
	}
}

// UserID returns the validated actor id or empty string.
func UserID(c *gin.Context) string {
	if v, ok := c.Get(contextKey); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
