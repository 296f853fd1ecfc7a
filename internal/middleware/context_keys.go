package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// actorIDKey is the key used to store the acting user's ID in the Gin context.
const actorIDKey = contextKey("actorID")

// actorIDHeader names the header the upstream auth layer sets after
// authenticating the caller. This core trusts it as an opaque identity.
const actorIDHeader = "X-Actor-ID"

// ActorIDMiddleware extracts the actor ID from the request header and stores
// it in the context for audit stamping. Requests without an actor are
// rejected; authentication itself happens upstream of this service.
func ActorIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		actorID := c.GetHeader(actorIDHeader)
		if actorID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing " + actorIDHeader + " header"})
			return
		}
		c.Set(string(actorIDKey), actorID)
		c.Next()
	}
}

// GetActorIDFromContext retrieves the acting user ID from the Gin context.
// It returns the actor ID and a boolean indicating if it was found.
func GetActorIDFromContext(c *gin.Context) (string, bool) {
	actorIDVal, exists := c.Get(string(actorIDKey))
	if !exists {
		actorIDVal := c.Request.Context().Value(actorIDKey)
		if actorIDVal != nil {
			return actorIDVal.(string), true
		}
		return "", false
	}

	actorID, ok := actorIDVal.(string)
	if !ok {
		return "", false
	}

	return actorID, true
}
