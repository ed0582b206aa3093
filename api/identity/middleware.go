package identity

import (
	"net/http"
	"strings"

	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// ContextUserClaims is the key used to store user claims in the Gin context.
	ContextUserClaims = "userClaims"
)

// Authoriz rejects requests without a valid bearer token and stores the
// decoded claims on the context.
func Authoriz(ts i.Tokenizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		claims, err := ts.Decode(parts[1])
		if err != nil {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		c.Set(ContextUserClaims, claims)
		c.Next()
	}
}

// UserID returns the authenticated user's ID from the claims set by Authoriz.
func UserID(c *gin.Context) (uuid.UUID, bool) {
	raw, ok := c.Get(ContextUserClaims)
	if !ok {
		return uuid.Nil, false
	}
	claims, ok := raw.(map[string]interface{})
	if !ok {
		return uuid.Nil, false
	}
	idString, ok := claims[i.ClaimUserID].(string)
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(idString)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
