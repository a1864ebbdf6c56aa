package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/SyncraLabs/Accountify-sub001/internal/core/services"
)

// ContextUserIDKey is where the authenticated user's ID lives in the gin
// context after RequireAuth has run.
const ContextUserIDKey = "userID"

// RequireAuth guards a route group: it validates the bearer token and stores
// the token's subject so handlers can scope every query to that user.
func RequireAuth(tokens *services.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			abortUnauthorized(c, "missing or malformed authorization header")
			return
		}

		userID, err := tokens.ValidateToken(token)
		if err != nil {
			abortUnauthorized(c, "invalid or expired token")
			return
		}

		c.Set(ContextUserIDKey, userID)
		c.Next()
	}
}

// bearerToken extracts the credential from an "Authorization: Bearer <token>"
// header. The scheme comparison is case-insensitive per RFC 7235.
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	token = strings.TrimSpace(token)
	if !found || token == "" || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	return token, true
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
}

// GetUserID reads the authenticated user's ID set by RequireAuth.
func GetUserID(c *gin.Context) (string, bool) {
	id, exists := c.Get(ContextUserIDKey)
	if !exists {
		return "", false
	}
	s, ok := id.(string)
	return s, ok
}
