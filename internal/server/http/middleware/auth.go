package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// ServiceSubjectContextKey is a gin context key for the verified service
// account subject.
const ServiceSubjectContextKey = "serviceSubject"

// TokenVerifier checks a bearer service token and returns its subject.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// ServiceAuthRequired guards the task callback endpoints: only holders of a
// valid dispatcher service token may invoke them.
func ServiceAuthRequired(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		subject, err := verifier.Verify(token)
		if err != nil {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		c.Set(ServiceSubjectContextKey, subject)
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(strings.ToLower(authHeader), "bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}
	return ""
}
