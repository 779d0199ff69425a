package httpserver

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"storefront-gateway/internal/session"
)

const sessionCtxKey = "storefront-session"

func issueSessionHandler(sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := sessions.Issue()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "could not create session"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"token": token})
	}
}

// sessionMiddleware resolves the bearer session token and stores the
// session on the request context.
func sessionMiddleware(sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		if header == "" || token == "" || token == header {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "session token required"})
			return
		}
		sess, ok := sessions.Get(token)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid or expired session"})
			return
		}
		c.Set(sessionCtxKey, sess)
		c.Next()
	}
}

func currentSession(c *gin.Context) *session.Session {
	v, _ := c.Get(sessionCtxKey)
	sess, _ := v.(*session.Session)
	return sess
}
