package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"

	"ticketpass/internal/identity"
)

// LoggingMiddleware logs HTTP requests
func LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start)

		caller := "anonymous"
		if p := identity.FromContext(c.Request.Context()); !p.IsAnonymous() {
			caller = p.String()
		}

		log.Printf(
			"%s %s %d %v %s %s",
			c.Request.Method,
			c.Request.URL.Path,
			c.Writer.Status(),
			duration,
			c.ClientIP(),
			caller,
		)
	}
}
