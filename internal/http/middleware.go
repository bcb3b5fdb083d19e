package http

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
)

// AdminAuthMiddleware checks for a secret X-Admin-Token header. Only the
// seed endpoint is gated behind it.
func AdminAuthMiddleware() gin.HandlerFunc {
	// We read this once when the middleware is initialized.
	requiredToken := os.Getenv("X_ADMIN_TOKEN")

	// If no token is set in the environment, we must fail closed.
	if requiredToken == "" {
		panic("CRITICAL: X_ADMIN_TOKEN environment variable not set.")
	}

	return func(c *gin.Context) {
		suppliedToken := c.GetHeader("X-Admin-Token")

		if suppliedToken == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized: Admin token required"})
			return
		}

		if suppliedToken != requiredToken {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Forbidden: Invalid admin token"})
			return
		}

		c.Next()
	}
}

// SecurityHeadersMiddleware adds basic, sensible security headers.
func SecurityHeadersMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Prevents clickjacking
		c.Header("X-Frame-Options", "DENY")
		// Prevents MIME-type sniffing
		c.Header("X-Content-Type-Options", "nosniff")

		// Posts embed images from arbitrary hosts, so img-src stays open.
		csp := "default-src 'self';"
		csp += " img-src * data:;"
		csp += " script-src 'self' 'unsafe-inline';"
		csp += " style-src 'self' 'unsafe-inline';"
		csp += " connect-src 'self' ws: wss:;"
		c.Header("Content-Security-Policy", csp)

		c.Next()
	}
}
