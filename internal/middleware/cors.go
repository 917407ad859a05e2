package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CORS lets the distributor front end call the API from any origin. The
// allowed methods cover the full route table, including the PATCH used to
// reactivate users, and X-Request-ID is exposed so clients can correlate
// their requests with server logs.
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Request-ID")
		c.Header("Access-Control-Expose-Headers", "X-Request-ID")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
