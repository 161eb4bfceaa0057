package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// CORSConfig describes the preflight answer.
type CORSConfig struct {
	AllowMethods []string
	AllowHeaders []string
	MaxAgeSec    int
}

var DefaultCORSConfig = CORSConfig{
	AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
	AllowHeaders: []string{"Content-Type", "X-Request-ID"},
	MaxAgeSec:    86400,
}

// CORS answers every OPTIONS request with 200 and marks every response as
// readable from any origin. The API carries no credentials, so the wildcard
// origin is used even when the request has no Origin header.
func CORS(cfg CORSConfig) gin.HandlerFunc {
	methods := strings.Join(cfg.AllowMethods, ", ")
	headers := strings.Join(cfg.AllowHeaders, ", ")
	maxAge := strconv.Itoa(cfg.MaxAgeSec)

	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")

		if c.Request.Method == http.MethodOptions {
			c.Header("Access-Control-Allow-Methods", methods)
			c.Header("Access-Control-Allow-Headers", headers)
			c.Header("Access-Control-Max-Age", maxAge)
			c.AbortWithStatus(http.StatusOK)
			return
		}
		c.Next()
	}
}
