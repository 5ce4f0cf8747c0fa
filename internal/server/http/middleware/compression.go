package middleware

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// DecompressRequest swaps gzip encoded request bodies for their decoded
// stream before any handler reads them.
func DecompressRequest() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !strings.Contains(c.GetHeader("Content-Encoding"), "gzip") {
			c.Next()
			return
		}

		encoded := c.Request.Body
		decoded, err := gzip.NewReader(encoded)
		if err != nil {
			c.AbortWithStatus(http.StatusBadRequest)
			return
		}
		defer decoded.Close()
		defer encoded.Close()

		c.Request.Body = io.NopCloser(decoded)
		c.Request.Header.Del("Content-Encoding")
		c.Next()
	}
}
