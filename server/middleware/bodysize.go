package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/kbukum/socialfeed/errors"
	"github.com/kbukum/socialfeed/util"
)

const defaultMaxBodySize = 1 << 20 // 1MB

// BodySizeLimit restricts the request body to the given size string
// (e.g. "1MB", "512KB"). Requests declaring a larger Content-Length are
// rejected with 413; others are cut off while reading.
func BodySizeLimit(maxSize string) gin.HandlerFunc {
	size := util.ParseSize(maxSize, defaultMaxBodySize)
	return func(c *gin.Context) {
		if c.Request.ContentLength > size {
			abort(c, apperrors.New(apperrors.ErrCodeInvalidInput,
				fmt.Sprintf("Request body exceeds %d bytes", size), http.StatusRequestEntityTooLarge))
			return
		}
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, size)
		}
		c.Next()
	}
}
