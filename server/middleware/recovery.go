package middleware

import (
	"fmt"
	"io"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	apperrors "github.com/kbukum/socialfeed/errors"
	"github.com/kbukum/socialfeed/logger"
)

// Recovery turns a handler panic into a 500 with the generic internal error
// body. The panic value and stack go to log instead of gin's writer.
func Recovery(log *logger.Logger) gin.HandlerFunc {
	if log == nil {
		log = logger.GetGlobalLogger()
	}
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, recovered any) {
		log.WithContext(c.Request.Context()).Error("Panic recovered", logger.Fields(
			"error", fmt.Sprint(recovered),
			"stack", string(debug.Stack()),
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
		))
		abort(c, apperrors.Internal(fmt.Errorf("panic: %v", recovered)))
	})
}
