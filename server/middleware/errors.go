package middleware

import (
	"github.com/gin-gonic/gin"

	apperrors "github.com/kbukum/socialfeed/errors"
)

// abort stops the chain and writes appErr as the flat error body.
func abort(c *gin.Context, appErr *apperrors.AppError) {
	c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToResponse())
}
