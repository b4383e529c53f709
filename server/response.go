package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/kbukum/socialfeed/errors"
	"github.com/kbukum/socialfeed/logger"
)

// RespondWithError writes err as the flat error body. Anything that is not
// an *apperrors.AppError becomes a generic 500 whose cause is logged but never
// sent to the client.
func RespondWithError(c *gin.Context, err error) {
	appErr := apperrors.From(err)
	if appErr.HTTPStatus >= http.StatusInternalServerError {
		fields := map[string]interface{}{
			"code": string(appErr.Code),
			"path": c.Request.URL.Path,
		}
		if appErr.Cause != nil {
			fields["error"] = appErr.Cause.Error()
		}
		logger.GetGlobalLogger().WithContext(c.Request.Context()).Error("Request failed", fields)
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToResponse())
}

// RespondJSON sends data as a bare JSON body with the given status.
func RespondJSON(c *gin.Context, status int, data any) {
	c.JSON(status, data)
}

// RespondOK sends a 200 response with data as the body.
func RespondOK(c *gin.Context, data any) {
	RespondJSON(c, http.StatusOK, data)
}

// RespondCreated sends a 201 response with data as the body.
func RespondCreated(c *gin.Context, data any) {
	RespondJSON(c, http.StatusCreated, data)
}

func notFoundRoute(path string) *apperrors.AppError {
	return apperrors.New(apperrors.ErrCodeNotFound, fmt.Sprintf("No route for %s", path), http.StatusNotFound)
}

func methodNotAllowed(method string) *apperrors.AppError {
	return apperrors.New(apperrors.ErrCodeInvalidInput, fmt.Sprintf("Method %s not allowed", method), http.StatusMethodNotAllowed)
}
