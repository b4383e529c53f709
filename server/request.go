package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/kbukum/socialfeed/errors"
	"github.com/kbukum/socialfeed/util"
)

// BindJSON decodes the request body into dst. Malformed or empty JSON is a
// 400; a body cut off by the size limit is a 413.
func BindJSON(c *gin.Context, dst any) error {
	if c.Request.Body == nil || c.Request.Body == http.NoBody {
		return apperrors.Validation("Request body is required")
	}
	dec := json.NewDecoder(c.Request.Body)
	if err := dec.Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			return apperrors.New(apperrors.ErrCodeInvalidInput, "Request body too large", http.StatusRequestEntityTooLarge)
		case errors.Is(err, io.EOF):
			return apperrors.Validation("Request body is required")
		default:
			return apperrors.Validation("Request body is not valid JSON").WithCause(err)
		}
	}
	return nil
}

// PathID parses a positive integer path parameter; anything else is a 400.
func PathID(c *gin.Context, name string) (int64, error) {
	id, err := util.ParseID(c.Param(name))
	if err != nil {
		return 0, apperrors.InvalidInput(name, err.Error())
	}
	return id, nil
}
