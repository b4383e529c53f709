package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/socialfeed/auth"
	"github.com/kbukum/socialfeed/auth/authctx"
	"github.com/kbukum/socialfeed/auth/jwt"
	apperrors "github.com/kbukum/socialfeed/errors"
	"github.com/kbukum/socialfeed/logger"
)

// ClaimsKey is the gin context key holding validated claims.
const ClaimsKey = "claims"

// Auth validates the Bearer token of every request it guards. Claims are
// stored on the request context via authctx and under ClaimsKey in the gin
// context; the raw token is kept with authctx.SetToken.
func Auth(validator auth.TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abort(c, apperrors.Unauthorized("Authorization header required"))
			return
		}
		scheme, token, ok := strings.Cut(header, " ")
		token = strings.TrimSpace(token)
		if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
			abort(c, apperrors.Unauthorized("Invalid authorization header format"))
			return
		}

		claims, err := validator.ValidateToken(token)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				abort(c, apperrors.TokenExpired())
				return
			}
			abort(c, apperrors.InvalidToken().WithCause(err))
			return
		}

		ctx := authctx.SetToken(authctx.Set(c.Request.Context(), claims), token)
		ctx = logger.ContextWithUserID(ctx, claims.Identity().UserID)
		c.Request = c.Request.WithContext(ctx)
		c.Set(ClaimsKey, claims)
		c.Next()
	}
}
