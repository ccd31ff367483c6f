package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/mywallet/internal/application"
	"github.com/oksasatya/mywallet/internal/domain/entity"
	"github.com/oksasatya/mywallet/pkg/response"
)

const CtxUserKey = "user"

// Authenticator resolves a bearer token to a user.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*entity.User, error)
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) string {
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}

// Auth resolves the bearer token to a user and stores it in the Gin context.
// No token aborts with 404, an unknown token or a missing user with 401.
func Auth(auth Authenticator, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := BearerToken(c.GetHeader("Authorization"))
		if token == "" {
			response.Abort(c, http.StatusNotFound)
			return
		}
		u, err := auth.Authenticate(c.Request.Context(), token)
		if errors.Is(err, application.ErrUnauthorized) {
			response.Abort(c, http.StatusUnauthorized)
			return
		}
		if err != nil {
			if logger != nil {
				logger.WithError(err).WithField("request_id", c.GetString(CtxRequestIDKey)).Error("resolve session failed")
			}
			response.Abort(c, http.StatusInternalServerError)
			return
		}
		c.Set(CtxUserKey, u)
		c.Next()
	}
}

// CurrentUser returns the user stored by Auth, or nil.
func CurrentUser(c *gin.Context) *entity.User {
	v, ok := c.Get(CtxUserKey)
	if !ok {
		return nil
	}
	u, _ := v.(*entity.User)
	return u
}
