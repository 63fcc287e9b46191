package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/realtorhub/homes-api/internal/core/domain"
	"github.com/realtorhub/homes-api/internal/pkg/token"
)

// userKey is the echo.Context key holding the authenticated domain.UserInfo.
const userKey = "user"

// Auth validates the bearer JWT and injects the caller identity into context.
func Auth(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			user, err := token.Parse(jwtSecret, strings.TrimSpace(parts[1]))
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			SetUser(c, user)
			return next(c)
		}
	}
}

// SetUser attaches the caller identity to the request context.
func SetUser(c echo.Context, user domain.UserInfo) {
	c.Set(userKey, user)
}

// UserFrom returns the identity set by Auth, if any.
func UserFrom(c echo.Context) (domain.UserInfo, bool) {
	user, ok := c.Get(userKey).(domain.UserInfo)
	if !ok || user.ID == 0 {
		return domain.UserInfo{}, false
	}
	return user, true
}
