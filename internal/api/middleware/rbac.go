package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/realtorhub/homes-api/internal/core/domain"
)

// RoleLookup resolves the stored role of a user. Tokens carry no role, so the
// guard always asks the user store.
type RoleLookup interface {
	RoleOf(ctx context.Context, userID int64) (domain.Role, error)
}

// RBAC enforces role-based access control. It must run after Auth.
func RBAC(lookup RoleLookup, allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := UserFrom(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
			}

			role, err := lookup.RoleOf(c.Request().Context(), user.ID)
			if err != nil {
				if errors.Is(err, domain.ErrUserNotFound) {
					return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
				}
				return err
			}
			if _, ok := allowed[role]; !ok {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
