package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/realtorhub/homes-api/internal/api/middleware"
	"github.com/realtorhub/homes-api/internal/core/domain"
)

// currentUser returns the identity injected by the Auth middleware, or
// ErrUnauthorized when the route was reached without one.
func currentUser(c echo.Context) (domain.UserInfo, error) {
	user, ok := middleware.UserFrom(c)
	if !ok {
		return domain.UserInfo{}, domain.ErrUnauthorized
	}
	return user, nil
}

// pathID parses the integer :id route parameter.
func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "id must be a positive integer")
	}
	return id, nil
}
