package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/realtorhub/homes-api/internal/core/domain"
	"github.com/realtorhub/homes-api/internal/core/service"
)

type errorResponse struct {
	Error string `json:"error"`
}

// errorMapping ties a sentinel to its status. An empty message means the
// error text itself is safe to show.
type errorMapping struct {
	target  error
	status  int
	message string
}

// Checked in order; the first errors.Is match wins.
var errorMappings = []errorMapping{
	{domain.ErrHomeNotFound, http.StatusNotFound, "home not found"},
	{domain.ErrUserNotFound, http.StatusNotFound, "user not found"},
	{domain.ErrUserExists, http.StatusConflict, "user already exists"},
	{domain.ErrInvalidFilter, http.StatusBadRequest, ""},
	{domain.ErrInvalidCredentials, http.StatusBadRequest, "invalid credentials"},
	{domain.ErrUnauthorized, http.StatusUnauthorized, "unauthorized"},
	{domain.ErrForbidden, http.StatusForbidden, "access forbidden"},
	{service.ErrImagesDisabled, http.StatusServiceUnavailable, "image uploads are not configured"},
}

// NewHTTPErrorHandler renders every error as {"error": "..."}. Domain errors
// get their mapped status; anything unknown is logged and hidden behind a 500.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if he.Internal != nil {
			log.Debug().Err(he.Internal).Str("path", c.Path()).Msg("http error")
		}
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			if m.message == "" {
				return m.status, err.Error()
			}
			return m.status, m.message
		}
	}

	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
