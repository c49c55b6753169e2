package httpapi

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/simre/results-server/internal/auth"
	"github.com/simre/results-server/internal/service"
)

var (
	errUnauthorized = echo.NewHTTPError(http.StatusUnauthorized, "user not authenticated")
	errNoSession    = errors.New("session missing from request context")
)

// newHTTPErrorHandler maps service sentinels and validation errors to HTTP responses.
func newHTTPErrorHandler(logger *zap.Logger, v *requestValidator) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		code := http.StatusInternalServerError
		var body any

		var httpErr *echo.HTTPError
		var validationErrs validator.ValidationErrors

		switch {
		case errors.As(err, &validationErrs):
			code = http.StatusBadRequest
			body = echo.Map{"errors": v.fieldErrors(validationErrs)}
		case errors.As(err, &httpErr):
			if inner, ok := httpErr.Internal.(*echo.HTTPError); ok {
				httpErr = inner
			}
			code = httpErr.Code
			body = echo.Map{"error": httpErr.Message}
		case errors.Is(err, service.ErrInvalidInput):
			code = http.StatusBadRequest
			body = echo.Map{"error": err.Error()}
		case errors.Is(err, service.ErrInvalidCredentials):
			code = http.StatusUnauthorized
			body = echo.Map{"error": "authentication failed"}
		case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, errNoSession):
			code = http.StatusUnauthorized
			body = echo.Map{"error": "user not authenticated"}
		case errors.Is(err, service.ErrForbidden):
			code = http.StatusForbidden
			body = echo.Map{"error": "permission denied"}
		case errors.Is(err, service.ErrNotFound):
			code = http.StatusNotFound
			body = echo.Map{"error": "not found"}
		case errors.Is(err, service.ErrAlreadyExists):
			code = http.StatusConflict
			body = echo.Map{"error": "already exists"}
		default:
			logger.Error("request failed",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Path()),
				zap.Error(err))
			body = echo.Map{"error": http.StatusText(http.StatusInternalServerError)}
		}

		if c.Echo().Debug && code == http.StatusInternalServerError {
			body = echo.Map{"error": err.Error()}
		}

		if c.Response().Committed {
			return
		}
		if c.Request().Method == http.MethodHead {
			err = c.NoContent(code)
		} else {
			err = c.JSON(code, body)
		}
		if err != nil {
			logger.Warn("write error response", zap.Error(err))
		}
	}
}
