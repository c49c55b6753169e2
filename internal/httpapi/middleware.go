package httpapi

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/simre/results-server/internal/auth"
)

// requestLogger logs one line per request through zap.
func requestLogger(logger *zap.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogError:     true,
		HandleError:  true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("remote_ip", v.RemoteIP),
			}
			if v.RequestID != "" {
				fields = append(fields, zap.String("request_id", v.RequestID))
			}
			if v.Error != nil {
				logger.Warn("http request failed", append(fields, zap.Error(v.Error))...)
				return nil
			}
			logger.Info("http request", fields...)
			return nil
		},
	})
}

// authenticate requires "Authorization: Bearer <token>" and stores the session in the request context.
func authenticate(verify func(token string) (auth.Session, error)) echo.MiddlewareFunc {
	return middleware.KeyAuthWithConfig(middleware.KeyAuthConfig{
		KeyLookup:  "header:" + echo.HeaderAuthorization,
		AuthScheme: "Bearer",
		Validator: func(token string, c echo.Context) (bool, error) {
			session, err := verify(token)
			if err != nil {
				return false, nil
			}
			req := c.Request()
			c.SetRequest(req.WithContext(auth.NewContext(req.Context(), session)))
			return true, nil
		},
		ErrorHandler: func(err error, c echo.Context) error {
			return errUnauthorized
		},
	})
}

func sessionFrom(c echo.Context) (auth.Session, error) {
	s, ok := auth.FromContext(c.Request().Context())
	if !ok {
		return auth.Session{}, errNoSession
	}
	return s, nil
}
