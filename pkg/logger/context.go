package logger

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const contextKey = "logger"

// FromEcho retrieves the request-scoped logger from the Echo context
func FromEcho(c echo.Context) *zap.Logger {
	if logger, ok := c.Get(contextKey).(*zap.Logger); ok {
		return logger
	}

	requestID := c.Request().Header.Get(echo.HeaderXRequestID)
	if requestID == "" {
		requestID = "unknown"
	}
	return GetLogger().With(zap.String("request_id", requestID))
}
