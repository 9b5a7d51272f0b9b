package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// RequestIDMiddleware reuses the caller's X-Request-ID or assigns a new one
func RequestIDMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := c.Request().Header.Get(echo.HeaderXRequestID)
		if requestID == "" {
			requestID = uuid.New().String()
			c.Request().Header.Set(echo.HeaderXRequestID, requestID)
		}

		c.Response().Header().Set(echo.HeaderXRequestID, requestID)
		c.Set("request_id", requestID)

		return next(c)
	}
}
