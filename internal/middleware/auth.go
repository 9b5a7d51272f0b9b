package middleware

import (
	"context"
	"net/http"
	"strings"

	"catalog-service/internal/model"
	"catalog-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const vendorKey = "vendor"

// Authenticator resolves a bearer token to a vendor
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*model.Vendor, error)
}

// AuthMiddleware requires a valid bearer token and stores the calling vendor on the context
func AuthMiddleware(auth Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			log := logger.FromEcho(c)

			token, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				log.Warn("Missing or malformed Authorization header")
				return unauthorized(c)
			}

			vendor, err := auth.Authenticate(c.Request().Context(), token)
			if err != nil {
				log.Warn("Request not authenticated", zap.Error(err))
				return unauthorized(c)
			}

			c.Set(vendorKey, vendor)
			c.Set("logger", log.With(zap.String("vendor_email", vendor.Email)))

			return next(c)
		}
	}
}

// CurrentVendor returns the vendor stored by AuthMiddleware
func CurrentVendor(c echo.Context) (*model.Vendor, bool) {
	vendor, ok := c.Get(vendorKey).(*model.Vendor)
	return vendor, ok
}

func bearerToken(header string) (string, bool) {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	return parts[1], true
}

func unauthorized(c echo.Context) error {
	c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
	return c.JSON(http.StatusUnauthorized, echo.Map{"detail": "Could not validate credentials"})
}
