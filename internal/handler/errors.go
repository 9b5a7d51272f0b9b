package handler

import (
	"errors"
	"fmt"
	"net/http"

	"catalog-service/internal/apperror"
	"catalog-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// respondError writes err as a {"detail": ...} body with the status apperror assigns it
func respondError(c echo.Context, err error) error {
	log := logger.FromEcho(c)
	httpErr := apperror.Classify(err)

	switch {
	case httpErr.Status >= http.StatusInternalServerError:
		log.Error("Request failed", zap.Error(err))
	default:
		log.Info("Request rejected", zap.Int("status", httpErr.Status), zap.Error(err))
	}

	if httpErr.Status == http.StatusUnauthorized {
		c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
	}
	return c.JSON(httpErr.Status, echo.Map{"detail": httpErr.Message})
}

// bindAndValidate decodes the request into req and runs the registered validator.
// Decode failures are reported as validation errors.
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		var he *echo.HTTPError
		if errors.As(err, &he) {
			return fmt.Errorf("%w: %v", apperror.ErrValidation, he.Message)
		}
		return fmt.Errorf("%w: %v", apperror.ErrValidation, err)
	}
	return c.Validate(req)
}

// HTTPErrorHandler renders errors that escape handlers, such as unknown routes, with the same body shape
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		detail := http.StatusText(he.Code)
		if msg, ok := he.Message.(string); ok {
			detail = msg
		}
		if werr := c.JSON(he.Code, echo.Map{"detail": detail}); werr != nil {
			logger.FromEcho(c).Error("Failed to write error response", zap.Error(werr))
		}
		return
	}

	if werr := respondError(c, err); werr != nil {
		logger.FromEcho(c).Error("Failed to write error response", zap.Error(werr))
	}
}
