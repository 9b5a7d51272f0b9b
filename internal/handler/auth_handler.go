package handler

import (
	"net/http"

	"catalog-service/internal/service"
	"catalog-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// AuthHandler serves vendor registration and token issuance
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler creates an AuthHandler
func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Register handles POST /register
func (h *AuthHandler) Register(c echo.Context) error {
	log := logger.FromEcho(c)

	var req RegisterRequest
	if err := bindAndValidate(c, &req); err != nil {
		log.Warn("Invalid registration request", zap.Error(err))
		return respondError(c, err)
	}

	log.Info("Registering vendor", zap.String("email", req.Email))

	vendor, err := h.auth.Register(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, newVendorResponse(vendor))
}

// Token handles POST /token. The username field carries the vendor email.
func (h *AuthHandler) Token(c echo.Context) error {
	log := logger.FromEcho(c)

	var req TokenRequest
	if err := bindAndValidate(c, &req); err != nil {
		log.Warn("Invalid token request", zap.Error(err))
		return respondError(c, err)
	}

	token, err := h.auth.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return respondError(c, err)
	}

	log.Info("Access token issued", zap.String("email", req.Username))
	return c.JSON(http.StatusOK, TokenResponse{AccessToken: token, TokenType: "bearer"})
}
