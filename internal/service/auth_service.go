package service

import (
	"context"
	"errors"
	"fmt"

	"catalog-service/internal/apperror"
	"catalog-service/internal/model"
	"catalog-service/pkg/jwtutil"
	"catalog-service/pkg/password"
	"catalog-service/prometheus"

	"go.uber.org/zap"
)

// VendorStore is the credential store used by AuthService
type VendorStore interface {
	FindByEmail(ctx context.Context, email string) (*model.Vendor, error)
	Create(ctx context.Context, email, plaintext string) (*model.Vendor, error)
}

// AuthService registers vendors, issues access tokens and resolves tokens back to vendors
type AuthService struct {
	vendors VendorStore
	hasher  *password.Hasher
	tokens  *jwtutil.JWTUtil
	metrics *prometheus.Metrics
	log     *zap.Logger

	// compared against when the email is unknown so both login failures cost one bcrypt run
	dummyHash string
}

// NewAuthService creates an AuthService
func NewAuthService(vendors VendorStore, hasher *password.Hasher, tokens *jwtutil.JWTUtil, metrics *prometheus.Metrics, log *zap.Logger) *AuthService {
	dummyHash, err := hasher.Hash("catalog-service-timing-equalizer")
	if err != nil {
		log.Warn("Failed to prepare dummy password hash", zap.Error(err))
	}

	return &AuthService{
		vendors:   vendors,
		hasher:    hasher,
		tokens:    tokens,
		metrics:   metrics,
		log:       log,
		dummyHash: dummyHash,
	}
}

// Register creates a vendor account. A taken email yields apperror.ErrDuplicateEmail.
func (s *AuthService) Register(ctx context.Context, email, plaintext string) (*model.Vendor, error) {
	_, err := s.vendors.FindByEmail(ctx, email)
	switch {
	case err == nil:
		s.metrics.RecordAuthError("duplicate_email")
		return nil, apperror.ErrDuplicateEmail
	case !errors.Is(err, apperror.ErrNotFound):
		return nil, err
	}

	vendor, err := s.vendors.Create(ctx, email, plaintext)
	if err != nil {
		if errors.Is(err, apperror.ErrDuplicateEmail) {
			s.metrics.RecordAuthError("duplicate_email")
		}
		return nil, err
	}

	s.metrics.RecordRegister()
	s.log.Info("Vendor registered", zap.Uint("vendor_id", vendor.ID), zap.String("email", vendor.Email))
	return vendor, nil
}

// Login checks the credentials and returns a signed access token
func (s *AuthService) Login(ctx context.Context, email, plaintext string) (string, error) {
	s.metrics.RecordLogin()

	vendor, err := s.vendors.FindByEmail(ctx, email)
	if errors.Is(err, apperror.ErrNotFound) {
		s.hasher.Verify(plaintext, s.dummyHash)
		s.metrics.RecordAuthError("vendor_not_found")
		return "", apperror.ErrInvalidCredentials
	}
	if err != nil {
		return "", err
	}

	if !s.hasher.Verify(plaintext, vendor.HashedPassword) {
		s.metrics.RecordAuthError("invalid_password")
		return "", apperror.ErrInvalidCredentials
	}

	token, err := s.tokens.IssueToken(vendor.Email)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}

	s.metrics.RecordTokenIssued()
	return token, nil
}

// Authenticate resolves a bearer token to the calling vendor. Every failure,
// whatever its cause, is reported as apperror.ErrUnauthorized.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*model.Vendor, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		s.metrics.RecordAuthError(tokenErrorType(err))
		s.log.Debug("Token rejected", zap.Error(err))
		return nil, apperror.ErrUnauthorized
	}

	vendor, err := s.vendors.FindByEmail(ctx, claims.Subject)
	if errors.Is(err, apperror.ErrNotFound) {
		s.metrics.RecordAuthError("unknown_subject")
		s.log.Debug("Token subject has no vendor", zap.String("email", claims.Subject))
		return nil, apperror.ErrUnauthorized
	}
	if err != nil {
		return nil, err
	}

	return vendor, nil
}

func tokenErrorType(err error) string {
	switch {
	case errors.Is(err, jwtutil.ErrTokenExpired):
		return "token_expired"
	case errors.Is(err, jwtutil.ErrTokenMissingSubject):
		return "token_missing_subject"
	default:
		return "token_malformed"
	}
}
