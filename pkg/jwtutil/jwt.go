package jwtutil

import (
	"errors"
	"fmt"
	"time"

	"catalog-service/pkg/config"

	"github.com/golang-jwt/jwt/v4"
)

var (
	ErrTokenExpired        = errors.New("token expired")
	ErrTokenMalformed      = errors.New("token malformed")
	ErrTokenMissingSubject = errors.New("token missing subject")
)

// VendorClaims represents the JWT claims for vendor authentication.
// The vendor email travels in the standard "sub" claim.
type VendorClaims struct {
	jwt.RegisteredClaims
}

// JWTUtil issues and verifies HS256 bearer tokens
type JWTUtil struct {
	signingKey []byte
	ttl        time.Duration
	now        func() time.Time
}

// NewJWTUtil creates a new JWT utility with the given configuration
func NewJWTUtil(cfg *config.JWTConfig) *JWTUtil {
	return &JWTUtil{
		signingKey: []byte(cfg.SigningKey),
		ttl:        cfg.Expiration,
		now:        time.Now,
	}
}

// WithClock replaces the time source used for issuing and verifying tokens
func (j *JWTUtil) WithClock(now func() time.Time) *JWTUtil {
	j.now = now
	return j
}

// TTL returns the lifetime applied by IssueToken
func (j *JWTUtil) TTL() time.Duration {
	return j.ttl
}

// IssueToken creates a token for subject using the configured lifetime
func (j *JWTUtil) IssueToken(subject string) (string, error) {
	return j.Issue(subject, j.ttl)
}

// Issue creates a token for subject that expires ttl from now
func (j *JWTUtil) Issue(subject string, ttl time.Duration) (string, error) {
	if len(j.signingKey) == 0 {
		return "", errors.New("JWT signing key not configured")
	}

	now := j.now()
	claims := VendorClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(j.signingKey)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify validates tokenString and returns its claims. The returned error is one of
// ErrTokenMalformed, ErrTokenExpired or ErrTokenMissingSubject.
func (j *JWTUtil) Verify(tokenString string) (*VendorClaims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)

	claims := &VendorClaims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.signingKey, nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: %v", ErrTokenMalformed, err)
	}

	// Expiry is checked here rather than by the parser so the clock stays injectable
	if claims.ExpiresAt == nil {
		return nil, fmt.Errorf("%w: exp claim absent", ErrTokenMalformed)
	}
	if !j.now().Before(claims.ExpiresAt.Time) {
		return nil, ErrTokenExpired
	}

	if claims.Subject == "" {
		return nil, ErrTokenMissingSubject
	}

	return claims, nil
}
