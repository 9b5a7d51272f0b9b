package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"catalog-service/internal/apperror"
	"catalog-service/internal/repository"
	"catalog-service/pkg/config"
	"catalog-service/pkg/jwtutil"
	"catalog-service/pkg/password"
	"catalog-service/pkg/testutil"
	"catalog-service/prometheus"

	promclient "github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret"

type authFixture struct {
	auth    *AuthService
	tokens  *jwtutil.JWTUtil
	metrics *prometheus.Metrics
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	db := testutil.NewDB(t)
	hasher := password.NewHasher(bcrypt.MinCost)
	tokens := jwtutil.NewJWTUtil(&config.JWTConfig{SigningKey: testSecret, Expiration: 30 * time.Minute})
	metrics := prometheus.NewMetrics(promclient.NewRegistry(), "test")
	vendors := repository.NewVendorRepository(db, hasher, metrics)

	return &authFixture{
		auth:    NewAuthService(vendors, hasher, tokens, metrics, testutil.NewLogger(t)),
		tokens:  tokens,
		metrics: metrics,
	}
}

func TestRegister(t *testing.T) {
	f := newAuthFixture(t)

	vendor, err := f.auth.Register(context.Background(), "ana@example.com", "secret")
	require.NoError(t, err)

	assert.NotZero(t, vendor.ID)
	assert.Equal(t, "ana@example.com", vendor.Email)
	assert.Equal(t, 1.0, promtest.ToFloat64(f.metrics.RegisterCounter))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	_, err := f.auth.Register(ctx, "ana@example.com", "secret")
	require.NoError(t, err)

	_, err = f.auth.Register(ctx, "ana@example.com", "another")
	assert.ErrorIs(t, err, apperror.ErrDuplicateEmail)
}

func TestRegisterConcurrentDuplicateEmail(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	errs := make([]error, 2)
	start := make(chan struct{})
	var wg sync.WaitGroup
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			_, errs[i] = f.auth.Register(ctx, "race@example.com", "secret")
		}(i)
	}
	close(start)
	wg.Wait()

	var succeeded int
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, apperror.ErrDuplicateEmail)
	}
	assert.Equal(t, 1, succeeded)
}

func TestLogin(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	_, err := f.auth.Register(ctx, "ana@example.com", "secret")
	require.NoError(t, err)

	token, err := f.auth.Login(ctx, "ana@example.com", "secret")
	require.NoError(t, err)

	claims, err := f.tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", claims.Subject)
	assert.Equal(t, 1.0, promtest.ToFloat64(f.metrics.TokensIssuedCounter))
}

func TestLoginInvalidCredentials(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	_, err := f.auth.Register(ctx, "ana@example.com", "secret")
	require.NoError(t, err)

	_, err = f.auth.Login(ctx, "ana@example.com", "wrong")
	assert.ErrorIs(t, err, apperror.ErrInvalidCredentials)

	_, err = f.auth.Login(ctx, "nobody@example.com", "secret")
	assert.ErrorIs(t, err, apperror.ErrInvalidCredentials)

	assert.Equal(t, 1.0, promtest.ToFloat64(f.metrics.AuthErrorCounter.WithLabelValues("invalid_password")))
	assert.Equal(t, 1.0, promtest.ToFloat64(f.metrics.AuthErrorCounter.WithLabelValues("vendor_not_found")))
}

func TestAuthenticate(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	registered, err := f.auth.Register(ctx, "ana@example.com", "secret")
	require.NoError(t, err)
	token, err := f.auth.Login(ctx, "ana@example.com", "secret")
	require.NoError(t, err)

	vendor, err := f.auth.Authenticate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, vendor.ID)
}

func TestAuthenticateRejectsUniformly(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	_, err := f.auth.Register(ctx, "ana@example.com", "secret")
	require.NoError(t, err)

	expired, err := f.tokens.Issue("ana@example.com", 0)
	require.NoError(t, err)
	noSubject, err := f.tokens.Issue("", time.Minute)
	require.NoError(t, err)
	unknown, err := f.tokens.Issue("ghost@example.com", time.Minute)
	require.NoError(t, err)
	foreign, err := jwtutil.NewJWTUtil(&config.JWTConfig{SigningKey: "other", Expiration: time.Minute}).IssueToken("ana@example.com")
	require.NoError(t, err)

	tests := map[string]string{
		"expired":         expired,
		"missing subject": noSubject,
		"unknown subject": unknown,
		"foreign secret":  foreign,
		"garbage":         "not-a-token",
		"empty":           "",
	}

	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := f.auth.Authenticate(ctx, token)
			assert.ErrorIs(t, err, apperror.ErrUnauthorized)
		})
	}

	assert.Equal(t, 1.0, promtest.ToFloat64(f.metrics.AuthErrorCounter.WithLabelValues("token_expired")))
	assert.Equal(t, 1.0, promtest.ToFloat64(f.metrics.AuthErrorCounter.WithLabelValues("unknown_subject")))
}
