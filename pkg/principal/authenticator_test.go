package principal_test

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/tenantkit/pkg/principal"
)

func newAuthenticator(t *testing.T) *principal.JWTAuthenticator {
	t.Helper()
	auth, err := principal.NewJWTAuthenticator([]byte("test-signing-key"), "api.test")
	require.NoError(t, err)
	return auth
}

func issue(t *testing.T, auth *principal.JWTAuthenticator, p *principal.Principal) string {
	t.Helper()
	token, err := auth.Issue(p, principal.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	require.NoError(t, err)
	return token
}

func TestNewJWTAuthenticator(t *testing.T) {
	t.Parallel()

	_, err := principal.NewJWTAuthenticator(nil, "")
	assert.ErrorIs(t, err, principal.ErrMissingSigningKey)
}

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	auth := newAuthenticator(t)

	t.Run("valid token yields principal", func(t *testing.T) {
		t.Parallel()
		want := &principal.Principal{
			ID:       uuid.New(),
			Email:    "staff@example.com",
			Operator: true,
			Groups:   []string{"support"},
		}
		r := httptest.NewRequest("GET", "/", nil)
		r.Header.Set("Authorization", "Bearer "+issue(t, auth, want))

		got, err := auth.Authenticate(r)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("missing header", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest("GET", "/", nil)
		_, err := auth.Authenticate(r)
		assert.ErrorIs(t, err, principal.ErrUnauthenticated)
	})

	t.Run("non-bearer scheme", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest("GET", "/", nil)
		r.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
		_, err := auth.Authenticate(r)
		assert.ErrorIs(t, err, principal.ErrInvalidToken)
	})

	t.Run("wrong signing key", func(t *testing.T) {
		t.Parallel()
		other, err := principal.NewJWTAuthenticator([]byte("other-key"), "api.test")
		require.NoError(t, err)

		r := httptest.NewRequest("GET", "/", nil)
		r.Header.Set("Authorization", "Bearer "+issue(t, other, &principal.Principal{ID: uuid.New()}))
		_, err = auth.Authenticate(r)
		assert.ErrorIs(t, err, principal.ErrInvalidToken)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		t.Parallel()
		other, err := principal.NewJWTAuthenticator([]byte("test-signing-key"), "other.test")
		require.NoError(t, err)

		r := httptest.NewRequest("GET", "/", nil)
		r.Header.Set("Authorization", "Bearer "+issue(t, other, &principal.Principal{ID: uuid.New()}))
		_, err = auth.Authenticate(r)
		assert.ErrorIs(t, err, principal.ErrInvalidToken)
	})

	t.Run("expired token", func(t *testing.T) {
		t.Parallel()
		token, err := auth.Issue(&principal.Principal{ID: uuid.New()}, principal.Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			},
		})
		require.NoError(t, err)

		r := httptest.NewRequest("GET", "/", nil)
		r.Header.Set("Authorization", "Bearer "+token)
		_, err = auth.Authenticate(r)
		assert.ErrorIs(t, err, principal.ErrInvalidToken)
	})

	t.Run("non-uuid subject", func(t *testing.T) {
		t.Parallel()
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
			Subject:   "not-a-uuid",
			Issuer:    "api.test",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		})
		signed, err := token.SignedString([]byte("test-signing-key"))
		require.NoError(t, err)

		r := httptest.NewRequest("GET", "/", nil)
		r.Header.Set("Authorization", "Bearer "+signed)
		_, err = auth.Authenticate(r)
		assert.ErrorIs(t, err, principal.ErrInvalidSubject)
	})
}
