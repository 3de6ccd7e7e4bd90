package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloudrumbles/avvai/internal/config"
	"github.com/cloudrumbles/avvai/internal/service/auth"
)

const testSigningSecret = "test-secret-0123456789-0123456789-abc"

func signTestToken(t *testing.T, secret, email string, expiresAt time.Time) string {
	t.Helper()

	claims := jwt.MapClaims{
		"email": email,
		"exp":   expiresAt.Unix(),
		"iat":   time.Now().Add(-time.Minute).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

// newAuthTestServer wraps a handler that records the admin email seen in the
// request context.
func newAuthTestServer(t *testing.T, verifier auth.AdminVerifier, sawEmail *string) *httptest.Server {
	t.Helper()

	mw := NewAdminAuthMiddleware(verifier)
	handler := mw.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if email, ok := GetAdminEmail(r); ok {
			*sawEmail = email
		}
		w.WriteHeader(http.StatusOK)
	}))

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}

func newTestVerifier(t *testing.T, allowedEmails []string) auth.AdminVerifier {
	t.Helper()

	verifier, err := auth.NewAdminVerifier(config.AuthConfig{
		JWTSecret:     testSigningSecret,
		AllowedEmails: allowedEmails,
	})
	require.NoError(t, err)
	return verifier
}

func doAuthRequest(t *testing.T, server *httptest.Server, authorization string) *http.Response {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, server.URL+"/", nil)
	require.NoError(t, err)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func TestAuthenticateAllowsValidToken(t *testing.T) {
	t.Parallel()

	var sawEmail string
	verifier := newTestVerifier(t, []string{"admin@example.com"})
	server := newAuthTestServer(t, verifier, &sawEmail)

	token := signTestToken(t, testSigningSecret, "admin@example.com", time.Now().Add(time.Hour))
	resp := doAuthRequest(t, server, "Bearer "+token)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "admin@example.com", sawEmail)
}

func TestAuthenticateRejections(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		authorization string
		wantStatus    int
	}{
		{
			name:          "missing header",
			authorization: "",
			wantStatus:    http.StatusUnauthorized,
		},
		{
			name:          "malformed header",
			authorization: "Bearer",
			wantStatus:    http.StatusUnauthorized,
		},
		{
			name:          "garbage token",
			authorization: "Bearer not.a.jwt",
			wantStatus:    http.StatusUnauthorized,
		},
		{
			name: "wrong signing key",
			authorization: "Bearer " + signTestToken(t,
				"different-secret-0123456789-0123456789",
				"admin@example.com", time.Now().Add(time.Hour)),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "expired token",
			authorization: "Bearer " + signTestToken(t, testSigningSecret,
				"admin@example.com", time.Now().Add(-time.Hour)),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "email not allowlisted",
			authorization: "Bearer " + signTestToken(t, testSigningSecret,
				"intruder@example.com", time.Now().Add(time.Hour)),
			wantStatus: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var sawEmail string
			verifier := newTestVerifier(t, []string{"admin@example.com"})
			server := newAuthTestServer(t, verifier, &sawEmail)

			resp := doAuthRequest(t, server, tt.authorization)

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.Empty(t, sawEmail, "handler must not run for rejected requests")
		})
	}
}

func TestAuthenticateWithDisabledVerifier(t *testing.T) {
	t.Parallel()

	var sawEmail string
	server := newAuthTestServer(t, auth.NewDisabledVerifier(), &sawEmail)

	resp := doAuthRequest(t, server, "")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, sawEmail)
}

func TestExtractBearer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		header string
		want   string
	}{
		{name: "standard", header: "Bearer abc123", want: "abc123"},
		{name: "case insensitive scheme", header: "bearer abc123", want: "abc123"},
		{name: "missing header", header: "", want: ""},
		{name: "no token", header: "Bearer", want: ""},
		{name: "wrong scheme", header: "Basic abc123", want: ""},
		{name: "extra parts", header: "Bearer abc 123", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			assert.Equal(t, tt.want, extractBearer(req))
		})
	}
}
