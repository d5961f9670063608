package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/catalog-service/pkg/auth"
)

// keyAfterIdentity runs the identity middleware and returns the rate limit key
// the request would be counted under.
func keyAfterIdentity(t *testing.T, tokens *auth.TokenManager, req *http.Request) string {
	t.Helper()
	var key string
	h := IdentityMiddleware(tokens)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key = rateLimitKey(r)
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	return key
}

func TestRateLimitKeyUsesTokenSubject(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	token, err := tokens.GenerateToken(7, "kim", "SELLER")
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/api/products?userId=99", nil)
	req.RemoteAddr = "10.0.0.5:4100"
	req.Header.Set("Authorization", "Bearer "+token)

	assert.Equal(t, "user:7", keyAfterIdentity(t, tokens, req))
}

func TestRateLimitKeyIgnoresCallerSuppliedIdentity(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret", time.Hour)

	for _, target := range []string{"/api/products?userId=1", "/api/products?userId=2", "/api/products?adminId=3&role=ADMIN"} {
		req := httptest.NewRequest("GET", target, nil)
		req.RemoteAddr = "10.0.0.5:4100"
		req.Header.Set("X-Forwarded-For", "203.0.113.9")
		assert.Equal(t, "ip:10.0.0.5", keyAfterIdentity(t, tokens, req), target)
	}
}

func TestRemoteHostWithoutPort(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "10.0.0.5"
	assert.Equal(t, "10.0.0.5", remoteHost(req))
}
