package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testConfig = Config{
	Secret:     "test-secret-key-for-unit-tests",
	Issuer:     "loanportal-test",
	Expiration: 15 * time.Minute,
}

func issue(t *testing.T, cfg Config, id Identity, now time.Time) string {
	t.Helper()
	issuer, err := NewIssuer(cfg)
	require.NoError(t, err)
	token, err := issuer.Issue(id, now)
	require.NoError(t, err)
	return token
}

func TestIssueAndVerify(t *testing.T) {
	id := Identity{UserID: uuid.New(), Email: "officer@example.com", Name: "Avery Stone"}
	token := issue(t, testConfig, id, time.Now())

	verifier, err := NewVerifier(testConfig)
	require.NoError(t, err)
	got, err := verifier.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestVerifyRejects(t *testing.T) {
	verifier, err := NewVerifier(testConfig)
	require.NoError(t, err)
	id := Identity{UserID: uuid.New()}

	otherSecret := testConfig
	otherSecret.Secret = "another-secret"
	otherIssuer := testConfig
	otherIssuer.Issuer = "someone-else"

	badSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{Issuer: testConfig.Issuer, Subject: "not-a-uuid"},
	}).SignedString([]byte(testConfig.Secret))
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"expired", issue(t, testConfig, id, time.Now().Add(-time.Hour))},
		{"wrong secret", issue(t, otherSecret, id, time.Now())},
		{"wrong issuer", issue(t, otherIssuer, id, time.Now())},
		{"subject not a uuid", badSubject},
		{"garbage", "not.a.token"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := verifier.Verify(tt.token)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrUnauthenticated))
		})
	}
}

func TestVerifyRejectsNoneAlgorithm(t *testing.T) {
	verifier, err := NewVerifier(testConfig)
	require.NoError(t, err)

	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		RegisteredClaims: jwt.RegisteredClaims{Issuer: testConfig.Issuer, Subject: uuid.NewString()},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestNewRequiresSecret(t *testing.T) {
	_, err := NewVerifier(Config{})
	assert.Error(t, err)
	_, err = NewIssuer(Config{})
	assert.Error(t, err)
}

func TestMiddleware(t *testing.T) {
	verifier, err := NewVerifier(testConfig)
	require.NoError(t, err)
	id := Identity{UserID: uuid.New(), Email: "officer@example.com"}
	valid := issue(t, testConfig, id, time.Now())

	var rejected []error
	handler := Middleware(verifier, func(_ *http.Request, err error) {
		rejected = append(rejected, err)
	})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, err := RequireIdentity(r.Context())
		if err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(got.UserID.String()))
	}))

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
		wantReject bool
	}{
		{"valid bearer", "Bearer " + valid, http.StatusOK, id.UserID.String(), false},
		{"no header", "", http.StatusUnauthorized, "", false},
		{"bad token", "Bearer nope", http.StatusUnauthorized, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rejected = nil
			req := httptest.NewRequest(http.MethodGet, "/api/preapprovals", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantBody, rec.Body.String())
			assert.Equal(t, tt.wantReject, len(rejected) == 1)
		})
	}
}

func TestMiddlewareWithoutVerifier(t *testing.T) {
	called := false
	handler := Middleware(nil, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		_, ok := IdentityFromContext(r.Context())
		assert.False(t, ok)
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer anything")
	handler.ServeHTTP(httptest.NewRecorder(), req)
	assert.True(t, called)
}

func TestContextIdentity(t *testing.T) {
	_, err := RequireIdentity(context.Background())
	assert.ErrorIs(t, err, ErrUnauthenticated)

	id := Identity{UserID: uuid.New()}
	got, ok := IdentityFromContext(ContextWithIdentity(context.Background(), id))
	require.True(t, ok)
	assert.Equal(t, id, got)
}
