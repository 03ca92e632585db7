package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/kotonoha/kotonoha-api/internal/api/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-that-is-long-enough!"

func signToken(t *testing.T, secret string, userID uuid.UUID, expiresAt time.Time) string {
	t.Helper()

	claims := jwt.MapClaims{
		"uid": userID.String(),
		"sub": userID.String(),
		"iat": jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		"exp": jwt.NewNumericDate(expiresAt),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
		wantUserID bool
	}{
		{
			name:       "valid token",
			authHeader: "Bearer " + signToken(t, testSecret, userID, time.Now().Add(time.Hour)),
			wantStatus: http.StatusOK,
			wantUserID: true,
		},
		{
			name:       "missing header",
			authHeader: "",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "malformed header",
			authHeader: "Token abc",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "garbage token",
			authHeader: "Bearer not-a-jwt",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "expired token",
			authHeader: "Bearer " + signToken(
				t, testSecret, userID, time.Now().Add(-time.Hour)),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "wrong signing key",
			authHeader: "Bearer " + signToken(
				t, "a-completely-different-signing-key!!", userID, time.Now().Add(time.Hour)),
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var gotUserID uuid.UUID
			var called bool
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				gotUserID, _ = middleware.GetUserID(r)
				w.WriteHeader(http.StatusOK)
			})

			m := middleware.NewAuthMiddleware(testSecret)
			handler := m.Authenticate(next)

			req := httptest.NewRequest(http.MethodGet, "/api/learn/kana/next", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantUserID {
				assert.True(t, called)
				assert.Equal(t, userID, gotUserID)
			} else {
				assert.False(t, called, "next handler must not run on auth failure")
			}
		})
	}
}
