package supabase

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

func setupAuthServer(handler http.Handler) (*AuthClient, *httptest.Server) {
	server := httptest.NewServer(handler)

	ac := &AuthClient{
		client: &client{
			rest:    resty.New().SetBaseURL(server.URL),
			anonKey: "test_anon_key",
			logger:  zap.NewNop(),
			limiter: rate.NewLimiter(rate.Inf, 1),
		},
	}
	return ac, server
}

func TestSignIn(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// Arrange
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/auth/v1/token", r.URL.Path)
			assert.Equal(t, "password", r.URL.Query().Get("grant_type"))
			assert.Equal(t, "test_anon_key", r.Header.Get("apikey"))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"access_token":"jwt-token","user":{"id":"user-1","email":"trader@example.com"}}`))
		})

		ac, server := setupAuthServer(handler)
		defer server.Close()

		// Act
		session, err := ac.SignIn(context.Background(), "trader@example.com", "secret123")

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, "user-1", session.UserID)
		assert.Equal(t, "trader@example.com", session.Email)
		assert.Equal(t, "jwt-token", session.AccessToken)
	})

	t.Run("BadCredentials", func(t *testing.T) {
		// Arrange
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
		})

		ac, server := setupAuthServer(handler)
		defer server.Close()

		// Act
		session, err := ac.SignIn(context.Background(), "trader@example.com", "wrong")

		// Assert
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "sign in failed")
		assert.Nil(t, session)
	})
}

func TestUser(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/auth/v1/user", r.URL.Path)
			assert.Equal(t, "Bearer jwt-token", r.Header.Get("Authorization"))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id":"user-1","email":"trader@example.com"}`))
		})

		ac, server := setupAuthServer(handler)
		defer server.Close()

		session, err := ac.User(context.Background(), "jwt-token")

		assert.NoError(t, err)
		assert.Equal(t, "user-1", session.UserID)
		assert.Equal(t, "jwt-token", session.AccessToken)
	})

	t.Run("ExpiredToken", func(t *testing.T) {
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"invalid token"}`))
		})

		ac, server := setupAuthServer(handler)
		defer server.Close()

		session, err := ac.User(context.Background(), "stale")

		assert.Error(t, err)
		assert.Nil(t, session)
	})
}

func TestSignUp(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/signup", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"jwt-token","user":{"id":"user-2","email":"new@example.com"}}`))
	})

	ac, server := setupAuthServer(handler)
	defer server.Close()

	session, err := ac.SignUp(context.Background(), "new@example.com", "secret123")

	assert.NoError(t, err)
	assert.Equal(t, "user-2", session.UserID)
}
