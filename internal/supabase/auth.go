package supabase

import (
	"context"
	"fmt"

	"github.com/tineo1298-dev/my-trade-journal/internal/config"
	"go.uber.org/zap"
)

// Session is the authenticated identity returned by the auth API. The journal
// trusts it for all ownership scoping.
type Session struct {
	UserID      string
	Email       string
	AccessToken string
}

// AuthClientInterface defines the auth operations the API layer depends on.
type AuthClientInterface interface {
	SignUp(ctx context.Context, email, password string) (*Session, error)
	SignIn(ctx context.Context, email, password string) (*Session, error)
	SignOut(ctx context.Context, accessToken string) error
	User(ctx context.Context, accessToken string) (*Session, error)
}

// AuthClient talks to a Supabase GoTrue auth endpoint.
type AuthClient struct {
	*client
}

// ensure AuthClient implements the interface
var _ AuthClientInterface = (*AuthClient)(nil)

// NewAuthClient creates a new auth client.
func NewAuthClient(cfg *config.Supabase, logger *zap.Logger) *AuthClient {
	return &AuthClient{client: newClient(cfg, logger)}
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userPayload struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type tokenResponse struct {
	AccessToken string      `json:"access_token"`
	User        userPayload `json:"user"`
}

// SignUp registers a new user.
func (c *AuthClient) SignUp(ctx context.Context, email, password string) (*Session, error) {
	var result tokenResponse
	req := c.rest.R().
		SetHeader("apikey", c.anonKey).
		SetHeader("Content-Type", "application/json").
		SetBody(credentials{Email: email, Password: password}).
		SetResult(&result)

	if _, err := c.doRequest(ctx, "POST", "/auth/v1/signup", req); err != nil {
		return nil, fmt.Errorf("sign up failed: %w", err)
	}

	c.logger.Info("User signed up", zap.String("email", email))
	return &Session{UserID: result.User.ID, Email: result.User.Email, AccessToken: result.AccessToken}, nil
}

// SignIn exchanges email and password for a session.
func (c *AuthClient) SignIn(ctx context.Context, email, password string) (*Session, error) {
	var result tokenResponse
	req := c.rest.R().
		SetHeader("apikey", c.anonKey).
		SetHeader("Content-Type", "application/json").
		SetBody(credentials{Email: email, Password: password}).
		SetResult(&result)

	if _, err := c.doRequest(ctx, "POST", "/auth/v1/token?grant_type=password", req); err != nil {
		return nil, fmt.Errorf("sign in failed: %w", err)
	}

	c.logger.Info("User signed in", zap.String("email", email))
	return &Session{UserID: result.User.ID, Email: result.User.Email, AccessToken: result.AccessToken}, nil
}

// SignOut revokes an access token.
func (c *AuthClient) SignOut(ctx context.Context, accessToken string) error {
	req := c.rest.R().
		SetHeader("apikey", c.anonKey).
		SetHeader("Authorization", "Bearer "+accessToken)

	if _, err := c.doRequest(ctx, "POST", "/auth/v1/logout", req); err != nil {
		return fmt.Errorf("sign out failed: %w", err)
	}
	return nil
}

// User resolves an access token to its identity. The API layer calls this on
// every authenticated request.
func (c *AuthClient) User(ctx context.Context, accessToken string) (*Session, error) {
	var result userPayload
	req := c.rest.R().
		SetHeader("apikey", c.anonKey).
		SetHeader("Authorization", "Bearer "+accessToken).
		SetResult(&result)

	if _, err := c.doRequest(ctx, "GET", "/auth/v1/user", req); err != nil {
		return nil, fmt.Errorf("token lookup failed: %w", err)
	}
	return &Session{UserID: result.ID, Email: result.Email, AccessToken: accessToken}, nil
}
