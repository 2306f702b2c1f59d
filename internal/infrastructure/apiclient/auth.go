package apiclient

import (
	"context"
	"errors"
	"net/http"

	"github.com/startupscout/showcase/internal/core/domain"
	"github.com/startupscout/showcase/internal/core/ports"
)

var _ ports.ShowcaseAPI = (*Client)(nil)

// Login authenticates with email and password.
func (c *Client) Login(ctx context.Context, creds domain.Credentials) (*ports.AuthResult, error) {
	return c.authenticate(ctx, call{
		method:   http.MethodPost,
		endpoint: pathLogin,
		path:     pathLogin,
		body:     creds,
		public:   true,
	})
}

// Register creates an email account and authenticates as it.
func (c *Client) Register(ctx context.Context, reg domain.Registration) (*ports.AuthResult, error) {
	return c.authenticate(ctx, call{
		method:   http.MethodPost,
		endpoint: pathRegister,
		path:     pathRegister,
		body:     reg,
		public:   true,
	})
}

func (c *Client) authenticate(ctx context.Context, cl call) (*ports.AuthResult, error) {
	var env authEnvelope
	if err := c.do(ctx, cl, &env); err != nil {
		return nil, asAuthError(err)
	}
	if env.User == nil || env.User.ID == "" {
		return nil, domain.AuthError(0, "invalid authentication response")
	}
	return &ports.AuthResult{Token: env.Token, User: *env.User}, nil
}

// asAuthError reclassifies a rejected login/register answer as an auth failure.
// Network failures keep their kind.
func asAuthError(err error) error {
	var e *domain.Error
	if !errors.As(err, &e) || e.Kind == domain.KindNetwork || e.Kind == domain.KindAuth {
		return err
	}
	if e.Status >= 400 && e.Status < 500 {
		return domain.AuthError(e.Status, "%s", e.Message)
	}
	return err
}

// Logout asks the backend to drop the credential.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, call{method: http.MethodPost, endpoint: pathLogout, path: pathLogout, public: true}, nil)
}

// Profile returns the identity behind the current credential.
func (c *Client) Profile(ctx context.Context) (*domain.User, error) {
	var env userEnvelope
	if err := c.do(ctx, call{method: http.MethodGet, endpoint: pathProfile, path: pathProfile}, &env); err != nil {
		return nil, err
	}
	return env.User, nil
}
