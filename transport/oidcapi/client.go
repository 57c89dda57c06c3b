// Package oidcapi authenticates against an OpenID Connect provider with the
// resource owner password grant and reads the profile from its UserInfo
// endpoint.
package oidcapi

import (
	"context"
	"errors"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/jrsteele09/go-admin-session/internal/config"
	"github.com/jrsteele09/go-admin-session/internal/utils"
	"github.com/jrsteele09/go-admin-session/token"
	"github.com/jrsteele09/go-admin-session/transport"
	"github.com/jrsteele09/go-admin-session/users"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
)

var _ transport.Transport = (*Client)(nil)

type Client struct {
	provider *oidc.Provider
	oauth    *oauth2.Config
	tokens   oauth2.TokenSource
	logger   zerolog.Logger
}

// ClientOption defines a function type to modify the Client instance.
type ClientOption func(*Client)

func WithLogger(logger zerolog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// New discovers the provider at the configured issuer. tokens supplies the
// stored access token for UserInfo calls.
func New(ctx context.Context, cfg config.OIDCConfig, tokens oauth2.TokenSource, options ...ClientOption) (*Client, error) {
	if cfg.GetOIDCIssuer() == "" {
		return nil, errors.New("[oidcapi New] issuer is required")
	}

	provider, err := oidc.NewProvider(ctx, cfg.GetOIDCIssuer())
	if err != nil {
		return nil, fmt.Errorf("[oidcapi New] failed to create OIDC provider: %w", err)
	}

	c := &Client{
		provider: provider,
		oauth: &oauth2.Config{
			ClientID:     cfg.GetOIDCClientID(),
			ClientSecret: cfg.GetOIDCClientSecret(),
			Endpoint:     provider.Endpoint(),
			Scopes:       cfg.GetOIDCScopes(),
		},
		tokens: tokens,
		logger: log.Logger,
	}

	for _, opt := range options {
		opt(c)
	}
	return c, nil
}

// Authenticate implements transport.Transport using the password grant.
func (c *Client) Authenticate(ctx context.Context, userName, password string) (*token.Pair, error) {
	tok, err := c.oauth.PasswordCredentialsToken(ctx, userName, password)
	if err != nil {
		var re *oauth2.RetrieveError
		if errors.As(err, &re) {
			return nil, retrieveAPIError(re)
		}
		return nil, fmt.Errorf("[oidcapi Authenticate] %w", err)
	}

	c.logger.Debug().Str("user", userName).Time("expiry", tok.Expiry).Msg("password grant succeeded")

	return &token.Pair{Token: tok.AccessToken, RefreshToken: tok.RefreshToken}, nil
}

func retrieveAPIError(re *oauth2.RetrieveError) *transport.APIError {
	apiErr := &transport.APIError{Code: re.ErrorCode, Message: re.ErrorDescription}
	if re.Response != nil {
		apiErr.Status = re.Response.StatusCode
	}
	if apiErr.Message == "" {
		apiErr.Message = re.ErrorCode
	}
	return apiErr
}

type profileClaims struct {
	Sub               string `json:"sub"`
	PreferredUsername string `json:"preferred_username"`
	Name              string `json:"name"`
	Email             string `json:"email"`
	Roles             any    `json:"roles"`
	Buttons           any    `json:"buttons"`
}

// FetchProfile implements transport.Transport.
func (c *Client) FetchProfile(ctx context.Context) (*users.UserInfo, error) {
	ui, err := c.provider.UserInfo(ctx, c.tokens)
	if err != nil {
		return nil, fmt.Errorf("[oidcapi FetchProfile] %w", err)
	}

	var claims profileClaims
	if err := ui.Claims(&claims); err != nil {
		return nil, fmt.Errorf("[oidcapi FetchProfile] failed to extract claims: %w", err)
	}

	name := claims.PreferredUsername
	if name == "" {
		name = claims.Name
	}
	if name == "" {
		name = claims.Email
	}

	return &users.UserInfo{
		UserID:   claims.Sub,
		UserName: name,
		Roles:    nonNil(utils.ClaimStrings(claims.Roles)),
		Buttons:  nonNil(utils.ClaimStrings(claims.Buttons)),
	}, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
