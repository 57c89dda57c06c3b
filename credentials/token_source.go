package credentials

import (
	"context"
	"fmt"

	apperrors "github.com/jrsteele09/go-admin-session/internal/errors"
	"golang.org/x/oauth2"
)

type storeTokenSource struct {
	store Store
}

// NewTokenSource returns an oauth2.TokenSource that reads the bearer token
// from store on every call, so requests always carry the latest login.
func NewTokenSource(store Store) oauth2.TokenSource {
	return storeTokenSource{store: store}
}

func (s storeTokenSource) Token() (*oauth2.Token, error) {
	access, ok, err := s.store.Get(context.Background(), KeyToken)
	if err != nil {
		return nil, fmt.Errorf("reading token: %w", err)
	}
	if !ok || access == "" {
		return nil, fmt.Errorf("no stored token: %w", apperrors.ErrNotFound)
	}
	refresh, _, err := s.store.Get(context.Background(), KeyRefreshToken)
	if err != nil {
		return nil, fmt.Errorf("reading refresh token: %w", err)
	}
	return &oauth2.Token{AccessToken: access, TokenType: "Bearer", RefreshToken: refresh}, nil
}
