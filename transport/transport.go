// Package transport defines the backend calls the session controller makes.
// Attaching the bearer token to authenticated calls is the transport's job.
package transport

import (
	"context"
	"fmt"

	"github.com/jrsteele09/go-admin-session/token"
	"github.com/jrsteele09/go-admin-session/users"
)

// Transport authenticates a user and fetches the signed in user's profile.
type Transport interface {
	// Authenticate exchanges a user name and password for a token pair.
	Authenticate(ctx context.Context, userName, password string) (*token.Pair, error)

	// FetchProfile returns the profile of the user owning the stored token.
	FetchProfile(ctx context.Context) (*users.UserInfo, error)
}

// CodeAuthenticator is implemented by transports supporting phone code login.
type CodeAuthenticator interface {
	AuthenticateByCode(ctx context.Context, phone, code string) (*token.Pair, error)
}

// CaptchaSender is implemented by transports that can text a login code.
type CaptchaSender interface {
	SendCaptcha(ctx context.Context, phone string) error
}

// APIError is a failure reported by the backend itself, as opposed to the
// request never completing. Message is meant for the user.
type APIError struct {
	Status  int    // HTTP status, 0 when not applicable
	Code    string // Backend code
	Message string // Backend message
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Code != "" {
		return fmt.Sprintf("backend error code %s", e.Code)
	}
	return fmt.Sprintf("backend error status %d", e.Status)
}
