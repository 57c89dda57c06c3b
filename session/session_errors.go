package session

import (
	"context"
	"errors"
	"net"
	"net/url"

	apperrors "github.com/jrsteele09/go-admin-session/internal/errors"
	"github.com/jrsteele09/go-admin-session/metrics"
)

var (
	// ErrAuthentication is returned when the backend rejects the credentials
	// or hands back no usable token.
	ErrAuthentication = errors.New("authentication failed")

	// ErrTokenMissing accompanies ErrAuthentication when the token is empty or malformed.
	ErrTokenMissing = errors.New("token missing")

	// ErrProfileFetch is returned when a token was issued but the profile could not be loaded.
	ErrProfileFetch = errors.New("profile fetch failed")

	// ErrTransientNetwork covers every other failure during login: the
	// request never completing, storage errors, panics.
	ErrTransientNetwork = errors.New("transient failure")

	// ErrUnsupported is returned when the transport lacks the requested login method.
	ErrUnsupported = errors.New("login method not supported by transport")
)

// User facing reasons.
const (
	reasonAuthentication = "login failed, please check the user name and password"
	reasonTokenMissing   = "login failed: no valid token received"
	reasonProfileFetch   = "failed to get user info"
	reasonTransient      = "login failed, please try again later"
)

// LoginError is returned by every failed login. It matches errors.Is
// against both its Kind and its cause.
type LoginError struct {
	Kind   error  // ErrAuthentication, ErrProfileFetch or ErrTransientNetwork
	Reason string // Message for the user
	Err    error  // Underlying cause, may be nil
}

func (e *LoginError) Error() string {
	return e.Reason
}

func (e *LoginError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// UserMessage returns the text to show the user for err.
func UserMessage(err error) string {
	var le *LoginError
	if apperrors.As(err, &le) {
		return le.Reason
	}
	return err.Error()
}

func isNetworkError(err error) bool {
	var urlErr *url.Error
	var netErr net.Error
	return apperrors.As(err, &urlErr) ||
		apperrors.As(err, &netErr) ||
		apperrors.Is(err, context.Canceled) ||
		apperrors.Is(err, context.DeadlineExceeded)
}

func loginResult(err error) string {
	var le *LoginError
	if !apperrors.As(err, &le) {
		return metrics.ResultTransientFailure
	}
	switch le.Kind {
	case ErrAuthentication:
		return metrics.ResultAuthentication
	case ErrProfileFetch:
		return metrics.ResultProfileFetch
	default:
		return metrics.ResultTransientFailure
	}
}
