package session

import (
	"context"
	"fmt"

	"github.com/jrsteele09/go-admin-session/credentials"
	apperrors "github.com/jrsteele09/go-admin-session/internal/errors"
	"github.com/jrsteele09/go-admin-session/metrics"
	"github.com/jrsteele09/go-admin-session/token"
	"github.com/jrsteele09/go-admin-session/transport"
	"github.com/pkg/errors"
)

const (
	loginSuccessTitle   = "Login successfully"
	welcomeBackTemplate = "Welcome back, %s !"
)

type authenticateFunc func(ctx context.Context) (*token.Pair, error)

// Login signs userName in with a password. On success the token is
// persisted, the profile is loaded and the console navigates away from the
// login page, back to where the user was when redirect is true and the same
// user signed in again. On failure the session is reset and a *LoginError
// is returned.
func (c *Controller) Login(ctx context.Context, userName, password string, redirect bool) error {
	return c.login(ctx, redirect, func(ctx context.Context) (*token.Pair, error) {
		return c.deps.Transport.Authenticate(ctx, userName, password)
	})
}

// LoginByCode signs in with a phone number and the verification code sent to
// it. It returns ErrUnsupported, without touching the session, when the
// transport has no code login.
func (c *Controller) LoginByCode(ctx context.Context, phone, code string, redirect bool) error {
	codes, ok := c.deps.Transport.(transport.CodeAuthenticator)
	if !ok {
		return ErrUnsupported
	}
	return c.login(ctx, redirect, func(ctx context.Context) (*token.Pair, error) {
		return codes.AuthenticateByCode(ctx, phone, code)
	})
}

func (c *Controller) login(ctx context.Context, redirect bool, authenticate authenticateFunc) (err error) {
	c.setLoading(true)
	defer func() {
		if r := recover(); r != nil {
			err = &LoginError{
				Kind:   ErrTransientNetwork,
				Reason: reasonTransient,
				Err:    fmt.Errorf("panic during login: %v", r),
			}
		}
		c.setLoading(false)
		if err != nil {
			c.abortLogin(ctx, err)
		}
	}()

	pair, err := authenticate(ctx)
	if err != nil {
		return authenticationFailure(err)
	}
	if pair == nil {
		return &LoginError{Kind: ErrAuthentication, Reason: reasonAuthentication}
	}

	claims, err := token.Inspect(pair.Token)
	if err != nil {
		c.notifier.Error(ctx, reasonTokenMissing)
		return &LoginError{
			Kind:   ErrAuthentication,
			Reason: reasonTokenMissing,
			Err:    fmt.Errorf("%w: %w", ErrTokenMissing, err),
		}
	}

	if err := c.persistTokens(ctx, pair); err != nil {
		return &LoginError{Kind: ErrTransientNetwork, Reason: reasonTransient, Err: err}
	}

	profile, err := c.fetchUserInfo(ctx)
	if err != nil {
		c.notifier.Error(ctx, reasonProfileFetch)
		return &LoginError{Kind: ErrProfileFetch, Reason: reasonProfileFetch, Err: err}
	}

	c.checkTokenClaims(claims, profile.UserID)

	c.mu.Lock()
	c.userInfo = c.mergeProfile(*profile)
	c.token = pair.Token
	userName := c.userInfo.UserName
	c.mu.Unlock()

	// The session is committed from here on; collaborator failures are
	// logged and do not undo it.
	cleared, err := c.checkTabClear(ctx)
	if err != nil {
		c.logger.Warn().Err(err).Msg("identity check incomplete")
	}
	if cleared {
		redirect = false
	}

	if err := c.deps.Navigator.RedirectFromLogin(ctx, redirect); err != nil {
		c.logger.Error().Err(err).Msg("redirect after login failed")
	}

	c.notifier.Success(ctx, loginSuccessTitle, fmt.Sprintf(welcomeBackTemplate, userName))
	c.metrics.ObserveLogin(metrics.ResultSuccess)
	c.metrics.SetLoggedIn(true)
	c.logger.Info().Str("userName", userName).Bool("tabsCleared", cleared).Msg("login succeeded")
	return nil
}

// abortLogin tears the session down after a failed login. The identity
// marker written by the reset is consumed straight away since this attempt
// already counts as the next login.
func (c *Controller) abortLogin(ctx context.Context, cause error) {
	c.logger.Warn().Err(cause).Str("result", loginResult(cause)).Msg("login failed")
	c.metrics.ObserveLogin(loginResult(cause))

	if err := c.ResetStore(ctx); err != nil {
		c.logger.Error().Err(err).Msg("reset after failed login incomplete")
	}
	if err := c.deps.Store.Remove(ctx, credentials.KeyLastLoginUserID); err != nil {
		c.logger.Error().Err(err).Msg("failed to consume last login user id")
	}
}

// checkTokenClaims logs what the unverified claims disagree with. The
// backend accepted the token and served the profile, so nothing is rejected.
func (c *Controller) checkTokenClaims(claims *token.Introspection, userID string) {
	if claims.Opaque {
		return
	}
	if claims.Subject != "" && userID != "" && claims.Subject != userID {
		c.logger.Warn().Str("subject", claims.Subject).Str("userId", userID).Msg("token subject differs from profile user")
	}
	if claims.Expired() {
		c.logger.Warn().Time("expiresAt", *claims.ExpiresAt).Msg("token already expired by local clock")
	}
}

func (c *Controller) persistTokens(ctx context.Context, pair *token.Pair) error {
	if err := c.deps.Store.Set(ctx, credentials.KeyToken, pair.Token); err != nil {
		return errors.Wrap(err, "[Controller.persistTokens] token")
	}
	if err := c.deps.Store.Set(ctx, credentials.KeyRefreshToken, pair.RefreshToken); err != nil {
		return errors.Wrap(err, "[Controller.persistTokens] refresh token")
	}
	return nil
}

func authenticationFailure(err error) *LoginError {
	var apiErr *transport.APIError
	if apperrors.As(err, &apiErr) {
		reason := apiErr.Message
		if reason == "" {
			reason = reasonAuthentication
		}
		return &LoginError{Kind: ErrAuthentication, Reason: reason, Err: err}
	}
	if isNetworkError(err) {
		return &LoginError{Kind: ErrTransientNetwork, Reason: reasonTransient, Err: err}
	}

	reason := err.Error()
	if reason == "" {
		reason = reasonAuthentication
	}
	return &LoginError{Kind: ErrAuthentication, Reason: reason, Err: err}
}
