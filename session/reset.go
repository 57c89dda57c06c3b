package session

import (
	"context"

	"github.com/jrsteele09/go-admin-session/credentials"
	apperrors "github.com/jrsteele09/go-admin-session/internal/errors"
	"github.com/jrsteele09/go-admin-session/users"
	"github.com/pkg/errors"
)

// ResetStore signs the user out. The current user id is remembered as the
// last login so the next login can tell whether the identity changed, the
// token pair is removed from the store and memory, the console is sent to
// the login page unless it is on a constant route, and the open tabs are
// cached.
//
// Every step runs even when an earlier one fails; the failures are joined.
// Calling it again has no further effect.
func (c *Controller) ResetStore(ctx context.Context) error {
	var errs []error

	c.mu.Lock()
	if userID := c.userInfo.UserID; userID != "" {
		err := c.deps.Store.Set(ctx, credentials.KeyLastLoginUserID, userID)
		errs = append(errs, errors.Wrap(err, "[Controller.ResetStore] recording last login user"))
	}
	errs = append(errs,
		errors.Wrap(c.deps.Store.Remove(ctx, credentials.KeyToken), "[Controller.ResetStore] removing token"),
		errors.Wrap(c.deps.Store.Remove(ctx, credentials.KeyRefreshToken), "[Controller.ResetStore] removing refresh token"),
	)
	c.token = ""
	c.userInfo = users.UserInfo{}
	c.mu.Unlock()

	c.metrics.ObserveReset()
	c.metrics.SetLoggedIn(false)

	if !c.deps.Navigator.CurrentRoute().Constant {
		errs = append(errs, errors.Wrap(c.deps.Navigator.RedirectToLogin(ctx), "[Controller.ResetStore] redirect"))
	}
	errs = append(errs, errors.Wrap(c.deps.Tabs.CacheTabs(ctx), "[Controller.ResetStore] caching tabs"))

	if err := apperrors.Join(errs...); err != nil {
		c.logger.Error().Err(err).Msg("session reset incomplete")
		return err
	}
	c.logger.Debug().Msg("session reset")
	return nil
}
