package session

import (
	"context"

	"github.com/jrsteele09/go-admin-session/credentials"
	apperrors "github.com/jrsteele09/go-admin-session/internal/errors"
	"github.com/jrsteele09/go-admin-session/users"
	"github.com/pkg/errors"
)

// GetUserInfo loads the profile for the current token and merges it into
// the session. It reports false, leaving the session untouched, when the
// profile cannot be loaded.
func (c *Controller) GetUserInfo(ctx context.Context) bool {
	profile, err := c.fetchUserInfo(ctx)
	if err != nil {
		c.logger.Warn().Err(err).Msg("failed to get user info")
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.userInfo = c.mergeProfile(*profile)
	return true
}

// InitUserInfo restores the session at startup. A persisted token whose
// profile cannot be loaded is considered stale and the session is reset.
func (c *Controller) InitUserInfo(ctx context.Context) error {
	tok, ok, err := c.deps.Store.Get(ctx, credentials.KeyToken)
	if err != nil {
		return errors.Wrap(err, "[Controller.InitUserInfo] reading token")
	}
	if !ok || tok == "" {
		return nil
	}

	if !c.GetUserInfo(ctx) {
		c.logger.Info().Msg("persisted token rejected, resetting session")
		return c.ResetStore(ctx)
	}

	c.mu.Lock()
	c.token = tok
	c.mu.Unlock()
	c.metrics.SetLoggedIn(true)
	return nil
}

func (c *Controller) fetchUserInfo(ctx context.Context) (*users.UserInfo, error) {
	profile, err := c.deps.Transport.FetchProfile(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "[Controller.fetchUserInfo]")
	}
	if profile == nil {
		return nil, apperrors.Wrapf(apperrors.ErrEmptyResponse, "[Controller.fetchUserInfo] no profile")
	}
	return profile, nil
}
