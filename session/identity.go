package session

import (
	"context"

	"github.com/jrsteele09/go-admin-session/credentials"
	apperrors "github.com/jrsteele09/go-admin-session/internal/errors"
	"github.com/pkg/errors"
)

// checkTabClear compares the signed in user with the one recorded by the
// last reset. When they differ, or nothing was recorded, the cached and open
// tabs belonged to someone else and are cleared. The recorded id is consumed
// on every path, including a profile without a user id.
//
// A marker that cannot be read is treated as absent.
func (c *Controller) checkTabClear(ctx context.Context) (cleared bool, err error) {
	var errs []error
	defer func() {
		errs = append(errs, errors.Wrap(c.deps.Store.Remove(ctx, credentials.KeyLastLoginUserID), "[Controller.checkTabClear] consuming last login user"))
		err = apperrors.Join(errs...)
	}()

	c.mu.RLock()
	userID := c.userInfo.UserID
	c.mu.RUnlock()

	if userID == "" {
		return false, nil
	}

	last, ok, err := c.deps.Store.Get(ctx, credentials.KeyLastLoginUserID)
	if err != nil {
		errs = append(errs, errors.Wrap(err, "[Controller.checkTabClear] reading last login user"))
		ok = false
	}

	cleared = !ok || last != userID
	if cleared {
		errs = append(errs,
			errors.Wrap(c.deps.Store.Remove(ctx, credentials.KeyGlobalTabs), "[Controller.checkTabClear] removing cached tabs"),
			errors.Wrap(c.deps.Tabs.ClearTabs(ctx), "[Controller.checkTabClear] clearing tabs"),
		)
	}
	return cleared, nil
}
