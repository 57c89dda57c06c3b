package users

import (
	"slices"

	"github.com/jrsteele09/go-admin-session/internal/utils"
)

// UserInfo is the profile of the signed in console user as returned by the
// backend profile endpoint.
type UserInfo struct {
	UserID   string   `json:"userId"`   // Backend user identifier
	UserName string   `json:"userName"` // Display name shown in notifications
	Roles    []string `json:"roles"`    // Role names, e.g. "R_SUPER"
	Buttons  []string `json:"buttons"`  // Permission tokens for button level access
}

// IsZero reports whether no profile has been loaded.
func (u UserInfo) IsZero() bool {
	return u.UserID == "" && u.UserName == "" && len(u.Roles) == 0 && len(u.Buttons) == 0
}

func (u UserInfo) HasRole(role string) bool {
	return role != "" && slices.Contains(u.Roles, role)
}

func (u UserInfo) HasButton(button string) bool {
	return button != "" && slices.Contains(u.Buttons, button)
}

// Clone returns a deep copy so callers never share the slices.
func (u UserInfo) Clone() UserInfo {
	return UserInfo{
		UserID:   u.UserID,
		UserName: u.UserName,
		Roles:    utils.CloneStrings(u.Roles),
		Buttons:  utils.CloneStrings(u.Buttons),
	}
}

// Merge returns a new value where every field set in update replaces the
// corresponding field of u. Nil slices in update keep the old ones.
func (u UserInfo) Merge(update UserInfo) UserInfo {
	merged := u.Clone()
	if update.UserID != "" {
		merged.UserID = update.UserID
	}
	if update.UserName != "" {
		merged.UserName = update.UserName
	}
	if update.Roles != nil {
		merged.Roles = utils.CloneStrings(update.Roles)
	}
	if update.Buttons != nil {
		merged.Buttons = utils.CloneStrings(update.Buttons)
	}
	return merged
}
