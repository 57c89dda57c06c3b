package credentials

import "context"

// Key names a record in the credential store.
type Key string

const (
	KeyToken           Key = "token"           // Bearer token
	KeyRefreshToken    Key = "refreshToken"    // Refresh token, written and cleared with KeyToken
	KeyLastLoginUserID Key = "lastLoginUserId" // User ID recorded at reset, consumed by the next login
	KeyGlobalTabs      Key = "globalTabs"      // Cached console tabs
)

// Store is durable key/value storage that survives process restarts.
// Implementations must be safe for concurrent use.
type Store interface {
	// Set writes value under key, replacing any previous value
	Set(ctx context.Context, key Key, value string) error

	// Get returns the value under key; ok is false when nothing is stored
	Get(ctx context.Context, key Key) (value string, ok bool, err error)

	// Remove deletes key. Removing a missing key is not an error
	Remove(ctx context.Context, key Key) error
}

// ClosableStore is a Store backed by an open file or database.
type ClosableStore interface {
	Store
	Close() error
}
