// Package records is the flat key-value store behind the tracker. Every
// per-user fact the app persists (quit dates, the custom addiction list,
// notified-milestone markers) is a string value under a string key, scoped
// to the owning Clerk user.
package records

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by Get when the user has no record under the
// requested key. An unset quit date and a missing record are the same thing
// to callers.
var ErrKeyNotFound = errors.New("record not found")

// Store persists string records per user. Implementations must keep Get on
// a missing key distinguishable from a stored empty string.
type Store interface {
	// Get returns the value stored under key for the user, or ErrKeyNotFound.
	Get(ctx context.Context, clerkID, key string) (string, error)

	// Set writes value under key for the user, overwriting any previous value.
	Set(ctx context.Context, clerkID, key, value string) error

	// Delete removes the record under key. Deleting a missing key is not an error.
	Delete(ctx context.Context, clerkID, key string) error

	// Keys lists the user's record keys that start with prefix, sorted.
	// An empty prefix lists everything.
	Keys(ctx context.Context, clerkID, prefix string) ([]string, error)

	// DeleteAll removes every record the user owns. Used on account deletion.
	DeleteAll(ctx context.Context, clerkID string) error

	// Users lists every Clerk ID that owns at least one record. The milestone
	// watcher iterates this to sweep all trackers.
	Users(ctx context.Context) ([]string, error)
}
