package users

import (
	"context"
	"errors"
)

// ErrNotFound is returned by store lookups that match no record.
var ErrNotFound = errors.New("users: not found")

// ErrDuplicate is returned by writes that violate a unique index.
var ErrDuplicate = errors.New("users: duplicate username or email")

// Store is the persistence boundary for user accounts. Implementations:
// GormStore (SQLite) for production, MemoryStore for tests.
type Store interface {
	FindByID(ctx context.Context, id string) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindAll(ctx context.Context) ([]User, error)

	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	Insert(ctx context.Context, user *User) error
	// Replace persists the full record over the row with user.ID.
	Replace(ctx context.Context, user *User) error
	Delete(ctx context.Context, id string) error
}
