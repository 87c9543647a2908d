package member

import "context"

type Repository interface {
	// EnsureRole returns the role with this name, creating it when missing.
	EnsureRole(ctx context.Context, name string) (*Role, error)

	// Create inserts the user and its member row; u.ID is set on success.
	Create(ctx context.Context, u *User, fullName string) (*Profile, error)

	UsernameExists(ctx context.Context, username string) (bool, error)
	GetByID(ctx context.Context, memberID uint64) (*Profile, error)
	GetCredentials(ctx context.Context, username string) (*Credentials, error)
	List(ctx context.Context) ([]Profile, error)
}
