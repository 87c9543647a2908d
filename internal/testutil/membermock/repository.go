package membermock

import (
	"context"
	"errors"

	domain "library-backend/internal/domain/member"
)

var _ domain.Repository = (*Repo)(nil)

var errUnimplemented = errors.New("membermock: method not implemented")

// Repo is a function-backed mock that satisfies member.Repository.
type Repo struct {
	EnsureRoleFn     func(ctx context.Context, name string) (*domain.Role, error)
	CreateFn         func(ctx context.Context, u *domain.User, fullName string) (*domain.Profile, error)
	UsernameExistsFn func(ctx context.Context, username string) (bool, error)
	GetByIDFn        func(ctx context.Context, memberID uint64) (*domain.Profile, error)
	GetCredentialsFn func(ctx context.Context, username string) (*domain.Credentials, error)
	ListFn           func(ctx context.Context) ([]domain.Profile, error)
}

func (m *Repo) EnsureRole(ctx context.Context, name string) (*domain.Role, error) {
	if m.EnsureRoleFn != nil {
		return m.EnsureRoleFn(ctx, name)
	}
	return nil, errUnimplemented
}

func (m *Repo) Create(ctx context.Context, u *domain.User, fullName string) (*domain.Profile, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, u, fullName)
	}
	return nil, errUnimplemented
}

func (m *Repo) UsernameExists(ctx context.Context, username string) (bool, error) {
	if m.UsernameExistsFn != nil {
		return m.UsernameExistsFn(ctx, username)
	}
	return false, nil
}

func (m *Repo) GetByID(ctx context.Context, memberID uint64) (*domain.Profile, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, memberID)
	}
	return nil, errUnimplemented
}

func (m *Repo) GetCredentials(ctx context.Context, username string) (*domain.Credentials, error) {
	if m.GetCredentialsFn != nil {
		return m.GetCredentialsFn(ctx, username)
	}
	return nil, errUnimplemented
}

func (m *Repo) List(ctx context.Context) ([]domain.Profile, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return nil, nil
}
