package catalogmock

import (
	"context"
	"errors"

	domain "library-backend/internal/domain/catalog"
)

var _ domain.Repository = (*Repo)(nil)

var errUnimplemented = errors.New("catalogmock: method not implemented")

// Repo is a function-backed mock that satisfies catalog.Repository.
type Repo struct {
	ExistsFn  func(ctx context.Context, bookID uint64) (bool, error)
	CreateFn  func(ctx context.Context, b *domain.Book) error
	SaveFn    func(ctx context.Context, b *domain.Book) error
	DeleteFn  func(ctx context.Context, bookID uint64) error
	GetByIDFn func(ctx context.Context, bookID uint64) (*domain.Book, error)
	ListFn    func(ctx context.Context) ([]domain.Book, error)
	SearchFn  func(ctx context.Context, keyword string) ([]domain.Book, error)
	CountFn   func(ctx context.Context) (int64, error)
}

func (m *Repo) Exists(ctx context.Context, bookID uint64) (bool, error) {
	if m.ExistsFn != nil {
		return m.ExistsFn(ctx, bookID)
	}
	return false, errUnimplemented
}

func (m *Repo) Create(ctx context.Context, b *domain.Book) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, b)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, b *domain.Book) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, b)
	}
	return nil
}

func (m *Repo) Delete(ctx context.Context, bookID uint64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, bookID)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, bookID uint64) (*domain.Book, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, bookID)
	}
	return nil, errUnimplemented
}

func (m *Repo) List(ctx context.Context) ([]domain.Book, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return nil, nil
}

func (m *Repo) Search(ctx context.Context, keyword string) ([]domain.Book, error) {
	if m.SearchFn != nil {
		return m.SearchFn(ctx, keyword)
	}
	return nil, nil
}

func (m *Repo) Count(ctx context.Context) (int64, error) {
	if m.CountFn != nil {
		return m.CountFn(ctx)
	}
	return 0, nil
}
