package catalog

import "context"

type Repository interface {
	Exists(ctx context.Context, bookID uint64) (bool, error)

	Create(ctx context.Context, b *Book) error
	Save(ctx context.Context, b *Book) error
	Delete(ctx context.Context, bookID uint64) error
	GetByID(ctx context.Context, bookID uint64) (*Book, error)
	List(ctx context.Context) ([]Book, error)

	// Search matches keyword case-insensitively against title, author, isbn and genre.
	Search(ctx context.Context, keyword string) ([]Book, error)
	Count(ctx context.Context) (int64, error)
}
