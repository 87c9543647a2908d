package gormrepo

import (
	"context"
	"errors"
	"strings"
	"time"

	"library-backend/internal/domain/catalog"

	"gorm.io/gorm"
)

type BookRepository struct{ db *gorm.DB }

func NewBookRepository(db *gorm.DB) *BookRepository { return &BookRepository{db: db} }

var _ catalog.Repository = (*BookRepository)(nil)

func (r *BookRepository) Exists(ctx context.Context, bookID uint64) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&catalog.Book{}).Where("id = ?", bookID).Count(&n).Error
	return n > 0, err
}

func (r *BookRepository) Create(ctx context.Context, b *catalog.Book) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *BookRepository) Save(ctx context.Context, b *catalog.Book) error {
	// updated_at always changes so RowsAffected only hits 0 for a missing row
	b.UpdatedAt = time.Now().UTC()
	res := r.db.WithContext(ctx).
		Model(&catalog.Book{}).
		Where("id = ?", b.ID).
		Select("title", "author", "isbn", "genre", "year", "quantity", "updated_at").
		Updates(b)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return catalog.ErrNotFound
	}
	return nil
}

func (r *BookRepository) Delete(ctx context.Context, bookID uint64) error {
	res := r.db.WithContext(ctx).Delete(&catalog.Book{}, bookID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return catalog.ErrNotFound
	}
	return nil
}

func (r *BookRepository) GetByID(ctx context.Context, bookID uint64) (*catalog.Book, error) {
	var out catalog.Book
	err := r.db.WithContext(ctx).Where("id = ?", bookID).First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, catalog.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *BookRepository) List(ctx context.Context) ([]catalog.Book, error) {
	var out []catalog.Book
	err := r.db.WithContext(ctx).Order("id").Find(&out).Error
	return out, err
}

// Search lowers both sides instead of ILIKE so the query runs on every dialect.
func (r *BookRepository) Search(ctx context.Context, keyword string) ([]catalog.Book, error) {
	pattern := "%" + strings.ToLower(strings.TrimSpace(keyword)) + "%"
	var out []catalog.Book
	err := r.db.WithContext(ctx).
		Where("LOWER(title) LIKE ? OR LOWER(author) LIKE ? OR LOWER(isbn) LIKE ? OR LOWER(genre) LIKE ?",
			pattern, pattern, pattern, pattern).
		Order("id").
		Find(&out).Error
	return out, err
}

func (r *BookRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&catalog.Book{}).Count(&n).Error
	return n, err
}
