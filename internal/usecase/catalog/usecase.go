package catalog

import (
	"context"
	"strings"

	"library-backend/internal/domain/catalog"
)

type BookInput struct {
	Title    string `json:"title" validate:"required,max=255"`
	Author   string `json:"author" validate:"required,max=255"`
	ISBN     string `json:"isbn" validate:"required,max=32"`
	Genre    string `json:"genre" validate:"max=128"`
	Year     string `json:"year" validate:"omitempty,numeric,max=8"`
	Quantity int    `json:"quantity" validate:"gte=0"`
}

type Usecase struct{ books catalog.Repository }

func NewUsecase(r catalog.Repository) *Usecase { return &Usecase{books: r} }

func (in BookInput) normalize() (BookInput, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Author = strings.TrimSpace(in.Author)
	in.ISBN = strings.TrimSpace(in.ISBN)
	in.Genre = strings.TrimSpace(in.Genre)
	in.Year = strings.TrimSpace(in.Year)
	if in.Title == "" || in.Author == "" || in.ISBN == "" || in.Quantity < 0 {
		return in, catalog.ErrInvalidInput
	}
	// no stock logic: every title counts as a single copy unless told otherwise
	if in.Quantity == 0 {
		in.Quantity = 1
	}
	return in, nil
}

func (u *Usecase) Add(ctx context.Context, in BookInput) (*catalog.Book, error) {
	in, err := in.normalize()
	if err != nil {
		return nil, err
	}
	b := &catalog.Book{
		Title:    in.Title,
		Author:   in.Author,
		ISBN:     in.ISBN,
		Genre:    in.Genre,
		Year:     in.Year,
		Quantity: in.Quantity,
	}
	if err := u.books.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (u *Usecase) Update(ctx context.Context, bookID uint64, in BookInput) (*catalog.Book, error) {
	in, err := in.normalize()
	if err != nil {
		return nil, err
	}
	b := &catalog.Book{
		ID:       bookID,
		Title:    in.Title,
		Author:   in.Author,
		ISBN:     in.ISBN,
		Genre:    in.Genre,
		Year:     in.Year,
		Quantity: in.Quantity,
	}
	if err := u.books.Save(ctx, b); err != nil {
		return nil, err
	}
	return u.books.GetByID(ctx, bookID)
}

func (u *Usecase) Delete(ctx context.Context, bookID uint64) error {
	return u.books.Delete(ctx, bookID)
}

func (u *Usecase) Get(ctx context.Context, bookID uint64) (*catalog.Book, error) {
	return u.books.GetByID(ctx, bookID)
}

func (u *Usecase) List(ctx context.Context) ([]catalog.Book, error) {
	return u.books.List(ctx)
}

// Search falls back to List for a blank keyword.
func (u *Usecase) Search(ctx context.Context, keyword string) ([]catalog.Book, error) {
	if strings.TrimSpace(keyword) == "" {
		return u.books.List(ctx)
	}
	return u.books.Search(ctx, keyword)
}
