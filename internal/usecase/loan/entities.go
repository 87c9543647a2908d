package loan

import (
	"context"
	"time"

	domain "library-backend/internal/domain/loan"
)

type BorrowInput struct {
	MemberID uint64 `json:"member_id" validate:"required,gt=0"`
	BookID   uint64 `json:"book_id" validate:"required,gt=0"`
}

type ReturnInput struct {
	MemberID uint64 `json:"member_id" validate:"required,gt=0"`
	BookID   uint64 `json:"book_id" validate:"required,gt=0"`
}

type LoanDTO struct {
	ID         uint64     `json:"id"`
	BookID     uint64     `json:"book_id"`
	MemberID   uint64     `json:"member_id"`
	LoanDate   time.Time  `json:"loan_date"`
	DueDate    time.Time  `json:"due_date"`
	ReturnDate *time.Time `json:"return_date,omitempty"`
	Overdue    bool       `json:"overdue"`
}

func toDTO(l *domain.Loan, now time.Time) *LoanDTO {
	return &LoanDTO{
		ID:         l.ID,
		BookID:     l.BookID,
		MemberID:   l.MemberID,
		LoanDate:   l.LoanDate,
		DueDate:    l.DueDate,
		ReturnDate: l.ReturnDate,
		Overdue:    l.IsOverdue(now),
	}
}

func toDTOs(in []domain.Loan, now time.Time) []LoanDTO {
	out := make([]LoanDTO, 0, len(in))
	for i := range in {
		out = append(out, *toDTO(&in[i], now))
	}
	return out
}

// Locker serializes decisions for one key. The returned func releases the lock.
type Locker interface {
	Lock(ctx context.Context, key string) (func(), error)
}

// Observer receives one call per engine decision.
type Observer interface {
	Observe(operation, outcome string)
}

type nopLocker struct{}

func (nopLocker) Lock(context.Context, string) (func(), error) { return func() {}, nil }

type nopObserver struct{}

func (nopObserver) Observe(string, string) {}
