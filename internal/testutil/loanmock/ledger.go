package loanmock

import (
	"context"
	"errors"
	"time"

	domain "library-backend/internal/domain/loan"
)

var _ domain.Ledger = (*Ledger)(nil)

var errUnimplemented = errors.New("loanmock: method not implemented")

// Ledger is a function-backed mock that satisfies domain.Ledger.
// Unset functions return errUnimplemented.
type Ledger struct {
	CountOpenLoansFn func(ctx context.Context, memberID uint64) (int64, error)
	AppendLoanFn     func(ctx context.Context, bookID, memberID uint64, loanDate, dueDate time.Time) (*domain.Loan, error)
	FindOpenLoanFn   func(ctx context.Context, memberID, bookID uint64) (*domain.Loan, error)
	MarkReturnedFn   func(ctx context.Context, loanID uint64, returnDate time.Time) error
	GetByIDFn        func(ctx context.Context, loanID uint64) (*domain.Loan, error)
	ListLoansFn      func(ctx context.Context, memberID uint64) ([]domain.Loan, error)
	ListOverdueFn    func(ctx context.Context, now time.Time) ([]domain.Loan, error)
}

func (m *Ledger) CountOpenLoans(ctx context.Context, memberID uint64) (int64, error) {
	if m.CountOpenLoansFn != nil {
		return m.CountOpenLoansFn(ctx, memberID)
	}
	return 0, errUnimplemented
}

func (m *Ledger) AppendLoan(ctx context.Context, bookID, memberID uint64, loanDate, dueDate time.Time) (*domain.Loan, error) {
	if m.AppendLoanFn != nil {
		return m.AppendLoanFn(ctx, bookID, memberID, loanDate, dueDate)
	}
	return nil, errUnimplemented
}

func (m *Ledger) FindOpenLoan(ctx context.Context, memberID, bookID uint64) (*domain.Loan, error) {
	if m.FindOpenLoanFn != nil {
		return m.FindOpenLoanFn(ctx, memberID, bookID)
	}
	return nil, errUnimplemented
}

func (m *Ledger) MarkReturned(ctx context.Context, loanID uint64, returnDate time.Time) error {
	if m.MarkReturnedFn != nil {
		return m.MarkReturnedFn(ctx, loanID, returnDate)
	}
	return errUnimplemented
}

func (m *Ledger) GetByID(ctx context.Context, loanID uint64) (*domain.Loan, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, loanID)
	}
	return nil, errUnimplemented
}

func (m *Ledger) ListLoans(ctx context.Context, memberID uint64) ([]domain.Loan, error) {
	if m.ListLoansFn != nil {
		return m.ListLoansFn(ctx, memberID)
	}
	return nil, errUnimplemented
}

func (m *Ledger) ListOverdue(ctx context.Context, now time.Time) ([]domain.Loan, error) {
	if m.ListOverdueFn != nil {
		return m.ListOverdueFn(ctx, now)
	}
	return nil, errUnimplemented
}
