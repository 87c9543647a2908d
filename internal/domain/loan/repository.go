package loan

import (
	"context"
	"time"
)

// Ledger holds loan records. Records are appended on borrow, closed once on
// return and never deleted.
type Ledger interface {
	CountOpenLoans(ctx context.Context, memberID uint64) (int64, error)
	AppendLoan(ctx context.Context, bookID, memberID uint64, loanDate, dueDate time.Time) (*Loan, error)

	// FindOpenLoan returns the most recently created open loan for the pair,
	// or ErrNoActiveLoan.
	FindOpenLoan(ctx context.Context, memberID, bookID uint64) (*Loan, error)

	// MarkReturned sets the return date of an open loan. It returns
	// ErrAlreadyReturned for a closed loan and ErrLoanNotFound for an unknown id.
	MarkReturned(ctx context.Context, loanID uint64, returnDate time.Time) error

	GetByID(ctx context.Context, loanID uint64) (*Loan, error)

	// ListLoans returns the member's loans, most recent first.
	ListLoans(ctx context.Context, memberID uint64) ([]Loan, error)
	ListOverdue(ctx context.Context, now time.Time) ([]Loan, error)
}
