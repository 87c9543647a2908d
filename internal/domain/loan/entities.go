package loan

import (
	"errors"
	"time"
)

const (
	// MaxOpenLoans is how many loans a member may hold without a return date.
	MaxOpenLoans = 3
	// LoanPeriod is the only valid distance between loan date and due date.
	LoanPeriod = 7 * 24 * time.Hour
)

var (
	ErrCapacityExceeded  = errors.New("member has reached the maximum number of open loans")
	ErrNoActiveLoan      = errors.New("no active loan found for this book and member")
	ErrLoanNotFound      = errors.New("loan not found")
	ErrAlreadyReturned   = errors.New("loan already returned")
	ErrBookNotFound      = errors.New("book not found")
	ErrLedgerUnavailable = errors.New("loan ledger unavailable")
)

// IsPolicyRejection reports whether err is a business-rule rejection rather
// than an infrastructure failure.
func IsPolicyRejection(err error) bool {
	switch {
	case errors.Is(err, ErrCapacityExceeded),
		errors.Is(err, ErrNoActiveLoan),
		errors.Is(err, ErrLoanNotFound),
		errors.Is(err, ErrAlreadyReturned),
		errors.Is(err, ErrBookNotFound):
		return true
	}
	return false
}

// Table: loans
type Loan struct {
	ID         uint64     `gorm:"primaryKey;column:id" json:"id"`
	BookID     uint64     `gorm:"column:book_id;not null;index:idx_loans_member_book,priority:2" json:"book_id"`
	MemberID   uint64     `gorm:"column:member_id;not null;index:idx_loans_member_book,priority:1" json:"member_id"`
	LoanDate   time.Time  `gorm:"column:loan_date;not null" json:"loan_date"`
	DueDate    time.Time  `gorm:"column:due_date;not null;index" json:"due_date"`
	ReturnDate *time.Time `gorm:"column:return_date" json:"return_date,omitempty"`
	CreatedAt  time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Loan) TableName() string { return "loans" }

// IsOpen reports whether the loan has not been returned yet.
func (l *Loan) IsOpen() bool { return l.ReturnDate == nil }

// IsOverdue compares the return date against the due date, or now when the
// loan is still open.
func (l *Loan) IsOverdue(now time.Time) bool {
	if l.ReturnDate != nil {
		return l.ReturnDate.After(l.DueDate)
	}
	return now.After(l.DueDate)
}

// DueDateFor returns loanDate plus exactly LoanPeriod, independent of
// calendar or zone boundaries.
func DueDateFor(loanDate time.Time) time.Time { return loanDate.Add(LoanPeriod) }

// CheckCapacity rejects a borrow when the member already holds MaxOpenLoans.
func CheckCapacity(openLoans int64) error {
	if openLoans >= MaxOpenLoans {
		return ErrCapacityExceeded
	}
	return nil
}
