package gormrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	loanDomain "library-backend/internal/domain/loan"

	"gorm.io/gorm"
)

type LoanRepository struct{ db *gorm.DB }

func NewLoanRepository(db *gorm.DB) *LoanRepository { return &LoanRepository{db: db} }

var _ loanDomain.Ledger = (*LoanRepository)(nil)

// ledgerErr tags driver failures so callers can tell them from policy rejections.
func ledgerErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, loanDomain.ErrLedgerUnavailable) {
		return err
	}
	return fmt.Errorf("%w: %w", loanDomain.ErrLedgerUnavailable, err)
}

func (r *LoanRepository) CountOpenLoans(ctx context.Context, memberID uint64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&loanDomain.Loan{}).
		Where("member_id = ? AND return_date IS NULL", memberID).
		Count(&n).Error
	return n, ledgerErr(err)
}

func (r *LoanRepository) AppendLoan(ctx context.Context, bookID, memberID uint64, loanDate, dueDate time.Time) (*loanDomain.Loan, error) {
	l := &loanDomain.Loan{
		BookID:   bookID,
		MemberID: memberID,
		LoanDate: loanDate.UTC(),
		DueDate:  dueDate.UTC(),
	}
	if err := r.db.WithContext(ctx).Create(l).Error; err != nil {
		return nil, ledgerErr(err)
	}
	return l, nil
}

func (r *LoanRepository) FindOpenLoan(ctx context.Context, memberID, bookID uint64) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	err := r.db.WithContext(ctx).
		Where("member_id = ? AND book_id = ? AND return_date IS NULL", memberID, bookID).
		Order("loan_date DESC, id DESC").
		First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, loanDomain.ErrNoActiveLoan
	}
	if err != nil {
		return nil, ledgerErr(err)
	}
	return &out, nil
}

func (r *LoanRepository) MarkReturned(ctx context.Context, loanID uint64, returnDate time.Time) error {
	res := r.db.WithContext(ctx).
		Model(&loanDomain.Loan{}).
		Where("id = ? AND return_date IS NULL", loanID).
		Update("return_date", returnDate.UTC())
	if res.Error != nil {
		return ledgerErr(res.Error)
	}
	if res.RowsAffected > 0 {
		return nil
	}
	// nothing updated: either closed already or unknown
	if _, err := r.GetByID(ctx, loanID); err != nil {
		return err
	}
	return loanDomain.ErrAlreadyReturned
}

func (r *LoanRepository) GetByID(ctx context.Context, loanID uint64) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	err := r.db.WithContext(ctx).Where("id = ?", loanID).First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, loanDomain.ErrLoanNotFound
	}
	if err != nil {
		return nil, ledgerErr(err)
	}
	return &out, nil
}

func (r *LoanRepository) ListLoans(ctx context.Context, memberID uint64) ([]loanDomain.Loan, error) {
	var out []loanDomain.Loan
	err := r.db.WithContext(ctx).
		Where("member_id = ?", memberID).
		Order("loan_date DESC, id DESC").
		Find(&out).Error
	return out, ledgerErr(err)
}

func (r *LoanRepository) ListOverdue(ctx context.Context, now time.Time) ([]loanDomain.Loan, error) {
	var out []loanDomain.Loan
	err := r.db.WithContext(ctx).
		Where("return_date IS NULL AND due_date < ?", now.UTC()).
		Order("due_date ASC, id ASC").
		Find(&out).Error
	return out, ledgerErr(err)
}
