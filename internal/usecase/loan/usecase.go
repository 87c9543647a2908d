package loan

import (
	"context"
	"errors"
	"io"
	"strconv"
	"time"

	domain "library-backend/internal/domain/loan"
	"library-backend/internal/domain/uow"

	"github.com/sirupsen/logrus"
)

const (
	OpBorrow       = "borrow"
	OpReturn       = "return"
	OpReturnByID   = "return_by_id"
	OutcomeOK      = "ok"
	OutcomeFailure = "error"
)

type Options struct {
	// VerifyBookExists makes borrow consult the catalog first.
	VerifyBookExists bool
	Locker           Locker
	Logger           logrus.FieldLogger
	Observer         Observer
}

// Usecase is the loan policy engine. It owns no state; every decision is
// derived from the ledger inside one transaction.
type Usecase struct {
	loans      domain.Ledger
	tx         uow.UnitOfWork
	verifyBook bool
	locker     Locker
	log        logrus.FieldLogger
	obs        Observer
}

func NewUsecase(loans domain.Ledger, tx uow.UnitOfWork, opts Options) *Usecase {
	u := &Usecase{
		loans:      loans,
		tx:         tx,
		verifyBook: opts.VerifyBookExists,
		locker:     opts.Locker,
		log:        opts.Logger,
		obs:        opts.Observer,
	}
	if u.locker == nil {
		u.locker = nopLocker{}
	}
	if u.log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		u.log = l
	}
	if u.obs == nil {
		u.obs = nopObserver{}
	}
	return u
}

func memberKey(memberID uint64) string { return "member:" + strconv.FormatUint(memberID, 10) }

// RequestBorrow opens a loan due exactly LoanPeriod after now, unless the
// member already holds MaxOpenLoans open loans.
func (u *Usecase) RequestBorrow(ctx context.Context, memberID, bookID uint64, now time.Time) (*LoanDTO, error) {
	unlock, err := u.locker.Lock(ctx, memberKey(memberID))
	if err != nil {
		return nil, err
	}
	defer unlock()

	var created *domain.Loan
	err = u.tx.WithinTx(ctx, func(r uow.Repos) error {
		if u.verifyBook {
			ok, err := r.Books.Exists(ctx, bookID)
			if err != nil {
				return err
			}
			if !ok {
				return domain.ErrBookNotFound
			}
		}

		open, err := r.Loans.CountOpenLoans(ctx, memberID)
		if err != nil {
			return err
		}
		if err := domain.CheckCapacity(open); err != nil {
			return err
		}

		created, err = r.Loans.AppendLoan(ctx, bookID, memberID, now, domain.DueDateFor(now))
		return err
	})

	entry := u.log.WithField("member_id", memberID).WithField("book_id", bookID)
	if err != nil {
		u.reject(entry, OpBorrow, err)
		return nil, err
	}
	u.accept(entry.WithField("loan_id", created.ID), OpBorrow)
	return toDTO(created, now), nil
}

// RequestReturn closes the most recent open loan the member holds for the book.
func (u *Usecase) RequestReturn(ctx context.Context, memberID, bookID uint64, now time.Time) (*LoanDTO, error) {
	unlock, err := u.locker.Lock(ctx, memberKey(memberID))
	if err != nil {
		return nil, err
	}
	defer unlock()

	var closed *domain.Loan
	err = u.tx.WithinTx(ctx, func(r uow.Repos) error {
		l, err := r.Loans.FindOpenLoan(ctx, memberID, bookID)
		if err != nil {
			return err
		}
		if err := r.Loans.MarkReturned(ctx, l.ID, now); err != nil {
			return err
		}
		rd := now
		l.ReturnDate = &rd
		closed = l
		return nil
	})

	entry := u.log.WithField("member_id", memberID).WithField("book_id", bookID)
	if err != nil {
		u.reject(entry, OpReturn, err)
		return nil, err
	}
	u.accept(entry.WithField("loan_id", closed.ID), OpReturn)
	return toDTO(closed, now), nil
}

// RequestReturnByID closes a loan by id without matching member or book.
// A loan that is already closed keeps its return date and yields ErrAlreadyReturned.
func (u *Usecase) RequestReturnByID(ctx context.Context, loanID uint64, now time.Time) (*LoanDTO, error) {
	var closed *domain.Loan
	err := u.tx.WithinTx(ctx, func(r uow.Repos) error {
		if err := r.Loans.MarkReturned(ctx, loanID, now); err != nil {
			return err
		}
		l, err := r.Loans.GetByID(ctx, loanID)
		if err != nil {
			return err
		}
		closed = l
		return nil
	})

	entry := u.log.WithField("loan_id", loanID)
	if err != nil {
		u.reject(entry, OpReturnByID, err)
		return nil, err
	}
	u.accept(entry.WithField("member_id", closed.MemberID).WithField("book_id", closed.BookID), OpReturnByID)
	return toDTO(closed, now), nil
}

// ListLoans returns the member's loans, most recent first, with overdue
// computed at now.
func (u *Usecase) ListLoans(ctx context.Context, memberID uint64, now time.Time) ([]LoanDTO, error) {
	loans, err := u.loans.ListLoans(ctx, memberID)
	if err != nil {
		return nil, err
	}
	return toDTOs(loans, now), nil
}

// ListOverdue returns open loans whose due date is before now.
func (u *Usecase) ListOverdue(ctx context.Context, now time.Time) ([]LoanDTO, error) {
	loans, err := u.loans.ListOverdue(ctx, now)
	if err != nil {
		return nil, err
	}
	return toDTOs(loans, now), nil
}

func (u *Usecase) accept(entry logrus.FieldLogger, op string) {
	u.obs.Observe(op, OutcomeOK)
	entry.WithField("outcome", OutcomeOK).Info("loan " + op)
}

func (u *Usecase) reject(entry logrus.FieldLogger, op string, err error) {
	outcome := Outcome(err)
	u.obs.Observe(op, outcome)
	entry = entry.WithField("outcome", outcome)
	if domain.IsPolicyRejection(err) {
		entry.Info("loan " + op + " rejected: " + err.Error())
		return
	}
	entry.WithError(err).Error("loan " + op + " failed")
}

// Outcome names the decision an error stands for.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, domain.ErrCapacityExceeded):
		return "capacity_exceeded"
	case errors.Is(err, domain.ErrNoActiveLoan):
		return "no_active_loan"
	case errors.Is(err, domain.ErrAlreadyReturned):
		return "already_returned"
	case errors.Is(err, domain.ErrLoanNotFound):
		return "loan_not_found"
	case errors.Is(err, domain.ErrBookNotFound):
		return "book_not_found"
	case errors.Is(err, domain.ErrLedgerUnavailable):
		return "ledger_unavailable"
	}
	return OutcomeFailure
}
