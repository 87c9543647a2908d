package loan

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-backend/internal/domain/catalog"
	domain "library-backend/internal/domain/loan"
	"library-backend/internal/domain/uow"
	"library-backend/internal/testutil/catalogmock"
	"library-backend/internal/testutil/loanmock"
	"library-backend/internal/testutil/uowmock"
)

var t0 = time.Date(2024, 5, 10, 9, 30, 0, 0, time.UTC)

type recordingObserver struct {
	mu    sync.Mutex
	calls []string
}

func (o *recordingObserver) Observe(op, outcome string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.calls = append(o.calls, op+":"+outcome)
}

func newEngine(ledger domain.Ledger, opts Options) *Usecase {
	return NewUsecase(ledger, uowmock.Passthrough(uow.Repos{Loans: ledger, Books: &catalogmock.Repo{}}), opts)
}

func TestRequestBorrow_SucceedsIffUnderCapacity(t *testing.T) {
	for k := 0; k <= 4; k++ {
		ledger := &loanmock.Ledger{
			CountOpenLoansFn: func(context.Context, uint64) (int64, error) { return int64(k), nil },
			AppendLoanFn: func(_ context.Context, bookID, memberID uint64, ld, dd time.Time) (*domain.Loan, error) {
				return &domain.Loan{ID: 1, BookID: bookID, MemberID: memberID, LoanDate: ld, DueDate: dd}, nil
			},
		}
		_, err := newEngine(ledger, Options{}).RequestBorrow(context.Background(), 1, 2, t0)
		if k < domain.MaxOpenLoans {
			assert.NoError(t, err, "k=%d", k)
		} else {
			assert.ErrorIs(t, err, domain.ErrCapacityExceeded, "k=%d", k)
		}
	}
}

func TestRequestBorrow_M1AtCapacityLeavesLedgerUnchanged(t *testing.T) {
	ctx := context.Background()
	ledger := loanmock.NewMemory()
	eng := newEngine(ledger, Options{})
	for _, b := range []uint64{1, 2, 3} {
		_, err := eng.RequestBorrow(ctx, 1, b, t0)
		require.NoError(t, err)
	}

	_, err := eng.RequestBorrow(ctx, 1, 9, t0)
	require.ErrorIs(t, err, domain.ErrCapacityExceeded)
	assert.True(t, domain.IsPolicyRejection(err))

	n, _ := ledger.CountOpenLoans(ctx, 1)
	assert.Equal(t, int64(3), n)
	assert.Equal(t, 3, ledger.Appends)
	_, err = ledger.FindOpenLoan(ctx, 1, 9)
	assert.ErrorIs(t, err, domain.ErrNoActiveLoan)
}

func TestBorrowThenReturn_M2RoundTrip(t *testing.T) {
	ctx := context.Background()
	ledger := loanmock.NewMemory()
	eng := newEngine(ledger, Options{})

	got, err := eng.RequestBorrow(ctx, 2, 1, t0)
	require.NoError(t, err)
	assert.Equal(t, t0, got.LoanDate)
	assert.Equal(t, t0.Add(7*24*time.Hour), got.DueDate)
	assert.Nil(t, got.ReturnDate)

	ret, err := eng.RequestReturn(ctx, 2, 1, t0.Add(48*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, got.ID, ret.ID)
	require.NotNil(t, ret.ReturnDate)
	assert.Equal(t, t0.Add(48*time.Hour), *ret.ReturnDate)
	assert.False(t, ret.Overdue)

	loans, err := eng.ListLoans(ctx, 2, t0.Add(72*time.Hour))
	require.NoError(t, err)
	require.Len(t, loans, 1)
	require.NotNil(t, loans[0].ReturnDate)
	assert.False(t, loans[0].ReturnDate.Before(loans[0].LoanDate))
}

func TestRequestReturn_M3WithoutBorrow(t *testing.T) {
	_, err := newEngine(loanmock.NewMemory(), Options{}).RequestReturn(context.Background(), 3, 5, t0)
	assert.ErrorIs(t, err, domain.ErrNoActiveLoan)
}

func TestRequestReturn_SecondReturnHasNoActiveLoan(t *testing.T) {
	ctx := context.Background()
	eng := newEngine(loanmock.NewMemory(), Options{})

	_, err := eng.RequestBorrow(ctx, 4, 8, t0)
	require.NoError(t, err)
	_, err = eng.RequestReturn(ctx, 4, 8, t0.Add(time.Hour))
	require.NoError(t, err)

	_, err = eng.RequestReturn(ctx, 4, 8, t0.Add(2*time.Hour))
	assert.ErrorIs(t, err, domain.ErrNoActiveLoan)
}

func TestRequestBorrow_DueDateAcrossCalendarBoundaries(t *testing.T) {
	est := time.FixedZone("EST", -5*60*60)
	cases := []time.Time{
		time.Date(2024, 1, 28, 12, 0, 0, 0, time.UTC),
		time.Date(2024, 2, 26, 23, 59, 59, 0, time.UTC),
		time.Date(2023, 12, 29, 8, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 8, 22, 0, 0, 0, est),
	}
	for _, at := range cases {
		got, err := newEngine(loanmock.NewMemory(), Options{}).RequestBorrow(context.Background(), 1, 1, at)
		require.NoError(t, err)
		assert.Equal(t, 168*time.Hour, got.DueDate.Sub(got.LoanDate), "loan at %v", at)
	}
}

func TestRequestReturnByID(t *testing.T) {
	ctx := context.Background()
	ledger := loanmock.NewMemory()
	eng := newEngine(ledger, Options{})

	borrowed, err := eng.RequestBorrow(ctx, 6, 2, t0)
	require.NoError(t, err)

	first := t0.Add(10 * 24 * time.Hour)
	got, err := eng.RequestReturnByID(ctx, borrowed.ID, first)
	require.NoError(t, err)
	require.NotNil(t, got.ReturnDate)
	assert.True(t, got.Overdue)

	_, err = eng.RequestReturnByID(ctx, borrowed.ID, first.Add(time.Hour))
	assert.ErrorIs(t, err, domain.ErrAlreadyReturned)
	stored, _ := ledger.GetByID(ctx, borrowed.ID)
	assert.Equal(t, first, *stored.ReturnDate)

	_, err = eng.RequestReturnByID(ctx, 404, t0)
	assert.ErrorIs(t, err, domain.ErrLoanNotFound)
}

func TestLedgerFailurePropagatesUnchanged(t *testing.T) {
	down := errors.New("connection refused")
	obs := &recordingObserver{}
	ledger := &loanmock.Ledger{
		CountOpenLoansFn: func(context.Context, uint64) (int64, error) { return 0, down },
	}
	_, err := newEngine(ledger, Options{Observer: obs}).RequestBorrow(context.Background(), 1, 1, t0)
	assert.Same(t, down, err)
	assert.False(t, domain.IsPolicyRejection(err))
	assert.Equal(t, []string{"borrow:error"}, obs.calls)
}

func TestRequestBorrow_VerifyBookExists(t *testing.T) {
	ctx := context.Background()
	ledger := loanmock.NewMemory()
	books := &catalogmock.Repo{
		ExistsFn: func(_ context.Context, id uint64) (bool, error) { return id == 1, nil },
	}
	eng := NewUsecase(ledger, uowmock.Passthrough(uow.Repos{Loans: ledger, Books: books}), Options{VerifyBookExists: true})

	_, err := eng.RequestBorrow(ctx, 1, 2, t0)
	assert.ErrorIs(t, err, domain.ErrBookNotFound)
	assert.Equal(t, 0, ledger.Appends)

	_, err = eng.RequestBorrow(ctx, 1, 1, t0)
	assert.NoError(t, err)

	books.ExistsFn = func(context.Context, uint64) (bool, error) { return false, catalog.ErrNotFound }
	_, err = eng.RequestBorrow(ctx, 1, 1, t0)
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestObserverSeesEveryDecision(t *testing.T) {
	ctx := context.Background()
	obs := &recordingObserver{}
	eng := newEngine(loanmock.NewMemory(), Options{Observer: obs})

	_, _ = eng.RequestBorrow(ctx, 1, 1, t0)
	_, _ = eng.RequestReturn(ctx, 1, 1, t0)
	_, _ = eng.RequestReturn(ctx, 1, 1, t0)

	assert.Equal(t, []string{"borrow:ok", "return:ok", "return:no_active_loan"}, obs.calls)
}

type countingLocker struct {
	mu   sync.Mutex
	keys []string
}

func (l *countingLocker) Lock(_ context.Context, key string) (func(), error) {
	l.mu.Lock()
	l.keys = append(l.keys, key)
	l.mu.Unlock()
	return func() {}, nil
}

func TestLockerKeyedByMember(t *testing.T) {
	locker := &countingLocker{}
	eng := newEngine(loanmock.NewMemory(), Options{Locker: locker})

	_, err := eng.RequestBorrow(context.Background(), 42, 1, t0)
	require.NoError(t, err)
	_, err = eng.RequestReturn(context.Background(), 42, 1, t0)
	require.NoError(t, err)
	assert.Equal(t, []string{"member:42", "member:42"}, locker.keys)
}

func TestLockFailureSkipsLedger(t *testing.T) {
	lockErr := context.DeadlineExceeded
	ledger := &loanmock.Ledger{}
	eng := newEngine(ledger, Options{Locker: lockerFunc(func(context.Context, string) (func(), error) { return nil, lockErr })})

	_, err := eng.RequestBorrow(context.Background(), 1, 1, t0)
	assert.ErrorIs(t, err, lockErr)
}

type lockerFunc func(ctx context.Context, key string) (func(), error)

func (f lockerFunc) Lock(ctx context.Context, key string) (func(), error) { return f(ctx, key) }

func TestListOverdue(t *testing.T) {
	ctx := context.Background()
	eng := newEngine(loanmock.NewMemory(), Options{})
	_, _ = eng.RequestBorrow(ctx, 1, 1, t0)
	_, _ = eng.RequestBorrow(ctx, 2, 2, t0.Add(3*24*time.Hour))

	got, err := eng.ListOverdue(ctx, t0.Add(8*24*time.Hour))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, uint64(1), got[0].MemberID)
	assert.True(t, got[0].Overdue)
}

func TestOutcome(t *testing.T) {
	assert.Equal(t, "ok", Outcome(nil))
	assert.Equal(t, "capacity_exceeded", Outcome(domain.ErrCapacityExceeded))
	assert.Equal(t, "ledger_unavailable", Outcome(errors.Join(domain.ErrLedgerUnavailable, errors.New("x"))))
	assert.Equal(t, "error", Outcome(errors.New("other")))
}
