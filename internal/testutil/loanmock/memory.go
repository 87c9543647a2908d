package loanmock

import (
	"context"
	"sort"
	"sync"
	"time"

	domain "library-backend/internal/domain/loan"
)

var _ domain.Ledger = (*Memory)(nil)

// Memory is an in-memory ledger for tests that need real state across calls.
// Appends counts successful AppendLoan calls.
type Memory struct {
	mu      sync.Mutex
	loans   []domain.Loan
	nextID  uint64
	Appends int
}

func NewMemory() *Memory { return &Memory{} }

func (m *Memory) CountOpenLoans(_ context.Context, memberID uint64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, l := range m.loans {
		if l.MemberID == memberID && l.ReturnDate == nil {
			n++
		}
	}
	return n, nil
}

func (m *Memory) AppendLoan(_ context.Context, bookID, memberID uint64, loanDate, dueDate time.Time) (*domain.Loan, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	l := domain.Loan{ID: m.nextID, BookID: bookID, MemberID: memberID, LoanDate: loanDate, DueDate: dueDate}
	m.loans = append(m.loans, l)
	m.Appends++
	return &l, nil
}

func (m *Memory) FindOpenLoan(_ context.Context, memberID, bookID uint64) (*domain.Loan, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := len(m.loans) - 1; i >= 0; i-- {
		l := m.loans[i]
		if l.MemberID == memberID && l.BookID == bookID && l.ReturnDate == nil {
			return &l, nil
		}
	}
	return nil, domain.ErrNoActiveLoan
}

func (m *Memory) MarkReturned(_ context.Context, loanID uint64, returnDate time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.loans {
		if m.loans[i].ID != loanID {
			continue
		}
		if m.loans[i].ReturnDate != nil {
			return domain.ErrAlreadyReturned
		}
		rd := returnDate
		m.loans[i].ReturnDate = &rd
		return nil
	}
	return domain.ErrLoanNotFound
}

func (m *Memory) GetByID(_ context.Context, loanID uint64) (*domain.Loan, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, l := range m.loans {
		if l.ID == loanID {
			return &l, nil
		}
	}
	return nil, domain.ErrLoanNotFound
}

func (m *Memory) ListLoans(_ context.Context, memberID uint64) ([]domain.Loan, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Loan
	for i := len(m.loans) - 1; i >= 0; i-- {
		if m.loans[i].MemberID == memberID {
			out = append(out, m.loans[i])
		}
	}
	return out, nil
}

func (m *Memory) ListOverdue(_ context.Context, now time.Time) ([]domain.Loan, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Loan
	for _, l := range m.loans {
		if l.ReturnDate == nil && l.DueDate.Before(now) {
			out = append(out, l)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].DueDate.Before(out[j].DueDate) })
	return out, nil
}
