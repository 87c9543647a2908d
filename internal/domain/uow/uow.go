package uow

import (
	"context"

	"library-backend/internal/domain/catalog"
	"library-backend/internal/domain/loan"
	"library-backend/internal/domain/member"
)

// Repos are bound to the same transaction.
type Repos struct {
	Loans   loan.Ledger
	Books   catalog.Repository
	Members member.Repository
}

type UnitOfWork interface {
	// WithinTx commits when fn returns nil and rolls back otherwise.
	WithinTx(ctx context.Context, fn func(r Repos) error) error
}
