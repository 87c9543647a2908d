package gormrepo

import (
	"context"

	"library-backend/internal/domain/uow"

	"gorm.io/gorm"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

var _ uow.UnitOfWork = (*GormUoW)(nil)

func reposFor(db *gorm.DB) uow.Repos {
	return uow.Repos{
		Loans:   &LoanRepository{db: db},
		Books:   &BookRepository{db: db},
		Members: &MemberRepository{db: db},
	}
}

// Repos returns repositories bound to the pool rather than a transaction.
func (u *GormUoW) Repos() uow.Repos { return reposFor(u.db) }

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	var fnErr error
	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		fnErr = fn(reposFor(tx))
		return fnErr
	})
	if err != nil && fnErr == nil {
		// begin or commit failed
		return ledgerErr(err)
	}
	return err
}
