package gormrepo

import (
	"context"

	"library-backend/internal/domain/catalog"
	"library-backend/internal/domain/loan"
	"library-backend/internal/domain/member"

	"gorm.io/gorm"
)

// Migrate creates or updates every table the service owns.
func Migrate(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).AutoMigrate(
		&member.Role{},
		&member.User{},
		&member.Member{},
		&catalog.Book{},
		&loan.Loan{},
	)
}
