package seed

import (
	"context"
	"testing"
	"time"

	"library-backend/internal/adapter/repository/gormrepo"
	"library-backend/internal/usecase/auth"
	"library-backend/internal/usecase/catalog"
	"library-backend/internal/usecase/member"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type nopTokens struct{}

func (nopTokens) Issue(uint64, string, time.Time) (string, time.Time, error) {
	return "", time.Time{}, nil
}

func newDeps(t *testing.T, name string) Deps {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, gormrepo.Migrate(context.Background(), db))

	tx := gormrepo.NewGormUoW(db)
	repos := tx.Repos()
	members := member.NewUsecase(repos.Members, tx).WithHashCost(bcrypt.MinCost)
	return Deps{
		Books:   repos.Books,
		Catalog: catalog.NewUsecase(repos.Books),
		Members: members,
		Auth:    auth.NewUsecase(repos.Members, members, nopTokens{}),
	}
}

func TestRun_SeedsOnceAndIsRepeatable(t *testing.T) {
	ctx := context.Background()
	d := newDeps(t, "seed_repeat")

	res, err := Run(ctx, d, Options{})
	require.NoError(t, err)
	assert.Equal(t, len(SampleBooks), res.Books)
	assert.Equal(t, len(SampleMembers), res.Members)

	profiles, err := d.Members.List(ctx)
	require.NoError(t, err)
	assert.Len(t, profiles, len(auth.DefaultUsers)+len(SampleMembers))

	res, err = Run(ctx, d, Options{})
	require.NoError(t, err)
	assert.Zero(t, res.Books)
	assert.Zero(t, res.Members)

	n, err := d.Books.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(len(SampleBooks)), n)

	found, err := d.Catalog.Search(ctx, "software engineering")
	require.NoError(t, err)
	assert.Len(t, found, 2)
	for _, b := range found {
		assert.Equal(t, 1, b.Quantity)
	}
}

func TestRun_ResetReplacesCatalog(t *testing.T) {
	ctx := context.Background()
	d := newDeps(t, "seed_reset")

	_, err := d.Catalog.Add(ctx, catalog.BookInput{Title: "Local", Author: "Me", ISBN: "1"})
	require.NoError(t, err)

	res, err := Run(ctx, d, Options{})
	require.NoError(t, err)
	assert.Zero(t, res.Books, "non-empty catalog is left alone")

	res, err = Run(ctx, d, Options{Reset: true})
	require.NoError(t, err)
	assert.Equal(t, len(SampleBooks), res.Books)

	local, err := d.Catalog.Search(ctx, "Local")
	require.NoError(t, err)
	assert.Empty(t, local)
}
