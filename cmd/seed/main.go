// Command seed migrates the database and loads demo users, members and the
// sample catalog.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"library-backend/internal/adapter/repository/gormrepo"
	"library-backend/internal/adapter/token"
	"library-backend/internal/config"
	"library-backend/internal/infrastructure/db"
	"library-backend/internal/infrastructure/logging"
	"library-backend/internal/seed"
	"library-backend/internal/usecase/auth"
	"library-backend/internal/usecase/catalog"
	"library-backend/internal/usecase/member"
)

func main() {
	var opts seed.Options
	flag.BoolVar(&opts.Reset, "reset", false, "delete every book before seeding")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts seed.Options) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	log, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}

	gdb, err := db.OpenGorm(cfg.DB, logging.GormLogger(log))
	if err != nil {
		return err
	}
	if sqlDB, err := gdb.DB(); err == nil {
		defer sqlDB.Close()
	}
	if err := gormrepo.Migrate(ctx, gdb); err != nil {
		return err
	}

	tx := gormrepo.NewGormUoW(gdb)
	repos := tx.Repos()
	members := member.NewUsecase(repos.Members, tx)

	_, err = seed.Run(ctx, seed.Deps{
		Books:   repos.Books,
		Catalog: catalog.NewUsecase(repos.Books),
		Members: members,
		Auth:    auth.NewUsecase(repos.Members, members, token.NewIssuer(cfg.JWTSecret, cfg.TokenTTL)),
		Log:     log,
	}, opts)
	return err
}
