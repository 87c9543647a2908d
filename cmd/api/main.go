package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	httpadp "library-backend/internal/adapter/http"
	"library-backend/internal/adapter/lock"
	appmw "library-backend/internal/adapter/middleware"
	"library-backend/internal/adapter/repository/gormrepo"
	"library-backend/internal/adapter/token"
	"library-backend/internal/config"
	"library-backend/internal/infrastructure/cache"
	"library-backend/internal/infrastructure/db"
	"library-backend/internal/infrastructure/logging"
	"library-backend/internal/infrastructure/metrics"
	"library-backend/internal/jobs"
	"library-backend/internal/usecase/auth"
	"library-backend/internal/usecase/catalog"
	"library-backend/internal/usecase/loan"
	"library-backend/internal/usecase/member"
	"library-backend/pkg/id"
)

func main() {
	if err := run(); err != nil {
		logrus.WithError(err).Fatal("api stopped")
	}
}

func run() error {
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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

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

	var (
		rdb    *redis.Client
		locker loan.Locker = lock.NewMemory()
	)
	if cfg.RedisEnabled() {
		rdb, err = cache.OpenRedis(ctx, cfg.RedisAddr, cfg.RedisDB)
		if err != nil {
			return err
		}
		defer rdb.Close()
		locker = lock.NewRedis(rdb, 10*time.Second)
	}

	tx := gormrepo.NewGormUoW(gdb)
	repos := tx.Repos()
	tokens := token.NewIssuer(cfg.JWTSecret, cfg.TokenTTL)

	loans := loan.NewUsecase(repos.Loans, tx, loan.Options{
		VerifyBookExists: cfg.LoanVerifyBook,
		Locker:           locker,
		Logger:           log.WithField("component", "loan"),
		Observer:         metrics.LoanObserver{},
	})
	members := member.NewUsecase(repos.Members, tx)
	authUC := auth.NewUsecase(repos.Members, members, tokens)
	if cfg.SeedDefaultUsers {
		err = authUC.EnsureDefaults(ctx)
	} else {
		err = authUC.EnsureRoles(ctx)
	}
	if err != nil {
		return err
	}

	sweep, err := jobs.NewOverdueSweep(loans, metrics.SetOverdue, log).Schedule(ctx, cfg.OverdueSweepSpec)
	if err != nil {
		return err
	}
	defer func() { <-sweep.Stop().Done() }()

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(
		middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: id.NewRequestID}),
		requestLogger(log),
		middleware.Recover(),
		metrics.Middleware(),
	)

	deps := httpadp.Deps{
		Health:  httpadp.NewHandler(),
		Auth:    httpadp.NewAuthHandler(authUC, log),
		Books:   httpadp.NewBookHandler(catalog.NewUsecase(repos.Books), log),
		Members: httpadp.NewMemberHandler(members, log),
		Loans:   httpadp.NewLoanHandler(loans, log),
		Tokens:  tokens,
		Metrics: metrics.Handler(),
	}
	if rdb != nil {
		deps.Idempotency = appmw.Idempotency(rdb, cfg.IdempotencyTTL, log.WithField("component", "idempotency"))
	}
	httpadp.Register(e, deps)

	errc := make(chan error, 1)
	go func() {
		addr := ":" + cfg.AppPort
		log.WithField("addr", addr).Info("listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(sctx)
}

func requestLogger(log logrus.FieldLogger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			entry := log.WithFields(logrus.Fields{
				"method":     v.Method,
				"uri":        v.URI,
				"status":     v.Status,
				"latency":    v.Latency.String(),
				"request_id": v.RequestID,
			})
			if v.Error != nil {
				entry.WithError(v.Error).Error("request")
				return nil
			}
			entry.Info("request")
			return nil
		},
	})
}
