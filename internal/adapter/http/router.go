package http

import (
	"net/http"

	"library-backend/internal/adapter/middleware"
	"library-backend/internal/domain/member"

	"github.com/labstack/echo/v4"
)

type Deps struct {
	Health  *Handler
	Auth    *AuthHandler
	Books   *BookHandler
	Members *MemberHandler
	Loans   *LoanHandler
	Tokens  middleware.TokenParser

	// Idempotency guards the mutating loan routes; nil disables it.
	Idempotency echo.MiddlewareFunc
	// Metrics is served at /metrics when set.
	Metrics http.Handler
}

func Register(e *echo.Echo, d Deps) {
	e.Validator = NewValidator()

	e.GET("/health", d.Health.Health)
	if d.Metrics != nil {
		e.GET("/metrics", echo.WrapHandler(d.Metrics))
	}
	e.POST("/login", d.Auth.Login)

	authed := middleware.RequireAuth(d.Tokens)
	librarian := middleware.RequireRole(member.RoleLibrarian)
	// route-level chains keep unknown paths a plain 404
	guard := func(mws ...echo.MiddlewareFunc) []echo.MiddlewareFunc {
		return append([]echo.MiddlewareFunc{authed}, mws...)
	}
	mutating := func(mws ...echo.MiddlewareFunc) []echo.MiddlewareFunc {
		if d.Idempotency != nil {
			mws = append(mws, d.Idempotency)
		}
		return guard(mws...)
	}

	e.GET("/books", d.Books.List, guard()...)
	e.GET("/books/search", d.Books.Search, guard()...)
	e.GET("/books/:id", d.Books.Get, guard()...)
	e.POST("/books", d.Books.Create, guard(librarian)...)
	e.PUT("/books/:id", d.Books.Update, guard(librarian)...)
	e.DELETE("/books/:id", d.Books.Delete, guard(librarian)...)

	e.POST("/members", d.Members.Register, guard(librarian)...)
	e.GET("/members", d.Members.List, guard(librarian)...)
	e.GET("/members/:id", d.Members.Get, guard(librarian)...)
	e.GET("/members/:id/loans", d.Loans.MemberLoans, guard()...)

	e.POST("/loans/borrow", d.Loans.Borrow, mutating()...)
	e.POST("/loans/return", d.Loans.Return, mutating()...)
	e.POST("/loans/:loan_id/return", d.Loans.ReturnByID, mutating(librarian)...)
	e.GET("/loans/overdue", d.Loans.Overdue, guard(librarian)...)
}
