package http

import (
	"errors"
	"net/http"
	"strconv"

	"library-backend/internal/domain/catalog"
	"library-backend/internal/domain/loan"
	"library-backend/internal/domain/member"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// statusFor maps domain errors to HTTP status and public message. Anything
// unclassified is reported as unavailable so infrastructure failures never
// look like policy rejections.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, loan.ErrCapacityExceeded):
		return http.StatusConflict, "loan limit reached"
	case errors.Is(err, loan.ErrAlreadyReturned):
		return http.StatusConflict, "loan already returned"
	case errors.Is(err, member.ErrUsernameTaken):
		return http.StatusConflict, "username already taken"
	case errors.Is(err, loan.ErrNoActiveLoan):
		return http.StatusNotFound, "no active loan for this member and book"
	case errors.Is(err, loan.ErrLoanNotFound):
		return http.StatusNotFound, "loan not found"
	case errors.Is(err, loan.ErrBookNotFound), errors.Is(err, catalog.ErrNotFound):
		return http.StatusNotFound, "book not found"
	case errors.Is(err, member.ErrNotFound):
		return http.StatusNotFound, "member not found"
	case errors.Is(err, member.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid username or password"
	case errors.Is(err, catalog.ErrInvalidInput), errors.Is(err, member.ErrInvalidInput), errors.Is(err, member.ErrUnknownRole):
		return http.StatusUnprocessableEntity, err.Error()
	default:
		return http.StatusServiceUnavailable, "service unavailable"
	}
}

func writeError(c echo.Context, log logrus.FieldLogger, err error) error {
	code, msg := statusFor(err)
	if code >= http.StatusInternalServerError {
		log.WithError(err).WithField("route", c.Path()).Error("request failed")
	}
	return c.JSON(code, ErrorResponse{Error: msg})
}

// bindAndValidate writes the 400/422 response itself and reports false when
// the handler should stop.
func bindAndValidate(c echo.Context, req any) (bool, error) {
	if err := c.Bind(req); err != nil {
		return false, c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(req); err != nil {
		return false, c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	return true, nil
}

func pathID(c echo.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	return id, err == nil && id > 0
}

func badParam(c echo.Context, name string) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid " + name + " path param"})
}
