package http

import (
	"net/http"

	"library-backend/internal/usecase/loan"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

type LoanHandler struct {
	base
	uc *loan.Usecase
}

func NewLoanHandler(uc *loan.Usecase, log logrus.FieldLogger) *LoanHandler {
	return &LoanHandler{base: newBase(log), uc: uc}
}

func (h *LoanHandler) Borrow(c echo.Context) error {
	var req loan.BorrowInput
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	if !canActFor(c, req.MemberID) {
		return forbidden(c)
	}
	dto, err := h.uc.RequestBorrow(c.Request().Context(), req.MemberID, req.BookID, h.now())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *LoanHandler) Return(c echo.Context) error {
	var req loan.ReturnInput
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	if !canActFor(c, req.MemberID) {
		return forbidden(c)
	}
	dto, err := h.uc.RequestReturn(c.Request().Context(), req.MemberID, req.BookID, h.now())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) ReturnByID(c echo.Context) error {
	loanID, ok := pathID(c, "loan_id")
	if !ok {
		return badParam(c, "loan_id")
	}
	dto, err := h.uc.RequestReturnByID(c.Request().Context(), loanID, h.now())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) Overdue(c echo.Context) error {
	out, err := h.uc.ListOverdue(c.Request().Context(), h.now())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, out)
}

// MemberLoans lists every loan of the member in the path.
func (h *LoanHandler) MemberLoans(c echo.Context) error {
	memberID, ok := pathID(c, "id")
	if !ok {
		return badParam(c, "id")
	}
	if !canActFor(c, memberID) {
		return forbidden(c)
	}
	out, err := h.uc.ListLoans(c.Request().Context(), memberID, h.now())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, out)
}
