package http

import (
	"net/http"

	"library-backend/internal/usecase/member"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

type MemberHandler struct {
	base
	uc *member.Usecase
}

func NewMemberHandler(uc *member.Usecase, log logrus.FieldLogger) *MemberHandler {
	return &MemberHandler{base: newBase(log), uc: uc}
}

func (h *MemberHandler) Register(c echo.Context) error {
	var req member.RegisterInput
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	p, err := h.uc.Register(c.Request().Context(), req)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *MemberHandler) List(c echo.Context) error {
	out, err := h.uc.List(c.Request().Context())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *MemberHandler) Get(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badParam(c, "id")
	}
	p, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, p)
}
