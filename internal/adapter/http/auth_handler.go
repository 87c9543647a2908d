package http

import (
	"net/http"

	"library-backend/internal/usecase/auth"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

type AuthHandler struct {
	base
	uc *auth.Usecase
}

func NewAuthHandler(uc *auth.Usecase, log logrus.FieldLogger) *AuthHandler {
	return &AuthHandler{base: newBase(log), uc: uc}
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req auth.LoginInput
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	res, err := h.uc.Login(c.Request().Context(), req, h.now())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, res)
}
