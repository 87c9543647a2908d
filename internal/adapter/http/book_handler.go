package http

import (
	"net/http"

	"library-backend/internal/usecase/catalog"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

type BookHandler struct {
	base
	uc *catalog.Usecase
}

func NewBookHandler(uc *catalog.Usecase, log logrus.FieldLogger) *BookHandler {
	return &BookHandler{base: newBase(log), uc: uc}
}

func (h *BookHandler) List(c echo.Context) error {
	books, err := h.uc.List(c.Request().Context())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, books)
}

func (h *BookHandler) Search(c echo.Context) error {
	books, err := h.uc.Search(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, books)
}

func (h *BookHandler) Get(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badParam(c, "id")
	}
	b, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, b)
}

func (h *BookHandler) Create(c echo.Context) error {
	var req catalog.BookInput
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	b, err := h.uc.Add(c.Request().Context(), req)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusCreated, b)
}

func (h *BookHandler) Update(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badParam(c, "id")
	}
	var req catalog.BookInput
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	b, err := h.uc.Update(c.Request().Context(), id, req)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, b)
}

func (h *BookHandler) Delete(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badParam(c, "id")
	}
	if err := h.uc.Delete(c.Request().Context(), id); err != nil {
		return writeError(c, h.log, err)
	}
	return c.NoContent(http.StatusNoContent)
}
