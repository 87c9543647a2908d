package http

import (
	"io"
	"net/http"
	"time"

	"library-backend/internal/adapter/middleware"
	"library-backend/internal/domain/member"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

type Handler struct{}

func NewHandler() *Handler { return &Handler{} }

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339Nano),
	})
}

// base carries what every resource handler shares.
type base struct {
	log logrus.FieldLogger
	now func() time.Time
}

func newBase(log logrus.FieldLogger) base {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return base{log: log, now: func() time.Time { return time.Now().UTC() }}
}

// canActFor allows librarians everything and members only their own records.
func canActFor(c echo.Context, memberID uint64) bool {
	if middleware.Role(c) == member.RoleLibrarian {
		return true
	}
	id, ok := middleware.UserID(c)
	return ok && id == memberID
}

func forbidden(c echo.Context) error {
	return c.JSON(http.StatusForbidden, ErrorResponse{Error: "forbidden"})
}
