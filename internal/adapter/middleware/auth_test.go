package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"library-backend/internal/adapter/token"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthEcho(iss *token.Issuer) *echo.Echo {
	e := echo.New()
	g := e.Group("", RequireAuth(iss))
	g.GET("/me", func(c echo.Context) error {
		id, ok := UserID(c)
		if !ok {
			return c.NoContent(http.StatusInternalServerError)
		}
		return c.JSON(http.StatusOK, map[string]any{"id": id, "role": Role(c)})
	})
	g.GET("/staff", func(c echo.Context) error { return c.NoContent(http.StatusNoContent) }, RequireRole("LIBRARIAN"))
	return e
}

func get(e *echo.Echo, path, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if auth != "" {
		req.Header.Set(echo.HeaderAuthorization, auth)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRequireAuth(t *testing.T) {
	iss := token.NewIssuer("0123456789abcdef0123", time.Hour)
	e := newAuthEcho(iss)

	member, _, err := iss.Issue(11, "MEMBER", time.Now())
	require.NoError(t, err)
	expired, _, err := token.NewIssuer("0123456789abcdef0123", time.Minute).Issue(11, "MEMBER", time.Now().Add(-time.Hour))
	require.NoError(t, err)

	rec := get(e, "/me", "Bearer "+member)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":11,"role":"MEMBER"}`, rec.Body.String())

	for name, auth := range map[string]string{
		"missing":    "",
		"not bearer": "Basic abc",
		"empty":      "Bearer  ",
		"garbage":    "Bearer x.y.z",
		"expired":    "Bearer " + expired,
	} {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, http.StatusUnauthorized, get(e, "/me", auth).Code)
		})
	}
	assert.Contains(t, get(e, "/me", "Bearer "+expired).Body.String(), "token expired")
}

func TestRequireRole(t *testing.T) {
	iss := token.NewIssuer("0123456789abcdef0123", time.Hour)
	e := newAuthEcho(iss)

	member, _, _ := iss.Issue(2, "MEMBER", time.Now())
	librarian, _, _ := iss.Issue(1, "LIBRARIAN", time.Now())

	assert.Equal(t, http.StatusForbidden, get(e, "/staff", "Bearer "+member).Code)
	assert.Equal(t, http.StatusNoContent, get(e, "/staff", "Bearer "+librarian).Code)
}

func TestUserID_Unset(t *testing.T) {
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	_, ok := UserID(c)
	assert.False(t, ok)
	assert.Empty(t, Role(c))

	SetPrincipal(c, 4, "LIBRARIAN")
	id, ok := UserID(c)
	assert.True(t, ok)
	assert.Equal(t, uint64(4), id)
	assert.Equal(t, "LIBRARIAN", Role(c))
}
