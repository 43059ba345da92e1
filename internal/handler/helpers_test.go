package handler

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/pawhaven/shelter-api/internal/auth"
)

// newTestContext builds an echo context with the request validator wired,
// the same way the server configures it in main.
func newTestContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()

	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rd)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// withIdentity injects a verified identity the way middleware.JWTAuth
// does after validating a token.
func withIdentity(c echo.Context, userID uint64, role string) {
	c.Set("identity", auth.Identity{UserID: userID, Role: role})
}
