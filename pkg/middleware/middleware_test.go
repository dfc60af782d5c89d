package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func serve(mw echo.MiddlewareFunc, req *http.Request) int {
	e := echo.New()
	e.GET("/", func(c echo.Context) error { return c.NoContent(http.StatusNoContent) }, mw)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec.Code
}

func TestRequireReady(t *testing.T) {
	ready := false
	mw := RequireReady(func() bool { return ready })
	if code := serve(mw, httptest.NewRequest(http.MethodGet, "/", nil)); code != http.StatusServiceUnavailable {
		t.Fatalf("not ready: code = %d", code)
	}
	ready = true
	if code := serve(mw, httptest.NewRequest(http.MethodGet, "/", nil)); code != http.StatusNoContent {
		t.Fatalf("ready: code = %d", code)
	}
}

func TestAdminToken(t *testing.T) {
	if code := serve(AdminToken(""), httptest.NewRequest(http.MethodGet, "/", nil)); code != http.StatusNoContent {
		t.Fatalf("open token: code = %d", code)
	}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if code := serve(AdminToken("s3cret"), req); code != http.StatusUnauthorized {
		t.Fatalf("missing token: code = %d", code)
	}
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderAdminToken, "s3cret")
	if code := serve(AdminToken("s3cret"), req); code != http.StatusNoContent {
		t.Fatalf("valid token: code = %d", code)
	}
}
