package controllerImp

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/labstack/echo/v4"

	"horta/database"
)

type readyFlag bool

func (r readyFlag) Ready() bool { return bool(r) }

func call(t *testing.T, h *HealthCtrl) (int, map[string]any) {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/health", nil), rec)
	if err := h.Health(c); err != nil {
		t.Fatalf("health: %v", err)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return rec.Code, body
}

func TestHealth(t *testing.T) {
	db, err := database.Open(filepath.Join(t.TempDir(), "health.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if code, _ := call(t, NewHealthCtrl(db, readyFlag(true))); code != http.StatusOK {
		t.Fatalf("healthy: code = %d", code)
	}
	code, body := call(t, NewHealthCtrl(db, readyFlag(false)))
	if code != http.StatusServiceUnavailable {
		t.Fatalf("not ready: code = %d", code)
	}
	checks := body["checks"].(map[string]any)
	if checks["database"].(map[string]any)["ok"] != true {
		t.Fatalf("database check = %v", checks["database"])
	}
	if code, _ := call(t, NewHealthCtrl(nil, readyFlag(true))); code != http.StatusServiceUnavailable {
		t.Fatalf("nil db: code = %d", code)
	}
}
