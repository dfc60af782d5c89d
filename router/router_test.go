package router

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/labstack/echo/v4"

	"horta/database"
	"horta/entities"
	"horta/pkg/health/controllerImp"
	"horta/pkg/middleware"
	photoCtrlImp "horta/pkg/photo/controllerImp"
	photoRepoImp "horta/pkg/photo/repositoryImp"
	photoSvcImp "horta/pkg/photo/serviceImp"
	"horta/pkg/records"
	reportCtrlImp "horta/pkg/report/controllerImp"
	reportSvcImp "horta/pkg/report/serviceImp"
)

type staticSource struct{ snap *records.Snapshot }

func (s staticSource) Load(context.Context) (*records.Snapshot, []records.Warning, error) {
	cp := *s.snap
	return &cp, nil, nil
}

func i64(v int64) *int64 { return &v }

func newServer(t *testing.T) (*echo.Echo, string) {
	t.Helper()
	tmp := t.TempDir()
	db, err := database.Open(filepath.Join(tmp, "router.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	uploads := filepath.Join(tmp, "uploads")
	rs := reportSvcImp.New(staticSource{&records.Snapshot{
		Beds:      []entities.Bed{{BedID: i64(1), Name: "A"}},
		Plantings: []entities.Planting{{PlantingID: i64(100), BedID: i64(1)}},
	}})
	ps := photoSvcImp.New(photoRepoImp.New(db), uploads, rs.HasPlanting)
	e := New(echo.New(), reportCtrlImp.New(rs), photoCtrlImp.New(ps), controllerImp.NewHealthCtrl(db, rs), rs.Ready, "tok", uploads)
	return e, uploads
}

func do(e *echo.Echo, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestReportRoutesWaitForReload(t *testing.T) {
	e, _ := newServer(t)
	if rec := do(e, httptest.NewRequest(http.MethodGet, "/report", nil)); rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("before reload: code = %d", rec.Code)
	}
	if rec := do(e, httptest.NewRequest(http.MethodPost, "/reload", nil)); rec.Code != http.StatusUnauthorized {
		t.Fatalf("reload without token: code = %d", rec.Code)
	}
	req := httptest.NewRequest(http.MethodPost, "/reload", nil)
	req.Header.Set(middleware.HeaderAdminToken, "tok")
	if rec := do(e, req); rec.Code != http.StatusOK {
		t.Fatalf("reload: code = %d %s", rec.Code, rec.Body.String())
	}
	for _, target := range []string{"/report", "/filters", "/views/harvests", "/export/plantings.csv", "/export/workbook.xlsx", "/health"} {
		if rec := do(e, httptest.NewRequest(http.MethodGet, target, nil)); rec.Code != http.StatusOK {
			t.Fatalf("%s: code = %d", target, rec.Code)
		}
	}
}

func TestPhotoUploadAndStatic(t *testing.T) {
	e, uploads := newServer(t)
	req := httptest.NewRequest(http.MethodPost, "/reload", nil)
	req.Header.Set(middleware.HeaderAdminToken, "tok")
	do(e, req)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, _ := mw.CreateFormFile("file", "muda.jpg")
	fw.Write([]byte("img"))
	mw.WriteField("caption", "muda nova")
	mw.Close()

	req = httptest.NewRequest(http.MethodPost, "/plantings/100/photos", &body)
	req.Header.Set(echo.HeaderContentType, mw.FormDataContentType())
	req.Header.Set(middleware.HeaderAdminToken, "tok")
	if rec := do(e, req); rec.Code != http.StatusCreated {
		t.Fatalf("upload: code = %d %s", rec.Code, rec.Body.String())
	}

	entries, err := os.ReadDir(uploads)
	if err != nil || len(entries) != 1 {
		t.Fatalf("uploads = %v, %v", entries, err)
	}
	rec := do(e, httptest.NewRequest(http.MethodGet, "/uploads/"+entries[0].Name(), nil))
	if rec.Code != http.StatusOK || rec.Body.String() != "img" {
		t.Fatalf("static: code = %d body = %q", rec.Code, rec.Body.String())
	}
	rec = do(e, httptest.NewRequest(http.MethodGet, "/plantings/100/photos", nil))
	if rec.Code != http.StatusOK || !bytes.Contains(rec.Body.Bytes(), []byte("muda nova")) {
		t.Fatalf("list: %d %s", rec.Code, rec.Body.String())
	}
	req = httptest.NewRequest(http.MethodPost, "/plantings/999/photos", nil)
	req.Header.Set(middleware.HeaderAdminToken, "tok")
	if rec := do(e, req); rec.Code != http.StatusBadRequest {
		t.Fatalf("missing file: code = %d", rec.Code)
	}
}
