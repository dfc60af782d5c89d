package serviceImp

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"horta/database"
	"horta/pkg/photo/repositoryImp"
	svc "horta/pkg/photo/service"
)

func newSvc(t *testing.T) (*photoSvc, string) {
	t.Helper()
	tmp := t.TempDir()
	db, err := database.Open(filepath.Join(tmp, "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	dir := filepath.Join(tmp, "uploads")
	s := New(repositoryImp.New(db), dir, func(id int64) bool { return id == 100 }).(*photoSvc)
	s.now = func() time.Time { return time.Unix(1700000000, 0) }
	return s, dir
}

func TestSanitizeName(t *testing.T) {
	cases := map[string]string{
		"canteiro A.jpg":        "canteiro A.jpg",
		"../../etc/passwd":      "passwd",
		`C:\fotos\alface#1.png`: "alface1.png",
		"tomate_01.JPG":         "tomate_01.JPG",
		"***":                   "",
	}
	for in, want := range cases {
		if got := SanitizeName(in); got != want {
			t.Fatalf("SanitizeName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSaveWritesFileAndMetadata(t *testing.T) {
	s, dir := newSvc(t)
	ctx := context.Background()
	p, err := s.Save(ctx, 100, "folha.jpg", "primeira folha", strings.NewReader("jpeg-bytes"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if !strings.HasPrefix(p.File, "planting_100_1700000000_") || !strings.HasSuffix(p.File, "_folha.jpg") {
		t.Fatalf("file name = %q", p.File)
	}
	data, err := os.ReadFile(filepath.Join(dir, p.File))
	if err != nil || string(data) != "jpeg-bytes" {
		t.Fatalf("stored = %q, %v", data, err)
	}
	list, err := s.List(ctx, 100)
	if err != nil || len(list) != 1 || list[0].Caption != "primeira folha" {
		t.Fatalf("list = %+v, %v", list, err)
	}
}

func TestSaveUnknownPlanting(t *testing.T) {
	s, dir := newSvc(t)
	_, err := s.Save(context.Background(), 7, "x.jpg", "", strings.NewReader("x"))
	if !errors.Is(err, svc.ErrUnknownPlanting) {
		t.Fatalf("err = %v", err)
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Fatalf("upload dir created for a rejected upload")
	}
}

type failingReader struct{ n int }

func (r *failingReader) Read(p []byte) (int, error) {
	if r.n > 0 {
		return 0, io.ErrUnexpectedEOF
	}
	r.n++
	return copy(p, "partial"), nil
}

func TestSaveLeavesNoFileOnFailure(t *testing.T) {
	s, dir := newSvc(t)
	if _, err := s.Save(context.Background(), 100, "folha.jpg", "", &failingReader{}); err == nil {
		t.Fatalf("expected error")
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("left behind: %v", entries)
	}
	if list, _ := s.List(context.Background(), 100); len(list) != 0 {
		t.Fatalf("metadata recorded for a failed upload")
	}
}
