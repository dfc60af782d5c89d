// Package fileutil holds file helpers shared by the upload and export paths.
package fileutil

import (
	"io"
	"os"
	"path/filepath"
)

// WriteScoped runs fill against a temp file next to dst and renames it into
// place only after fill and the flush succeed. On any failure the temp file
// is removed and dst is left untouched.
func WriteScoped(dst string, fill func(w io.Writer) error) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(dst), "."+filepath.Base(dst)+"-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err = fill(tmp); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), dst)
}
