package serviceImp

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
	"unicode"
)

// SanitizeName keeps letters, digits, spaces, dots and underscores of the
// base name; anything else is dropped.
func SanitizeName(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, `\`, "/"))
	var b strings.Builder
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' || r == '.' || r == '_' {
			b.WriteRune(r)
		}
	}
	return strings.Trim(strings.TrimSpace(b.String()), ".")
}

// FileName is planting_<id>_<unix>_<tag>_<name>.
func FileName(plantingID int64, at time.Time, tag, name string) string {
	return fmt.Sprintf("planting_%d_%d_%s_%s", plantingID, at.Unix(), tag, name)
}
