package app

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
	"unicode"
)

const (
	maxRandomSuffix = 1_000_000_000
	fallbackName    = "file"
)

// StoredName builds the on-disk name <unixMillis>-<rnd>-<name>.
func StoredName(original string, now time.Time, rnd int64, sanitize bool) string {
	name := BaseName(original)
	if sanitize {
		name = SanitizeName(name)
	}
	if name == "" || name == "." || name == ".." {
		name = fallbackName
	}
	return fmt.Sprintf("%d-%d-%s", now.UnixMilli(), rnd, name)
}

// NewStoredName uses the wall clock and a random suffix in [0, 1e9].
func NewStoredName(original string, sanitize bool) string {
	return StoredName(original, time.Now(), rand.Int63n(maxRandomSuffix+1), sanitize)
}

// BaseName strips any directory part, treating both '/' and '\' as separators
// so that names produced on Windows clients are handled as well.
func BaseName(p string) string {
	if i := strings.LastIndexAny(p, `/\`); i >= 0 {
		return p[i+1:]
	}
	return p
}

// SanitizeName replaces characters that are unsafe in a file name and trims
// leading dots so the result is never hidden or relative.
func SanitizeName(name string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r == '/' || r == '\\' || r == ':' || r == 0:
			return '_'
		case unicode.IsControl(r):
			return '_'
		}
		return r
	}, name)
	cleaned = strings.TrimLeft(cleaned, ".")
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return fallbackName
	}
	return cleaned
}
