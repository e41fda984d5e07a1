package util

import (
	"errors"
	"path/filepath"
	"strings"
)

// ErrInvalidFileName is returned for names that are empty after cleaning.
var ErrInvalidFileName = errors.New("invalid file name")

// SanitizeFileName keeps only the final path element of a client-supplied
// name and replaces characters that are unsafe in file names.
func SanitizeFileName(name string) (string, error) {
	s := strings.TrimSpace(strings.ReplaceAll(name, "\\", "/"))
	s = filepath.Base(s)
	if s == "." || s == ".." || s == "/" || s == "" {
		return "", ErrInvalidFileName
	}
	s = strings.Map(func(r rune) rune {
		switch r {
		case ':', '*', '?', '"', '<', '>', '|', 0:
			return '_'
		}
		return r
	}, s)
	return s, nil
}
