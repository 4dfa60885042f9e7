//go:build cgo

package engine

import (
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
)

const driverName = "sqlite3"

func dsn(path string, mode AccessMode) string {
	if path == ":memory:" {
		return ":memory:"
	}
	return fmt.Sprintf("file:%s?mode=%s&_busy_timeout=5000", path, modeName(mode))
}

// Code extracts the engine's native result code from a driver error.
// Errors that did not originate in the engine map to 1 (the generic
// SQLITE_ERROR).
func Code(err error) int {
	if err == nil {
		return 0
	}
	var se sqlite3.Error
	if errors.As(err, &se) {
		return int(se.Code)
	}
	return 1
}
