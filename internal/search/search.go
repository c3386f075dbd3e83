// SPDX-License-Identifier: MPL-2.0

// Package search locates the justfile an invocation should use: an upward
// walk from the invocation directory toward the filesystem root, stopping
// at the first directory that contains one.
package search

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Filenames recognized in each directory, in precedence order.
var filenames = []string{"justfile", "Justfile"}

// ErrSearch is the sentinel wrapped by discovery failures.
var ErrSearch = errors.New("search error")

// NotFoundError reports that no recognized file exists between the start
// directory and the filesystem root.
type NotFoundError struct {
	Start string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no justfile found in '%s' or any parent directory", e.Start)
}

func (e *NotFoundError) Unwrap() error { return ErrSearch }

// Justfile walks upward from dir and returns the absolute path of the
// first justfile found.
func Justfile(dir string) (string, error) {
	start, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSearch, err)
	}
	current := start
	for {
		for _, name := range filenames {
			candidate := filepath.Join(current, name)
			info, err := os.Stat(candidate)
			if err == nil && info.Mode().IsRegular() {
				return candidate, nil
			}
		}
		parent := filepath.Dir(current)
		if parent == current {
			return "", &NotFoundError{Start: start}
		}
		current = parent
	}
}
