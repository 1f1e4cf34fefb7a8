// Package filex holds the small file helpers the CLI needs to store
// downloaded documents.
package filex

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const maxNameAttempts = 100

// EnsureDir creates name under base (the working directory when base is
// empty) and returns its absolute path.
func EnsureDir(base, name string) (string, error) {
	if base == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("getwd: %w", err)
		}
		base = cwd
	}

	dir := filepath.Join(base, name)

	if err := os.MkdirAll(dir, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}

	return dir, nil
}

// SafeName reduces a user supplied document name to a single path element.
func SafeName(name string) string {
	name = strings.TrimSpace(name)
	name = strings.NewReplacer("/", "_", "\\", "_", ":", "_").Replace(name)
	if name == "" || name == "." || name == ".." {
		return "document"
	}
	return name
}

// CreateUnique creates a new file for name in dir and never overwrites an
// existing one: "scan.pdf" becomes "scan (1).pdf", "scan (2).pdf" and so on.
func CreateUnique(dir, name string) (*os.File, error) {
	name = SafeName(name)
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)

	candidate := name
	for i := 1; i <= maxNameAttempts; i++ {
		f, err := os.OpenFile(filepath.Join(dir, candidate), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o660)
		if err == nil {
			return f, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("create %s: %w", candidate, err)
		}
		candidate = fmt.Sprintf("%s (%d)%s", stem, i, ext)
	}
	return nil, fmt.Errorf("create %s: too many files with this name", name)
}
