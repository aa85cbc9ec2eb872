package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"filescape/internal/config"
)

type usageError struct {
	err error
}

func (u usageError) Error() string { return u.err.Error() }

func (u usageError) Unwrap() error { return u.err }

func usageErrorf(format string, args ...any) error {
	return usageError{err: fmt.Errorf(format, args...)}
}

func isUsageError(err error) bool {
	var u usageError
	return errors.As(err, &u)
}

// resolveRoot turns the optional positional directory argument into an
// absolute path, defaulting to the current directory.
func resolveRoot(args []string) (string, error) {
	root := "."
	if len(args) > 0 {
		root = args[0]
	}
	expanded, err := config.ExpandPath(root)
	if err != nil {
		return "", usageErrorf("resolve directory %q: %w", root, err)
	}
	info, err := os.Stat(expanded)
	if err != nil {
		return "", usageErrorf("directory %q: %w", root, err)
	}
	if !info.IsDir() {
		return "", usageErrorf("%q is not a directory", root)
	}
	return filepath.Clean(expanded), nil
}

func humanBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
