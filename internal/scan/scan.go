package scan

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// ErrNotADirectory is returned when the scan root is not a directory.
var ErrNotADirectory = errors.New("scan root is not a directory")

// FileRecord describes one regular file discovered during a scan.
type FileRecord struct {
	Path       string
	Size       int64
	ModifiedAt time.Time
}

// Result holds the ordered outcome of a directory scan.
type Result struct {
	Files      []FileRecord
	TotalBytes int64
}

// Run recursively visits every regular file under root and returns the records
// in traversal order together with the aggregate byte size.
//
// Symbolic links are not followed: a symlinked directory is skipped rather
// than descended into, so cyclic link structures cannot hang the walk.
func Run(root string) (Result, error) {
	info, err := os.Stat(root)
	if err != nil {
		return Result{}, fmt.Errorf("stat scan root: %w", err)
	}
	if !info.IsDir() {
		return Result{}, fmt.Errorf("%w: %s", ErrNotADirectory, root)
	}

	var result Result
	err = filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			// Unreadable subtrees are skipped; the scan covers what it can reach.
			if entry != nil && entry.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if !entry.Type().IsRegular() {
			return nil
		}
		entryInfo, err := entry.Info()
		if err != nil {
			return nil
		}
		result.Files = append(result.Files, FileRecord{
			Path:       path,
			Size:       entryInfo.Size(),
			ModifiedAt: entryInfo.ModTime(),
		})
		result.TotalBytes += entryInfo.Size()
		return nil
	})
	if err != nil {
		return Result{}, fmt.Errorf("walk %s: %w", root, err)
	}
	return result, nil
}

// Truncate limits the result to the first max files, preserving order.
func (r Result) Truncate(max int) Result {
	if max <= 0 || len(r.Files) <= max {
		return r
	}
	truncated := Result{Files: r.Files[:max]}
	for _, file := range truncated.Files {
		truncated.TotalBytes += file.Size
	}
	return truncated
}
