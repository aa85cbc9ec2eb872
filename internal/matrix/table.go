package matrix

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// tabularMatrix parses whitespace-delimited numeric rows. Every non-empty
// line must contain the same number of numeric fields; anything else is a
// parse failure and the caller falls back to metadata.
func tabularMatrix(path string) (Matrix, error) {
	file, err := os.Open(path)
	if err != nil {
		return Matrix{}, fmt.Errorf("open table: %w", err)
	}
	defer file.Close()

	var values []float64
	rows := 0
	cols := 0

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if cols == 0 {
			cols = len(fields)
		} else if len(fields) != cols {
			return Matrix{}, fmt.Errorf("ragged row %d: %d fields, want %d", rows+1, len(fields), cols)
		}
		for _, field := range fields {
			value, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return Matrix{}, fmt.Errorf("row %d: %w", rows+1, err)
			}
			values = append(values, value)
		}
		rows++
	}
	if err := scanner.Err(); err != nil {
		return Matrix{}, fmt.Errorf("read table: %w", err)
	}
	if rows == 0 || cols == 0 {
		return Matrix{}, errors.New("no numeric rows")
	}
	return New(rows, cols, values), nil
}
