package matrixcache

import (
	"context"
	"database/sql"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"filescape/internal/matrix"
	"filescape/internal/scan"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS matrices (
	path        TEXT    NOT NULL PRIMARY KEY,
	size        INTEGER NOT NULL,
	mtime_unix  INTEGER NOT NULL,
	rows        INTEGER NOT NULL,
	cols        INTEGER NOT NULL,
	cells       BLOB    NOT NULL
);
`

// Cache persists converted matrices keyed by file identity (path, size,
// modification time). A file whose size or mtime changed is a miss; the stale
// row is overwritten on the next Put.
type Cache struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the cache database.
func Open(path string) (*Cache, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure cache directory: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open cache db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Cache{db: db, path: path}, nil
}

// Close closes the underlying database connection.
func (c *Cache) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	return c.db.Close()
}

// Get returns the cached matrix for the record, if its identity still matches.
func (c *Cache) Get(ctx context.Context, record scan.FileRecord) (matrix.Matrix, bool, error) {
	var rows, cols int
	var cells []byte
	err := c.db.QueryRowContext(ctx,
		"SELECT rows, cols, cells FROM matrices WHERE path = ? AND size = ? AND mtime_unix = ?",
		record.Path, record.Size, record.ModifiedAt.Unix(),
	).Scan(&rows, &cols, &cells)
	if errors.Is(err, sql.ErrNoRows) {
		return matrix.Matrix{}, false, nil
	}
	if err != nil {
		return matrix.Matrix{}, false, fmt.Errorf("cache lookup: %w", err)
	}

	values, err := decodeCells(cells, rows, cols)
	if err != nil {
		return matrix.Matrix{}, false, fmt.Errorf("cache row for %s: %w", record.Path, err)
	}
	return matrix.New(rows, cols, values), true, nil
}

// Put stores the matrix under the record's identity, replacing any stale row.
func (c *Cache) Put(ctx context.Context, record scan.FileRecord, m matrix.Matrix) error {
	_, err := c.db.ExecContext(ctx,
		"INSERT OR REPLACE INTO matrices (path, size, mtime_unix, rows, cols, cells) VALUES (?, ?, ?, ?, ?, ?)",
		record.Path, record.Size, record.ModifiedAt.Unix(), m.Rows(), m.Cols(), encodeCells(m),
	)
	if err != nil {
		return fmt.Errorf("cache store: %w", err)
	}
	return nil
}

// Prune removes every row except those matching the provided records, keeping
// the database proportional to the most recent scan.
func (c *Cache) Prune(ctx context.Context, records []scan.FileRecord) error {
	keep := make(map[string]struct{}, len(records))
	for _, record := range records {
		keep[record.Path] = struct{}{}
	}

	rows, err := c.db.QueryContext(ctx, "SELECT path FROM matrices")
	if err != nil {
		return fmt.Errorf("cache prune scan: %w", err)
	}
	defer rows.Close()

	var stale []string
	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err != nil {
			return fmt.Errorf("cache prune scan: %w", err)
		}
		if _, ok := keep[path]; !ok {
			stale = append(stale, path)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("cache prune scan: %w", err)
	}

	for _, path := range stale {
		if _, err := c.db.ExecContext(ctx, "DELETE FROM matrices WHERE path = ?", path); err != nil {
			return fmt.Errorf("cache prune delete: %w", err)
		}
	}
	return nil
}

func encodeCells(m matrix.Matrix) []byte {
	buf := make([]byte, 8*m.Rows()*m.Cols())
	offset := 0
	for i := 0; i < m.Rows(); i++ {
		for j := 0; j < m.Cols(); j++ {
			binary.LittleEndian.PutUint64(buf[offset:], math.Float64bits(m.At(i, j)))
			offset += 8
		}
	}
	return buf
}

func decodeCells(cells []byte, rows, cols int) ([]float64, error) {
	if rows < 1 || cols < 1 {
		return nil, fmt.Errorf("degenerate dimensions %dx%d", rows, cols)
	}
	if len(cells) != 8*rows*cols {
		return nil, fmt.Errorf("cell payload %d bytes, want %d", len(cells), 8*rows*cols)
	}
	values := make([]float64, rows*cols)
	for i := range values {
		values[i] = math.Float64frombits(binary.LittleEndian.Uint64(cells[i*8:]))
	}
	return values, nil
}
