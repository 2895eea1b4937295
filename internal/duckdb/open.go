package duckdb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"os"
	"path/filepath"

	duckdbDriver "github.com/marcboeker/go-duckdb"
)

// bootQueries run on every pooled connection. Failures are ignored; they only
// tune interactive behaviour.
var bootQueries = []string{
	"SET enable_progress_bar = false",
}

// OpenDB opens the DuckDB database at path. An empty path or ":memory:"
// opens a private in-memory database. Parent directories of a file path are
// created.
func OpenDB(path string) (*sql.DB, error) {
	if path == ":memory:" {
		path = ""
	}
	if path != "" {
		//nolint:gosec // G301: directory holds user-owned catalog files.
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	connector, err := duckdbDriver.NewConnector(path, func(execer driver.ExecerContext) error {
		for _, query := range bootQueries {
			_, _ = execer.ExecContext(context.Background(), query, nil)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open duckdb %q: %w", path, err)
	}

	return sql.OpenDB(connector), nil
}
