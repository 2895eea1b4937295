package duckdb

import (
	"context"
	"database/sql"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/rs/zerolog"

	cerrors "github.com/coral-mesh/dtypes/internal/errors"
	"github.com/coral-mesh/dtypes/internal/retry"
)

// Table maps the struct type T onto a table.
type Table[T any] struct {
	db        *sql.DB
	name      string
	columns   []string
	pkColumns []string
	fieldIdx  map[string]int
	logger    zerolog.Logger
}

// NewTable builds a Table from T's `duckdb` tags. It panics if T is not a
// struct.
func NewTable[T any](db *sql.DB, name string, logger zerolog.Logger) *Table[T] {
	var zero T
	t := reflect.TypeOf(zero)
	if t.Kind() != reflect.Struct {
		panic("duckdb: Table type parameter must be a struct")
	}

	tbl := &Table[T]{
		db:       db,
		name:     name,
		fieldIdx: make(map[string]int),
		logger:   logger.With().Str("table", name).Logger(),
	}
	for i := 0; i < t.NumField(); i++ {
		tag := t.Field(i).Tag.Get("duckdb")
		if tag == "" || tag == "-" {
			continue
		}
		parts := strings.Split(tag, ",")
		col := strings.TrimSpace(parts[0])
		tbl.columns = append(tbl.columns, col)
		tbl.fieldIdx[col] = i
		for _, opt := range parts[1:] {
			if strings.TrimSpace(opt) == "pk" {
				tbl.pkColumns = append(tbl.pkColumns, col)
			}
		}
	}
	return tbl
}

// Columns returns the mapped column names in field order.
func (t *Table[T]) Columns() []string { return t.columns }

func (t *Table[T]) upsertQuery() string {
	placeholders := make([]string, len(t.columns))
	var updates []string
	for i, col := range t.columns {
		placeholders[i] = "?"
		if !t.isPK(col) {
			updates = append(updates, fmt.Sprintf("%s = excluded.%s", col, col))
		}
	}

	// #nosec G201 - table and column names come from struct tags.
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		t.name, strings.Join(t.columns, ", "), strings.Join(placeholders, ", "))

	if len(t.pkColumns) > 0 {
		action := "DO NOTHING"
		if len(updates) > 0 {
			action = "DO UPDATE SET " + strings.Join(updates, ", ")
		}
		query += fmt.Sprintf(" ON CONFLICT (%s) %s", strings.Join(t.pkColumns, ", "), action)
	}
	return query
}

func (t *Table[T]) isPK(col string) bool {
	for _, pk := range t.pkColumns {
		if pk == col {
			return true
		}
	}
	return false
}

// BatchUpsert writes items in one transaction, retrying on DuckDB write
// conflicts.
func (t *Table[T]) BatchUpsert(ctx context.Context, items []T) error {
	if len(items) == 0 {
		return nil
	}
	query := t.upsertQuery()

	cfg := retry.Config{
		MaxRetries:     5,
		InitialBackoff: 10 * time.Millisecond,
		MaxBackoff:     200 * time.Millisecond,
	}
	return retry.Do(ctx, cfg, func() error {
		return t.batch(ctx, query, items)
	}, IsConflict)
}

func (t *Table[T]) batch(ctx context.Context, query string, items []T) error {
	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer cerrors.DeferRollback(t.logger, tx)

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare: %w", err)
	}
	defer cerrors.DeferClose(t.logger, stmt, "failed to close statement")

	for i := range items {
		if _, err := stmt.ExecContext(ctx, t.values(&items[i])...); err != nil {
			return fmt.Errorf("exec: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (t *Table[T]) values(item *T) []any {
	val := reflect.ValueOf(item).Elem()
	out := make([]any, len(t.columns))
	for i, col := range t.columns {
		out[i] = val.Field(t.fieldIdx[col]).Interface()
	}
	return out
}

// List returns the rows matching every column = value filter, ordered by
// orderBy when it is not empty.
func (t *Table[T]) List(ctx context.Context, filters map[string]any, orderBy string) ([]T, error) {
	// #nosec G201 - table and column names come from struct tags.
	query := fmt.Sprintf("SELECT %s FROM %s", strings.Join(t.columns, ", "), t.name)

	var (
		clauses []string
		args    []any
	)
	for _, col := range t.columns {
		if v, ok := filters[col]; ok {
			clauses = append(clauses, col+" = ?")
			args = append(args, v)
		}
	}
	if len(clauses) != len(filters) {
		return nil, fmt.Errorf("filter on unknown column of %s", t.name)
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	if orderBy != "" {
		if _, ok := t.fieldIdx[orderBy]; !ok {
			return nil, fmt.Errorf("order by unknown column %q of %s", orderBy, t.name)
		}
		query += " ORDER BY " + orderBy
	}

	rows, err := t.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var items []T
	for rows.Next() {
		var item T
		val := reflect.ValueOf(&item).Elem()
		dest := make([]any, len(t.columns))
		for i, col := range t.columns {
			dest[i] = val.Field(t.fieldIdx[col]).Addr().Interface()
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// IsConflict reports whether err is a DuckDB write conflict worth retrying.
func IsConflict(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "Conflict on") ||
		strings.Contains(msg, "TransactionContext Error") ||
		strings.Contains(msg, "Could not set lock")
}
