// Package catalog persists resolved types in DuckDB so they can be queried
// without reopening the binary. Rows are keyed by the binary's SHA-256 and
// the entry offset; a binary whose hash is already stored is not re-saved.
package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/coral-mesh/dtypes/internal/duckdb"
	cerrors "github.com/coral-mesh/dtypes/internal/errors"
)

// ErrNotFound is returned when no row matches a lookup.
var ErrNotFound = errors.New("not found in catalog")

// Record is one persisted type.
type Record struct {
	BinaryHash   string `duckdb:"binary_hash,pk" json:"binary_hash,omitempty"`
	ID           int64  `duckdb:"die_offset,pk" json:"die_offset" header:"OFFSET"`
	RunID        string `duckdb:"run_id" json:"run_id,omitempty"`
	Name         string `duckdb:"name" json:"name" header:"NAME"`
	ByteSize     int64  `duckdb:"byte_size" json:"byte_size" header:"SIZE"`
	BitSize      int64  `duckdb:"bit_size" json:"bit_size" header:"BITS"`
	Kind         string `duckdb:"kind" json:"kind" header:"KIND"`
	Format       string `duckdb:"format" json:"format" header:"FORMAT"`
	Encoding     string `duckdb:"encoding" json:"encoding" header:"ENCODING"`
	BasicType    string `duckdb:"basic_type" json:"basic_type"`
	State        string `duckdb:"state" json:"state" header:"STATE"`
	EncodingID   int64  `duckdb:"encoding_offset" json:"encoding_offset" header:"ENCODED_AS"`
	EncodingKind string `duckdb:"encoding_kind" json:"encoding_kind" header:"VIA"`
	DeclFile     string `duckdb:"decl_file" json:"decl_file,omitempty"`
	DeclLine     int64  `duckdb:"decl_line" json:"decl_line,omitempty"`
}

// Run describes one save of a binary's types.
type Run struct {
	RunID      string    `duckdb:"run_id,pk" json:"run_id" header:"RUN"`
	BinaryHash string    `duckdb:"binary_hash" json:"binary_hash" header:"BINARY_HASH"`
	BinaryPath string    `duckdb:"binary_path" json:"binary_path" header:"BINARY"`
	Target     string    `duckdb:"target" json:"target" header:"TARGET"`
	TypeCount  int64     `duckdb:"type_count" json:"type_count" header:"TYPES"`
	SavedAt    time.Time `duckdb:"saved_at" json:"saved_at" header:"SAVED_AT"`
}

// Catalog stores records in a DuckDB database.
type Catalog struct {
	db      *sql.DB
	records *duckdb.Table[Record]
	runs    *duckdb.Table[Run]
	logger  zerolog.Logger
}

// Open opens (or creates) the catalog database at path. An empty path opens
// an in-memory catalog.
func Open(path string, logger zerolog.Logger) (*Catalog, error) {
	db, err := duckdb.OpenDB(path)
	if err != nil {
		return nil, err
	}
	c, err := New(db, logger)
	if err != nil {
		cerrors.DeferClose(logger, db, "failed to close catalog database")
		return nil, err
	}
	return c, nil
}

// New wraps an open database and ensures the schema exists.
func New(db *sql.DB, logger zerolog.Logger) (*Catalog, error) {
	c := &Catalog{
		db:      db,
		records: duckdb.NewTable[Record](db, "resolved_types", logger),
		runs:    duckdb.NewTable[Run](db, "catalog_runs", logger),
		logger:  logger.With().Str("component", "catalog").Logger(),
	}
	if err := c.initSchema(); err != nil {
		return nil, fmt.Errorf("failed to initialize catalog schema: %w", err)
	}
	return c, nil
}

func (c *Catalog) initSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS resolved_types (
			binary_hash     VARCHAR(64) NOT NULL,
			die_offset      BIGINT NOT NULL,
			run_id          VARCHAR NOT NULL,
			name            VARCHAR,
			byte_size       BIGINT,
			bit_size        BIGINT,
			kind            VARCHAR,
			format          VARCHAR,
			encoding        VARCHAR,
			basic_type      VARCHAR,
			state           VARCHAR NOT NULL,
			encoding_offset BIGINT,
			encoding_kind   VARCHAR,
			decl_file       VARCHAR,
			decl_line       BIGINT,
			PRIMARY KEY (binary_hash, die_offset)
		);

		CREATE TABLE IF NOT EXISTS catalog_runs (
			run_id      VARCHAR PRIMARY KEY,
			binary_hash VARCHAR(64) NOT NULL,
			binary_path VARCHAR NOT NULL,
			target      VARCHAR,
			type_count  BIGINT,
			saved_at    TIMESTAMP NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_resolved_types_name ON resolved_types(name);
	`
	if _, err := c.db.Exec(schema); err != nil {
		return err
	}
	c.logger.Debug().Msg("Catalog schema initialized")
	return nil
}

// Close closes the database.
func (c *Catalog) Close() error { return c.db.Close() }

// HasBinary reports whether types for the binary hash were saved before.
func (c *Catalog) HasBinary(ctx context.Context, binaryHash string) (bool, error) {
	var n int
	err := c.db.QueryRowContext(ctx,
		"SELECT count(*) FROM catalog_runs WHERE binary_hash = ?", binaryHash,
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("failed to query catalog runs: %w", err)
	}
	return n > 0, nil
}

// Save stores records for a binary under a new run. It returns the run, or
// (nil, nil) when the binary was already saved and force is false.
func (c *Catalog) Save(ctx context.Context, binaryPath, binaryHash, target string, records []Record, force bool) (*Run, error) {
	if !force {
		exists, err := c.HasBinary(ctx, binaryHash)
		if err != nil {
			return nil, err
		}
		if exists {
			c.logger.Info().
				Str("binary", binaryPath).
				Str("binary_hash", shortHash(binaryHash)).
				Msg("Types already cataloged for this binary version")
			return nil, nil
		}
	}

	run := Run{
		RunID:      uuid.NewString(),
		BinaryHash: binaryHash,
		BinaryPath: binaryPath,
		Target:     target,
		TypeCount:  int64(len(records)),
		SavedAt:    time.Now().UTC(),
	}
	for i := range records {
		records[i].BinaryHash = binaryHash
		records[i].RunID = run.RunID
	}

	if err := c.records.BatchUpsert(ctx, records); err != nil {
		return nil, fmt.Errorf("failed to save types: %w", err)
	}
	if err := c.runs.BatchUpsert(ctx, []Run{run}); err != nil {
		return nil, fmt.Errorf("failed to save catalog run: %w", err)
	}

	c.logger.Info().
		Str("binary", binaryPath).
		Str("run_id", run.RunID).
		Int("types", len(records)).
		Msg("Saved types to catalog")
	return &run, nil
}

// List returns the records of a binary, or of every binary when binaryHash
// is empty, ordered by entry offset.
func (c *Catalog) List(ctx context.Context, binaryHash string) ([]Record, error) {
	filters := map[string]any{}
	if binaryHash != "" {
		filters["binary_hash"] = binaryHash
	}
	return c.records.List(ctx, filters, "die_offset")
}

// Runs returns every saved run ordered by time.
func (c *Catalog) Runs(ctx context.Context) ([]Run, error) {
	return c.runs.List(ctx, nil, "saved_at")
}

// Lookup returns the record named name in a binary.
func (c *Catalog) Lookup(ctx context.Context, binaryHash, name string) (Record, error) {
	recs, err := c.records.List(ctx, map[string]any{"binary_hash": binaryHash, "name": name}, "die_offset")
	if err != nil {
		return Record{}, err
	}
	if len(recs) == 0 {
		return Record{}, fmt.Errorf("%s: %w", name, ErrNotFound)
	}
	return recs[0], nil
}

func shortHash(h string) string {
	if len(h) > 16 {
		return h[:16] + "..."
	}
	return h
}
