// Package duckdb opens DuckDB databases and maps tagged structs onto tables.
//
// Struct fields carry `duckdb:"column[,pk]"` tags:
//
//	type row struct {
//	    Hash string `duckdb:"binary_hash,pk"`
//	    Name string `duckdb:"name"`
//	}
//
//	tbl := duckdb.NewTable[row](db, "rows", logger)
//	err := tbl.BatchUpsert(ctx, rows)
package duckdb
