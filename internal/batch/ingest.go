// Package batch bulk-loads partitioned Parquet datasets into the record
// store, enforcing structural correctness before any data is written.
package batch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/dvloznov/txledger/internal/infra/duckdb"
	"github.com/dvloznov/txledger/internal/store"
)

// Sentinel errors for the ingestion preconditions.
var (
	ErrPathNotFound     = errors.New("path does not exist")
	ErrMissingColumns   = errors.New("missing columns")
	ErrForbiddenColumns = errors.New("forbidden columns")
)

// Result reports one completed ingestion run.
type Result struct {
	Table string
	Rows  int64
}

// Ingest reads every Parquet file two levels below parquetPath (one level of
// partition directories, files inside) as a single relation, validates it
// against def, and bulk-inserts it into def.TableName in the DuckDB database
// at dbPath. The database file is created if absent.
//
// The checks run in order and fail fast: path existence, expected-column
// presence (every missing column is named), absence of the store-assigned
// id/created_at columns. No rows are written unless all checks pass, so a
// failed run never leaves a partial insert behind. Extra columns not in
// def.ExpectedColumns are discarded; insert order always follows
// def.ExpectedColumns, never the files' physical column order.
func Ingest(ctx context.Context, log zerolog.Logger, dbPath, parquetPath string, def store.Definition) (Result, error) {
	if _, err := os.Stat(parquetPath); err != nil {
		if os.IsNotExist(err) {
			return Result{}, fmt.Errorf("Ingest: %w: %s", ErrPathNotFound, parquetPath)
		}
		return Result{}, fmt.Errorf("Ingest: stat %s: %w", parquetPath, err)
	}

	st, err := duckdb.Open(dbPath)
	if err != nil {
		return Result{}, fmt.Errorf("Ingest: %w", err)
	}
	defer st.Close()

	// Partitioned layout: <root>/<partition>/<file>.parquet. Files directly
	// under the root or nested deeper are not discovered.
	scanGlob := filepath.Join(parquetPath, "*", "*.parquet")

	matches, err := filepath.Glob(scanGlob)
	if err != nil {
		return Result{}, fmt.Errorf("Ingest: globbing %s: %w", scanGlob, err)
	}
	if len(matches) == 0 {
		// A dataset with no matching files is a zero-row load, not an
		// error. It usually means a misconfigured path, hence the warning.
		log.Warn().Str("path", parquetPath).Msg("No parquet files matched, nothing to load")
		if err := st.EnsureSchema(ctx); err != nil {
			return Result{}, fmt.Errorf("Ingest: %w", err)
		}
		log.Info().Str("table", def.TableName).Int64("rows", 0).Msg("Ingestion done")
		return Result{Table: def.TableName, Rows: 0}, nil
	}

	existing, err := scanColumns(ctx, st, scanGlob)
	if err != nil {
		return Result{}, fmt.Errorf("Ingest: %w", err)
	}

	if missing := missingColumns(def.ExpectedColumns, existing); len(missing) > 0 {
		return Result{}, fmt.Errorf("Ingest: %w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}

	if forbidden := forbiddenColumns(existing); len(forbidden) > 0 {
		return Result{}, fmt.Errorf("Ingest: %w: %s are assigned by the store and must not appear in input data",
			ErrForbiddenColumns, strings.Join(forbidden, ", "))
	}

	if err := st.EnsureSchema(ctx); err != nil {
		return Result{}, fmt.Errorf("Ingest: %w", err)
	}

	// One bulk insert, projected down to the expected columns in their
	// declared order. The store assigns id and created_at per row.
	columnList := strings.Join(def.ExpectedColumns, ", ")
	res, err := st.DB().ExecContext(ctx, fmt.Sprintf(
		"INSERT INTO %s (%s) SELECT %s FROM read_parquet('%s')",
		def.TableName, columnList, columnList, escapeSQLString(scanGlob),
	))
	if err != nil {
		return Result{}, fmt.Errorf("Ingest: bulk insert into %s: %w", def.TableName, err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return Result{}, fmt.Errorf("Ingest: reading inserted row count: %w", err)
	}

	log.Info().Str("table", def.TableName).Int64("rows", rows).Msg("Ingestion done")
	return Result{Table: def.TableName, Rows: rows}, nil
}

// scanColumns returns the column names of the unified relation behind the
// glob, without reading any rows.
func scanColumns(ctx context.Context, st *duckdb.Store, glob string) ([]string, error) {
	rows, err := st.DB().QueryContext(ctx, fmt.Sprintf(
		"SELECT * FROM read_parquet('%s') LIMIT 0", escapeSQLString(glob)))
	if err != nil {
		return nil, fmt.Errorf("scanning parquet columns: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("reading parquet column names: %w", err)
	}
	return cols, nil
}

// missingColumns returns every expected column absent from existing.
// The comparison is case-sensitive on both sides.
func missingColumns(expected, existing []string) []string {
	present := make(map[string]struct{}, len(existing))
	for _, c := range existing {
		present[c] = struct{}{}
	}

	var missing []string
	for _, c := range expected {
		if _, ok := present[c]; !ok {
			missing = append(missing, c)
		}
	}
	return missing
}

// forbiddenColumns returns the store-assigned columns found in existing.
func forbiddenColumns(existing []string) []string {
	var found []string
	for _, c := range existing {
		if c == store.IDColumn || c == store.CreatedAtColumn {
			found = append(found, c)
		}
	}
	return found
}

func escapeSQLString(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
