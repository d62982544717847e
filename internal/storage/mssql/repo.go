// Package mssql implements a Microsoft SQL Server storage.Repository using
// the go-mssqldb bulk copy API.
package mssql

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	mssql "github.com/microsoft/go-mssqldb"
	"github.com/microsoft/go-mssqldb/msdsn"

	"github.com/deekonger/powerwatch/internal/pwdata"
	"github.com/deekonger/powerwatch/internal/storage"
)

// Repository is an MSSQL-backed implementation of storage.Repository.
type Repository struct {
	db    *sql.DB
	table string
}

// NewRepository opens a SQL Server connection using the provided DSN.
func NewRepository(ctx context.Context, cfg storage.Config) (*Repository, error) {
	// Validate the DSN early to fail fast on obvious mistakes.
	if _, err := msdsn.Parse(cfg.DSN); err != nil {
		return nil, fmt.Errorf("mssql: dsn: %w", err)
	}
	db, err := sql.Open("sqlserver", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("mssql: open: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("mssql: ping: %w", err)
	}
	return &Repository{db: db, table: cfg.Table}, nil
}

// msIdent quotes a single identifier.
func msIdent(s string) string {
	return "[" + strings.ReplaceAll(s, "]", "]]") + "]"
}

// msFQN quotes a possibly schema-qualified table name part by part.
func msFQN(table string) string {
	parts := strings.Split(table, ".")
	for i, p := range parts {
		parts[i] = msIdent(p)
	}
	return strings.Join(parts, ".")
}

// EnsureTable creates the plants table when it does not exist.
func (r *Repository) EnsureTable(ctx context.Context) error {
	cols := pwdata.Columns()
	types := storage.PlantColumnTypes()
	defs := make([]string, len(cols))
	for i, c := range cols {
		var t string
		switch types[i] {
		case storage.TypeReal:
			t = "FLOAT"
		case storage.TypeInteger:
			t = "INT"
		default:
			t = "NVARCHAR(400)"
		}
		if c == storage.KeyColumn {
			t += " NOT NULL PRIMARY KEY"
		}
		defs[i] = msIdent(c) + " " + t
	}
	ddl := fmt.Sprintf(
		"IF OBJECT_ID(N'%s', N'U') IS NULL CREATE TABLE %s (%s)",
		r.table, msFQN(r.table), strings.Join(defs, ", "),
	)
	if _, err := r.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("mssql: ensure table %s: %w", r.table, err)
	}
	return nil
}

// CopyFrom bulk-inserts rows into the configured table via the TDS bulk copy
// protocol, inside a single transaction.
func (r *Repository) CopyFrom(ctx context.Context, columns []string, rows [][]any) (int64, error) {
	if len(columns) == 0 {
		return 0, fmt.Errorf("mssql: CopyFrom: columns must not be empty")
	}
	if len(rows) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("mssql: begin tx: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, mssql.CopyIn(r.table, mssql.BulkOptions{}, columns...))
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("mssql: prepare bulk copy: %w", err)
	}

	for _, row := range rows {
		if len(row) != len(columns) {
			_ = stmt.Close()
			_ = tx.Rollback()
			return 0, fmt.Errorf("mssql: CopyFrom: row length %d != columns length %d", len(row), len(columns))
		}
		if _, err := stmt.ExecContext(ctx, row...); err != nil {
			_ = stmt.Close()
			_ = tx.Rollback()
			return 0, fmt.Errorf("mssql: bulk copy row: %w", err)
		}
	}

	// The final Exec with no arguments flushes the bulk operation and
	// reports the row count.
	res, err := stmt.ExecContext(ctx)
	if err != nil {
		_ = stmt.Close()
		_ = tx.Rollback()
		return 0, fmt.Errorf("mssql: bulk copy flush: %w", err)
	}
	if err := stmt.Close(); err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("mssql: close bulk copy: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("mssql: commit: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return int64(len(rows)), nil
	}
	return n, nil
}

// Close implements storage.Repository.Close.
func (r *Repository) Close() {
	_ = r.db.Close()
}

var _ storage.Repository = (*Repository)(nil)

var newRepository = NewRepository

func init() {
	storage.Register("mssql", func(ctx context.Context, cfg storage.Config) (storage.Repository, error) {
		r, err := newRepository(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return r, nil
	})
}
