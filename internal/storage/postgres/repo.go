// Package postgres implements a Postgres-backed storage.Repository using
// pgx v5. Bulk writes use the COPY protocol, which is an order of magnitude
// faster than row-at-a-time INSERT for whole-collection loads.
package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/deekonger/powerwatch/internal/pwdata"
	"github.com/deekonger/powerwatch/internal/storage"
)

// Repository is a Postgres-backed implementation of storage.Repository.
type Repository struct {
	pool  *pgxpool.Pool
	table string
}

// NewRepository opens a pgx pool against the provided DSN.
func NewRepository(ctx context.Context, cfg storage.Config) (*Repository, error) {
	if strings.TrimSpace(cfg.DSN) == "" {
		return nil, fmt.Errorf("postgres: DSN must not be empty")
	}
	pool, err := pgxpool.New(ctx, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("postgres: pgxpool: %w", err)
	}
	return &Repository{pool: pool, table: cfg.Table}, nil
}

// pgIdent quotes a single identifier.
func pgIdent(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// pgFQN quotes a possibly schema-qualified table name part by part.
func pgFQN(table string) string {
	parts := strings.Split(table, ".")
	for i, p := range parts {
		parts[i] = pgIdent(p)
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
			t = "DOUBLE PRECISION"
		case storage.TypeInteger:
			t = "INTEGER"
		default:
			t = "TEXT"
		}
		if c == storage.KeyColumn {
			t += " PRIMARY KEY"
		}
		defs[i] = pgIdent(c) + " " + t
	}
	ddl := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", pgFQN(r.table), strings.Join(defs, ", "))
	if _, err := r.pool.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("postgres: ensure table %s: %w", r.table, err)
	}
	return nil
}

// CopyFrom bulk-loads rows into the configured table via the COPY protocol.
func (r *Repository) CopyFrom(ctx context.Context, columns []string, rows [][]any) (int64, error) {
	if len(columns) == 0 {
		return 0, fmt.Errorf("postgres: CopyFrom: columns must not be empty")
	}
	if len(rows) == 0 {
		return 0, nil
	}

	ident := pgx.Identifier(strings.Split(r.table, "."))
	n, err := r.pool.CopyFrom(ctx, ident, columns, pgx.CopyFromRows(rows))
	if err != nil {
		return n, fmt.Errorf("postgres: copy into %s: %w", r.table, err)
	}
	return n, nil
}

// Close implements storage.Repository.Close.
func (r *Repository) Close() {
	r.pool.Close()
}

var _ storage.Repository = (*Repository)(nil)

var newRepository = NewRepository

func init() {
	storage.Register("postgres", func(ctx context.Context, cfg storage.Config) (storage.Repository, error) {
		r, err := newRepository(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return r, nil
	})
}
