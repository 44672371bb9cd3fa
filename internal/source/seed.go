package source

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/leapstack-labs/gridview/pkg/grid"
	"github.com/pressly/goose/v3"
	"github.com/shopspring/decimal"
)

//go:embed migrations/*.sql
var migrations embed.FS

// seedColumns are the columns of the records table created by the migrations.
var seedColumns = []string{"Project_Name", "Country", "Price", "Date"}

// SeedResult describes one import into a SQLite dataset file.
type SeedResult struct {
	ID   string
	Rows int
}

// Migrate brings a SQLite database up to the latest records schema.
func Migrate(db *sql.DB) error {
	goose.SetBaseFS(migrations)

	if err := goose.SetDialect("sqlite"); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// Seed writes records into the records table of a SQLite file, creating
// the file and schema when needed. When replace is set, existing rows are
// deleted first. The import is recorded in the imports table.
func Seed(ctx context.Context, path, from string, records []grid.Record, replace bool, logger *slog.Logger) (SeedResult, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return SeedResult{}, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = db.Close() }()

	if err := Migrate(db); err != nil {
		return SeedResult{}, err
	}
	return SeedDB(ctx, db, from, records, replace, logger)
}

// SeedDB inserts records into an already migrated database in one transaction.
func SeedDB(ctx context.Context, db *sql.DB, from string, records []grid.Record, replace bool, logger *slog.Logger) (SeedResult, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return SeedResult{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if replace {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+DefaultTable); err != nil {
			return SeedResult{}, fmt.Errorf("failed to clear %s: %w", DefaultTable, err)
		}
	}

	for i, rec := range records {
		query, args, err := sq.Insert(DefaultTable).
			Columns(seedColumns...).
			Values(seedValues(rec)...).
			ToSql()
		if err != nil {
			return SeedResult{}, fmt.Errorf("build insert: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return SeedResult{}, fmt.Errorf("failed to insert record %d: %w", i, err)
		}
	}

	res := SeedResult{ID: uuid.NewString(), Rows: len(records)}
	query, args, err := sq.Insert("imports").
		Columns("id", "source", "row_count", "imported_at").
		Values(res.ID, from, res.Rows, time.Now().UTC().Format(time.RFC3339)).
		ToSql()
	if err != nil {
		return SeedResult{}, fmt.Errorf("build insert: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return SeedResult{}, fmt.Errorf("failed to record import: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return SeedResult{}, fmt.Errorf("failed to commit: %w", err)
	}
	logger.Info("dataset seeded", "import", res.ID, "rows", res.Rows)
	return res, nil
}

// seedValues maps a record onto seedColumns. Prices are stored as REAL;
// anything that is not a number is stored as NULL.
func seedValues(rec grid.Record) []any {
	vals := make([]any, len(seedColumns))
	for i, col := range seedColumns {
		v, ok := rec[col]
		if !ok || v == nil {
			continue
		}
		if col == "Price" {
			d, err := decimal.NewFromString(grid.FormatValue(v, ""))
			if err != nil {
				continue
			}
			vals[i] = d.InexactFloat64()
			continue
		}
		vals[i] = grid.FormatValue(v, "")
	}
	return vals
}
