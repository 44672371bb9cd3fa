package source

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/sqlscan"
	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" driver
	"github.com/leapstack-labs/gridview/pkg/grid"
	_ "github.com/marcboeker/go-duckdb" // registers the "duckdb" driver
	_ "modernc.org/sqlite"              // registers the "sqlite" driver
)

// DefaultTable is read when source.table is empty.
const DefaultTable = "records"

func init() {
	Register("sqlite", func(cfg Config, logger *slog.Logger) (Source, error) {
		if cfg.Path == "" {
			return nil, fmt.Errorf("sqlite source requires source.path")
		}
		return openSQL("sqlite", cfg.Path+"?mode=ro", cfg.Table, sq.Question, logger)
	})
	Register("duckdb", func(cfg Config, logger *slog.Logger) (Source, error) {
		if cfg.Path == "" {
			return nil, fmt.Errorf("duckdb source requires source.path")
		}
		return openSQL("duckdb", cfg.Path+"?access_mode=read_only", cfg.Table, sq.Question, logger)
	})
	Register("postgres", func(cfg Config, logger *slog.Logger) (Source, error) {
		if cfg.DSN == "" {
			return nil, fmt.Errorf("postgres source requires source.dsn")
		}
		return openSQL("pgx", cfg.DSN, cfg.Table, sq.Dollar, logger)
	})
}

func openSQL(driver, dsn, table string, ph sq.PlaceholderFormat, logger *slog.Logger) (*SQLTable, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", driver, err)
	}
	return NewSQLTable(db, table, ph, logger), nil
}

// SQLTable reads a dataset from one database table.
type SQLTable struct {
	DB      *sql.DB
	Table   string
	Builder sq.StatementBuilderType
	Logger  *slog.Logger
}

// NewSQLTable wraps an open database. An empty table reads DefaultTable.
func NewSQLTable(db *sql.DB, table string, ph sq.PlaceholderFormat, logger *slog.Logger) *SQLTable {
	if table == "" {
		table = DefaultTable
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &SQLTable{
		DB:      db,
		Table:   table,
		Builder: sq.StatementBuilder.PlaceholderFormat(ph),
		Logger:  logger,
	}
}

// Load implements Source. Rows come back in table order.
func (s *SQLTable) Load(ctx context.Context, fields []string) ([]grid.Record, error) {
	if s.DB == nil {
		return nil, fmt.Errorf("database connection not established")
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("no fields to select from %s", s.Table)
	}

	cols := make([]string, len(fields))
	for i, f := range fields {
		cols[i] = quoteIdent(f)
	}
	query, args, err := s.Builder.Select(cols...).From(quoteIdent(s.Table)).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rows []map[string]any
	if err := sqlscan.Select(ctx, s.DB, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.Table, err)
	}

	records := make([]grid.Record, len(rows))
	for i, r := range rows {
		records[i] = grid.Record(r)
	}
	s.Logger.Debug("dataset loaded", "table", s.Table, "records", len(records))
	return records, nil
}

// Close implements Source.
func (s *SQLTable) Close() error {
	if s.DB != nil {
		s.Logger.Debug("closing database connection")
		return s.DB.Close()
	}
	return nil
}

// quoteIdent double-quotes an identifier, keeping schema qualification.
func quoteIdent(name string) string {
	parts := strings.Split(name, ".")
	for i, p := range parts {
		parts[i] = `"` + strings.ReplaceAll(p, `"`, `""`) + `"`
	}
	return strings.Join(parts, ".")
}
