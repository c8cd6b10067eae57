package forwarder

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/Phongsakorn0/Weather-data-processor/internal/domain"
	"github.com/Phongsakorn0/Weather-data-processor/internal/ports"
)

const DefaultTable = "weather_readings"

// SQLForwarder inserts each record as a row. The table name is quoted as
// an identifier, with a dot separating schema and table. The column names match the
// record JSON names plus captured_at for the timestamp.
type SQLForwarder struct {
	db    *sql.DB
	table string
	query string
}

func NewSQLForwarder(db *sql.DB, table string) *SQLForwarder {
	if table == "" {
		table = DefaultTable
	}
	return &SQLForwarder{db: db, table: table, query: insertQuery(table)}
}

func (s *SQLForwarder) Name() string { return "sql" }

func (s *SQLForwarder) Send(ctx context.Context, r *domain.Record) error {
	if s == nil || s.db == nil {
		return errors.New("sql forwarder: nil db")
	}
	vals := r.Values()
	args := make([]any, 0, len(vals)+1)
	for _, v := range vals {
		args = append(args, v)
	}
	args = append(args, r.Timestamp)

	if _, err := s.db.ExecContext(ctx, s.query, args...); err != nil {
		return fmt.Errorf("insert into %s: %w", s.table, err)
	}
	return nil
}

func insertQuery(table string) string {
	var b strings.Builder
	b.WriteString("INSERT INTO ")
	b.WriteString(pgx.Identifier(strings.Split(table, ".")).Sanitize())
	b.WriteString(" (")
	for _, name := range domain.FieldNames {
		b.WriteString(name)
		b.WriteString(", ")
	}
	b.WriteString("captured_at) VALUES (")
	for i := 1; i <= domain.FieldCount+1; i++ {
		if i > 1 {
			b.WriteString(",")
		}
		fmt.Fprintf(&b, "$%d", i)
	}
	b.WriteString(")")
	return b.String()
}

var _ ports.Forwarder = (*SQLForwarder)(nil)
