package schema

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"

	"pathschema/internal/errors"
)

// DefaultTable is the table SQLSource reads when none is configured.
const DefaultTable = "path_schemas"

var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// SQLSource reads schema text from a table shaped like
//
//	CREATE TABLE path_schemas (
//	    name   TEXT PRIMARY KEY,
//	    format TEXT NOT NULL DEFAULT 'yaml',
//	    body   TEXT NOT NULL
//	);
type SQLSource struct {
	db    *sql.DB
	table string
	ctx   context.Context
	query string
}

// NewSQLSource returns a source over db. An empty table selects DefaultTable.
func NewSQLSource(db *sql.DB, table string) (*SQLSource, error) {
	if db == nil {
		return nil, errors.New("sql source: nil database")
	}

	if table == "" {
		table = DefaultTable
	}

	if !tableNamePattern.MatchString(table) {
		return nil, errors.Newf("sql source: invalid table name %q", table)
	}

	return &SQLSource{
		db:    db,
		table: table,
		ctx:   context.Background(),
		query: fmt.Sprintf("SELECT format, body FROM %s WHERE name = ?", table),
	}, nil
}

// WithContext returns a copy of s whose queries use ctx.
func (s *SQLSource) WithContext(ctx context.Context) *SQLSource {
	c := *s
	c.ctx = ctx

	return &c
}

// Open implements Source.
func (s *SQLSource) Open(name string) (Raw, error) {
	var format, body string

	err := s.db.QueryRowContext(s.ctx, s.query, name).Scan(&format, &body)
	if errors.Is(err, sql.ErrNoRows) {
		return Raw{}, errors.Wrapf(ErrSourceNotExist, "no row for schema %q in table %s", name, s.table)
	}

	if err != nil {
		return Raw{}, errors.Wrapf(err, "querying schema %q from table %s", name, s.table)
	}

	f, err := ParseFormat(format)
	if err != nil {
		return Raw{}, errors.Wrapf(err, "schema %q in table %s", name, s.table)
	}

	return Raw{Data: []byte(body), Format: f, Origin: "sql:" + s.table + "/" + name}, nil
}
