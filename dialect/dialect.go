package dialect

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNulByte is returned by dialects that cannot store NUL characters in text.
	ErrNulByte = errors.New("string contains NUL byte")
	ErrUnknown = errors.New("unknown dialect")
)

// Dialect knows how one SQL flavour escapes literals and marks positional
// parameters. Every Dialect is a statement.Escaper and a
// statement.Placeholderer.
type Dialect interface {
	Name() string
	Escape(raw string) (string, error)
	Placeholder(n int) string
}

// ByName returns the dialect registered under name (case-insensitive).
func ByName(name string) (Dialect, error) {
	switch strings.ToLower(name) {
	case "postgres", "postgresql", "pgx":
		return NewPostgresDialect(), nil
	case "mysql":
		return NewMySQLDialect(), nil
	case "tidb":
		return NewTiDBDialect(), nil
	case "sqlite", "sqlite3":
		return NewSQLiteDialect(), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknown, name)
}

// doubleQuotes escapes by doubling single quotes, as standard SQL does.
func doubleQuotes(raw string) string {
	return strings.ReplaceAll(raw, "'", "''")
}
