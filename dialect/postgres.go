package dialect

import (
	"strconv"
	"strings"
)

// Postgres escapes for servers running with standard_conforming_strings on,
// where backslashes inside '...' are ordinary characters.
type Postgres struct{}

func NewPostgresDialect() Dialect {
	return &Postgres{}
}

func (Postgres) Name() string { return "postgres" }

func (Postgres) Placeholder(n int) string {
	return "$" + strconv.Itoa(n)
}

// Escape doubles single quotes. PostgreSQL text cannot hold NUL, so a value
// containing one is rejected instead of being silently truncated.
func (Postgres) Escape(raw string) (string, error) {
	if strings.IndexByte(raw, 0) >= 0 {
		return "", ErrNulByte
	}
	return doubleQuotes(raw), nil
}
