package dialect

type SQLite struct{}

func NewSQLiteDialect() Dialect {
	return &SQLite{}
}

func (SQLite) Name() string { return "sqlite" }

func (SQLite) Placeholder(int) string {
	return "?"
}

// Escape doubles single quotes; SQLite has no backslash escapes.
func (SQLite) Escape(raw string) (string, error) {
	return doubleQuotes(raw), nil
}
