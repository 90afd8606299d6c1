package dialect

import (
	"testing"

	"github.com/Konsultn-Engineering/stmtkit/statement"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Every dialect must plug straight into the renderer.
var (
	_ statement.Escaper       = Dialect(nil)
	_ statement.Placeholderer = Dialect(nil)
)

func TestEscape(t *testing.T) {
	tests := []struct {
		name     string
		dialect  Dialect
		input    string
		expected string
	}{
		{"PostgresPlain", NewPostgresDialect(), "hello", "hello"},
		{"PostgresQuote", NewPostgresDialect(), "O'Brien", "O''Brien"},
		{"PostgresBackslashKept", NewPostgresDialect(), `a\b`, `a\b`},
		{"PostgresInjection", NewPostgresDialect(), "'; DROP TABLE users; --", "''; DROP TABLE users; --"},
		{"MySQLQuote", NewMySQLDialect(), "O'Brien", `O\'Brien`},
		{"MySQLControl", NewMySQLDialect(), "a\x00b\nc\rd\x1ae", `a\0b\nc\rd\Ze`},
		{"MySQLBackslashAndDouble", NewMySQLDialect(), `x\"y`, `x\\\"y`},
		{"MySQLUnicode", NewMySQLDialect(), "héllo'", `héllo\'`},
		{"TiDBQuote", NewTiDBDialect(), "it's", `it\'s`},
		{"SQLiteQuote", NewSQLiteDialect(), "it's", "it''s"},
		{"SQLiteBackslashKept", NewSQLiteDialect(), `\'`, `\''`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := tt.dialect.Escape(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, out)
		})
	}
}

func TestPostgresRejectsNul(t *testing.T) {
	_, err := NewPostgresDialect().Escape("a\x00b")
	assert.ErrorIs(t, err, ErrNulByte)
}

func TestPlaceholder(t *testing.T) {
	assert.Equal(t, "$1", NewPostgresDialect().Placeholder(1))
	assert.Equal(t, "$12", NewPostgresDialect().Placeholder(12))
	assert.Equal(t, "?", NewMySQLDialect().Placeholder(3))
	assert.Equal(t, "?", NewTiDBDialect().Placeholder(3))
	assert.Equal(t, "?", NewSQLiteDialect().Placeholder(3))
}

func TestByName(t *testing.T) {
	for name, expected := range map[string]string{
		"postgres":   "postgres",
		"PostgreSQL": "postgres",
		"pgx":        "postgres",
		"mysql":      "mysql",
		"TiDB":       "tidb",
		"sqlite3":    "sqlite",
	} {
		d, err := ByName(name)
		require.NoError(t, err, name)
		assert.Equal(t, expected, d.Name())
	}

	_, err := ByName("oracle")
	assert.ErrorIs(t, err, ErrUnknown)
}

func TestRenderWithDialects(t *testing.T) {
	s, err := statement.New(
		"UPDATE users SET name = :name, modified_on = :now WHERE id IN (:ids)",
		map[string]any{"name": `O'Brien\`, "now": "NOW()", "ids": []int{1, 2}},
		statement.WithAutoQuote(true),
	)
	require.NoError(t, err)

	out, err := s.Render(NewPostgresDialect())
	require.NoError(t, err)
	assert.Equal(t, `UPDATE users SET name = 'O''Brien\', modified_on = NOW() WHERE id IN ('1', '2')`, out)

	out, err = s.Render(NewMySQLDialect())
	require.NoError(t, err)
	assert.Equal(t, `UPDATE users SET name = 'O\'Brien\\', modified_on = NOW() WHERE id IN ('1', '2')`, out)

	require.NoError(t, s.Bind("name", "a\x00"))
	_, err = s.Render(NewPostgresDialect())
	assert.ErrorIs(t, err, ErrNulByte)
}
