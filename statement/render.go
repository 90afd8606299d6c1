package statement

import (
	"strings"
)

// Render substitutes every bound placeholder with its escaped value and
// returns the resulting SQL.
//
// Lists always render as a quoted, comma separated sequence, ready for an
// IN (...) clause. Scalars are quoted only when auto-quoting is on and the
// raw value is neither numeric nor shaped like a function call. Placeholders
// without a binding are left as they are unless the statement is strict.
//
// Errors returned by the escaper are passed through unchanged, and no SQL is
// returned alongside any error.
func (s *Statement) Render(esc Escaper) (string, error) {
	if strings.TrimSpace(s.template) == "" {
		return "", ErrEmptyTemplate
	}

	found := scanPlaceholders(s.template, s.skipLiterals)
	if err := s.checkResolved(found); err != nil {
		return "", err
	}

	var b strings.Builder
	b.Grow(len(s.template))
	subs := make(map[string]string, len(s.values))
	last := 0
	for _, p := range found {
		v, ok := s.values[p.name]
		if !ok {
			continue
		}
		text, done := subs[p.name]
		if !done {
			if esc == nil {
				return "", ErrNilEscaper
			}
			var err error
			text, err = s.substitution(v, esc)
			if err != nil {
				return "", err
			}
			subs[p.name] = text
		}
		b.WriteString(s.template[last:p.start])
		b.WriteString(text)
		last = p.end
	}
	b.WriteString(s.template[last:])
	return b.String(), nil
}

// MustRender is like Render but panics on error.
func (s *Statement) MustRender(esc Escaper) string {
	sql, err := s.Render(esc)
	if err != nil {
		panic(err)
	}
	return sql
}

// Placeholders returns the distinct placeholder names in the template, in
// order of first appearance.
func (s *Statement) Placeholders() []string {
	found := scanPlaceholders(s.template, s.skipLiterals)
	seen := make(map[string]bool, len(found))
	names := make([]string, 0, len(found))
	for _, p := range found {
		if seen[p.name] {
			continue
		}
		seen[p.name] = true
		names = append(names, p.name)
	}
	return names
}

// Unresolved returns placeholder names that have no binding.
func (s *Statement) Unresolved() []string {
	var missing []string
	for _, name := range s.Placeholders() {
		if _, ok := s.values[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing
}

func (s *Statement) checkResolved(found []placeholder) error {
	if !s.strict {
		return nil
	}
	return unresolved(found, s.values)
}

func unresolved(found []placeholder, values map[string]Value) error {
	var missing []string
	seen := make(map[string]bool)
	for _, p := range found {
		if _, ok := values[p.name]; ok || seen[p.name] {
			continue
		}
		seen[p.name] = true
		missing = append(missing, p.name)
	}
	if len(missing) > 0 {
		return &UnresolvedPlaceholderError{Names: missing}
	}
	return nil
}

func (s *Statement) substitution(v Value, esc Escaper) (string, error) {
	if v.isList {
		if len(v.list) == 0 {
			return "''", nil
		}
		parts := make([]string, len(v.list))
		for i, item := range v.list {
			escaped, err := esc.Escape(item.text)
			if err != nil {
				return "", err
			}
			parts[i] = "'" + escaped + "'"
		}
		return strings.Join(parts, ", "), nil
	}

	escaped, err := esc.Escape(v.scalar.text)
	if err != nil {
		return "", err
	}
	if s.autoQuote && !v.scalar.Numeric() && !looksLikeCall(v.scalar.text) {
		return "'" + escaped + "'", nil
	}
	return escaped, nil
}
