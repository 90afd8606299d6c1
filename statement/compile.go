package statement

import (
	"strings"
)

// Placeholderer produces the n-th (1-based) positional parameter marker of
// a driver, e.g. $1 or ?.
type Placeholderer interface {
	Placeholder(n int) string
}

// Compile rewrites bound placeholders into positional parameters and returns
// the values as driver arguments, so nothing is spliced into the SQL text.
// Each list element gets its own parameter; an empty list becomes NULL.
//
// Unbound placeholders are always an error here, strict or not: the driver
// would have no argument for them.
func (s *Statement) Compile(d Placeholderer) (string, []any, error) {
	if d == nil {
		return "", nil, ErrNilDialect
	}
	if strings.TrimSpace(s.template) == "" {
		return "", nil, ErrEmptyTemplate
	}

	found := scanPlaceholders(s.template, s.skipLiterals)
	if err := unresolved(found, s.values); err != nil {
		return "", nil, err
	}

	var b strings.Builder
	b.Grow(len(s.template))
	args := make([]any, 0, len(found))
	last := 0
	for _, p := range found {
		v := s.values[p.name]
		b.WriteString(s.template[last:p.start])
		last = p.end

		if !v.isList {
			args = append(args, v.scalar.Arg())
			b.WriteString(d.Placeholder(len(args)))
			continue
		}
		if len(v.list) == 0 {
			b.WriteString("NULL")
			continue
		}
		for i, item := range v.list {
			if i > 0 {
				b.WriteString(", ")
			}
			args = append(args, item.Arg())
			b.WriteString(d.Placeholder(len(args)))
		}
	}
	b.WriteString(s.template[last:])
	return b.String(), args, nil
}
