// Package statement renders SQL templates with named placeholders.
//
// A template refers to values by name, using a colon prefix:
//
//	SELECT * FROM users WHERE id = :id AND status IN (:statuses)
//
// Bindings map each name to a scalar or to a list of scalars. Render asks an
// Escaper to neutralize every bound value and splices the result into the
// template; Compile rewrites the placeholders into the positional syntax of a
// driver instead and returns the values as arguments.
//
// A Statement is not safe for concurrent mutation. Render and Compile only
// read it, so concurrent renders of an unchanging Statement are fine; use
// Clone to derive independent copies.
package statement

import (
	"fmt"
	"sort"
)

// Escaper turns a raw scalar into text that is safe inside single quotes.
type Escaper interface {
	Escape(raw string) (string, error)
}

// EscaperFunc adapts a function to Escaper.
type EscaperFunc func(raw string) (string, error)

func (f EscaperFunc) Escape(raw string) (string, error) { return f(raw) }

// Statement holds a SQL template and its named bindings.
type Statement struct {
	template string
	names    []string
	values   map[string]Value

	autoQuote    bool
	strict       bool
	skipLiterals bool
}

type Option func(*Statement)

// WithAutoQuote wraps non-numeric scalars in single quotes. Numbers and
// values that look like function calls stay bare.
func WithAutoQuote(enabled bool) Option {
	return func(s *Statement) { s.autoQuote = enabled }
}

// WithStrict makes Render fail when a placeholder has no binding instead of
// leaving it in the output.
func WithStrict(enabled bool) Option {
	return func(s *Statement) { s.strict = enabled }
}

// WithSkipLiterals leaves placeholders inside quoted strings, quoted
// identifiers and comments alone.
func WithSkipLiterals(enabled bool) Option {
	return func(s *Statement) { s.skipLiterals = enabled }
}

// New creates a statement from a template and optional bindings.
func New(template string, bindings map[string]any, options ...Option) (*Statement, error) {
	s := &Statement{
		template: template,
		values:   make(map[string]Value),
	}
	for _, opt := range options {
		opt(s)
	}
	if len(bindings) > 0 {
		if err := s.SetBindings(bindings); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// MustNew is like New but panics on invalid bindings.
func MustNew(template string, bindings map[string]any, options ...Option) *Statement {
	s, err := New(template, bindings, options...)
	if err != nil {
		panic(err)
	}
	return s
}

// SetTemplate stores the template verbatim. The SQL is not validated.
func (s *Statement) SetTemplate(template string) {
	s.template = template
}

// Template returns the stored template.
func (s *Statement) Template() string { return s.template }

// String returns the template, not the rendered SQL.
func (s *Statement) String() string { return s.template }

// AutoQuote reports whether scalar values are quoted automatically.
func (s *Statement) AutoQuote() bool { return s.autoQuote }

// SetAutoQuote toggles automatic quoting of scalar values.
func (s *Statement) SetAutoQuote(enabled bool) { s.autoQuote = enabled }

// Strict reports whether unbound placeholders fail rendering.
func (s *Statement) Strict() bool { return s.strict }

// SetStrict toggles failing on unbound placeholders.
func (s *Statement) SetStrict(enabled bool) { s.strict = enabled }

// SetBindings replaces every binding. Names are applied in sorted order so
// that iteration is deterministic. Nothing changes if any value is invalid.
func (s *Statement) SetBindings(bindings map[string]any) error {
	names, values, err := convertBindings(bindings)
	if err != nil {
		return err
	}
	s.names = names
	s.values = values
	return nil
}

// Merge adds or overwrites the given bindings, keeping the others. Nothing
// changes if any value is invalid.
func (s *Statement) Merge(bindings map[string]any) error {
	names, values, err := convertBindings(bindings)
	if err != nil {
		return err
	}
	for _, name := range names {
		s.set(name, values[name])
	}
	return nil
}

// Bind adds or overwrites a single binding.
func (s *Statement) Bind(name string, value any) error {
	v, err := convertBinding(name, value)
	if err != nil {
		return err
	}
	s.set(name, v)
	return nil
}

// Unbind removes a binding. Unknown names are ignored.
func (s *Statement) Unbind(name string) {
	if _, ok := s.values[name]; !ok {
		return
	}
	delete(s.values, name)
	for i, n := range s.names {
		if n == name {
			s.names = append(s.names[:i:i], s.names[i+1:]...)
			break
		}
	}
}

// Lookup returns the value bound to name.
func (s *Statement) Lookup(name string) (Value, bool) {
	v, ok := s.values[name]
	return v, ok
}

// Names returns bound names in insertion order.
func (s *Statement) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Clone returns an independent copy of the statement.
func (s *Statement) Clone() *Statement {
	c := *s
	c.names = s.Names()
	c.values = make(map[string]Value, len(s.values))
	for k, v := range s.values {
		c.values[k] = v
	}
	return &c
}

func (s *Statement) set(name string, v Value) {
	if s.values == nil {
		s.values = make(map[string]Value)
	}
	if _, ok := s.values[name]; !ok {
		s.names = append(s.names, name)
	}
	s.values[name] = v
}

func convertBinding(name string, value any) (Value, error) {
	if !isValidName(name) {
		return Value{}, &InvalidBindingError{
			Name:  name,
			Value: value,
			Err:   fmt.Errorf("%w: %w", ErrInvalidBinding, ErrInvalidName),
		}
	}
	v, err := NewValue(value)
	if err != nil {
		return Value{}, &InvalidBindingError{Name: name, Value: value, Err: err}
	}
	return v, nil
}

func convertBindings(bindings map[string]any) ([]string, map[string]Value, error) {
	names := sortedKeys(bindings)
	values := make(map[string]Value, len(bindings))
	for _, name := range names {
		v, err := convertBinding(name, bindings[name])
		if err != nil {
			return nil, nil, err
		}
		values[name] = v
	}
	return names, values, nil
}

func isValidName(name string) bool {
	if name == "" || !isIdentStart(name[0]) {
		return false
	}
	for i := 1; i < len(name); i++ {
		if !isIdentChar(name[i]) {
			return false
		}
	}
	return true
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentChar(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
