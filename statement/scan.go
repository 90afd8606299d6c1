package statement

import (
	"strings"
)

// placeholder is one :name occurrence; start points at the colon and end is
// exclusive.
type placeholder struct {
	name       string
	start, end int
}

type scanner struct {
	src          string
	n            int
	i            int
	skipLiterals bool
	found        []placeholder
}

// scanPlaceholders finds every :name token in src, left to right. A name is
// the longest run of identifier characters after the colon, so :id never
// matches the front of :identity. "::" is a cast, never a placeholder.
func scanPlaceholders(src string, skipLiterals bool) []placeholder {
	s := scanner{src: src, n: len(src), skipLiterals: skipLiterals}
	for s.i < s.n {
		c := s.src[s.i]
		if s.skipLiterals && s.skipLiteral(c) {
			continue
		}
		if c != ':' {
			s.i++
			continue
		}
		if s.peek(1) == ':' {
			s.i += 2
			for s.i < s.n && s.src[s.i] == ':' {
				s.i++
			}
			continue
		}
		if !isIdentStart(s.peek(1)) {
			s.i++
			continue
		}
		start := s.i
		j := s.i + 1
		for j < s.n && isIdentChar(s.src[j]) {
			j++
		}
		s.found = append(s.found, placeholder{name: s.src[start+1 : j], start: start, end: j})
		s.i = j
	}
	return s.found
}

func (s *scanner) peek(k int) byte {
	if s.i+k < s.n {
		return s.src[s.i+k]
	}
	return 0
}

// skipLiteral consumes a quoted string, quoted identifier or comment starting
// at the current position and reports whether it did.
func (s *scanner) skipLiteral(c byte) bool {
	switch c {
	case '\'':
		s.consumeQuoted('\'')
	case '"':
		s.consumeQuoted('"')
	case '`':
		s.consumeQuoted('`')
	case '-':
		if s.peek(1) != '-' {
			return false
		}
		for s.i < s.n && s.src[s.i] != '\n' {
			s.i++
		}
	case '/':
		if s.peek(1) != '*' {
			return false
		}
		end := strings.Index(s.src[s.i+2:], "*/")
		if end < 0 {
			s.i = s.n
		} else {
			s.i += 2 + end + 2
		}
	case '$':
		return s.consumeDollarQuoted()
	default:
		return false
	}
	return true
}

// consumeQuoted skips past the closing quote. A doubled quote is an escaped
// quote and does not close the literal.
func (s *scanner) consumeQuoted(q byte) {
	s.i++
	for s.i < s.n {
		c := s.src[s.i]
		s.i++
		if c != q {
			continue
		}
		if s.i < s.n && s.src[s.i] == q {
			s.i++
			continue
		}
		return
	}
}

// consumeDollarQuoted skips a PostgreSQL $tag$ ... $tag$ body.
func (s *scanner) consumeDollarQuoted() bool {
	j := s.i + 1
	for j < s.n && isIdentChar(s.src[j]) {
		j++
	}
	if j >= s.n || s.src[j] != '$' {
		return false
	}
	if j > s.i+1 && isDigit(s.src[s.i+1]) {
		// $1 style parameter, not a tag
		return false
	}
	tag := s.src[s.i : j+1]
	end := strings.Index(s.src[j+1:], tag)
	if end < 0 {
		s.i = s.n
	} else {
		s.i = j + 1 + end + len(tag)
	}
	return true
}
