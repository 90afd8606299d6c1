package statement

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

// TimeLayout is the text form used for time.Time scalars.
const TimeLayout = "2006-01-02 15:04:05.000000"

// Scalar is a single bound value in its raw text form.
type Scalar struct {
	text    string
	numeric bool
	arg     any
}

// NewScalar converts a Go value into a Scalar.
func NewScalar(v any) (Scalar, error) {
	s, ok, err := scalarOf(v)
	if err != nil {
		return Scalar{}, err
	}
	if !ok {
		return Scalar{}, fmt.Errorf("%w: %T is not a scalar", ErrInvalidBinding, v)
	}
	return s, nil
}

// Text returns the raw, unescaped text of the scalar.
func (s Scalar) Text() string { return s.text }

// Arg returns the scalar as a driver argument. Numbers and times keep their
// Go value; everything else is passed as text.
func (s Scalar) Arg() any {
	if s.arg != nil {
		return s.arg
	}
	return s.text
}

// Numeric reports whether the scalar is a number, either because it was
// bound as a Go number or because its text looks like one.
func (s Scalar) Numeric() bool { return s.numeric || isNumeric(s.text) }

// Value is either a Scalar or a List of scalars.
type Value struct {
	scalar Scalar
	list   []Scalar
	isList bool
}

// ScalarValue wraps a Scalar as a Value.
func ScalarValue(s Scalar) Value { return Value{scalar: s} }

// ListValue wraps scalars as a list Value.
func ListValue(items ...Scalar) Value {
	list := make([]Scalar, len(items))
	copy(list, items)
	return Value{list: list, isList: true}
}

// IsList reports whether v holds a list.
func (v Value) IsList() bool { return v.isList }

// Scalar returns the scalar held by v. It is the zero Scalar for lists.
func (v Value) Scalar() Scalar { return v.scalar }

// List returns a copy of the list elements held by v.
func (v Value) List() []Scalar {
	if !v.isList {
		return nil
	}
	out := make([]Scalar, len(v.list))
	copy(out, v.list)
	return out
}

// String returns a debug form of the value.
func (v Value) String() string {
	if !v.isList {
		return v.scalar.text
	}
	parts := make([]string, len(v.list))
	for i, s := range v.list {
		parts[i] = s.text
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// NewValue converts a Go value into a bindable Value.
//
// Strings, byte slices, integers, floats, json.Number and decimal.Decimal
// become scalars; uuid.UUID, ulid.ULID and time.Time become string scalars.
// Any other slice or array becomes a list, provided every element is a
// scalar. Everything else is rejected with ErrInvalidBinding.
func NewValue(v any) (Value, error) {
	if val, ok := v.(Value); ok {
		return val, nil
	}
	if s, ok, err := scalarOf(v); ok || err != nil {
		if err != nil {
			return Value{}, err
		}
		return ScalarValue(s), nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		list := make([]Scalar, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			s, ok, err := scalarOf(rv.Index(i).Interface())
			if err != nil {
				return Value{}, err
			}
			if !ok {
				return Value{}, fmt.Errorf("%w: list element %d has type %T", ErrInvalidBinding, i, rv.Index(i).Interface())
			}
			list[i] = s
		}
		return Value{list: list, isList: true}, nil
	}

	return Value{}, fmt.Errorf("%w: unsupported type %T", ErrInvalidBinding, v)
}

// scalarOf reports ok=false when v is not a scalar type at all.
func scalarOf(v any) (s Scalar, ok bool, err error) {
	switch val := v.(type) {
	case Scalar:
		return val, true, nil
	case string:
		return Scalar{text: val}, true, nil
	case []byte:
		return Scalar{text: string(val)}, true, nil
	case int:
		return Scalar{text: strconv.FormatInt(int64(val), 10), numeric: true, arg: val}, true, nil
	case int8:
		return Scalar{text: strconv.FormatInt(int64(val), 10), numeric: true, arg: val}, true, nil
	case int16:
		return Scalar{text: strconv.FormatInt(int64(val), 10), numeric: true, arg: val}, true, nil
	case int32:
		return Scalar{text: strconv.FormatInt(int64(val), 10), numeric: true, arg: val}, true, nil
	case int64:
		return Scalar{text: strconv.FormatInt(val, 10), numeric: true, arg: val}, true, nil
	case uint:
		return Scalar{text: strconv.FormatUint(uint64(val), 10), numeric: true, arg: val}, true, nil
	case uint8:
		return Scalar{text: strconv.FormatUint(uint64(val), 10), numeric: true, arg: val}, true, nil
	case uint16:
		return Scalar{text: strconv.FormatUint(uint64(val), 10), numeric: true, arg: val}, true, nil
	case uint32:
		return Scalar{text: strconv.FormatUint(uint64(val), 10), numeric: true, arg: val}, true, nil
	case uint64:
		return Scalar{text: strconv.FormatUint(val, 10), numeric: true, arg: val}, true, nil
	case float32:
		return floatScalar(float64(val), 32, val)
	case float64:
		return floatScalar(val, 64, val)
	case json.Number:
		if !isNumeric(string(val)) {
			return Scalar{}, false, fmt.Errorf("%w: malformed json.Number %q", ErrInvalidBinding, string(val))
		}
		return Scalar{text: string(val), numeric: true}, true, nil
	case decimal.Decimal:
		return Scalar{text: val.String(), numeric: true, arg: val}, true, nil
	case uuid.UUID:
		return Scalar{text: val.String()}, true, nil
	case ulid.ULID:
		return Scalar{text: val.String()}, true, nil
	case time.Time:
		return Scalar{text: val.Format(TimeLayout), arg: val}, true, nil
	}
	return Scalar{}, false, nil
}

func floatScalar(f float64, bitSize int, arg any) (Scalar, bool, error) {
	text := strconv.FormatFloat(f, 'f', -1, bitSize)
	if !isNumeric(text) {
		// NaN and infinities have no SQL literal form.
		return Scalar{}, false, fmt.Errorf("%w: non-finite float %s", ErrInvalidBinding, text)
	}
	return Scalar{text: text, numeric: true, arg: arg}, true, nil
}

// isNumeric accepts optional surrounding whitespace, an optional sign,
// decimal digits with an optional fraction, and an optional exponent.
func isNumeric(s string) bool {
	s = strings.TrimSpace(s)
	i, n := 0, len(s)
	if i < n && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := 0
	for i < n && isDigit(s[i]) {
		i++
		digits++
	}
	if i < n && s[i] == '.' {
		i++
		for i < n && isDigit(s[i]) {
			i++
			digits++
		}
	}
	if digits == 0 {
		return false
	}
	if i < n && (s[i] == 'e' || s[i] == 'E') {
		i++
		if i < n && (s[i] == '+' || s[i] == '-') {
			i++
		}
		exp := 0
		for i < n && isDigit(s[i]) {
			i++
			exp++
		}
		if exp == 0 {
			return false
		}
	}
	return i == n
}

// looksLikeCall is a best-effort heuristic, not a SQL grammar check: any
// value containing "(" and ending in ")" is treated as a function call.
func looksLikeCall(s string) bool {
	return strings.Contains(s, "(") && strings.HasSuffix(strings.TrimSpace(s), ")")
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
