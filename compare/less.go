package compare

import (
	"cmp"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"facette.io/natsort"
	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

var (
	ErrUnknownComparator = errors.New("unknown comparator")
	ErrInvalidLocale     = errors.New("invalid locale")
)

// Less reports whether a sorts before b. Implementations must be strict weak
// orders: irreflexive, transitive, and with transitive equivalence.
type Less[T any] func(a, b T) bool

// Ordered returns the natural < ordering of T.
func Ordered[T cmp.Ordered]() Less[T] {
	return cmp.Less[T]
}

// Reverse returns the opposite ordering of less.
func Reverse[T any](less Less[T]) Less[T] {
	return func(a, b T) bool {
		return less(b, a)
	}
}

// Then breaks ties of primary with secondary.
func Then[T any](primary, secondary Less[T]) Less[T] {
	return func(a, b T) bool {
		if primary(a, b) {
			return true
		}

		if primary(b, a) {
			return false
		}

		return secondary(a, b)
	}
}

// ByKey orders values by the natural order of the key extracted from them.
func ByKey[T any, K cmp.Ordered](key func(T) K) Less[T] {
	return func(a, b T) bool {
		return cmp.Less(key(a), key(b))
	}
}

// ByLength orders strings or byte slices by their length only, so values of
// the same length are equivalent.
func ByLength[T ~string | ~[]byte]() Less[T] {
	return func(a, b T) bool {
		return len(a) < len(b)
	}
}

// Equivalent reports whether neither a nor b sorts before the other.
func Equivalent[T any](less Less[T], a, b T) bool {
	return !less(a, b) && !less(b, a)
}

// Natural orders strings so that embedded numbers compare numerically
// ("file2" before "file10").
func Natural() Less[string] {
	return natsort.Compare
}

// Fold orders strings by their Unicode case-folded form. The returned Less is
// not safe for concurrent use.
func Fold() Less[string] {
	folder := cases.Fold()

	return func(a, b string) bool {
		return folder.String(a) < folder.String(b)
	}
}

// Collated orders strings by the collation rules of the given BCP 47 locale
// (for example "de", "sv", "en-US"). The returned Less is not safe for
// concurrent use.
func Collated(locale string, opts ...collate.Option) (Less[string], error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrInvalidLocale, locale, err)
	}

	collator := collate.New(tag, opts...)

	return func(a, b string) bool {
		return collator.CompareString(a, b) < 0
	}, nil
}

// parseNumber reads s as a float. NaN is not a number for ordering purposes.
func parseNumber(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) {
		return 0, false
	}

	return f, true
}

// Numeric orders strings by their numeric value. Strings that are not
// numbers sort before all numbers, lexically among themselves. Numbers with
// the same value are equivalent ("1" and "1.0").
func Numeric() Less[string] {
	return func(a, b string) bool {
		x, xok := parseNumber(a)
		y, yok := parseNumber(b)

		switch {
		case xok && yok:
			return x < y
		case xok != yok:
			return yok
		default:
			return a < b
		}
	}
}

// Comparator names accepted by Named.
const (
	NameLexical = "lexical"
	NameNatural = "natural"
	NameLength  = "length"
	NameNumeric = "numeric"
	NameFold    = "fold"
	NameCollate = "collate"
)

// Names lists the comparator names accepted by Named.
func Names() []string {
	return []string{NameLexical, NameNatural, NameLength, NameNumeric, NameFold, NameCollate}
}

// Named returns the string comparator registered under name. locale is only
// used by the collate comparator and defaults to "und" (root collation).
func Named(name, locale string) (Less[string], error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", NameLexical:
		return Ordered[string](), nil
	case NameNatural:
		return Natural(), nil
	case NameLength:
		return Then(ByLength[string](), Ordered[string]()), nil
	case NameNumeric:
		return Numeric(), nil
	case NameFold:
		return Fold(), nil
	case NameCollate:
		if locale == "" {
			locale = "und"
		}

		return Collated(locale)
	default:
		return nil, fmt.Errorf("%w: %q (expected one of %s)",
			ErrUnknownComparator, name, strings.Join(Names(), ", "))
	}
}
