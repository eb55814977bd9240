package engineering

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Parse converts an engineering-notation string to a quantity.
//
// Parse accepts three input forms:
//
//	1500      plain integer, exponent 0
//	1.5k      decimal form, the prefix scales the whole number
//	1k5       RKM form, the prefix replaces the decimal point
//
// An optional leading minus sign is accepted for signed storage types
// only. Fractional digits are folded into the significand by lowering
// the exponent in whole groups of three, so the value is held exactly:
// "2.5M" parses as 2500 * 1000^1. 'u' is accepted as an alias for the
// micro prefix 'μ'.
//
// Parse returns [ErrSyntax] if the string is malformed or its digits
// do not fit the storage type, and [ErrOverflow] or [ErrUnderflow] if
// the resulting pair violates the construction invariant.
func Parse[T Integer](s string) (Quantity[T], error) {
	var (
		di   = -1 // index of the decimal point
		pi   = -1 // index of the first prefix rune
		pw   int  // width of the prefix rune in bytes
		pexp int  // exponent denoted by the prefix
	)
	for i, r := range s {
		switch {
		case r == '.':
			if di < 0 {
				di = i
			}
		case pi < 0:
			if e, ok := exponentOf(r); ok {
				pi, pw, pexp = i, utf8.RuneLen(r), e
			}
		}
	}

	// Plain integer form.
	if di < 0 && pi < 0 {
		sig, err := parseSig[T](s)
		if err != nil {
			return Quantity[T]{}, fmt.Errorf("parsing %q: %w", s, err)
		}
		return New(sig, 0)
	}

	// The presence of a decimal point selects the decimal form;
	// otherwise the prefix acts as the point (RKM form). Either way
	// the string splits into whole and fractional digit runs.
	at, width, exp := di, 1, 0
	if di < 0 {
		at, width = pi, pw
	}
	if pi >= 0 {
		exp = pexp
	}
	left, right := s[:at], s[at+width:]
	if di >= 0 && pi >= 0 {
		// Decimal form with a trailing prefix, e.g. "1.5k". The
		// prefix must be the final rune of the fractional run.
		r, w := utf8.DecodeLastRuneInString(right)
		if _, ok := exponentOf(r); !ok {
			return Quantity[T]{}, fmt.Errorf("parsing %q: %w", s, ErrSyntax)
		}
		right = right[:len(right)-w]
	}
	// The grammar requires at least one digit before the point or
	// prefix, so a bare "k" or ".5" is malformed.
	if left == "" || left == "-" {
		return Quantity[T]{}, fmt.Errorf("parsing %q: %w", s, ErrSyntax)
	}

	// Fold fractional digits into the significand, lowering the
	// exponent one step per group of three and zero-padding a
	// partial final group.
	digits := left + right
	if n := len(right); n > 0 {
		g := n / 3
		if n%3 == 0 {
			exp -= g
		} else {
			exp -= g + 1
			digits += strings.Repeat("0", 3-n%3)
		}
	}
	sig, err := parseSig[T](digits)
	if err != nil {
		return Quantity[T]{}, fmt.Errorf("parsing %q: %w", s, err)
	}
	return New(sig, exp)
}

// MustParse is like [Parse] but panics if the string cannot be
// parsed. It simplifies safe initialization of global variables
// holding quantities.
func MustParse[T Integer](s string) Quantity[T] {
	q, err := Parse[T](s)
	if err != nil {
		panic(fmt.Sprintf("MustParse(%q) failed: %v", s, err))
	}
	return q
}

// parseSig converts a plain decimal digit run, with an optional
// leading minus sign on signed storage types, to a storage value.
// Any failure, including digits beyond the range of T, is [ErrSyntax].
func parseSig[T Integer](s string) (T, error) {
	var z T
	if s == "" {
		return z, ErrSyntax
	}
	neg := false
	if s[0] == '-' {
		neg = true
		s = s[1:]
		if s == "" {
			return z, ErrSyntax
		}
	}
	var abs Uint128
	var ok bool
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return z, fmt.Errorf("invalid character %q: %w", s[i], ErrSyntax)
		}
		abs, ok = abs.fsa(s[i] - '0')
		if !ok {
			return z, fmt.Errorf("number has more than 39 digits: %w", ErrSyntax)
		}
	}
	z, ok = join[T](neg, abs)
	if !ok {
		return z, fmt.Errorf("number out of range of the storage type: %w", ErrSyntax)
	}
	return z, nil
}
