package engineering

import (
	"errors"
	"fmt"
)

// Exponent bounds for a quantity, matching the range of standardised
// SI prefixes (quecto through quetta).
const (
	MinExp = -10
	MaxExp = 10
)

// kilo is the base of the exponent.
const kilo = 1000

// Sentinel errors returned by this package. Returned errors may wrap
// these with context; test with [errors.Is].
var (
	ErrOverflow  = errors.New("number overflows the storage type")
	ErrUnderflow = errors.New("exponent underflows the storage type")
	ErrSyntax    = errors.New("invalid number syntax")
	ErrImprecise = errors.New("conversion would lose precision")
)

// Quantity represents an integer quantity in engineering notation,
// equal to its significand multiplied by 1000 raised to its exponent.
// The significand is held in the storage type T; the exponent ranges
// over [MinExp] to [MaxExp].
//
// Every Quantity produced by this package upholds the construction
// invariant: for a non-negative exponent, both 1000^exp and the fully
// scaled value 1000^exp * |significand| are representable in T; for a
// negative exponent, 1000^|exp| is representable in T. The invariant
// guarantees that conversion to a plain integer of the same storage
// type never overflows.
//
// Quantity is an immutable value; its zero value is the number 0 and
// is ready to use.
type Quantity[T Integer] struct {
	sig T
	exp int8
}

// New returns a quantity equal to sig * 1000^exp.
//
// New returns an error if exp is outside [[MinExp], [MaxExp]] or if
// the pair violates the construction invariant: [ErrOverflow] when
// exp >= 0 and the scaled value does not fit T, [ErrUnderflow] when
// exp < 0 and 1000^|exp| does not fit T.
func New[T Integer](sig T, exp int) (Quantity[T], error) {
	switch {
	case exp > MaxExp:
		return Quantity[T]{}, fmt.Errorf("constructing quantity with exponent %d: %w", exp, ErrOverflow)
	case exp < MinExp:
		return Quantity[T]{}, fmt.Errorf("constructing quantity with exponent %d: %w", exp, ErrUnderflow)
	case exp < 0:
		if _, ok := join[T](false, pow1000[-exp]); !ok {
			return Quantity[T]{}, fmt.Errorf("constructing quantity with exponent %d: %w", exp, ErrUnderflow)
		}
		return Quantity[T]{sig: sig, exp: int8(exp)}, nil
	}
	if _, ok := join[T](false, pow1000[exp]); !ok {
		return Quantity[T]{}, fmt.Errorf("constructing quantity with exponent %d: %w", exp, ErrOverflow)
	}
	neg, abs := split(sig)
	scaled, ok := abs.mul(pow1000[exp])
	if ok {
		_, ok = join[T](neg, scaled)
	}
	if !ok {
		return Quantity[T]{}, fmt.Errorf("constructing quantity %v*1000^%d: %w", sig, exp, ErrOverflow)
	}
	return Quantity[T]{sig: sig, exp: int8(exp)}, nil
}

// MustNew is like [New] but panics if the quantity cannot be
// constructed. It simplifies safe initialization of global variables
// holding quantities.
func MustNew[T Integer](sig T, exp int) Quantity[T] {
	q, err := New(sig, exp)
	if err != nil {
		panic(fmt.Sprintf("MustNew(%v, %d) failed: %v", sig, exp, err))
	}
	return q
}

// FromInt converts a plain integer to a quantity with exponent 0.
// The conversion is always exact.
func FromInt[T Integer](v T) Quantity[T] {
	return Quantity[T]{sig: v}
}

// Significand returns the significand of q.
func (q Quantity[T]) Significand() T {
	return q.sig
}

// Exponent returns the exponent of q.
func (q Quantity[T]) Exponent() int {
	return int(q.exp)
}

// Sign returns:
//
//	-1 if q < 0
//	 0 if q == 0
//	+1 if q > 0
func (q Quantity[T]) Sign() int {
	neg, abs := split(q.sig)
	switch {
	case abs.IsZero():
		return 0
	case neg:
		return -1
	}
	return 1
}

// IsZero returns true if q == 0.
func (q Quantity[T]) IsZero() bool {
	_, abs := split(q.sig)
	return abs.IsZero()
}

// Normalize returns a quantity equal to q with the largest exponent
// that keeps the significand integral: while the significand is a
// nonzero multiple of 1000 and the exponent is below [MaxExp], a
// factor of 1000 moves from the significand to the exponent. A zero
// significand is left untouched.
//
// The result always satisfies the construction invariant, since its
// scaled value equals that of q.
func (q Quantity[T]) Normalize() Quantity[T] {
	neg, abs := split(q.sig)
	exp := q.exp
	for !abs.IsZero() && exp < MaxExp {
		quo, rem := abs.quoRem64(kilo)
		if rem != 0 {
			break
		}
		abs = quo
		exp++
	}
	sig, _ := join[T](neg, abs)
	return Quantity[T]{sig: sig, exp: exp}
}

// Convert converts a quantity to a different storage type, keeping
// the significand and exponent. It returns [ErrOverflow] if the
// significand does not fit U, or [ErrOverflow]/[ErrUnderflow] if the
// pair violates U's construction invariant.
func Convert[U, T Integer](q Quantity[T]) (Quantity[U], error) {
	neg, abs := split(q.sig)
	sig, ok := join[U](neg, abs)
	if !ok {
		return Quantity[U]{}, fmt.Errorf("converting significand %v: %w", q.sig, ErrOverflow)
	}
	return New(sig, int(q.exp))
}

// MustConvert is like [Convert] but panics if the conversion fails.
func MustConvert[U, T Integer](q Quantity[T]) Quantity[U] {
	z, err := Convert[U](q)
	if err != nil {
		panic(fmt.Sprintf("MustConvert(%v) failed: %v", q, err))
	}
	return z
}

// ToInt converts a quantity to a plain integer of storage type U,
// truncating toward zero if the exponent is negative. It returns
// [ErrOverflow] if the result does not fit U.
func ToInt[U, T Integer](q Quantity[T]) (U, error) {
	neg, abs := split(q.sig)
	if q.exp >= 0 {
		scaled, ok := abs.mul(pow1000[q.exp])
		if ok {
			if v, ok := join[U](neg, scaled); ok {
				return v, nil
			}
		}
		return *new(U), fmt.Errorf("converting %v to integer: %w", q, ErrOverflow)
	}
	// Repeated division by 1000; the nested floors compose into a
	// single floor by 1000^|exp|.
	for i := q.exp; i < 0; i++ {
		abs, _ = abs.quoRem64(kilo)
	}
	if abs.IsZero() {
		neg = false
	}
	v, ok := join[U](neg, abs)
	if !ok {
		return *new(U), fmt.Errorf("converting %v to integer: %w", q, ErrOverflow)
	}
	return v, nil
}

// Int converts a quantity to a plain integer of its own storage type,
// truncating toward zero if the exponent is negative. The
// construction invariant rules out overflow for non-negative
// exponents, so the error is always nil; it is returned for symmetry
// with [ToInt].
func (q Quantity[T]) Int() (T, error) {
	return ToInt[T](q)
}

// Cmp compares two quantities of the same storage type numerically
// and returns:
//
//	-1 if q < r
//	 0 if q == r
//	+1 if q > r
//
// Quantities with different representations of the same value (for
// example 2000 and 2k) compare equal. The ordering is total.
func (q Quantity[T]) Cmp(r Quantity[T]) int {
	// Special cases
	qs, rs := q.Sign(), r.Sign()
	switch {
	case qs != rs:
		if qs < rs {
			return -1
		}
		return 1
	case qs == 0:
		return 0
	}
	// General case
	_, qabs := split(q.sig)
	_, rabs := split(r.sig)
	m, ok := cmpFast(qabs, int(q.exp), rabs, int(r.exp))
	if !ok {
		m = cmpSlow(qabs, int(q.exp), rabs, int(r.exp))
	}
	if qs < 0 {
		return -m
	}
	return m
}

// cmpFast compares magnitudes scaled to a common exponent using
// 128-bit arithmetic. If scaling overflows, it returns false.
func cmpFast(x Uint128, xexp int, y Uint128, yexp int) (int, bool) {
	switch d := xexp - yexp; {
	case d > 0:
		if d > MaxExp {
			return 0, false
		}
		z, ok := x.mul(pow1000[d])
		if !ok {
			return 0, false
		}
		x = z
	case d < 0:
		if -d > MaxExp {
			return 0, false
		}
		z, ok := y.mul(pow1000[-d])
		if !ok {
			return 0, false
		}
		y = z
	}
	return x.Cmp(y), true
}

// cmpSlow compares magnitudes scaled to a common exponent using
// big.Int arithmetic.
func cmpSlow(x Uint128, xexp int, y Uint128, yexp int) int {
	xb, yb := getBint(), getBint()
	defer putBint(xb)
	defer putBint(yb)
	xb.setUint128(x)
	yb.setUint128(y)
	switch d := xexp - yexp; {
	case d > 0:
		xb.lshKilo(xb, d)
	case d < 0:
		yb.lshKilo(yb, -d)
	}
	return xb.cmp(yb)
}

// Equal reports whether two quantities are numerically equal.
func (q Quantity[T]) Equal(r Quantity[T]) bool {
	return q.Cmp(r) == 0
}
