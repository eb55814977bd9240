package engineering

import (
	"fmt"
	"math"
	"math/big"
)

// Rat returns the exact value of q as a rational number with a
// positive denominator. For a non-negative exponent the denominator
// is 1; for a negative exponent it is 1000^|exp| and the numerator is
// the bare significand.
//
// The construction invariant guarantees that both components fit the
// storage type, so the error is always nil for quantities built by
// this package.
func (q Quantity[T]) Rat() (num, den T, err error) {
	if q.exp >= 0 {
		num, err = q.Int()
		if err != nil {
			return num, den, err
		}
		den, _ = join[T](false, pow1000[0])
		return num, den, nil
	}
	den, ok := join[T](false, pow1000[-q.exp])
	if !ok {
		return num, den, fmt.Errorf("computing denominator of %v: %w", q, ErrUnderflow)
	}
	return q.sig, den, nil
}

// FromRat converts a rational number to a quantity. The conversion is
// precise and succeeds only when the denominator is a positive power
// of 1000 (including 1), or divides 1000 exactly so that the
// numerator can be scaled up to compensate. Any other denominator
// returns [ErrImprecise]; a scaled numerator that does not fit the
// storage type returns [ErrOverflow].
//
//	FromRat(int64(1), 1000)  // 1m
//	FromRat(int64(1), 4)     // 250m
//	FromRat(int64(1), 333)   // ErrImprecise
func FromRat[T Integer](num, den T) (Quantity[T], error) {
	dneg, dabs := split(den)
	if dneg || dabs.IsZero() {
		return Quantity[T]{}, fmt.Errorf("converting rational with denominator %v: %w", den, ErrImprecise)
	}
	if d, ok := dabs.Uint64(); ok && d == 1 {
		return New(num, 0)
	}

	// Scale away whole powers of 1000.
	exp := 0
	for {
		quo, rem := dabs.quoRem64(kilo)
		if quo.IsZero() || rem != 0 {
			break
		}
		exp--
		dabs = quo
	}
	d, ok := dabs.Uint64()
	if !ok || kilo%d != 0 {
		return Quantity[T]{}, fmt.Errorf("converting rational with denominator %v: %w", den, ErrImprecise)
	}
	if d == 1 {
		return New(num, exp)
	}

	// The residual denominator divides 1000, so scaling the
	// numerator by the cofactor and borrowing one more exponent
	// step makes the conversion exact.
	nneg, nabs := split(num)
	scaled, ok := nabs.mul64(kilo / d)
	var sig T
	if ok {
		sig, ok = join[T](nneg, scaled)
	}
	if !ok {
		return Quantity[T]{}, fmt.Errorf("scaling numerator %v: %w", num, ErrOverflow)
	}
	return New(sig, exp-1)
}

// Float64 returns the value of q as a float64, rounded to the nearest
// representable value. It returns [ErrImprecise] if the value does
// not fit a finite float64.
func (q Quantity[T]) Float64() (float64, error) {
	neg, abs := split(q.sig)
	n := abs.bigInt()
	if neg {
		n.Neg(n)
	}
	r := new(big.Rat)
	if q.exp >= 0 {
		r.SetInt(n.Mul(n, bigPow1000(int(q.exp))))
	} else {
		r.SetFrac(n, bigPow1000(int(-q.exp)))
	}
	f, _ := r.Float64()
	if math.IsInf(f, 0) {
		return 0, fmt.Errorf("converting %v to float: %w", q, ErrImprecise)
	}
	return f, nil
}
