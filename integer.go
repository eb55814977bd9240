package engineering

import (
	"math/bits"
)

// Integer is the set of supported storage types for a [Quantity]
// significand.
type Integer interface {
	int16 | int32 | int64 | int |
		uint16 | uint32 | uint64 | uint |
		Int128 | Uint128
}

// Int128 is a signed 128-bit integer in two's complement, usable as a
// quantity storage type. It is an immutable comparable value; the zero
// value is 0.
type Int128 struct {
	hi, lo uint64
}

// Int128FromInt64 converts an int64 to an Int128.
func Int128FromInt64(v int64) Int128 {
	z := Int128{lo: uint64(v)}
	if v < 0 {
		z.hi = ^uint64(0)
	}
	return z
}

// ParseInt128 converts a plain decimal string to an Int128.
func ParseInt128(s string) (Int128, error) {
	return parseSig[Int128](s)
}

// isNeg returns true if x < 0.
func (x Int128) isNeg() bool {
	return x.hi&(1<<63) != 0
}

// abs returns |x| together with the sign of x.
func (x Int128) abs() (neg bool, abs Uint128) {
	if !x.isNeg() {
		return false, Uint128{hi: x.hi, lo: x.lo}
	}
	lo, borrow := bits.Sub64(0, x.lo, 0)
	hi, _ := bits.Sub64(0, x.hi, borrow)
	return true, Uint128{hi: hi, lo: lo}
}

// Sign returns:
//
//	-1 if x < 0
//	 0 if x == 0
//	+1 if x > 0
func (x Int128) Sign() int {
	switch {
	case x.isNeg():
		return -1
	case x.hi == 0 && x.lo == 0:
		return 0
	}
	return 1
}

// IsZero returns true if x == 0.
func (x Int128) IsZero() bool {
	return x.hi == 0 && x.lo == 0
}

// Cmp compares x and y and returns -1, 0, or 1.
func (x Int128) Cmp(y Int128) int {
	// Flipping the sign bit maps two's complement order onto
	// unsigned order.
	xu := Uint128{hi: x.hi ^ 1<<63, lo: x.lo}
	yu := Uint128{hi: y.hi ^ 1<<63, lo: y.lo}
	return xu.Cmp(yu)
}

// Int64 converts x to an int64 if it fits.
func (x Int128) Int64() (int64, bool) {
	neg, abs := x.abs()
	return joinSigned(neg, abs, 1<<63-1)
}

// String implements the [fmt.Stringer] interface.
//
// [fmt.Stringer]: https://pkg.go.dev/fmt#Stringer
func (x Int128) String() string {
	neg, abs := x.abs()
	if neg {
		return "-" + abs.digits()
	}
	return abs.digits()
}

// Platform-dependent bounds for int and uint.
const (
	maxUintVal = ^uint(0)
	maxIntVal  = uint64(maxUintVal >> 1)
)

// split decomposes a storage value into its sign and 128-bit
// magnitude. Together with [join] it forms the per-type capability
// table: all generic arithmetic goes through these two functions, so
// supporting a new storage type means adding one case to each.
func split[T Integer](v T) (neg bool, abs Uint128) {
	switch v := any(v).(type) {
	case int16:
		return splitInt64(int64(v))
	case int32:
		return splitInt64(int64(v))
	case int64:
		return splitInt64(v)
	case int:
		return splitInt64(int64(v))
	case uint16:
		return false, Uint128{lo: uint64(v)}
	case uint32:
		return false, Uint128{lo: uint64(v)}
	case uint64:
		return false, Uint128{lo: v}
	case uint:
		return false, Uint128{lo: uint64(v)}
	case Int128:
		return v.abs()
	case Uint128:
		return false, v
	}
	panic("unreachable")
}

// splitInt64 decomposes an int64 into its sign and magnitude.
func splitInt64(v int64) (neg bool, abs Uint128) {
	if v < 0 {
		// uint64 conversion wraps, so MinInt64 maps to 2^63.
		return true, Uint128{lo: uint64(-v)}
	}
	return false, Uint128{lo: uint64(v)}
}

// join recomposes a sign and 128-bit magnitude into a storage value,
// checking that the result is representable.
func join[T Integer](neg bool, abs Uint128) (z T, ok bool) {
	var t T
	switch any(t).(type) {
	case int16:
		v, ok := joinSigned(neg, abs, 1<<15-1)
		return any(int16(v)).(T), ok
	case int32:
		v, ok := joinSigned(neg, abs, 1<<31-1)
		return any(int32(v)).(T), ok
	case int64:
		v, ok := joinSigned(neg, abs, 1<<63-1)
		return any(v).(T), ok
	case int:
		v, ok := joinSigned(neg, abs, maxIntVal)
		return any(int(v)).(T), ok
	case uint16:
		v, ok := joinUnsigned(neg, abs, 1<<16-1)
		return any(uint16(v)).(T), ok
	case uint32:
		v, ok := joinUnsigned(neg, abs, 1<<32-1)
		return any(uint32(v)).(T), ok
	case uint64:
		v, ok := joinUnsigned(neg, abs, 1<<64-1)
		return any(v).(T), ok
	case uint:
		v, ok := joinUnsigned(neg, abs, uint64(maxUintVal))
		return any(uint(v)).(T), ok
	case Int128:
		v, ok := joinInt128(neg, abs)
		return any(v).(T), ok
	case Uint128:
		if neg && !abs.IsZero() {
			return z, false
		}
		return any(abs).(T), true
	}
	panic("unreachable")
}

// joinSigned narrows a sign and magnitude into a signed integer with
// the given positive bound. The negative bound is max + 1.
func joinSigned(neg bool, abs Uint128, max uint64) (int64, bool) {
	if abs.hi != 0 {
		return 0, false
	}
	if neg {
		if abs.lo > max+1 {
			return 0, false
		}
		// Wrapping negation maps max + 1 onto the minimum value.
		return -int64(abs.lo), true
	}
	if abs.lo > max {
		return 0, false
	}
	return int64(abs.lo), true
}

// joinUnsigned narrows a sign and magnitude into an unsigned integer
// with the given bound.
func joinUnsigned(neg bool, abs Uint128, max uint64) (uint64, bool) {
	if neg && !abs.IsZero() {
		return 0, false
	}
	if abs.hi != 0 || abs.lo > max {
		return 0, false
	}
	return abs.lo, true
}

// joinInt128 recomposes a sign and magnitude into a two's complement
// Int128.
func joinInt128(neg bool, abs Uint128) (Int128, bool) {
	if neg {
		// |MinInt128| = 2^127.
		if abs.hi > 1<<63 || (abs.hi == 1<<63 && abs.lo != 0) {
			return Int128{}, false
		}
		lo, borrow := bits.Sub64(0, abs.lo, 0)
		hi, _ := bits.Sub64(0, abs.hi, borrow)
		return Int128{hi: hi, lo: lo}, true
	}
	if abs.hi&(1<<63) != 0 {
		return Int128{}, false
	}
	return Int128{hi: abs.hi, lo: abs.lo}, true
}
