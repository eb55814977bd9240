package engineering

import (
	"encoding/binary"
	"fmt"
	"math/big"
	"math/bits"
	"strconv"
	"sync"
)

// Uint128 is an unsigned 128-bit integer, usable as a quantity storage type.
// It is an immutable comparable value; the zero value is 0.
//
// Internally it also serves as the widened magnitude for all storage types:
// every supported significand and every scaling factor 1000^|exp| with
// |exp| <= [MaxExp] fits into 128 bits, so the parser, formatter, and
// comparison fast path are written once against it.
type Uint128 struct {
	hi, lo uint64
}

// Uint128FromUint64 converts a uint64 to a Uint128.
func Uint128FromUint64(v uint64) Uint128 {
	return Uint128{lo: v}
}

// ParseUint128 converts a plain decimal string to a Uint128.
func ParseUint128(s string) (Uint128, error) {
	return parseSig[Uint128](s)
}

// IsZero returns true if x == 0.
func (x Uint128) IsZero() bool {
	return x.hi == 0 && x.lo == 0
}

// Uint64 converts x to a uint64 if it fits.
func (x Uint128) Uint64() (uint64, bool) {
	if x.hi != 0 {
		return 0, false
	}
	return x.lo, true
}

// Cmp compares x and y and returns -1, 0, or 1.
func (x Uint128) Cmp(y Uint128) int {
	switch {
	case x.hi != y.hi:
		if x.hi < y.hi {
			return -1
		}
		return 1
	case x.lo < y.lo:
		return -1
	case x.lo > y.lo:
		return 1
	}
	return 0
}

// String implements the [fmt.Stringer] interface.
//
// [fmt.Stringer]: https://pkg.go.dev/fmt#Stringer
func (x Uint128) String() string {
	return x.digits()
}

// add64 calculates x + y and checks overflow.
func (x Uint128) add64(y uint64) (z Uint128, ok bool) {
	lo, carry := bits.Add64(x.lo, y, 0)
	hi, carry := bits.Add64(x.hi, 0, carry)
	if carry != 0 {
		return Uint128{}, false
	}
	return Uint128{hi: hi, lo: lo}, true
}

// mul64 calculates x * y and checks overflow.
func (x Uint128) mul64(y uint64) (z Uint128, ok bool) {
	hi, lo := bits.Mul64(x.lo, y)
	hi2, lo2 := bits.Mul64(x.hi, y)
	if hi2 != 0 {
		return Uint128{}, false
	}
	hi, carry := bits.Add64(hi, lo2, 0)
	if carry != 0 {
		return Uint128{}, false
	}
	return Uint128{hi: hi, lo: lo}, true
}

// mul calculates x * y and checks overflow.
func (x Uint128) mul(y Uint128) (z Uint128, ok bool) {
	// Special cases
	switch {
	case y.hi == 0:
		return x.mul64(y.lo)
	case x.hi == 0:
		return y.mul64(x.lo)
	}
	// Both operands exceed 64 bits, so the product exceeds 128.
	return Uint128{}, false
}

// fsa (Fused Shift and Addition) calculates x * 10 + b and checks overflow.
func (x Uint128) fsa(b byte) (z Uint128, ok bool) {
	z, ok = x.mul64(10)
	if !ok {
		return Uint128{}, false
	}
	z, ok = z.add64(uint64(b))
	if !ok {
		return Uint128{}, false
	}
	return z, true
}

// quoRem64 calculates q = x div y and r = x mod y.
// The divisor must not be zero.
func (x Uint128) quoRem64(y uint64) (q Uint128, r uint64) {
	qhi := x.hi / y
	rhi := x.hi % y
	qlo, r := bits.Div64(rhi, x.lo, y)
	return Uint128{hi: qhi, lo: qlo}, r
}

// chunk is the largest power of 10 that fits in a uint64, used to
// carve a 128-bit value into printable 19-digit groups.
const chunk uint64 = 10_000_000_000_000_000_000

// digits returns the decimal digits of x, without a sign.
func (x Uint128) digits() string {
	// Special case
	if x.hi == 0 {
		return strconv.FormatUint(x.lo, 10)
	}
	// General case: at most 39 digits, so at most two full groups
	// below the leading one.
	q, r := x.quoRem64(chunk)
	if q.hi == 0 {
		return strconv.FormatUint(q.lo, 10) + fmt.Sprintf("%019d", r)
	}
	q, r2 := q.quoRem64(chunk)
	return strconv.FormatUint(q.lo, 10) + fmt.Sprintf("%019d", r2) + fmt.Sprintf("%019d", r)
}

// bigInt returns x as a freshly allocated big.Int.
func (x Uint128) bigInt() *big.Int {
	z := new(big.Int)
	(*bint)(z).setUint128(x)
	return z
}

// mustParseUint128 converts a string to Uint128, panicking on error.
// Use only for package variable initialization and test code!
func mustParseUint128(s string) Uint128 {
	var z Uint128
	var ok bool
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			panic(fmt.Sprintf("mustParseUint128(%q) failed: parsing error", s))
		}
		z, ok = z.fsa(s[i] - '0')
		if !ok {
			panic(fmt.Sprintf("mustParseUint128(%q) failed: overflow", s))
		}
	}
	return z
}

// pow1000 is a cache of powers of 1000, where pow1000[x] = 1000^x.
var pow1000 = [MaxExp + 1]Uint128{
	mustParseUint128("1"),                               // 1000^0
	mustParseUint128("1000"),                            // 1000^1
	mustParseUint128("1000000"),                         // 1000^2
	mustParseUint128("1000000000"),                      // 1000^3
	mustParseUint128("1000000000000"),                   // 1000^4
	mustParseUint128("1000000000000000"),                // 1000^5
	mustParseUint128("1000000000000000000"),             // 1000^6
	mustParseUint128("1000000000000000000000"),          // 1000^7
	mustParseUint128("1000000000000000000000000"),       // 1000^8
	mustParseUint128("1000000000000000000000000000"),    // 1000^9
	mustParseUint128("1000000000000000000000000000000"), // 1000^10
}

// bint (Big INTeger) is a wrapper around big.Int.
// It backs the comparison slow path, which may need to rescale a
// significand across the full exponent range.
type bint big.Int

// newBintFromPow1000 creates a *big.Int equal to 1000^power.
func newBintFromPow1000(power int) *bint {
	z := new(big.Int).Exp(big.NewInt(kilo), big.NewInt(int64(power)), nil)
	return (*bint)(z)
}

// bpow1000 is a cache of powers of 1000, where bpow1000[x] = 1000^x.
// It spans twice the exponent range, enough to rescale any pair of
// quantities to a common exponent.
var bpow1000 = [2*MaxExp + 1]*bint{
	newBintFromPow1000(0),
	newBintFromPow1000(1),
	newBintFromPow1000(2),
	newBintFromPow1000(3),
	newBintFromPow1000(4),
	newBintFromPow1000(5),
	newBintFromPow1000(6),
	newBintFromPow1000(7),
	newBintFromPow1000(8),
	newBintFromPow1000(9),
	newBintFromPow1000(10),
	newBintFromPow1000(11),
	newBintFromPow1000(12),
	newBintFromPow1000(13),
	newBintFromPow1000(14),
	newBintFromPow1000(15),
	newBintFromPow1000(16),
	newBintFromPow1000(17),
	newBintFromPow1000(18),
	newBintFromPow1000(19),
	newBintFromPow1000(20),
}

// bigPow1000 returns the shared big.Int equal to 1000^power.
// The caller must not mutate the result.
func bigPow1000(power int) *big.Int {
	return (*big.Int)(bpow1000[power])
}

func (z *bint) setUint128(x Uint128) {
	var buf [16]byte
	binary.BigEndian.PutUint64(buf[:8], x.hi)
	binary.BigEndian.PutUint64(buf[8:], x.lo)
	(*big.Int)(z).SetBytes(buf[:])
}

func (z *bint) cmp(x *bint) int {
	return (*big.Int)(z).Cmp((*big.Int)(x))
}

// lshKilo (Left Shift) calculates z = x * 1000^shift.
func (z *bint) lshKilo(x *bint, shift int) {
	(*big.Int)(z).Mul((*big.Int)(x), bigPow1000(shift))
}

// bpool is a cache of reusable *big.Int instances.
var bpool = sync.Pool{
	New: func() any {
		return (*bint)(new(big.Int))
	},
}

// getBint obtains a *big.Int from the pool.
func getBint() *bint {
	return bpool.Get().(*bint)
}

// putBint returns the *big.Int into the pool.
func putBint(b *bint) {
	bpool.Put(b)
}
