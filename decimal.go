package engineering

import (
	"fmt"
	"strings"

	"github.com/govalues/decimal"
)

// Decimal converts a quantity to a [decimal.Decimal] exactly. It
// returns [ErrImprecise] if the value needs more precision or a
// larger scale than a decimal can carry.
func (q Quantity[T]) Decimal() (decimal.Decimal, error) {
	s := q.plainText()
	d, err := decimal.Parse(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("converting %v to decimal: %w", q, ErrImprecise)
	}
	// Parse rounds silently when the coefficient does not fit, so
	// an inexact result is detected by rendering it back.
	if d.String() != s {
		return decimal.Decimal{}, fmt.Errorf("converting %v to decimal: %w", q, ErrImprecise)
	}
	return d, nil
}

// FromDecimal converts a [decimal.Decimal] to a quantity. The
// conversion is always precise: the decimal's scale is rounded up to
// a whole number of three-digit groups and the coefficient is padded
// to match. It returns [ErrOverflow] if the padded coefficient does
// not fit the storage type, or [ErrUnderflow] if the resulting
// exponent violates the construction invariant.
//
//	FromDecimal[int64](decimal.MustParse("1.5")) // 1500 * 1000^-1
func FromDecimal[T Integer](d decimal.Decimal) (Quantity[T], error) {
	abs := Uint128{lo: d.Coef()}
	scale := d.Scale()
	groups := (scale + 2) / 3
	if pad := 3*groups - scale; pad > 0 {
		// Cannot overflow: a decimal coefficient has at most 19
		// digits and two padding digits keep it under 10^21.
		abs, _ = abs.mul64(uint64(pow10small[pad]))
	}
	sig, ok := join[T](d.IsNeg(), abs)
	if !ok {
		return Quantity[T]{}, fmt.Errorf("converting decimal %v: %w", d, ErrOverflow)
	}
	return New(sig, -groups)
}

// pow10small covers the padding factors used by [FromDecimal].
var pow10small = [3]int64{1, 10, 100}

// plainText renders the exact value of q as a plain decimal string,
// without prefixes or exponents.
func (q Quantity[T]) plainText() string {
	neg, abs := split(q.sig)
	digits := abs.digits()
	if abs.IsZero() && q.exp >= 0 {
		return "0"
	}
	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	if q.exp >= 0 {
		b.WriteString(digits)
		for i := 0; i < int(q.exp); i++ {
			b.WriteString("000")
		}
		return b.String()
	}
	scale := int(-q.exp) * 3
	if len(digits) > scale {
		b.WriteString(digits[:len(digits)-scale])
		b.WriteByte('.')
		b.WriteString(digits[len(digits)-scale:])
		return b.String()
	}
	b.WriteString("0.")
	b.WriteString(strings.Repeat("0", scale-len(digits)))
	b.WriteString(digits)
	return b.String()
}
