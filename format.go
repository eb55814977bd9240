package engineering

import (
	"fmt"
	"strconv"
	"strings"
)

// String implements the [fmt.Stringer] interface and renders the
// quantity in engineering notation with automatic precision: as many
// significant digits as the exact value needs, trailing zeros after
// the point stripped.
//
//	FromInt(int64(1500)).String()   // "1.5k"
//	MustNew(int64(1), -2).String()  // "1μ"
//
// [fmt.Stringer]: https://pkg.go.dev/fmt#Stringer
func (q Quantity[T]) String() string {
	return q.text(0, false, false)
}

// Text renders the quantity in engineering notation with at most prec
// significant figures. Excess trailing digits are truncated toward
// zero, and trailing zeros after the point are stripped. A prec of 0
// means automatic (lossless) precision.
//
//	FromInt(int64(123456)).Text(3) // "123k"
//	FromInt(int64(123456)).Text(4) // "123.4k"
//	FromInt(int64(123456)).Text(0) // "123.456k"
func (q Quantity[T]) Text(prec int) string {
	return q.text(prec, false, false)
}

// StrictText is like [Quantity.Text] but renders exactly prec
// significant figures, padding with trailing zeros if needed.
//
//	FromInt(int64(1200)).StrictText(3) // "1.20k"
func (q Quantity[T]) StrictText(prec int) string {
	return q.text(prec, false, true)
}

// RKM renders the quantity as an RKM code, where the SI prefix stands
// in for the decimal point, with at most prec significant figures.
// A prec of 0 means automatic (lossless) precision.
//
//	FromInt(int64(123456)).RKM(4) // "123k4"
func (q Quantity[T]) RKM(prec int) string {
	return q.text(prec, true, false)
}

// StrictRKM is like [Quantity.RKM] but renders exactly prec
// significant figures, padding with trailing zeros if needed.
func (q Quantity[T]) StrictRKM(prec int) string {
	return q.text(prec, true, true)
}

// Format renders a plain integer in engineering notation with at most
// prec significant figures, without constructing a quantity first.
//
//	engineering.Format(123456, 3) // "123k"
func Format[T Integer](v T, prec int) string {
	return FromInt(v).Text(prec)
}

// FormatRKM renders a plain integer as an RKM code with at most prec
// significant figures.
//
//	engineering.FormatRKM(123456, 4) // "123k4"
func FormatRKM[T Integer](v T, prec int) string {
	return FromInt(v).RKM(prec)
}

// text renders the quantity from five parts: an optional sign, the
// leading digits, a separator (point, prefix, or nothing), the
// trailing digits, and an optional suffix.
func (q Quantity[T]) text(prec int, rkm, strict bool) string {
	neg, abs := split(q.sig)
	digits := abs.digits()
	exp := int(q.exp)

	// A positive exponent folds into the digit string, so from here
	// on the value is digits * 10^(3*exp) with exp <= 0.
	if exp > 0 {
		digits += strings.Repeat("000", exp)
		exp = 0
	}

	// The display exponent makes the leading group fall in 1..999.
	// ilen is the number of digits before the true decimal point; it
	// is zero or negative for values below 1.
	var outExp, nlead int
	if ilen := len(digits) + 3*exp; ilen > 0 {
		outExp = (ilen - 1) / 3
		if outExp > MaxExp {
			// No prefix beyond Q. The excess stays in the
			// leading group, which then exceeds 999.
			outExp = MaxExp
		}
		nlead = ilen - 3*outExp
	} else {
		outExp = exp + (len(digits)-1)/3
		nlead = (len(digits)-1)%3 + 1
	}

	if strict && len(digits) < prec {
		digits += strings.Repeat("0", prec-len(digits))
	}
	bound := prec
	if bound == 0 {
		bound = len(digits)
	}
	ntrail := len(digits) - nlead
	if m := bound - nlead; m < ntrail {
		ntrail = m
		if ntrail < 0 {
			ntrail = 0
		}
	}
	leaders := digits[:nlead]
	trailers := digits[nlead : nlead+ntrail]
	if !strict {
		trailers = strings.TrimRight(trailers, "0")
	}

	si := prefixOf(outExp)
	var point, suffix string
	switch {
	case outExp == 0:
		if trailers != "" {
			point = "."
		}
	case rkm:
		point = si
	default:
		if trailers != "" {
			point = "."
		}
		suffix = si
	}

	var b strings.Builder
	b.Grow(len(leaders) + len(trailers) + 4)
	if neg {
		b.WriteByte('-')
	}
	b.WriteString(leaders)
	b.WriteString(point)
	b.WriteString(trailers)
	b.WriteString(suffix)
	return b.String()
}

// Format implements the [fmt.Formatter] interface.
// The following verbs are available:
//
//	%s, %v  engineering notation
//	%q      quoted engineering notation
//
// The precision controls the number of significant figures and
// defaults to automatic (lossless). The following flags are
// available:
//
//	#  RKM code, e.g. 1k5
//	0  strict precision, keeping trailing zeros
//
// [fmt.Formatter]: https://pkg.go.dev/fmt#Formatter
func (q Quantity[T]) Format(state fmt.State, verb rune) {
	prec, ok := state.Precision()
	if !ok {
		prec = 0
	}
	rkm := state.Flag('#')
	strict := state.Flag('0')
	switch verb {
	case 'q':
		state.Write([]byte(strconv.Quote(q.text(prec, rkm, strict))))
	case 's', 'v':
		state.Write([]byte(q.text(prec, rkm, strict)))
	default:
		state.Write([]byte(fmt.Sprintf("%%!%c(engineering.Quantity=%s)", verb, q.String())))
	}
}
