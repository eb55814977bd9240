/*
Package engineering implements immutable integer quantities in
engineering notation.

A quantity is a significand held in an integer storage type,
multiplied by a power of 1000. It reads and writes the familiar SI
prefix forms ("1.5k", "2.345M", "1μ") and RKM codes ("1k5", "4m7"),
where the prefix stands in for the decimal point.

# Representation

[Quantity] is an opaque pair, read through two accessors:

  - [Quantity.Significand]: an integer of the chosen storage type T.
  - [Quantity.Exponent]: a power of 1000 in the range [MinExp] to
    [MaxExp], covering the standardised SI prefixes quecto (10^-30)
    through quetta (10^30).

The numerical value of a quantity is Significand() * 1000^Exponent().
The same value can have multiple representations: 2000 with exponent
0 and 2 with exponent 1 are different quantities but equal values,
and [Quantity.Cmp] treats them as equal. [Quantity.Normalize] picks
the representation with the largest exponent.

# Constraints

The supported storage types are the signed and unsigned 16, 32, and
64 bit integers, int and uint, and the package's own [Int128] and
[Uint128]. Fractional values are held exactly by lowering the
exponent: parsing "2.5M" yields significand 2500 and exponent 1, not
a fraction.

Every quantity constructed by this package satisfies one invariant:
the fully scaled value (for non-negative exponents) or the scaling
factor 1000^|exponent| (for negative exponents) is representable in
the storage type. [New] rejects pairs that violate it, so
[Quantity.Int] cannot overflow and [Quantity.Rat] cannot fail.

# Conversions

The package converts between quantities and:

  - plain integers: [FromInt], [Quantity.Int], [ToInt], [Convert];
  - text: [Parse], [Quantity.String], [Quantity.Text],
    [Quantity.RKM], [Format];
  - rationals and floats: [FromRat], [Quantity.Rat],
    [Quantity.Float64];
  - decimals: [FromDecimal], [Quantity.Decimal].

Narrowing conversions truncate toward zero. Conversions never round
silently in any other way: a conversion that cannot be exact returns
[ErrImprecise].

# Errors

Fallible operations return one of four sentinel errors, possibly
wrapped: [ErrOverflow], [ErrUnderflow], [ErrSyntax], [ErrImprecise].
Use [errors.Is] to test for them. Quantities are immutable and safe
for concurrent use by multiple goroutines.

[errors.Is]: https://pkg.go.dev/errors#Is
*/
package engineering
