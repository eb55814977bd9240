package engineering

import (
	"database/sql/driver"
	"fmt"
	"strconv"
)

// MarshalText implements the [encoding.TextMarshaler] interface.
// The quantity is rendered with automatic precision, so unmarshalling
// the result yields an equal quantity.
//
// [encoding.TextMarshaler]: https://pkg.go.dev/encoding#TextMarshaler
func (q Quantity[T]) MarshalText() ([]byte, error) {
	return []byte(q.String()), nil
}

// UnmarshalText implements the [encoding.TextUnmarshaler] interface.
//
// [encoding.TextUnmarshaler]: https://pkg.go.dev/encoding#TextUnmarshaler
func (q *Quantity[T]) UnmarshalText(text []byte) error {
	var err error
	*q, err = Parse[T](string(text))
	return err
}

// MarshalJSON implements the [json.Marshaler] interface. The quantity
// is encoded as a JSON string in engineering notation.
//
// [json.Marshaler]: https://pkg.go.dev/encoding/json#Marshaler
func (q Quantity[T]) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(q.String())), nil
}

// UnmarshalJSON implements the [json.Unmarshaler] interface. It
// accepts either a JSON string in engineering notation or a bare
// JSON integer. Floating-point tokens are rejected with [ErrSyntax];
// integers that do not fit the storage type are rejected with
// [ErrOverflow].
//
// [json.Unmarshaler]: https://pkg.go.dev/encoding/json#Unmarshaler
func (q *Quantity[T]) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		s, err := strconv.Unquote(string(data))
		if err != nil {
			return fmt.Errorf("unmarshaling quantity: %w", ErrSyntax)
		}
		return q.UnmarshalText([]byte(s))
	}
	v, err := promoteInt[T](string(data))
	if err != nil {
		return err
	}
	*q = FromInt(v)
	return nil
}

// Value implements the [driver.Valuer] interface.
//
// [driver.Valuer]: https://pkg.go.dev/database/sql/driver#Valuer
func (q Quantity[T]) Value() (driver.Value, error) {
	return q.String(), nil
}

// Scan implements the [sql.Scanner] interface. It accepts a string or
// byte slice in engineering notation, or a plain int64.
//
// [sql.Scanner]: https://pkg.go.dev/database/sql#Scanner
func (q *Quantity[T]) Scan(v any) error {
	var err error
	switch v := v.(type) {
	case string:
		*q, err = Parse[T](v)
	case []byte:
		*q, err = Parse[T](string(v))
	case int64:
		neg, abs := splitInt64(v)
		sig, ok := join[T](neg, abs)
		if !ok {
			err = fmt.Errorf("scanning %d: %w", v, ErrOverflow)
			break
		}
		*q = FromInt(sig)
	default:
		err = fmt.Errorf("scanning %T value: %w", v, ErrSyntax)
	}
	return err
}

// promoteInt converts a bare integer token to a storage value.
// Malformed tokens, including anything fractional, are [ErrSyntax];
// well-formed integers beyond the range of T are [ErrOverflow].
func promoteInt[T Integer](s string) (T, error) {
	var z T
	if s == "" {
		return z, fmt.Errorf("unmarshaling quantity: %w", ErrSyntax)
	}
	digits := s
	neg := false
	if digits[0] == '-' {
		neg = true
		digits = digits[1:]
		if digits == "" {
			return z, fmt.Errorf("unmarshaling quantity: %w", ErrSyntax)
		}
	}
	var abs Uint128
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return z, fmt.Errorf("unmarshaling %q: %w", s, ErrSyntax)
		}
		var ok bool
		abs, ok = abs.fsa(digits[i] - '0')
		if !ok {
			return z, fmt.Errorf("unmarshaling %q: %w", s, ErrOverflow)
		}
	}
	z, ok := join[T](neg, abs)
	if !ok {
		return z, fmt.Errorf("unmarshaling %q: %w", s, ErrOverflow)
	}
	return z, nil
}
