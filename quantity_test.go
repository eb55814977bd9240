package engineering

import (
	"database/sql"
	"database/sql/driver"
	"encoding"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/big"
	"testing"
)

func TestQuantity_ZeroValue(t *testing.T) {
	got := Quantity[int64]{}
	want := MustNew(int64(0), 0)
	if got != want {
		t.Errorf("Quantity[int64]{} = %q, want %q", got, want)
	}
	if !got.IsZero() {
		t.Errorf("Quantity[int64]{}.IsZero() = false")
	}
}

func TestQuantity_Interfaces(t *testing.T) {
	var q any

	q = Quantity[int64]{}
	if _, ok := q.(fmt.Stringer); !ok {
		t.Errorf("%T does not implement fmt.Stringer", q)
	}
	if _, ok := q.(fmt.Formatter); !ok {
		t.Errorf("%T does not implement fmt.Formatter", q)
	}
	if _, ok := q.(encoding.TextMarshaler); !ok {
		t.Errorf("%T does not implement encoding.TextMarshaler", q)
	}
	if _, ok := q.(json.Marshaler); !ok {
		t.Errorf("%T does not implement json.Marshaler", q)
	}
	if _, ok := q.(driver.Valuer); !ok {
		t.Errorf("%T does not implement driver.Valuer", q)
	}

	q = &Quantity[int64]{}
	if _, ok := q.(encoding.TextUnmarshaler); !ok {
		t.Errorf("%T does not implement encoding.TextUnmarshaler", q)
	}
	if _, ok := q.(json.Unmarshaler); !ok {
		t.Errorf("%T does not implement json.Unmarshaler", q)
	}
	if _, ok := q.(sql.Scanner); !ok {
		t.Errorf("%T does not implement sql.Scanner", q)
	}
}

func TestNew(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		tests := []struct {
			sig int64
			exp int
		}{
			{0, 0},
			{0, 6},
			{0, -6},
			{1500, 0},
			{1500, 1},
			{1, -1},
			{1, -6},
			{math.MaxInt64, 0},
			{math.MinInt64, 0},
			{9223372036854775, 1},
			{-9223372036854775, 1},
			{9, 6},
		}
		for _, tt := range tests {
			q, err := New(tt.sig, tt.exp)
			if err != nil {
				t.Errorf("New(%d, %d) failed: %v", tt.sig, tt.exp, err)
				continue
			}
			if q.Significand() != tt.sig || q.Exponent() != tt.exp {
				t.Errorf("New(%d, %d) = (%d, %d)", tt.sig, tt.exp, q.Significand(), q.Exponent())
			}
		}
	})
	t.Run("error", func(t *testing.T) {
		tests := []struct {
			sig     int64
			exp     int
			wantErr error
		}{
			{1, 11, ErrOverflow},
			{1, -11, ErrUnderflow},
			// The scaling factor must fit the storage type even for a
			// zero significand.
			{0, 10, ErrOverflow},
			{0, -10, ErrUnderflow},
			{1, -7, ErrUnderflow},
			{10, 6, ErrOverflow},
			{math.MaxInt64, 1, ErrOverflow},
			{math.MinInt64, 1, ErrOverflow},
			{1, 7, ErrOverflow},
		}
		for _, tt := range tests {
			_, err := New(tt.sig, tt.exp)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("New(%d, %d) = %v, want %v", tt.sig, tt.exp, err, tt.wantErr)
			}
		}
	})
	t.Run("narrow", func(t *testing.T) {
		if _, err := New(int16(1), -2); !errors.Is(err, ErrUnderflow) {
			t.Errorf("New[int16](1, -2) = %v, want %v", err, ErrUnderflow)
		}
		if _, err := New(uint16(66), 1); !errors.Is(err, ErrOverflow) {
			t.Errorf("New[uint16](66, 1) = %v, want %v", err, ErrOverflow)
		}
		if _, err := New(uint16(65), 1); err != nil {
			t.Errorf("New[uint16](65, 1) failed: %v", err)
		}
		if _, err := New(int32(3), 3); !errors.Is(err, ErrOverflow) {
			t.Errorf("New[int32](3, 3) = %v, want %v", err, ErrOverflow)
		}
		if _, err := New(int32(1), 5); !errors.Is(err, ErrOverflow) {
			t.Errorf("New[int32](1, 5) = %v, want %v", err, ErrOverflow)
		}
	})
}

func TestQuantity_Normalize(t *testing.T) {
	tests := []struct {
		sig, exp         int64
		wantSig, wantExp int64
	}{
		{0, 0, 0, 0},
		{0, 3, 0, 3},
		{1, 0, 1, 0},
		{2000, 0, 2, 1},
		{2000000, 0, 2, 2},
		{2500, 1, 2500, 1},
		{1000000, -2, 1, 0},
		{1000, -1, 1, 0},
		{123000, -1, 123, 0},
		{-2000, 0, -2, 1},
	}
	for _, tt := range tests {
		q := MustNew(tt.sig, int(tt.exp))
		got := q.Normalize()
		if got.Significand() != tt.wantSig || got.Exponent() != int(tt.wantExp) {
			t.Errorf("Normalize(%d, %d) = (%d, %d), want (%d, %d)",
				tt.sig, tt.exp, got.Significand(), got.Exponent(), tt.wantSig, tt.wantExp)
		}
		if again := got.Normalize(); again != got {
			t.Errorf("Normalize(%q) is not idempotent", q)
		}
		if !got.Equal(q) {
			t.Errorf("Normalize(%q) = %q, values differ", q, got)
		}
	}
}

func TestQuantity_Normalize_ExponentCap(t *testing.T) {
	q := MustNew(mustParseUint128("1000000000"), 9)
	got := q.Normalize()
	if got.Exponent() != MaxExp {
		t.Errorf("Normalize(%q).Exponent() = %d, want %d", q, got.Exponent(), MaxExp)
	}
	if want := mustParseUint128("1000000"); got.Significand() != want {
		t.Errorf("Normalize(%q).Significand() = %v, want %v", q, got.Significand(), want)
	}
}

func TestConvert(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		q := MustNew(int64(1500), 1)
		got, err := Convert[int32](q)
		if err != nil {
			t.Fatalf("Convert[int32](%q) failed: %v", q, err)
		}
		if got.Significand() != 1500 || got.Exponent() != 1 {
			t.Errorf("Convert[int32](%q) = (%d, %d)", q, got.Significand(), got.Exponent())
		}
		u, err := Convert[uint64](MustNew(int64(42), 2))
		if err != nil {
			t.Fatalf("Convert[uint64] failed: %v", err)
		}
		w, err := ToInt[uint64](u)
		if err != nil || w != 42000000 {
			t.Errorf("ToInt[uint64](%q) = %d, %v", u, w, err)
		}
	})
	t.Run("error", func(t *testing.T) {
		if _, err := Convert[int32](MustNew(int64(1000000000000), 0)); !errors.Is(err, ErrOverflow) {
			t.Errorf("Convert[int32] = %v, want %v", err, ErrOverflow)
		}
		if _, err := Convert[uint64](MustNew(int64(-1), 0)); !errors.Is(err, ErrOverflow) {
			t.Errorf("Convert[uint64](-1) = %v, want %v", err, ErrOverflow)
		}
		if _, err := Convert[int16](MustNew(int64(1), -2)); !errors.Is(err, ErrUnderflow) {
			t.Errorf("Convert[int16](1μ) = %v, want %v", err, ErrUnderflow)
		}
	})
}

func TestToInt(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		tests := []struct {
			sig  int64
			exp  int
			want int64
		}{
			{0, 0, 0},
			{1500, 0, 1500},
			{1500, 1, 1500000},
			{1, 2, 1000000},
			{-5, 3, -5000000000},
			{1234, -1, 1},
			{-1234, -1, -1},
			{999, -1, 0},
			{-999, -1, 0},
			{5, -2, 0},
			{1234567, -2, 1},
			{9223372036854775807, -6, 9},
			{999999999999999999, -6, 0},
		}
		for _, tt := range tests {
			q := MustNew(tt.sig, tt.exp)
			got, err := q.Int()
			if err != nil {
				t.Errorf("(%d, %d).Int() failed: %v", tt.sig, tt.exp, err)
				continue
			}
			if got != tt.want {
				t.Errorf("(%d, %d).Int() = %d, want %d", tt.sig, tt.exp, got, tt.want)
			}
		}
	})
	t.Run("error", func(t *testing.T) {
		if _, err := ToInt[int16](MustNew(int64(1500), 1)); !errors.Is(err, ErrOverflow) {
			t.Errorf("ToInt[int16](1500k) = %v, want %v", err, ErrOverflow)
		}
		if _, err := ToInt[uint64](MustNew(int64(-1), 0)); !errors.Is(err, ErrOverflow) {
			t.Errorf("ToInt[uint64](-1) = %v, want %v", err, ErrOverflow)
		}
	})
}

func TestQuantity_Cmp(t *testing.T) {
	tests := []struct {
		a, b Quantity[int64]
		want int
	}{
		{MustNew(int64(0), 0), MustNew(int64(0), 5), 0},
		{MustNew(int64(2000), 0), MustNew(int64(2), 1), 0},
		{MustNew(int64(2000000), 0), MustNew(int64(2), 2), 0},
		{MustNew(int64(1), 1), MustNew(int64(999), 0), 1},
		{MustNew(int64(999), 0), MustNew(int64(1), 1), -1},
		{MustNew(int64(-1), 0), MustNew(int64(1), 0), -1},
		{MustNew(int64(-2), 1), MustNew(int64(-1999), 0), -1},
		{MustNew(int64(1), -1), MustNew(int64(1), 0), -1},
		{MustNew(int64(1500), -1), MustNew(int64(1), 0), 1},
		{MustNew(int64(1000), -1), MustNew(int64(1), 0), 0},
		{MustNew(int64(1), -6), MustNew(int64(0), 0), 1},
		{MustNew(int64(-1), -6), MustNew(int64(0), 0), -1},
	}
	for _, tt := range tests {
		if got := tt.a.Cmp(tt.b); got != tt.want {
			t.Errorf("%q.Cmp(%q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
		if got := tt.b.Cmp(tt.a); got != -tt.want {
			t.Errorf("%q.Cmp(%q) = %d, want %d", tt.b, tt.a, got, -tt.want)
		}
		if want := tt.want == 0; tt.a.Equal(tt.b) != want {
			t.Errorf("%q.Equal(%q) != %v", tt.a, tt.b, want)
		}
	}
}

// The scaled comparison overflows 128 bits when the exponents are far
// apart, falling back to big.Int arithmetic.
func TestQuantity_Cmp_SlowPath(t *testing.T) {
	huge := MustNew(mustParseUint128("100000000000000000000000000000000000"), 0)
	tiny := MustNew(Uint128FromUint64(5), -10)
	if got := huge.Cmp(tiny); got != 1 {
		t.Errorf("%q.Cmp(%q) = %d, want 1", huge, tiny, got)
	}
	if got := tiny.Cmp(huge); got != -1 {
		t.Errorf("%q.Cmp(%q) = %d, want -1", tiny, huge, got)
	}

	top := MustNew(Uint128FromUint64(1), 10)
	bottom := MustNew(Uint128FromUint64(2), -10)
	if got := top.Cmp(bottom); got != 1 {
		t.Errorf("%q.Cmp(%q) = %d, want 1", top, bottom, got)
	}
}

func TestQuantity_Sign(t *testing.T) {
	tests := []struct {
		q    Quantity[int64]
		want int
	}{
		{MustNew(int64(0), 3), 0},
		{MustNew(int64(5), -2), 1},
		{MustNew(int64(-5), 4), -1},
	}
	for _, tt := range tests {
		if got := tt.q.Sign(); got != tt.want {
			t.Errorf("%q.Sign() = %d, want %d", tt.q, got, tt.want)
		}
	}
}

func TestMustNew_Panic(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("MustNew(1, 11) did not panic")
		}
	}()
	MustNew(int64(1), 11)
}

func FuzzQuantity_Cmp(f *testing.F) {
	f.Add(int64(0), 0, int64(0), 5)
	f.Add(int64(2000), 0, int64(2), 1)
	f.Add(int64(-1), -6, int64(1), 6)
	f.Add(int64(math.MaxInt64), -6, int64(1), 6)
	f.Fuzz(func(t *testing.T, asig int64, aexp int, bsig int64, bexp int) {
		a, err := New(asig, aexp)
		if err != nil {
			t.Skip()
		}
		b, err := New(bsig, bexp)
		if err != nil {
			t.Skip()
		}
		ratOf := func(sig int64, exp int) *big.Rat {
			n := big.NewInt(sig)
			if exp >= 0 {
				return new(big.Rat).SetInt(n.Mul(n, bigPow1000(exp)))
			}
			return new(big.Rat).SetFrac(n, bigPow1000(-exp))
		}
		want := ratOf(asig, aexp).Cmp(ratOf(bsig, bexp))
		if got := a.Cmp(b); got != want {
			t.Errorf("%q.Cmp(%q) = %d, want %d", a, b, got, want)
		}
		if got := b.Cmp(a); got != -want {
			t.Errorf("%q.Cmp(%q) = %d, want %d", b, a, got, -want)
		}
	})
}
