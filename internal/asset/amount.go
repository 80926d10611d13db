package asset

import (
	"fmt"
	"math/big"
)

// Amount is a non-negative quantity denominated in an asset's atomic unit.
//
// Ledger totals can exceed the 64-bit range, so Amount is backed by a
// big.Int and round-trips losslessly through its decimal string form.
// The zero value is usable and equals zero.
type Amount struct {
	v big.Int
}

// NewAmount builds an Amount from a uint64.
func NewAmount(v uint64) Amount {
	var a Amount
	a.v.SetUint64(v)
	return a
}

// ParseAmount parses a base-10 amount string, rejecting negative values.
func ParseAmount(s string) (Amount, error) {
	var a Amount
	if _, ok := a.v.SetString(s, 10); !ok {
		return Amount{}, fmt.Errorf("invalid amount %q", s)
	}
	if a.v.Sign() < 0 {
		return Amount{}, fmt.Errorf("amount %q is negative", s)
	}
	return a, nil
}

// ParseAmountClamped parses a base-10 amount string, clamping negative
// values to zero. The store reports a net position that can go negative;
// such a position is presented as zero, never as a negative figure.
func ParseAmountClamped(s string) (Amount, error) {
	var a Amount
	if _, ok := a.v.SetString(s, 10); !ok {
		return Amount{}, fmt.Errorf("invalid amount %q", s)
	}
	if a.v.Sign() < 0 {
		return Amount{}, nil
	}
	return a, nil
}

// BigInt returns a copy of the underlying integer.
func (a Amount) BigInt() *big.Int {
	return new(big.Int).Set(&a.v)
}

// IsZero reports whether the amount is zero.
func (a Amount) IsZero() bool {
	return a.v.Sign() == 0
}

// Cmp compares two amounts, returning -1, 0 or 1.
func (a Amount) Cmp(other Amount) int {
	return a.v.Cmp(&other.v)
}

// String renders the amount as a base-10 string of atomic units.
func (a Amount) String() string {
	return a.v.String()
}

// MarshalText serializes the amount as its decimal string so JSON output
// stays exact beyond the float64-safe range.
func (a Amount) MarshalText() ([]byte, error) {
	return []byte(a.v.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Amount) UnmarshalText(text []byte) error {
	parsed, err := ParseAmount(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
