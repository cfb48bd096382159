// Package currency provides the arbitrary-precision money type used by the
// whole economy. Amounts are non-negative integers of unbounded size and are
// never converted to floating point except for display.
package currency

import (
	"errors"
	"fmt"
	"math/big"
)

// ErrInsufficientFunds is returned by Sub when the subtrahend exceeds the balance.
var ErrInsufficientFunds = errors.New("insufficient funds")

var zero = new(big.Int)

// Amount is an immutable non-negative integer quantity of currency.
// The zero value is a valid amount equal to 0.
type Amount struct {
	i *big.Int
}

// Zero returns the zero amount.
func Zero() Amount {
	return Amount{}
}

// New returns an amount holding n. It panics if n is negative.
func New(n int64) Amount {
	if n < 0 {
		panic(fmt.Sprintf("currency: negative amount %d", n))
	}
	return Amount{i: big.NewInt(n)}
}

// FromBig returns an amount holding a copy of v.
func FromBig(v *big.Int) (Amount, error) {
	if v == nil {
		return Amount{}, nil
	}
	if v.Sign() < 0 {
		return Amount{}, fmt.Errorf("currency: negative amount %s", v.String())
	}
	return Amount{i: new(big.Int).Set(v)}, nil
}

// Parse reads a base-10 string of digits. Signs, fractions and exponents are rejected.
func Parse(s string) (Amount, error) {
	if s == "" {
		return Amount{}, errors.New("currency: empty amount")
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return Amount{}, fmt.Errorf("currency: invalid amount %q", s)
		}
	}
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return Amount{}, fmt.Errorf("currency: invalid amount %q", s)
	}
	return Amount{i: v}, nil
}

// MustParse is like Parse but panics on error.
// Use this for literals that are known to be valid.
func MustParse(s string) Amount {
	a, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return a
}

func (a Amount) int() *big.Int {
	if a.i == nil {
		return zero
	}
	return a.i
}

// Big returns a copy of the underlying integer.
func (a Amount) Big() *big.Int {
	return new(big.Int).Set(a.int())
}

// Add returns a + b.
func (a Amount) Add(b Amount) Amount {
	return Amount{i: new(big.Int).Add(a.int(), b.int())}
}

// Sub returns a - b, or ErrInsufficientFunds when b > a.
func (a Amount) Sub(b Amount) (Amount, error) {
	if a.Cmp(b) < 0 {
		return a, fmt.Errorf("%w: have %s, need %s", ErrInsufficientFunds, a, b)
	}
	return Amount{i: new(big.Int).Sub(a.int(), b.int())}, nil
}

// Mul returns a * b.
func (a Amount) Mul(b Amount) Amount {
	return Amount{i: new(big.Int).Mul(a.int(), b.int())}
}

// MulInt64 returns a * n. It panics if n is negative.
func (a Amount) MulInt64(n int64) Amount {
	if n < 0 {
		panic(fmt.Sprintf("currency: negative multiplier %d", n))
	}
	return Amount{i: new(big.Int).Mul(a.int(), big.NewInt(n))}
}

// Cmp compares a and b and returns -1, 0 or +1.
func (a Amount) Cmp(b Amount) int {
	return a.int().Cmp(b.int())
}

// Equal reports whether a == b.
func (a Amount) Equal(b Amount) bool {
	return a.Cmp(b) == 0
}

// IsZero reports whether a == 0.
func (a Amount) IsZero() bool {
	return a.int().Sign() == 0
}

// String returns the base-10 representation.
func (a Amount) String() string {
	return a.int().String()
}

// Add returns a + b.
func Add(a, b Amount) Amount {
	return a.Add(b)
}

// Sub returns a - b, or ErrInsufficientFunds when b > a.
func Sub(a, b Amount) (Amount, error) {
	return a.Sub(b)
}

// IsAffordable reports whether balance covers cost.
func IsAffordable(balance, cost Amount) bool {
	return balance.Cmp(cost) >= 0
}

// Pow returns base raised to exp.
func Pow(base Amount, exp uint64) Amount {
	e := new(big.Int).SetUint64(exp)
	return Amount{i: new(big.Int).Exp(base.int(), e, nil)}
}

// Scale returns base * factor^exp, the shape of every cost and profit curve.
func Scale(base Amount, factor int64, exp uint64) Amount {
	return base.Mul(Pow(New(factor), exp))
}
