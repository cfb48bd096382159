package currency

import (
	"encoding/json"
	"errors"
	"math/big"
	"testing"
)

func TestAddSub(t *testing.T) {
	a := New(50)
	b := New(5)

	if got := a.Add(b); got.String() != "55" {
		t.Errorf("Add() = %s, want 55", got)
	}

	diff, err := a.Sub(b)
	if err != nil {
		t.Fatalf("Sub() unexpected error: %v", err)
	}
	if diff.String() != "45" {
		t.Errorf("Sub() = %s, want 45", diff)
	}

	// Operands must not be mutated
	if a.String() != "50" || b.String() != "5" {
		t.Errorf("operands mutated: a=%s b=%s", a, b)
	}
}

func TestSubInsufficientFunds(t *testing.T) {
	balance := New(10)
	got, err := balance.Sub(New(11))
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("Sub() error = %v, want ErrInsufficientFunds", err)
	}
	if !got.Equal(balance) {
		t.Errorf("Sub() on failure = %s, want unchanged %s", got, balance)
	}
}

func TestIsAffordable(t *testing.T) {
	tests := []struct {
		balance, cost int64
		want          bool
	}{
		{0, 0, true},
		{10, 10, true},
		{9, 10, false},
		{1000, 10, true},
	}

	for _, tt := range tests {
		got := IsAffordable(New(tt.balance), New(tt.cost))
		if got != tt.want {
			t.Errorf("IsAffordable(%d, %d) = %v, want %v", tt.balance, tt.cost, got, tt.want)
		}
	}
}

func TestPowBeyondInt64(t *testing.T) {
	// 10^6 * 10^20 = 10^26 does not fit in 64 bits
	got := Scale(New(1_000_000), 10, 20)
	want := new(big.Int).Exp(big.NewInt(10), big.NewInt(26), nil)
	if got.Big().Cmp(want) != 0 {
		t.Errorf("Scale() = %s, want %s", got, want)
	}

	five := Scale(New(1_000_000), 5, 20)
	if five.String() != "95367431640625000000" {
		t.Errorf("Scale(1e6, 5, 20) = %s, want 95367431640625000000", five)
	}

	if got := Pow(New(7), 0); got.String() != "1" {
		t.Errorf("Pow(7, 0) = %s, want 1", got)
	}
}

func TestZeroValue(t *testing.T) {
	var a Amount
	if !a.IsZero() {
		t.Error("zero Amount should be zero")
	}
	if a.String() != "0" {
		t.Errorf("zero Amount String() = %q, want \"0\"", a.String())
	}
	if got := a.Add(New(3)); got.String() != "3" {
		t.Errorf("zero.Add(3) = %s, want 3", got)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		valid bool
	}{
		{"0", true},
		{"123", true},
		{"340282366920938463463374607431768211456", true},
		{"", false},
		{"-1", false},
		{"+1", false},
		{"1.5", false},
		{"1e6", false},
		{"abc", false},
	}

	for _, tt := range tests {
		_, err := Parse(tt.input)
		if tt.valid && err != nil {
			t.Errorf("Parse(%q) should be valid, got error: %v", tt.input, err)
		}
		if !tt.valid && err == nil {
			t.Errorf("Parse(%q) should be invalid, got no error", tt.input)
		}
	}
}

func TestNewNegativePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("New(-1) should panic")
		}
	}()
	New(-1)
}

func TestJSONRoundTrip(t *testing.T) {
	// 2^64 + 1 is beyond both int64 and float64 exact range
	huge := MustParse("18446744073709551617")

	data, err := json.Marshal(huge)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	if string(data) != `"18446744073709551617"` {
		t.Errorf("Marshal() = %s, want quoted string", data)
	}

	var back Amount
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if !back.Equal(huge) {
		t.Errorf("round trip = %s, want %s", back, huge)
	}

	var bare Amount
	if err := json.Unmarshal([]byte("18446744073709551617"), &bare); err != nil {
		t.Fatalf("Unmarshal(bare number) error: %v", err)
	}
	if !bare.Equal(huge) {
		t.Errorf("bare number = %s, want %s", bare, huge)
	}

	var bad Amount
	if err := json.Unmarshal([]byte(`"-5"`), &bad); err == nil {
		t.Error("Unmarshal(\"-5\") should fail")
	}
}

func TestFromBig(t *testing.T) {
	if _, err := FromBig(big.NewInt(-1)); err == nil {
		t.Error("FromBig(-1) should fail")
	}

	src := big.NewInt(42)
	a, err := FromBig(src)
	if err != nil {
		t.Fatalf("FromBig(42) error: %v", err)
	}
	src.SetInt64(7)
	if a.String() != "42" {
		t.Errorf("FromBig() shares storage with its argument: got %s", a)
	}
}
