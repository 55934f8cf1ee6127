package currency_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/mechanics/internal/game/currency"
)

func TestFromCopper_Mixed(t *testing.T) {
	got := currency.FromCopper(1234)
	want := currency.Currency{Platinum: 1, Gold: 2, Silver: 3, Copper: 4}
	if got != want {
		t.Fatalf("expected %+v got %+v", want, got)
	}
}

func TestFromCopper_Zero(t *testing.T) {
	if got := currency.FromCopper(0); got != (currency.Currency{}) {
		t.Fatalf("expected empty purse got %+v", got)
	}
}

func TestToCopper(t *testing.T) {
	c := currency.Currency{Copper: 5, Silver: 12, Gold: 3, Platinum: 2}
	assert.Equal(t, 5+120+300+2000, currency.ToCopper(c))
}

func TestAdd_Normalizes(t *testing.T) {
	got := currency.Add(currency.Currency{Silver: 9, Copper: 9}, currency.Currency{Copper: 1})
	assert.Equal(t, currency.Currency{Gold: 1}, got)
}

func TestSubtract_InsufficientFunds(t *testing.T) {
	a := currency.Currency{Gold: 1}
	got, ok := currency.Subtract(a, currency.Currency{Gold: 2})
	assert.False(t, ok)
	assert.Equal(t, a, got)
}

func TestSubtract_BreaksLargerCoins(t *testing.T) {
	got, ok := currency.Subtract(currency.Currency{Platinum: 1}, currency.Currency{Copper: 1})
	assert.True(t, ok)
	assert.Equal(t, currency.Currency{Gold: 9, Silver: 9, Copper: 9}, got)
}

func TestFormat(t *testing.T) {
	tests := []struct {
		in   currency.Currency
		want string
	}{
		{currency.Currency{}, "0 Copper"},
		{currency.Currency{Copper: 17}, "1 Silver, 7 Copper"},
		{currency.FromCopper(1234), "1 Platinum, 2 Gold, 3 Silver, 4 Copper"},
		{currency.Currency{Gold: 3}, "3 Gold, 0 Copper"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, currency.Format(tc.in))
	}
}

func TestProperty_CopperRoundTrips(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		total := rapid.IntRange(0, 10_000_000).Draw(t, "total")
		c := currency.FromCopper(total)
		if currency.ToCopper(c) != total {
			t.Fatalf("roundtrip failed: %+v != %d", c, total)
		}
		if c.Gold >= 10 || c.Silver >= 10 || c.Copper >= 10 {
			t.Fatalf("denomination out of range: %+v", c)
		}
	})
}

func TestProperty_SubtractThenAddRestoresValue(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := currency.FromCopper(rapid.IntRange(0, 100_000).Draw(t, "a"))
		b := currency.FromCopper(rapid.IntRange(0, 100_000).Draw(t, "b"))
		diff, ok := currency.Subtract(a, b)
		if ok != (currency.ToCopper(a) >= currency.ToCopper(b)) {
			t.Fatalf("ok=%v for a=%+v b=%+v", ok, a, b)
		}
		if ok && currency.ToCopper(currency.Add(diff, b)) != currency.ToCopper(a) {
			t.Fatalf("diff+b != a")
		}
	})
}
