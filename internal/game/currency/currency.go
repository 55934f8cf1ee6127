// Package currency implements four-denomination money with lossless
// conversion through a canonical copper total.
package currency

import (
	"fmt"
	"strings"
)

const (
	// CopperPerSilver is the number of copper in one silver.
	CopperPerSilver = 10
	// CopperPerGold is the number of copper in one gold.
	CopperPerGold = 100
	// CopperPerPlatinum is the number of copper in one platinum.
	CopperPerPlatinum = 1000
)

// Currency is a purse of coins.
type Currency struct {
	Copper   int `json:"copper" yaml:"copper"`
	Silver   int `json:"silver" yaml:"silver"`
	Gold     int `json:"gold" yaml:"gold"`
	Platinum int `json:"platinum" yaml:"platinum"`
}

// ToCopper returns the total value of c in copper.
func ToCopper(c Currency) int {
	return c.Copper + c.Silver*CopperPerSilver + c.Gold*CopperPerGold + c.Platinum*CopperPerPlatinum
}

// FromCopper decomposes a copper total greedily, largest denomination first.
//
// Precondition: total >= 0.
// Postcondition: ToCopper(result) == total; Gold, Silver and Copper are each < 10.
func FromCopper(total int) Currency {
	platinum := total / CopperPerPlatinum
	rem := total % CopperPerPlatinum
	gold := rem / CopperPerGold
	rem %= CopperPerGold
	silver := rem / CopperPerSilver
	return Currency{
		Platinum: platinum,
		Gold:     gold,
		Silver:   silver,
		Copper:   rem % CopperPerSilver,
	}
}

// Add returns a + b in canonical form.
func Add(a, b Currency) Currency {
	return FromCopper(ToCopper(a) + ToCopper(b))
}

// Subtract returns a - b in canonical form. ok is false, and the purse is
// unchanged, when a is worth less than b.
func Subtract(a, b Currency) (Currency, bool) {
	have, cost := ToCopper(a), ToCopper(b)
	if have < cost {
		return a, false
	}
	return FromCopper(have - cost), true
}

// Format returns a human-readable string such as "1 Platinum, 2 Gold, 3 Silver, 4 Copper".
// Zero-valued higher denominations are omitted; Copper always appears.
func Format(c Currency) string {
	n := FromCopper(ToCopper(c))
	var parts []string
	for _, d := range []struct {
		count int
		name  string
	}{
		{n.Platinum, "Platinum"},
		{n.Gold, "Gold"},
		{n.Silver, "Silver"},
	} {
		if d.count > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", d.count, d.name))
		}
	}
	parts = append(parts, fmt.Sprintf("%d Copper", n.Copper))
	return strings.Join(parts, ", ")
}
