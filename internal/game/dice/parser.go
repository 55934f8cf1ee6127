package dice

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Bounds accepted by Parse.
const (
	MaxCount = 100
	MaxSides = 1000
)

// Expression is a parsed dice expression.
// Invariant: 1 <= Count <= MaxCount, 2 <= Sides <= MaxSides, 0 <= KeepHighest < Count.
type Expression struct {
	Raw         string
	Count       int
	Sides       int
	Modifier    int
	KeepHighest int // 0 keeps every die; N keeps the N highest (4d6kh3)
}

var exprPattern = regexp.MustCompile(`^(\d*)d(\d+)(?:kh(\d+))?([+-]\d+)?$`)

// Parse parses forms such as "d20", "2d6", "1d8+3", "4d8-2" and "4d6kh3".
//
// Postcondition: Returns a valid Expression or a descriptive error.
func Parse(expr string) (Expression, error) {
	m := exprPattern.FindStringSubmatch(strings.ToLower(strings.TrimSpace(expr)))
	if m == nil {
		return Expression{}, fmt.Errorf("dice: malformed expression %q", expr)
	}
	e := Expression{Raw: expr, Count: 1}
	var err error
	if m[1] != "" {
		if e.Count, err = strconv.Atoi(m[1]); err != nil || e.Count < 1 || e.Count > MaxCount {
			return Expression{}, fmt.Errorf("dice: die count in %q must be 1..%d", expr, MaxCount)
		}
	}
	if e.Sides, err = strconv.Atoi(m[2]); err != nil || e.Sides < 2 || e.Sides > MaxSides {
		return Expression{}, fmt.Errorf("dice: die sides in %q must be 2..%d", expr, MaxSides)
	}
	if m[3] != "" {
		e.KeepHighest, err = strconv.Atoi(m[3])
		if err != nil || e.KeepHighest < 1 || e.KeepHighest >= e.Count {
			return Expression{}, fmt.Errorf("dice: kh value in %q must be > 0 and < count %d", expr, e.Count)
		}
	}
	if m[4] != "" {
		if e.Modifier, err = strconv.Atoi(m[4]); err != nil {
			return Expression{}, fmt.Errorf("dice: invalid modifier in %q: %w", expr, err)
		}
	}
	return e, nil
}

// MustParse parses expr and panics on error.
func MustParse(expr string) Expression {
	e, err := Parse(expr)
	if err != nil {
		panic(err)
	}
	return e
}
