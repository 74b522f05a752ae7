package domain

import (
	"fmt"
	"math"
	"strconv"
	"unicode"
	"unicode/utf8"
)

// Money is an amount in minor currency units (cents).
type Money int64

func (m Money) String() string {
	sign := ""
	v := int64(m)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s$%d.%02d", sign, v/100, v%100)
}

// Float64 returns the amount in major units, for JSON responses.
func (m Money) Float64() float64 {
	return float64(m) / 100
}

// ParsePrice converts a display-formatted price string ("$10.00") into
// minor units. A single leading currency symbol is stripped; the remainder
// must parse as a decimal number. Malformed input yields (0, false) and
// never an error: callers treat the line as contributing nothing and log
// the string as a data-quality signal.
func ParsePrice(s string) (Money, bool) {
	if s == "" {
		return 0, false
	}
	if r, size := utf8.DecodeRuneInString(s); !unicode.IsDigit(r) {
		s = s[size:]
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return Money(math.Round(v * 100)), true
}
