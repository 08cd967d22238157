package param

import (
	"math"
	"strconv"
)

// Numeric text parsing follows the C library's atol/atof: leading
// whitespace is skipped, an optional sign is accepted and the longest
// valid numeric prefix is used. Text without a numeric prefix parses as 0.

func isSpace(c byte) bool {
	return c == ' ' || (c >= '\t' && c <= '\r')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// parseInt parses a decimal integer prefix, saturating at the int64 limits.
func parseInt(b []byte) int64 {
	i := 0
	for i < len(b) && isSpace(b[i]) {
		i++
	}
	neg := false
	if i < len(b) && (b[i] == '+' || b[i] == '-') {
		neg = b[i] == '-'
		i++
	}

	var v uint64
	const limit = uint64(math.MaxInt64) + 1
	for ; i < len(b) && isDigit(b[i]); i++ {
		d := uint64(b[i] - '0')
		if v > (limit-d)/10 {
			v = limit
		} else {
			v = v*10 + d
		}
	}

	if neg {
		if v >= limit {
			return math.MinInt64
		}
		return -int64(v)
	}
	if v >= limit {
		return math.MaxInt64
	}
	return int64(v)
}

// parseFloat parses a decimal floating-point prefix ("1", "-2.5", ".5",
// "3e2"). Out-of-range magnitudes become ±Inf or 0.
func parseFloat(b []byte) float64 {
	i := 0
	for i < len(b) && isSpace(b[i]) {
		i++
	}
	start := i
	if i < len(b) && (b[i] == '+' || b[i] == '-') {
		i++
	}

	digits := 0
	for ; i < len(b) && isDigit(b[i]); i++ {
		digits++
	}
	if i < len(b) && b[i] == '.' {
		j := i + 1
		frac := 0
		for ; j < len(b) && isDigit(b[j]); j++ {
			frac++
		}
		if digits+frac > 0 {
			i = j
			digits += frac
		}
	}
	if digits == 0 {
		return 0
	}

	// Exponent only counts when followed by at least one digit.
	if i < len(b) && (b[i] == 'e' || b[i] == 'E') {
		j := i + 1
		if j < len(b) && (b[j] == '+' || b[j] == '-') {
			j++
		}
		if j < len(b) && isDigit(b[j]) {
			for j < len(b) && isDigit(b[j]) {
				j++
			}
			i = j
		}
	}

	// The prefix is well-formed, so the only possible error is ErrRange,
	// in which case v is already ±Inf or ±0.
	v, _ := strconv.ParseFloat(string(b[start:i]), 64)
	return v
}
