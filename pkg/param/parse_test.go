package param

import (
	"math"
	"testing"
)

func TestParseInt(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"", 0},
		{"42", 42},
		{"-5", -5},
		{"+7", 7},
		{"  \t12", 12},
		{"12abc", 12},
		{"abc", 0},
		{"-", 0},
		{"=5", 0},
		{"COLOR1", 0},
		{"007", 7},
		{"9223372036854775807", math.MaxInt64},
		{"9223372036854775808", math.MaxInt64},
		{"99999999999999999999999", math.MaxInt64},
		{"-9223372036854775808", math.MinInt64},
		{"-99999999999999999999999", math.MinInt64},
	}
	for _, tt := range tests {
		if got := parseInt([]byte(tt.in)); got != tt.want {
			t.Errorf("parseInt(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestParseFloat(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"", 0},
		{"1", 1},
		{"-2.5", -2.5},
		{".5", 0.5},
		{"5.", 5},
		{" 3e2", 300},
		{"3e", 3},
		{"3e+", 3},
		{"1.5E-1x", 0.15},
		{"abc", 0},
		{".", 0},
		{"-.", 0},
		{"inf", 0},
		{"nan", 0},
		{"0x10", 0},
	}
	for _, tt := range tests {
		if got := parseFloat([]byte(tt.in)); got != tt.want {
			t.Errorf("parseFloat(%q) = %g, want %g", tt.in, got, tt.want)
		}
	}

	if got := parseFloat([]byte("1e999")); !math.IsInf(got, 1) {
		t.Errorf("parseFloat(1e999) = %g, want +Inf", got)
	}
}
