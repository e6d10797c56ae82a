package geo

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNumber_DefaultingPolicy(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want float64
	}{
		{"missing", nil, 0},
		{"nan", math.NaN(), 0},
		{"zero string", "0", 0},
		{"empty string", "", 0},
		{"blank string", "   ", 0},
		{"garbage string", "12abc", 0},
		{"numeric string", " 12.5 ", 12.5},
		{"negative string", "-77.25", -77.25},
		{"float", 3.25, 3.25},
		{"int", 7, 7},
		{"int64", int64(-9), -9},
		{"uint8", uint8(200), 200},
		{"float32", float32(1.5), 1.5},
		{"json number", json.Number("42.125"), 42.125},
		{"bad json number", json.Number("x"), 0},
		{"true", true, 1},
		{"false", false, 0},
		{"slice", []any{1}, 0},
		{"map", map[string]any{"a": 1}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Number(tt.in))
		})
	}
}

func TestNumber_NegativeZeroBecomesPositiveZero(t *testing.T) {
	got := Number(math.Copysign(0, -1))
	assert.Equal(t, 0.0, got)
	assert.False(t, math.Signbit(got))
}

func TestNumber_InfinityPreserved(t *testing.T) {
	assert.True(t, math.IsInf(Number(math.Inf(1)), 1))
	assert.True(t, math.IsInf(Number("1e400"), 1))
}

func TestCoerce_NaNForNonNumeric(t *testing.T) {
	assert.True(t, math.IsNaN(Coerce("abc")))
	assert.True(t, math.IsNaN(Coerce(struct{}{})))
	assert.Equal(t, 0.0, Coerce(nil))
}

func TestIsNumber(t *testing.T) {
	assert.True(t, IsNumber(1.0))
	assert.True(t, IsNumber(3))
	assert.True(t, IsNumber(json.Number("1")))
	assert.False(t, IsNumber("1"))
	assert.False(t, IsNumber(nil))
	assert.False(t, IsNumber(true))
}

func TestRound(t *testing.T) {
	assert.Equal(t, 5.123, Round(5.12345, 3))
	assert.Equal(t, 10.0, Round(9.9996, 3))
	assert.Equal(t, 1.0, Round(1.0005, 3), "1.0005 is stored below the tie")
	assert.Equal(t, 1.001, Round(1.00051, 3))
	assert.Equal(t, 0.063, Round(0.0625, 3), "exact tie rounds up")
	assert.Equal(t, -0.063, Round(-0.0625, 3))
	assert.True(t, math.IsNaN(Round(math.NaN(), 3)))
}

func TestFormatFixed(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0.03125, "0.0313"},
		{-0.03125, "-0.0313"},
		{12.15625, "12.1563"},
		{2.5, "2.5000"},
		{-0.00001, "-0.0000"},
		{0, "0.0000"},
		{77.5946, "77.5946"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatFixed(tt.in, 4), "FormatFixed(%v)", tt.in)
	}
}
