package geo

import (
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
)

// Coerce converts a loosely typed payload value to a float64 the way a
// dynamic client would: nil and empty strings become 0, booleans become 0/1,
// numeric strings are parsed and anything else yields NaN.
func Coerce(v any) float64 {
	switch n := v.(type) {
	case nil:
		return 0
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int8:
		return float64(n)
	case int16:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case uint:
		return float64(n)
	case uint8:
		return float64(n)
	case uint16:
		return float64(n)
	case uint32:
		return float64(n)
	case uint64:
		return float64(n)
	case json.Number:
		return parseNumeric(string(n))
	case bool:
		if n {
			return 1
		}
		return 0
	case string:
		return parseNumeric(n)
	default:
		return math.NaN()
	}
}

func parseNumeric(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		// Out-of-range literals still carry a signed infinity.
		if errors.Is(err, strconv.ErrRange) {
			return f
		}
		return math.NaN()
	}
	return f
}

// Number is the defaulting policy applied to every numeric payload field:
// values that coerce to NaN or to zero (including -0) come back as 0.
// A legitimate 0 is therefore indistinguishable from a missing value.
func Number(v any) float64 {
	f := Coerce(v)
	if math.IsNaN(f) || f == 0 {
		return 0
	}
	return f
}

// IsNumber reports whether v holds a Go numeric type. Numeric strings are
// not numbers.
func IsNumber(v any) bool {
	switch v.(type) {
	case float64, float32, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, json.Number:
		return true
	default:
		return false
	}
}

// Round rounds f to the given number of decimals with the tie rule of
// FormatFixed.
func Round(f float64, decimals int) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return f
	}
	r, err := strconv.ParseFloat(FormatFixed(f, int32(decimals)), 64)
	if err != nil {
		return f
	}
	return r
}
