package geo

import (
	"math"
	"strconv"

	"github.com/shopspring/decimal"
)

// exactDigits is enough fractional digits to print any float64 exactly.
const exactDigits = 1074

// FormatFixed prints v with the given number of decimals. Rounding looks at
// the exact binary value of v and resolves a true tie away from zero, so
// 0.03125 gives "0.0313" while 1.0005 (stored just below the tie) gives
// "1.000". A negative value that rounds to zero keeps its sign ("-0.0000").
// NaN and infinities are printed by strconv.
func FormatFixed(v float64, decimals int32) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	neg := math.Signbit(v) && v != 0
	exact := decimal.RequireFromString(strconv.FormatFloat(math.Abs(v), 'f', exactDigits, 64))
	s := exact.StringFixed(decimals)
	if neg {
		return "-" + s
	}
	return s
}
