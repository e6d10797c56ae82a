package geo

import (
	"math"
	"strings"
)

// RouteCacheKey builds the route_cache key for a start/end coordinate pair.
//
// Every coordinate is printed with four decimals (ties round away from
// zero, see FormatFixed), "." becomes "_" and a
// leading "-" becomes "m", so -12.34567 turns into "m12_3457". The four
// tokens are joined with "_". Lookups are exact string matches.
func RouteCacheKey(startLat, startLng, endLat, endLng float64) string {
	return strings.Join([]string{
		cacheToken(startLat),
		cacheToken(startLng),
		cacheToken(endLat),
		cacheToken(endLng),
	}, "_")
}

func cacheToken(v float64) string {
	// NaN and infinities collapse to 0; the v == 0 branch also clears -0.
	if math.IsNaN(v) || math.IsInf(v, 0) || v == 0 {
		v = 0
	}
	s := FormatFixed(v, 4)
	s = strings.ReplaceAll(s, ".", "_")
	return strings.Replace(s, "-", "m", 1)
}
