package geo

import (
	"errors"
	"math"
	"strings"
)

// polylinePrecision is the fixed-point factor of the Google polyline format (5 decimals).
const polylinePrecision = 1e5

// ErrMalformedPolyline is returned by DecodePolyline for truncated or out-of-alphabet input.
var ErrMalformedPolyline = errors.New("malformed polyline")

// Point is a [lat, lng] pair in decimal degrees.
type Point [2]float64

// Lat returns the latitude.
func (p Point) Lat() float64 { return p[0] }

// Lng returns the longitude.
func (p Point) Lng() float64 { return p[1] }

// EncodePolyline encodes points with the Google encoded polyline algorithm.
// Points that do not scale to finite values are skipped and do not move the
// delta baseline. An empty result means nothing was encodable.
func EncodePolyline(points []Point) string {
	if len(points) == 0 {
		return ""
	}

	var (
		b                = strings.Builder{}
		prevLat, prevLng int64
	)
	for _, p := range points {
		lat, okLat := toFixedPoint(p[0])
		lng, okLng := toFixedPoint(p[1])
		if !okLat || !okLng {
			continue
		}

		encodeSigned(&b, lat-prevLat)
		encodeSigned(&b, lng-prevLng)
		prevLat, prevLng = lat, lng
	}
	return b.String()
}

// toFixedPoint scales degrees by 1e5 and rounds half up.
func toFixedPoint(deg float64) (int64, bool) {
	// The explicit conversion keeps the multiply from being fused with the add.
	scaled := math.Floor(float64(deg*polylinePrecision) + 0.5)
	if math.IsNaN(scaled) || math.IsInf(scaled, 0) {
		return 0, false
	}
	return int64(scaled), true
}

func encodeSigned(b *strings.Builder, n int64) {
	v := n << 1
	if n < 0 {
		v = ^v
	}
	for v >= 0x20 {
		b.WriteByte(byte((0x20 | (v & 0x1f)) + 63))
		v >>= 5
	}
	b.WriteByte(byte(v + 63))
}

// DecodePolyline is the inverse of EncodePolyline. On malformed input it
// returns the points decoded before the error together with ErrMalformedPolyline.
func DecodePolyline(encoded string) ([]Point, error) {
	points := make([]Point, 0, len(encoded)/4)

	var lat, lng int64
	for i := 0; i < len(encoded); {
		dLat, n, err := decodeSigned(encoded[i:])
		if err != nil {
			return points, err
		}
		i += n

		dLng, n, err := decodeSigned(encoded[i:])
		if err != nil {
			return points, err
		}
		i += n

		lat += dLat
		lng += dLng
		points = append(points, Point{
			float64(lat) / polylinePrecision,
			float64(lng) / polylinePrecision,
		})
	}
	return points, nil
}

// decodeSigned reads one varint chunk and reports how many bytes it consumed.
func decodeSigned(s string) (int64, int, error) {
	var (
		result int64
		shift  uint
	)
	for i := 0; i < len(s); i++ {
		c := int64(s[i]) - 63
		if c < 0 || c > 63 || shift > 60 {
			return 0, 0, ErrMalformedPolyline
		}
		result |= (c & 0x1f) << shift
		shift += 5
		if c < 0x20 {
			if result&1 != 0 {
				return ^(result >> 1), i + 1, nil
			}
			return result >> 1, i + 1, nil
		}
	}
	return 0, 0, ErrMalformedPolyline
}

// PointsFromAny converts caller supplied route coordinates (typically decoded
// JSON) into points. Elements that are not arrays of at least two entries are
// dropped; entries are coerced with Coerce, so non-numeric values produce NaN
// points that EncodePolyline skips.
func PointsFromAny(raw any) []Point {
	switch v := raw.(type) {
	case nil:
		return nil
	case []Point:
		out := make([]Point, len(v))
		copy(out, v)
		return out
	case [][2]float64:
		out := make([]Point, 0, len(v))
		for _, p := range v {
			out = append(out, Point(p))
		}
		return out
	case [][]float64:
		out := make([]Point, 0, len(v))
		for _, p := range v {
			if len(p) >= 2 {
				out = append(out, Point{p[0], p[1]})
			}
		}
		return out
	case []any:
		out := make([]Point, 0, len(v))
		for _, el := range v {
			if p, ok := pointFromAny(el); ok {
				out = append(out, p)
			}
		}
		return out
	default:
		return nil
	}
}

func pointFromAny(el any) (Point, bool) {
	switch e := el.(type) {
	case []any:
		if len(e) < 2 {
			return Point{}, false
		}
		return Point{Coerce(e[0]), Coerce(e[1])}, true
	case []float64:
		if len(e) < 2 {
			return Point{}, false
		}
		return Point{e[0], e[1]}, true
	case [2]float64:
		return Point(e), true
	case Point:
		return e, true
	default:
		return Point{}, false
	}
}
