package domain

import (
	"fmt"
	"math"

	"github.com/appzeto/food-admin/internal/core/geo"
)

// Record is a schemaless document as stored in the realtime database, and
// also the shape of caller payloads written into it.
type Record map[string]any

// Has reports whether key is present with a non-nil value.
func (r Record) Has(key string) bool {
	v, ok := r[key]
	return ok && v != nil
}

// Coalesce returns the value of key when it is present and non-nil, else def.
func (r Record) Coalesce(key string, def any) any {
	if r.Has(key) {
		return r[key]
	}
	return def
}

// Or returns the value of key when it is truthy, else def.
func (r Record) Or(key string, def any) any {
	if v := r[key]; Truthy(v) {
		return v
	}
	return def
}

// StringOr is Or for string fields. Truthy non-string values are formatted.
func (r Record) StringOr(key, def string) string {
	v := r[key]
	if !Truthy(v) {
		return def
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Number applies the numeric defaulting policy to the value of key.
func (r Record) Number(key string) float64 {
	return geo.Number(r[key])
}

// Clone returns a shallow copy.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Truthy mirrors the loose truthiness used by the tracking payload rules:
// nil, false, 0, NaN and "" are false, everything else is true.
func Truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case float64:
		return t != 0 && !math.IsNaN(t)
	case float32:
		return t != 0 && !math.IsNaN(float64(t))
	default:
		if geo.IsNumber(v) {
			f := geo.Coerce(v)
			return f != 0 && !math.IsNaN(f)
		}
		return true
	}
}
