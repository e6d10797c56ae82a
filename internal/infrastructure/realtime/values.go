package realtime

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/appzeto/food-admin/internal/core/domain"
)

// ErrInvalidPath is returned for empty paths or paths with empty segments.
var ErrInvalidPath = errors.New("realtime: invalid path")

// splitPath turns "delivery_boys/42" into its segments. Leading and trailing
// slashes are ignored.
func splitPath(path string) ([]string, error) {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPath, path)
	}
	segs := strings.Split(path, "/")
	for _, s := range segs {
		if s == "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidPath, path)
		}
	}
	return segs, nil
}

// normalize converts a value to the shape the hosted database hands back:
// JSON numbers as float64, objects as map[string]any, arrays as []any, with
// null children and empty objects removed. A value that normalizes to
// nothing is returned as nil.
func normalize(v any) (any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("realtime: encode value: %w", err)
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("realtime: decode value: %w", err)
	}
	return prune(out), nil
}

// normalizeRecord is normalize for documents.
func normalizeRecord(r domain.Record) (map[string]any, error) {
	v, err := normalize(map[string]any(r))
	if err != nil {
		return nil, err
	}
	m, _ := v.(map[string]any)
	return m, nil
}

func prune(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, child := range t {
			if p := prune(child); p == nil {
				delete(t, k)
			} else {
				t[k] = p
			}
		}
		if len(t) == 0 {
			return nil
		}
		return t
	case []any:
		for i, child := range t {
			t[i] = prune(child)
		}
		return t
	default:
		return v
	}
}

// deepCopy clones normalized values.
func deepCopy(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, child := range t {
			out[k] = deepCopy(child)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, child := range t {
			out[i] = deepCopy(child)
		}
		return out
	default:
		return v
	}
}

// equalValues compares a stored value with a query value after both are
// normalized, so 5 matches 5.0.
func equalValues(stored, want any) bool {
	w, err := normalize(want)
	if err != nil {
		return false
	}
	return reflect.DeepEqual(stored, w)
}

// childRecords converts the children of a collection node into records,
// skipping non-object children such as scalars.
func childRecords(node map[string]any) map[string]domain.Record {
	out := make(map[string]domain.Record, len(node))
	for id, child := range node {
		if m, ok := child.(map[string]any); ok {
			out[id] = domain.Record(m)
		}
	}
	return out
}
