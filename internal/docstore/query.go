package docstore

import (
	"reflect"
	"sort"
	"strings"
	"time"
)

// applyQuery evaluates q against docs in process. docs must already be in
// insertion order so that ties in the ordering field stay stable.
func applyQuery(docs []Document, q Query) []Document {
	out := make([]Document, 0, len(docs))
	for _, d := range docs {
		if matchesAll(d.Data, q.Filters) {
			out = append(out, d)
		}
	}

	if q.OrderBy != "" {
		ordered := out[:0]
		for _, d := range out {
			if _, ok := d.Data[q.OrderBy]; ok {
				ordered = append(ordered, d)
			}
		}
		out = ordered
		sort.SliceStable(out, func(i, j int) bool {
			c := compareValues(out[i].Data[q.OrderBy], out[j].Data[q.OrderBy])
			if q.Direction == Desc {
				return c > 0
			}
			return c < 0
		})
	}

	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out
}

func matchesAll(data map[string]any, filters []Filter) bool {
	for _, f := range filters {
		v, ok := data[f.Field]
		if !ok {
			return false
		}
		if !matches(v, f) {
			return false
		}
	}
	return true
}

func matches(v any, f Filter) bool {
	switch f.Op {
	case OpEqual:
		return equalValues(v, f.Value)
	case OpArrayContains:
		rv := reflect.ValueOf(v)
		if rv.Kind() != reflect.Slice {
			return false
		}
		for i := 0; i < rv.Len(); i++ {
			if equalValues(rv.Index(i).Interface(), f.Value) {
				return true
			}
		}
		return false
	}

	if !sameClass(v, f.Value) {
		return false
	}
	c := compareValues(v, f.Value)
	switch f.Op {
	case OpLess:
		return c < 0
	case OpLessEqual:
		return c <= 0
	case OpGreater:
		return c > 0
	case OpGreaterEqual:
		return c >= 0
	}
	return false
}

func equalValues(a, b any) bool {
	if fa, ok := toFloat(a); ok {
		fb, ok := toFloat(b)
		return ok && fa == fb
	}
	if ta, ok := a.(time.Time); ok {
		tb, ok := b.(time.Time)
		return ok && ta.Equal(tb)
	}
	return reflect.DeepEqual(a, b)
}

// sameClass reports whether a and b belong to the same ordering class.
func sameClass(a, b any) bool {
	return rank(a) == rank(b) && rank(a) != rankOther
}

const (
	rankNull = iota
	rankBool
	rankNumber
	rankTime
	rankString
	rankOther
)

func rank(v any) int {
	switch v.(type) {
	case nil:
		return rankNull
	case bool:
		return rankBool
	case time.Time:
		return rankTime
	case string:
		return rankString
	}
	if _, ok := toFloat(v); ok {
		return rankNumber
	}
	return rankOther
}

// compareValues orders mixed values by type class first, then by value.
func compareValues(a, b any) int {
	ra, rb := rank(a), rank(b)
	if ra != rb {
		if ra < rb {
			return -1
		}
		return 1
	}
	switch ra {
	case rankBool:
		ab, bb := a.(bool), b.(bool)
		switch {
		case ab == bb:
			return 0
		case !ab:
			return -1
		}
		return 1
	case rankNumber:
		fa, _ := toFloat(a)
		fb, _ := toFloat(b)
		switch {
		case fa < fb:
			return -1
		case fa > fb:
			return 1
		}
		return 0
	case rankTime:
		return a.(time.Time).Compare(b.(time.Time))
	case rankString:
		return strings.Compare(a.(string), b.(string))
	}
	return 0
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

// cloneValue deep-copies maps and slices so callers never share state with
// a backend.
func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return cloneMap(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	case []string:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = e
		}
		return out
	}
	return v
}

func cloneMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

// resolveServerTimestamps replaces every ServerTimestamp sentinel with now.
func resolveServerTimestamps(m map[string]any, now time.Time) {
	for k, v := range m {
		switch t := v.(type) {
		case serverTimestamp:
			m[k] = now
		case map[string]any:
			resolveServerTimestamps(t, now)
		}
	}
}
