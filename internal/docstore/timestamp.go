package docstore

import "time"

type timeInstant interface {
	AsTime() time.Time
}

// ToEpochMillis normalizes numeric epochs, time values and store-native
// timestamps to epoch milliseconds. Unresolved server timestamps, nil and
// anything unrecognized report false.
func ToEpochMillis(v any) (int64, bool) {
	switch t := v.(type) {
	case nil:
		return 0, false
	case int:
		return int64(t), true
	case int32:
		return int64(t), true
	case int64:
		return t, true
	case uint:
		return int64(t), true
	case uint32:
		return int64(t), true
	case uint64:
		return int64(t), true
	case float32:
		return int64(t), true
	case float64:
		return int64(t), true
	case time.Time:
		if t.IsZero() {
			return 0, false
		}
		return t.UnixMilli(), true
	case *time.Time:
		if t == nil || t.IsZero() {
			return 0, false
		}
		return t.UnixMilli(), true
	case timeInstant:
		return t.AsTime().UnixMilli(), true
	}
	return 0, false
}
