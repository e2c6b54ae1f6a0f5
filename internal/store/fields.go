package store

import "studyhelp.app/backend/internal/docstore"

func stringField(data map[string]any, key string) string {
	s, _ := data[key].(string)
	return s
}

func optionalString(data map[string]any, key string) *string {
	s, ok := data[key].(string)
	if !ok {
		return nil
	}
	return &s
}

func stringSlice(data map[string]any, key string) []string {
	switch v := data[key].(type) {
	case []string:
		return append([]string(nil), v...)
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return []string{}
}

func millisField(data map[string]any, key string) int64 {
	ms, _ := docstore.ToEpochMillis(data[key])
	return ms
}

// nullable turns an absent optional into an explicit null field.
func nullable(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

// dualField names one summary field in the current (snake_case) scheme and
// the legacy (camelCase) scheme that older readers still expect.
type dualField struct {
	canonical string
	legacy    string
}

var (
	fieldLastMessage = dualField{"last_message", "lastMessage"}
	fieldLastSender  = dualField{"last_sender", "lastSender"}
	fieldUpdatedAt   = dualField{"updated_at", "updatedAt"}
)

func (f dualField) write(data map[string]any, v any) {
	data[f.canonical] = v
	data[f.legacy] = v
}

func (f dualField) readString(data map[string]any) string {
	if s := stringField(data, f.canonical); s != "" {
		return s
	}
	return stringField(data, f.legacy)
}

func (f dualField) readMillis(data map[string]any) (int64, bool) {
	if ms, ok := docstore.ToEpochMillis(data[f.canonical]); ok {
		return ms, true
	}
	return docstore.ToEpochMillis(data[f.legacy])
}
