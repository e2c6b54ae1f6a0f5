package docstore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeProtoTimestamp struct{ t time.Time }

func (f fakeProtoTimestamp) AsTime() time.Time { return f.t }

func TestToEpochMillis(t *testing.T) {
	instant := time.Date(2024, 5, 1, 12, 0, 0, 500_000_000, time.UTC)

	tests := []struct {
		name   string
		in     any
		want   int64
		wantOK bool
	}{
		{"int", 42, 42, true},
		{"int64", int64(1_700_000_000_123), 1_700_000_000_123, true},
		{"float truncates", 1234.9, 1234, true},
		{"time", instant, instant.UnixMilli(), true},
		{"time pointer", &instant, instant.UnixMilli(), true},
		{"proto-style timestamp", fakeProtoTimestamp{instant}, instant.UnixMilli(), true},
		{"nil", nil, 0, false},
		{"unresolved server timestamp", ServerTimestamp, 0, false},
		{"string", "1700000000000", 0, false},
		{"zero time", time.Time{}, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ToEpochMillis(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
