package docstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tickingClock(start time.Time, step time.Duration) func() time.Time {
	now := start
	return func() time.Time {
		now = now.Add(step)
		return now
	}
}

func TestMemoryStoreGetSetMerge(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	doc, err := s.Get(ctx, "chats", "missing")
	require.NoError(t, err)
	assert.Nil(t, doc)

	require.NoError(t, s.Set(ctx, "chats", "a", map[string]any{"x": 1, "y": "keep"}, false))
	require.NoError(t, s.Set(ctx, "chats", "a", map[string]any{"x": 2}, true))

	doc, err = s.Get(ctx, "chats", "a")
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.Equal(t, 2, doc.Data["x"])
	assert.Equal(t, "keep", doc.Data["y"])

	require.NoError(t, s.Set(ctx, "chats", "a", map[string]any{"x": 3}, false))
	doc, _ = s.Get(ctx, "chats", "a")
	_, hasY := doc.Data["y"]
	assert.False(t, hasY, "non-merge set replaces the document")
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.Set(ctx, "c", "1", map[string]any{"tags": []string{"a"}}, false))

	doc, _ := s.Get(ctx, "c", "1")
	doc.Data["tags"] = "mutated"

	again, _ := s.Get(ctx, "c", "1")
	assert.Equal(t, []any{"a"}, again.Data["tags"])
}

func TestMemoryStoreUpdateMissing(t *testing.T) {
	s := NewMemoryStore()
	err := s.Update(context.Background(), "users", "nobody", map[string]any{"name": "x"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreServerTimestamp(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	s := NewMemoryStore(WithClock(tickingClock(start, time.Second)))

	require.NoError(t, s.Set(ctx, "m", "1", map[string]any{"timestamp": ServerTimestamp}, false))
	doc, _ := s.Get(ctx, "m", "1")

	ts, ok := doc.Data["timestamp"].(time.Time)
	require.True(t, ok)
	assert.Equal(t, start.Add(time.Second), ts)
}

func TestQueryFiltersOrderAndLimit(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(WithClock(tickingClock(time.Unix(0, 0), time.Second)))

	for _, id := range []string{"a", "b", "c", "d"} {
		require.NoError(t, s.Set(ctx, "msgs", id, map[string]any{"timestamp": ServerTimestamp, "who": id}, false))
	}
	require.NoError(t, s.Set(ctx, "msgs", "no-ts", map[string]any{"who": "x"}, false))

	docs, err := s.Query(ctx, "msgs", Query{}.Order("timestamp", Desc).Take(2))
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "d", docs[0].ID)
	assert.Equal(t, "c", docs[1].ID)

	docs, err = s.Query(ctx, "msgs", Query{}.Where("timestamp", OpLess, time.Unix(3, 0)).Order("timestamp", Asc))
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "a", docs[0].ID)
	assert.Equal(t, "b", docs[1].ID)

	docs, err = s.Query(ctx, "msgs", Query{})
	require.NoError(t, err)
	assert.Len(t, docs, 5, "unordered query keeps documents without the field")
}

func TestQueryArrayContainsAndEquality(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.Set(ctx, "chats", "ab", map[string]any{"participants": []string{"a", "b"}, "n": 1}, false))
	require.NoError(t, s.Set(ctx, "chats", "bc", map[string]any{"participants": []string{"b", "c"}, "n": 2.0}, false))

	docs, err := s.Query(ctx, "chats", Query{}.Where("participants", OpArrayContains, "a"))
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "ab", docs[0].ID)

	docs, err = s.Query(ctx, "chats", Query{}.Where("n", OpEqual, int64(2)))
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "bc", docs[0].ID)

	docs, err = s.Query(ctx, "chats", Query{}.Where("participants", OpArrayContains, "z"))
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestRangeFilterIgnoresOtherTypes(t *testing.T) {
	assert.False(t, matches("2025", Filter{Field: "f", Op: OpLess, Value: 10}))
	assert.True(t, matches(5, Filter{Field: "f", Op: OpLess, Value: 10.5}))
}

func TestPath(t *testing.T) {
	assert.Equal(t, "chats/a_b/messages", Path("chats", "a_b", "messages"))
}
