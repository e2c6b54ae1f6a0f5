package docstore

import (
	"context"
	"sort"
	"sync"
	"time"
)

type memoryEntry struct {
	data map[string]any
	seq  uint64
}

// MemoryStore keeps documents in process. It backs tests and the
// STORE_BACKEND=memory mode.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string]map[string]*memoryEntry
	seq         uint64
	clock       func() time.Time
}

type MemoryOption func(*MemoryStore)

// WithClock sets the clock used to resolve ServerTimestamp.
func WithClock(clock func() time.Time) MemoryOption {
	return func(s *MemoryStore) { s.clock = clock }
}

func NewMemoryStore(opts ...MemoryOption) *MemoryStore {
	s := &MemoryStore{
		collections: make(map[string]map[string]*memoryEntry),
		clock:       func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *MemoryStore) Get(_ context.Context, collection, id string) (*Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.collections[collection][id]
	if !ok {
		return nil, nil
	}
	return &Document{ID: id, Data: cloneMap(e.data)}, nil
}

func (s *MemoryStore) Set(_ context.Context, collection, id string, data map[string]any, merge bool) error {
	data = cloneMap(data)
	if data == nil {
		data = map[string]any{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	resolveServerTimestamps(data, s.clock())
	col, ok := s.collections[collection]
	if !ok {
		col = make(map[string]*memoryEntry)
		s.collections[collection] = col
	}

	if e, exists := col[id]; exists {
		if merge {
			for k, v := range data {
				e.data[k] = v
			}
		} else {
			e.data = data
		}
		return nil
	}

	s.seq++
	col[id] = &memoryEntry{data: data, seq: s.seq}
	return nil
}

func (s *MemoryStore) Update(_ context.Context, collection, id string, data map[string]any) error {
	data = cloneMap(data)

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.collections[collection][id]
	if !ok {
		return ErrNotFound
	}
	resolveServerTimestamps(data, s.clock())
	for k, v := range data {
		e.data[k] = v
	}
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.collections[collection], id)
	return nil
}

func (s *MemoryStore) Query(_ context.Context, collection string, q Query) ([]Document, error) {
	s.mu.RLock()
	col := s.collections[collection]
	ids := make([]string, 0, len(col))
	for id := range col {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return col[ids[i]].seq < col[ids[j]].seq })
	docs := make([]Document, len(ids))
	for i, id := range ids {
		docs[i] = Document{ID: id, Data: cloneMap(col[id].data)}
	}
	s.mu.RUnlock()

	return applyQuery(docs, q), nil
}

func (s *MemoryStore) Close() error { return nil }
