package store

import (
	"context"
	"errors"
	"strings"
	"time"

	"studyhelp.app/backend/internal/docstore"
)

var epoch = time.Date(2025, 2, 1, 10, 0, 0, 0, time.UTC)

func tickingClock(step time.Duration) func() time.Time {
	now := epoch
	return func() time.Time {
		now = now.Add(step)
		return now
	}
}

func newMemory() *docstore.MemoryStore {
	return docstore.NewMemoryStore(docstore.WithClock(tickingClock(time.Second)))
}

func strPtr(s string) *string { return &s }

// failingMessages fails every query against a message subcollection.
type failingMessages struct {
	docstore.Store
}

func (f failingMessages) Query(ctx context.Context, collection string, q docstore.Query) ([]docstore.Document, error) {
	if strings.HasSuffix(collection, "/"+messagesSubcollection) {
		return nil, errors.New("store unavailable")
	}
	return f.Store.Query(ctx, collection, q)
}
