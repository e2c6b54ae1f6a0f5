package core

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"studyhelp.app/backend/internal/docstore"
	"studyhelp.app/backend/internal/store"
)

var epoch = time.Date(2025, 2, 1, 10, 0, 0, 0, time.UTC)

func tickingClock(step time.Duration) func() time.Time {
	var mu sync.Mutex
	now := epoch
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		now = now.Add(step)
		return now
	}
}

type upload struct {
	path        string
	data        []byte
	contentType string
}

type fakeUploader struct {
	uploads []upload
	err     error
}

func (f *fakeUploader) Put(_ context.Context, path string, data []byte, contentType string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.uploads = append(f.uploads, upload{path: path, data: data, contentType: contentType})
	return fmt.Sprintf("https://cdn.test/%s", path), nil
}

type fixture struct {
	db       *docstore.MemoryStore
	uploader *fakeUploader
	chats    *ChatService
	users    *UserService
	catalog  *CatalogService
}

func newFixture() *fixture {
	db := docstore.NewMemoryStore(docstore.WithClock(tickingClock(time.Second)))
	up := &fakeUploader{}
	log := zap.NewNop()

	messages := store.NewMessageStore(db)
	metas := store.NewChatMetaStore(db, messages, log, store.WithClock(tickingClock(time.Minute)))
	return &fixture{
		db:       db,
		uploader: up,
		chats:    NewChatService(messages, metas, up, log),
		users:    NewUserService(store.NewUserStore(db), up, log),
		catalog:  NewCatalogService(store.NewCourseStore(db)),
	}
}

func strPtr(s string) *string { return &s }

var errUnavailable = errors.New("blob service unavailable")
