package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"studyhelp.app/backend/internal/docstore"
)

func newChatStores(db docstore.Store) (*MessageStore, *ChatMetaStore) {
	ms := NewMessageStore(db)
	metas := NewChatMetaStore(db, ms, zap.NewNop(), WithClock(tickingClock(time.Minute)))
	return ms, metas
}

func TestUpsertWritesBothNamingSchemes(t *testing.T) {
	ctx := context.Background()
	db := newMemory()
	_, metas := newChatStores(db)

	require.NoError(t, metas.Upsert(ctx, "alice_bob", []string{"alice", "bob"}, strPtr("Hello"), strPtr("alice")))

	doc, err := db.Get(ctx, "chats", "alice_bob")
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.Equal(t, "Hello", doc.Data["last_message"])
	assert.Equal(t, "Hello", doc.Data["lastMessage"])
	assert.Equal(t, "alice", doc.Data["last_sender"])
	assert.Equal(t, "alice", doc.Data["lastSender"])
	assert.Equal(t, doc.Data["updated_at"], doc.Data["updatedAt"])
	assert.Equal(t, []any{"alice", "bob"}, doc.Data["participants"])
}

func TestUpsertWithoutMessageStillBumpsRecency(t *testing.T) {
	// Known quirk: creating a chat refreshes updated_at, so an empty chat
	// sorts above chats whose last message is older.
	ctx := context.Background()
	_, metas := newChatStores(newMemory())

	require.NoError(t, metas.Upsert(ctx, "alice_bob", []string{"alice", "bob"}, strPtr("hi"), strPtr("bob")))
	require.NoError(t, metas.Upsert(ctx, "alice_carol", []string{"alice", "carol"}, nil, nil))

	chats, err := metas.ListForParticipant(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, chats, 2)
	assert.Equal(t, "alice_carol", chats[0].ID)
	assert.Equal(t, "", chats[0].LastMessage)
	assert.Equal(t, "alice_bob", chats[1].ID)
}

func TestListReadsLegacyCamelCaseFields(t *testing.T) {
	ctx := context.Background()
	db := newMemory()
	_, metas := newChatStores(db)

	require.NoError(t, db.Set(ctx, "chats", "bob_dave", map[string]any{
		"participants": []string{"bob", "dave"},
		"lastMessage":  "old style",
		"lastSender":   "dave",
		"updatedAt":    time.UnixMilli(1_700_000_000_000),
	}, false))
	require.NoError(t, db.Set(ctx, "chats", "bob_erin", map[string]any{
		"id":           "bob_erin",
		"participants": []string{"bob", "erin"},
		"last_message": "new style",
		"lastMessage":  "stale",
		"last_sender":  "bob",
		"updated_at":   int64(1_700_000_100_000),
	}, false))

	chats, err := metas.ListForParticipant(ctx, "bob")
	require.NoError(t, err)
	require.Len(t, chats, 2)

	assert.Equal(t, "bob_erin", chats[0].ID)
	assert.Equal(t, "new style", chats[0].LastMessage, "snake_case wins over camelCase")
	assert.Equal(t, int64(1_700_000_100_000), chats[0].UpdatedAt)

	assert.Equal(t, "bob_dave", chats[1].ID, "id falls back to the document id")
	assert.Equal(t, "old style", chats[1].LastMessage)
	assert.Equal(t, "dave", chats[1].LastSender)
	assert.Equal(t, int64(1_700_000_000_000), chats[1].UpdatedAt)
}

func TestListBackfillsMissingPreview(t *testing.T) {
	ctx := context.Background()
	db := newMemory()
	ms, metas := newChatStores(db)

	_, _, err := ms.Append(ctx, "alice_bob", NewMessage{SenderID: "bob", ReceiverID: "alice", Text: strPtr("  see you at the library  ")})
	require.NoError(t, err)
	require.NoError(t, metas.Upsert(ctx, "alice_bob", []string{"alice", "bob"}, nil, nil))

	before, err := db.Get(ctx, "chats", "alice_bob")
	require.NoError(t, err)
	updatedAt := before.Data["updated_at"]

	chats, err := metas.ListForParticipant(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, chats, 1)
	assert.Equal(t, "see you at the library", chats[0].LastMessage)
	assert.Equal(t, "bob", chats[0].LastSender)

	doc, err := db.Get(ctx, "chats", "alice_bob")
	require.NoError(t, err)
	assert.Equal(t, chats[0].LastMessage, doc.Data["last_message"])
	assert.Equal(t, chats[0].LastMessage, doc.Data["lastMessage"])
	assert.Equal(t, updatedAt, doc.Data["updated_at"], "backfill keeps recency")

	again, err := metas.ListForParticipant(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, chats, again)
}

func TestListBackfillUsesAttachmentLabel(t *testing.T) {
	ctx := context.Background()
	db := newMemory()
	ms, metas := newChatStores(db)

	_, _, err := ms.Append(ctx, "alice_bob", NewMessage{
		SenderID:   "alice",
		ReceiverID: "bob",
		FileURL:    strPtr("https://cdn.example/chats/alice_bob/song.mp3"),
		FileType:   strPtr("application/octet-stream"),
		FileName:   strPtr("song.mp3"),
	})
	require.NoError(t, err)
	_, _, err = ms.Append(ctx, "alice_carol", NewMessage{SenderID: "alice", ReceiverID: "carol"})
	require.NoError(t, err)
	require.NoError(t, metas.Upsert(ctx, "alice_bob", []string{"alice", "bob"}, nil, nil))
	require.NoError(t, metas.Upsert(ctx, "alice_carol", []string{"alice", "carol"}, nil, nil))

	chats, err := metas.ListForParticipant(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, chats, 2)
	byID := map[string]ChatMeta{chats[0].ID: chats[0], chats[1].ID: chats[1]}
	assert.Equal(t, "Media", byID["alice_bob"].LastMessage)
	assert.Equal(t, "Message", byID["alice_carol"].LastMessage)
}

func TestListBackfillUsesMessageTimeWhenUpdatedAtMissing(t *testing.T) {
	ctx := context.Background()
	db := newMemory()
	ms, metas := newChatStores(db)

	_, _, err := ms.Append(ctx, "alice_bob", NewMessage{SenderID: "alice", ReceiverID: "bob", Text: strPtr("yo")})
	require.NoError(t, err)
	latest, err := ms.Latest(ctx, "alice_bob")
	require.NoError(t, err)
	require.NoError(t, db.Set(ctx, "chats", "alice_bob", map[string]any{"participants": []string{"alice", "bob"}}, false))

	chats, err := metas.ListForParticipant(ctx, "bob")
	require.NoError(t, err)
	require.Len(t, chats, 1)
	assert.Equal(t, "yo", chats[0].LastMessage)
	assert.Equal(t, latest.Timestamp, chats[0].UpdatedAt)
}

func TestListSwallowsBackfillFailure(t *testing.T) {
	ctx := context.Background()
	db := newMemory()
	ms, _ := newChatStores(db)
	_, _, err := ms.Append(ctx, "alice_bob", NewMessage{SenderID: "alice", ReceiverID: "bob", Text: strPtr("hidden")})
	require.NoError(t, err)

	broken := failingMessages{Store: db}
	metas := NewChatMetaStore(broken, NewMessageStore(broken), zap.NewNop())
	require.NoError(t, metas.Upsert(ctx, "alice_bob", []string{"alice", "bob"}, nil, nil))

	chats, err := metas.ListForParticipant(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, chats, 1)
	assert.Equal(t, "", chats[0].LastMessage)
	assert.NotZero(t, chats[0].UpdatedAt)
}

func TestListForParticipantWithNoChats(t *testing.T) {
	_, metas := newChatStores(newMemory())
	chats, err := metas.ListForParticipant(context.Background(), "loner")
	require.NoError(t, err)
	assert.Empty(t, chats)
}
