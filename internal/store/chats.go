package store

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"
	"studyhelp.app/backend/internal/docstore"
	"studyhelp.app/backend/internal/utils"
)

// ChatMetaStore maintains the summary document of every chat. Summary fields
// are written in both naming schemes and read preferring snake_case.
type ChatMetaStore struct {
	db       docstore.Store
	messages *MessageStore
	log      *zap.Logger
	now      func() time.Time
}

func NewChatMetaStore(db docstore.Store, messages *MessageStore, log *zap.Logger, opts ...Option) *ChatMetaStore {
	o := buildOptions(opts)
	return &ChatMetaStore{
		db:       db,
		messages: messages,
		log:      log,
		now:      o.now,
	}
}

// Upsert merge-writes the chat summary. updated_at is refreshed on every
// call, including calls without a new message.
func (s *ChatMetaStore) Upsert(ctx context.Context, chatID string, participants []string, lastMessage, lastSender *string) error {
	data := map[string]any{
		"id":           chatID,
		"participants": append([]string(nil), participants...),
	}
	fieldLastMessage.write(data, nullable(lastMessage))
	fieldLastSender.write(data, nullable(lastSender))
	fieldUpdatedAt.write(data, s.now().UnixMilli())

	if err := s.db.Set(ctx, chatsCollection, chatID, data, true); err != nil {
		return fmt.Errorf("failed to upsert chat meta %s: %w", chatID, err)
	}
	return nil
}

// ListForParticipant returns every chat uid takes part in, most recently
// updated first. Chats without a preview get one backfilled from their
// latest message; backfill failures never fail the listing.
func (s *ChatMetaStore) ListForParticipant(ctx context.Context, uid string) ([]ChatMeta, error) {
	docs, err := s.db.Query(ctx, chatsCollection, docstore.Query{}.Where("participants", docstore.OpArrayContains, uid))
	if err != nil {
		return nil, fmt.Errorf("failed to list chats for %s: %w", uid, err)
	}

	chats := make([]ChatMeta, 0, len(docs))
	for _, d := range docs {
		meta := decodeChatMeta(d)
		if meta.LastMessage == "" {
			res := s.backfill(ctx, meta)
			if res.err != nil {
				s.log.Warn("chat preview backfill failed",
					zap.String("chat_id", meta.ID), zap.Error(res.err))
			}
			if res.found {
				meta.LastMessage = res.preview
				meta.LastSender = res.sender
				meta.UpdatedAt = res.updatedAt
			}
		}
		chats = append(chats, meta)
	}

	sort.SliceStable(chats, func(i, j int) bool {
		return chats[i].UpdatedAt > chats[j].UpdatedAt
	})
	return chats, nil
}

type backfillResult struct {
	found     bool
	preview   string
	sender    string
	updatedAt int64
	err       error
}

// backfill derives the preview from the latest message and persists it.
// updated_at is kept when present so that backfilling does not reorder the
// inbox; otherwise the message timestamp is used.
func (s *ChatMetaStore) backfill(ctx context.Context, meta ChatMeta) backfillResult {
	latest, err := s.messages.Latest(ctx, meta.ID)
	if err != nil {
		return backfillResult{err: err}
	}
	if latest == nil {
		return backfillResult{}
	}

	res := backfillResult{
		found:     true,
		preview:   previewOf(latest),
		sender:    latest.SenderID,
		updatedAt: meta.UpdatedAt,
	}
	if res.updatedAt == 0 {
		res.updatedAt = latest.Timestamp
	}

	data := map[string]any{}
	fieldLastMessage.write(data, res.preview)
	fieldLastSender.write(data, res.sender)
	fieldUpdatedAt.write(data, res.updatedAt)
	if err := s.db.Set(ctx, chatsCollection, meta.ID, data, true); err != nil {
		res.err = fmt.Errorf("failed to persist backfilled preview: %w", err)
	}
	return res
}

// previewOf is the untruncated preview of a stored message.
func previewOf(m *Message) string {
	var text, url, fileType, fileName string
	if m.Text != nil {
		text = *m.Text
	}
	if m.FileURL != nil {
		url = *m.FileURL
	}
	if m.FileType != nil {
		fileType = *m.FileType
	}
	if m.FileName != nil {
		fileName = *m.FileName
	}
	return utils.MessagePreview(text, url, fileType, fileName, 0)
}

func decodeChatMeta(d docstore.Document) ChatMeta {
	id := stringField(d.Data, "id")
	if id == "" {
		id = d.ID
	}
	updatedAt, _ := fieldUpdatedAt.readMillis(d.Data)
	return ChatMeta{
		ID:           id,
		Participants: stringSlice(d.Data, "participants"),
		LastMessage:  fieldLastMessage.readString(d.Data),
		LastSender:   fieldLastSender.readString(d.Data),
		UpdatedAt:    updatedAt,
	}
}
