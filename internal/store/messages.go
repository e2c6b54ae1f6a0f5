package store

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"studyhelp.app/backend/internal/docstore"
)

const (
	chatsCollection       = "chats"
	messagesSubcollection = "messages"
	timestampField        = "timestamp"
)

func messagesPath(chatID string) string {
	return docstore.Path(chatsCollection, chatID, messagesSubcollection)
}

// MessageStore appends to and pages through the message log of a chat,
// kept as a subcollection of the chat document.
type MessageStore struct {
	db  docstore.Store
	now func() time.Time
}

func NewMessageStore(db docstore.Store, opts ...Option) *MessageStore {
	o := buildOptions(opts)
	return &MessageStore{db: db, now: o.now}
}

// Append writes a message with a store-assigned timestamp. The returned time
// is the local clock at write time and may differ from the stored value.
func (s *MessageStore) Append(ctx context.Context, chatID string, msg NewMessage) (string, int64, error) {
	id := uuid.NewString()
	payload := map[string]any{
		"sender_id":    msg.SenderID,
		"receiver_id":  msg.ReceiverID,
		"message":      nullable(msg.Text),
		"file_url":     nullable(msg.FileURL),
		"file_type":    nullable(msg.FileType),
		"file_name":    nullable(msg.FileName),
		timestampField: docstore.ServerTimestamp,
	}
	if err := s.db.Set(ctx, messagesPath(chatID), id, payload, false); err != nil {
		return "", 0, fmt.Errorf("failed to append message to chat %s: %w", chatID, err)
	}
	return id, s.now().UnixMilli(), nil
}

// List returns up to limit of the most recent messages in ascending order.
// With before set, only messages strictly older than it are considered.
// The cursor has millisecond resolution: messages sharing the cursor's
// millisecond are excluded from the next page along with the cursor itself.
func (s *MessageStore) List(ctx context.Context, chatID string, limit int, before *int64) ([]Message, error) {
	q := docstore.Query{}.Order(timestampField, docstore.Desc).Take(limit)
	if before != nil {
		q = q.Where(timestampField, docstore.OpLess, time.UnixMilli(*before).UTC())
	}

	docs, err := s.db.Query(ctx, messagesPath(chatID), q)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages for chat %s: %w", chatID, err)
	}

	messages := make([]Message, 0, len(docs))
	for _, d := range docs {
		m := decodeMessage(chatID, d)
		if before != nil && (m.Timestamp == 0 || m.Timestamp >= *before) {
			continue
		}
		messages = append(messages, m)
	}
	// The query is newest first at full precision; Timestamp is truncated
	// to milliseconds, so reverse instead of re-sorting on it.
	slices.Reverse(messages)
	return messages, nil
}

// Latest returns the most recent message of a chat, or nil for an empty log.
func (s *MessageStore) Latest(ctx context.Context, chatID string) (*Message, error) {
	docs, err := s.db.Query(ctx, messagesPath(chatID), docstore.Query{}.Order(timestampField, docstore.Desc).Take(1))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch latest message for chat %s: %w", chatID, err)
	}
	if len(docs) == 0 {
		return nil, nil
	}
	m := decodeMessage(chatID, docs[0])
	return &m, nil
}

func decodeMessage(chatID string, d docstore.Document) Message {
	return Message{
		ID:         d.ID,
		ChatID:     chatID,
		SenderID:   stringField(d.Data, "sender_id"),
		ReceiverID: stringField(d.Data, "receiver_id"),
		Text:       optionalString(d.Data, "message"),
		FileURL:    optionalString(d.Data, "file_url"),
		FileType:   optionalString(d.Data, "file_type"),
		FileName:   optionalString(d.Data, "file_name"),
		Timestamp:  millisField(d.Data, timestampField),
	}
}
