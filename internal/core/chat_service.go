package core

import (
	"context"
	"fmt"
	"path"
	"strings"

	"go.uber.org/zap"
	"studyhelp.app/backend/internal/blob"
	"studyhelp.app/backend/internal/store"
	"studyhelp.app/backend/internal/utils"
)

const (
	DefaultMessagePageSize = 20
	MaxMessagePageSize     = 50
)

type ChatService struct {
	messages *store.MessageStore
	metas    *store.ChatMetaStore
	uploader blob.Uploader
	log      *zap.Logger
}

func NewChatService(messages *store.MessageStore, metas *store.ChatMetaStore, uploader blob.Uploader, log *zap.Logger) *ChatService {
	return &ChatService{
		messages: messages,
		metas:    metas,
		uploader: uploader,
		log:      log,
	}
}

// CreateOrGet returns the id of the chat between uidA and uidB, creating its
// summary record when needed. Repeated calls only refresh updated_at.
func (s *ChatService) CreateOrGet(ctx context.Context, uidA, uidB string) (string, error) {
	if uidA == "" || uidB == "" {
		return "", fmt.Errorf("%w: both participants are required", ErrInvalidArgument)
	}
	if uidA == uidB {
		return "", fmt.Errorf("%w: cannot start a chat with yourself", ErrInvalidArgument)
	}

	chatID := utils.ChatIDFor(uidA, uidB)
	if err := s.metas.Upsert(ctx, chatID, []string{uidA, uidB}, nil, nil); err != nil {
		return "", fmt.Errorf("failed to create chat: %w", err)
	}
	return chatID, nil
}

type SendMessageInput struct {
	ChatID      string
	SenderID    string
	ReceiverID  string
	Text        *string
	File        []byte
	Filename    string
	ContentType string
}

func (in SendMessageInput) hasAttachment() bool {
	return len(in.File) > 0 && in.Filename != ""
}

// SendMessage uploads the attachment if any, appends the message and then
// refreshes the chat summary, in that order. A failed upload writes nothing.
func (s *ChatService) SendMessage(ctx context.Context, in SendMessageInput) (string, error) {
	if in.ChatID == "" || in.SenderID == "" || in.ReceiverID == "" {
		return "", fmt.Errorf("%w: chat, sender and receiver are required", ErrInvalidArgument)
	}

	msg := store.NewMessage{
		SenderID:   in.SenderID,
		ReceiverID: in.ReceiverID,
		Text:       in.Text,
	}

	var fileURL, contentType, filename string
	if in.hasAttachment() {
		filename = utils.SanitizeFilename(in.Filename)
		contentType = in.ContentType
		if contentType == "" {
			contentType = blob.DefaultContentType
		}

		url, err := s.uploader.Put(ctx, path.Join("chats", in.ChatID, filename), in.File, contentType)
		if err != nil {
			return "", fmt.Errorf("failed to upload attachment: %w", err)
		}
		fileURL = url
		msg.FileURL = &fileURL
		msg.FileType = &contentType
		msg.FileName = &filename
	}

	messageID, _, err := s.messages.Append(ctx, in.ChatID, msg)
	if err != nil {
		return "", fmt.Errorf("failed to send message: %w", err)
	}

	var text string
	if in.Text != nil {
		text = *in.Text
	}
	preview := utils.MessagePreview(text, fileURL, contentType, filename, utils.SendPreviewMaxRunes)
	sender := in.SenderID
	if err := s.metas.Upsert(ctx, in.ChatID, []string{in.SenderID, in.ReceiverID}, &preview, &sender); err != nil {
		return "", fmt.Errorf("failed to update chat summary: %w", err)
	}

	s.log.Debug("message sent",
		zap.String("chat_id", in.ChatID),
		zap.String("message_id", messageID),
		zap.Bool("attachment", fileURL != ""))
	return messageID, nil
}

// ListChats returns uid's chats, most recently updated first.
func (s *ChatService) ListChats(ctx context.Context, uid string) ([]store.ChatMeta, error) {
	if strings.TrimSpace(uid) == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidArgument)
	}
	return s.metas.ListForParticipant(ctx, uid)
}

// ListMessages pages backwards through a chat; before is an exclusive epoch
// ms cursor.
func (s *ChatService) ListMessages(ctx context.Context, chatID string, limit int, before *int64) ([]store.Message, error) {
	if chatID == "" {
		return nil, fmt.Errorf("%w: chat id is required", ErrInvalidArgument)
	}
	if limit < 1 || limit > MaxMessagePageSize {
		return nil, fmt.Errorf("%w: limit must be between 1 and %d", ErrInvalidArgument, MaxMessagePageSize)
	}
	return s.messages.List(ctx, chatID, limit, before)
}
