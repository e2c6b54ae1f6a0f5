package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"studyhelp.app/backend/internal/core"
	"studyhelp.app/backend/internal/utils"
)

type CreateChatRequest struct {
	OtherUserID string `json:"other_user_id"`
}

type SendMessageResponse struct {
	MessageID string `json:"message_id"`
	ChatID    string `json:"chat_id"`
}

func (h *APIHandler) CreateChatHandler(w http.ResponseWriter, r *http.Request) {
	id := identityFrom(r.Context())

	var req CreateChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	chatID, err := h.chats.CreateOrGet(r.Context(), id.Subject, req.OtherUserID)
	if err != nil {
		if errors.Is(err, core.ErrInvalidArgument) {
			writeDetail(w, http.StatusBadRequest, "invalid other_user_id")
			return
		}
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, chatID)
}

func (h *APIHandler) ListUserChatsHandler(w http.ResponseWriter, r *http.Request) {
	id := identityFrom(r.Context())
	userID := chi.URLParam(r, "userID")
	if userID != id.Subject {
		writeDetail(w, http.StatusForbidden, "Unauthorized")
		return
	}

	chats, err := h.chats.ListChats(r.Context(), userID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, chats)
}

func (h *APIHandler) ListMessagesHandler(w http.ResponseWriter, r *http.Request) {
	id := identityFrom(r.Context())
	chatID := chi.URLParam(r, "chatID")
	if !utils.IsChatParticipant(chatID, id.Subject) {
		writeDetail(w, http.StatusForbidden, "not a participant of this chat")
		return
	}
	q := r.URL.Query()

	limit := core.DefaultMessagePageSize
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeDetail(w, http.StatusBadRequest, "limit must be an integer")
			return
		}
		limit = n
	}

	var before *int64
	if raw := q.Get("before"); raw != "" {
		ts, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeDetail(w, http.StatusBadRequest, "before must be an epoch timestamp in milliseconds")
			return
		}
		before = &ts
	}

	messages, err := h.chats.ListMessages(r.Context(), chatID, limit, before)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messages)
}

// SendMessageHandler accepts a multipart form with receiver_id, an optional
// text field and an optional file part.
func (h *APIHandler) SendMessageHandler(w http.ResponseWriter, r *http.Request) {
	id := identityFrom(r.Context())
	chatID := chi.URLParam(r, "chatID")

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeDetail(w, http.StatusRequestEntityTooLarge, "upload too large")
			return
		}
		writeDetail(w, http.StatusBadRequest, "invalid multipart form: "+err.Error())
		return
	}

	in := core.SendMessageInput{
		ChatID:     chatID,
		SenderID:   id.Subject,
		ReceiverID: r.FormValue("receiver_id"),
	}
	if in.ReceiverID == "" {
		writeDetail(w, http.StatusBadRequest, "receiver_id is required")
		return
	}
	if in.ReceiverID == in.SenderID || chatID != utils.ChatIDFor(in.SenderID, in.ReceiverID) {
		writeDetail(w, http.StatusForbidden, "chat does not belong to sender and receiver")
		return
	}
	if values, ok := r.MultipartForm.Value["text"]; ok && len(values) > 0 {
		text := values[0]
		in.Text = &text
	}

	file, header, err := r.FormFile("file")
	switch {
	case err == nil:
		defer file.Close()
		data, err := io.ReadAll(file)
		if err != nil {
			writeDetail(w, http.StatusBadRequest, "failed to read file: "+err.Error())
			return
		}
		in.File = data
		in.Filename = header.Filename
		in.ContentType = header.Header.Get("Content-Type")
	case errors.Is(err, http.ErrMissingFile):
	default:
		writeDetail(w, http.StatusBadRequest, "invalid file part: "+err.Error())
		return
	}

	if (in.Text == nil || strings.TrimSpace(*in.Text) == "") && len(in.File) == 0 {
		writeDetail(w, http.StatusBadRequest, "a message needs text or a file")
		return
	}

	messageID, err := h.chats.SendMessage(r.Context(), in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, SendMessageResponse{MessageID: messageID, ChatID: chatID})
}
