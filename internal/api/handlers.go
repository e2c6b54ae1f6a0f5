package api

import (
	"go.uber.org/zap"
	"studyhelp.app/backend/internal/core"
)

type APIHandler struct {
	chats          *core.ChatService
	users          *core.UserService
	catalog        *core.CatalogService
	log            *zap.Logger
	maxUploadBytes int64
}

func NewAPIHandler(chats *core.ChatService, users *core.UserService, catalog *core.CatalogService, log *zap.Logger, maxUploadBytes int64) *APIHandler {
	return &APIHandler{
		chats:          chats,
		users:          users,
		catalog:        catalog,
		log:            log,
		maxUploadBytes: maxUploadBytes,
	}
}
