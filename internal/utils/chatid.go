package utils

import (
	"sort"
	"strings"
)

// ChatIDSeparator joins the two participant ids of a chat. Participant ids
// must never contain it, otherwise distinct pairs could share a chat id.
const ChatIDSeparator = "_"

// ChatIDFor derives the canonical id of the conversation between u1 and u2.
// The result does not depend on argument order.
func ChatIDFor(u1, u2 string) string {
	ids := []string{u1, u2}
	sort.Strings(ids)
	return ids[0] + ChatIDSeparator + ids[1]
}

// IsChatParticipant reports whether uid is one of the two participants
// encoded in chatID.
func IsChatParticipant(chatID, uid string) bool {
	if uid == "" {
		return false
	}
	parts := strings.Split(chatID, ChatIDSeparator)
	return len(parts) == 2 && (parts[0] == uid || parts[1] == uid)
}
