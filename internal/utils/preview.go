package utils

import "strings"

const (
	// FallbackPreview is used when a message has neither text nor attachment.
	FallbackPreview = "Message"

	// SendPreviewMaxRunes caps the preview written when a message is sent.
	SendPreviewMaxRunes = 120
)

// MessagePreview builds the inbox preview of a message. maxRunes <= 0 keeps
// the full trimmed text.
func MessagePreview(text, attachmentURL, contentType, filename string, maxRunes int) string {
	if trimmed := strings.TrimSpace(text); trimmed != "" {
		return truncateRunes(trimmed, maxRunes)
	}
	if attachmentURL != "" {
		return ClassifyAttachment(contentType, filename).Label()
	}
	return FallbackPreview
}

func truncateRunes(s string, max int) string {
	if max <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}
