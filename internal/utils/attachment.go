package utils

import "strings"

type AttachmentKind int

const (
	KindFile AttachmentKind = iota
	KindPhoto
	KindMedia
)

// Label is the inbox preview shown for a message that carries only an
// attachment of this kind.
func (k AttachmentKind) Label() string {
	switch k {
	case KindPhoto:
		return "Photo"
	case KindMedia:
		return "Media"
	}
	return "File"
}

func (k AttachmentKind) String() string { return k.Label() }

var (
	photoExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".bmp", ".webp", ".heic"}
	mediaExtensions = []string{".mp4", ".mov", ".mkv", ".webm", ".mp3", ".wav", ".m4a", ".ogg"}
)

// ClassifyAttachment maps a content type, or failing that a filename
// extension, to a coarse attachment kind.
func ClassifyAttachment(contentType, filename string) AttachmentKind {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	name := strings.ToLower(strings.TrimSpace(filename))

	switch {
	case strings.HasPrefix(ct, "image/"):
		return KindPhoto
	case strings.HasPrefix(ct, "video/"), strings.HasPrefix(ct, "audio/"):
		return KindMedia
	case hasAnySuffix(name, photoExtensions):
		return KindPhoto
	case hasAnySuffix(name, mediaExtensions):
		return KindMedia
	}
	return KindFile
}

func hasAnySuffix(s string, suffixes []string) bool {
	for _, suf := range suffixes {
		if strings.HasSuffix(s, suf) {
			return true
		}
	}
	return false
}
