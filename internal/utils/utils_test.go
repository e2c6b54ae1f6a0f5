package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChatIDForIsSymmetric(t *testing.T) {
	pairs := [][2]string{
		{"alice", "bob"},
		{"uid-9", "uid-10"},
		{"Zed", "adam"},
	}
	for _, p := range pairs {
		ab := ChatIDFor(p[0], p[1])
		ba := ChatIDFor(p[1], p[0])
		assert.Equal(t, ab, ba)
		assert.Equal(t, ab, ChatIDFor(p[0], p[1]), "stable across calls")
		assert.Contains(t, ab, p[0])
		assert.Contains(t, ab, p[1])
	}
	assert.Equal(t, "alice_bob", ChatIDFor("bob", "alice"))
	assert.Equal(t, "Zed_adam", ChatIDFor("adam", "Zed"), "byte order puts upper case first")
}

func TestClassifyAttachment(t *testing.T) {
	tests := []struct {
		contentType string
		filename    string
		want        AttachmentKind
	}{
		{"image/png", "x.bin", KindPhoto},
		{"IMAGE/JPEG", "", KindPhoto},
		{"", "clip.mp4", KindMedia},
		{"audio/mpeg", "", KindMedia},
		{"video/quicktime", "a.txt", KindMedia},
		{"", "HOLIDAY.HEIC", KindPhoto},
		{"application/octet-stream", "song.OGG", KindMedia},
		{"text/plain", "notes.txt", KindFile},
		{"", "", KindFile},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyAttachment(tt.contentType, tt.filename), "%q %q", tt.contentType, tt.filename)
	}
}

func TestAttachmentKindLabel(t *testing.T) {
	assert.Equal(t, "Photo", KindPhoto.Label())
	assert.Equal(t, "Media", KindMedia.Label())
	assert.Equal(t, "File", KindFile.Label())
}

func TestMessagePreview(t *testing.T) {
	assert.Equal(t, "Hello", MessagePreview("  Hello \n", "", "", "", SendPreviewMaxRunes))
	assert.Equal(t, "Photo", MessagePreview("   ", "https://cdn/x.jpg", "image/jpeg", "x.jpg", SendPreviewMaxRunes))
	assert.Equal(t, "File", MessagePreview("", "https://cdn/x", "", "report.pdf", 0))
	assert.Equal(t, FallbackPreview, MessagePreview("", "", "image/png", "x.png", SendPreviewMaxRunes))

	long := strings.Repeat("a", 130)
	assert.Equal(t, strings.Repeat("a", 120), MessagePreview(long, "", "", "", SendPreviewMaxRunes))
	assert.Equal(t, long, MessagePreview(long, "", "", "", 0))

	accented := strings.Repeat("é", 121)
	got := MessagePreview(accented, "", "", "", SendPreviewMaxRunes)
	assert.Equal(t, 120, len([]rune(got)))
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "my file.png", SanitizeFilename("my%20file.png"))
	assert.Equal(t, "..etcpasswd", SanitizeFilename("../etc/passwd"))
	assert.Equal(t, "..evil.txt", SanitizeFilename("..%2Fevil.txt"))
	assert.Equal(t, "c:doc.txt", SanitizeFilename(`c:\doc.txt`))
	assert.Equal(t, "attachment", SanitizeFilename("%2F"))
	assert.Equal(t, "50%.txt", SanitizeFilename("50%.txt"))
}

func TestSanitizeFilenameDecodesEachEscape(t *testing.T) {
	tests := map[string]string{
		"a%20b%zz.txt":  "a b%zz.txt",
		"%E2%82%AC.txt": "€.txt",
		"notes%2":       "notes%2",
		"100%25.pdf":    "100%.pdf",
		"%2e%2E":        "attachment",
		"%ff.txt":       "\uFFFD.txt",
	}
	for in, want := range tests {
		assert.Equal(t, want, SanitizeFilename(in), in)
	}
}

func TestIsChatParticipant(t *testing.T) {
	id := ChatIDFor("bob", "alice")
	assert.True(t, IsChatParticipant(id, "alice"))
	assert.True(t, IsChatParticipant(id, "bob"))
	assert.False(t, IsChatParticipant(id, "carol"))
	assert.False(t, IsChatParticipant(id, ""))
	assert.False(t, IsChatParticipant("alice", "alice"))
	assert.False(t, IsChatParticipant("alice_bob_carol", "alice"))
}
