package utils

import (
	"strings"
	"unicode/utf8"
)

// SanitizeFilename percent-decodes an uploaded filename and strips path
// separators so it can be used as a single storage path segment. Names
// that end up empty or dot-only become "attachment".
func SanitizeFilename(name string) string {
	name = percentDecode(name)
	name = strings.ReplaceAll(name, "\\", "")
	name = strings.ReplaceAll(name, "/", "")
	if name == "" || name == "." || name == ".." {
		return "attachment"
	}
	return name
}

// percentDecode decodes every well-formed %XX escape and keeps malformed
// ones verbatim. Bytes that do not form valid UTF-8 become U+FFFD.
func percentDecode(s string) string {
	if !strings.Contains(s, "%") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '%' && i+2 < len(s) {
			hi, okHi := unhex(s[i+1])
			lo, okLo := unhex(s[i+2])
			if okHi && okLo {
				b.WriteByte(hi<<4 | lo)
				i += 2
				continue
			}
		}
		b.WriteByte(s[i])
	}
	out := b.String()
	if !utf8.ValidString(out) {
		out = strings.ToValidUTF8(out, "�")
	}
	return out
}

func unhex(c byte) (byte, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
