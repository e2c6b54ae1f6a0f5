// Package blob uploads attachment and avatar bytes and hands back a public URL.
package blob

import (
	"context"
	"net/url"
	"strings"
)

const DefaultContentType = "application/octet-stream"

type Uploader interface {
	Put(ctx context.Context, path string, data []byte, contentType string) (string, error)
}

// escapePath escapes every segment of an object path for use in a URL.
func escapePath(path string) string {
	segments := strings.Split(path, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.Join(segments, "/")
}

func contentTypeOrDefault(ct string) string {
	if ct == "" {
		return DefaultContentType
	}
	return ct
}
