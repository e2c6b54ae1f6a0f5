package blob

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LocalUploader writes objects below a directory that the API serves under
// /uploads. Used for local development.
type LocalUploader struct {
	dir     string
	baseURL string
}

func NewLocalUploader(dir, baseURL string) (*LocalUploader, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve upload dir: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return &LocalUploader{dir: abs, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

func (u *LocalUploader) Dir() string { return u.dir }

func (u *LocalUploader) Put(_ context.Context, path string, data []byte, _ string) (string, error) {
	target := filepath.Join(u.dir, filepath.FromSlash(path))
	if !strings.HasPrefix(target, u.dir+string(filepath.Separator)) {
		return "", fmt.Errorf("upload path %q escapes the upload directory", path)
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	if err := os.WriteFile(target, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return u.baseURL + "/uploads/" + escapePath(path), nil
}
