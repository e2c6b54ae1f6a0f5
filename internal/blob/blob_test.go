package blob

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalUploaderPut(t *testing.T) {
	dir := t.TempDir()
	u, err := NewLocalUploader(dir, "http://localhost:8000/")
	require.NoError(t, err)

	url, err := u.Put(context.Background(), "chats/a_b/my photo.png", []byte("png"), "image/png")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000/uploads/chats/a_b/my%20photo.png", url)

	data, err := os.ReadFile(filepath.Join(u.Dir(), "chats", "a_b", "my photo.png"))
	require.NoError(t, err)
	assert.Equal(t, []byte("png"), data)
}

func TestLocalUploaderRejectsTraversal(t *testing.T) {
	u, err := NewLocalUploader(t.TempDir(), "http://localhost:8000")
	require.NoError(t, err)

	_, err = u.Put(context.Background(), "../outside.txt", []byte("x"), "")
	assert.Error(t, err)
}

func TestS3PublicURL(t *testing.T) {
	aws := &S3Uploader{bucket: "media", region: "sa-east-1"}
	assert.Equal(t, "https://media.s3.sa-east-1.amazonaws.com/chats/a_b/x%20y.pdf", aws.publicURL("chats/a_b/x y.pdf"))

	minio := &S3Uploader{bucket: "media", endpoint: "http://minio:9000"}
	assert.Equal(t, "http://minio:9000/media/profile_pictures/u1/p.jpg", minio.publicURL("profile_pictures/u1/p.jpg"))
}

func TestContentTypeOrDefault(t *testing.T) {
	assert.Equal(t, DefaultContentType, contentTypeOrDefault(""))
	assert.Equal(t, "image/png", contentTypeOrDefault("image/png"))
}
