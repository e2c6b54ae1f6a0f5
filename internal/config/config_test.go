package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8000", cfg.HTTPPort)
	assert.Equal(t, StoreSQLite, cfg.StoreBackend)
	assert.Equal(t, BlobLocal, cfg.BlobBackend)
	assert.Equal(t, AuthJWT, cfg.AuthBackend)
	assert.Equal(t, 120, cfg.RateLimitPerMinute)
	assert.Equal(t, int64(20<<20), cfg.MaxUploadBytes)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, "http://localhost:8000", cfg.PublicBaseURL)
	assert.False(t, cfg.NeedsFirebase())
}

func TestLoadFirebaseStack(t *testing.T) {
	t.Setenv("STORE_BACKEND", "Firestore")
	t.Setenv("GOOGLE_CLOUD_PROJECT", "studyhelp")
	t.Setenv("BLOB_BACKEND", "gcs")
	t.Setenv("FIREBASE_STORAGE_BUCKET", "studyhelp.appspot.com")
	t.Setenv("AUTH_BACKEND", "firebase")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example,")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, StoreFirestore, cfg.StoreBackend)
	assert.True(t, cfg.NeedsFirebase())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
}

func TestLoadRejectsInvalidCombinations(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"jwt without secret", map[string]string{"JWT_SECRET": ""}},
		{"unknown store", map[string]string{"JWT_SECRET": "s", "STORE_BACKEND": "mongo"}},
		{"firestore without project", map[string]string{"JWT_SECRET": "s", "STORE_BACKEND": "firestore", "GOOGLE_CLOUD_PROJECT": ""}},
		{"s3 without bucket", map[string]string{"JWT_SECRET": "s", "BLOB_BACKEND": "s3", "S3_BUCKET": ""}},
		{"unknown auth", map[string]string{"AUTH_BACKEND": "basic"}},
		{"zero rate limit", map[string]string{"JWT_SECRET": "s", "RATE_LIMIT_PER_MINUTE": "0"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
