package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	StoreFirestore = "firestore"
	StoreSQLite    = "sqlite"
	StoreMemory    = "memory"

	BlobGCS   = "gcs"
	BlobS3    = "s3"
	BlobLocal = "local"

	AuthFirebase = "firebase"
	AuthJWT      = "jwt"
)

type Config struct {
	HTTPPort string
	LogLevel string
	AppEnv   string

	StoreBackend        string
	DatabaseURL         string
	GoogleCloudProject  string
	FirebaseCredentials string

	BlobBackend           string
	FirebaseStorageBucket string
	S3Bucket              string
	S3Region              string
	S3Endpoint            string
	LocalUploadDir        string
	PublicBaseURL         string

	AuthBackend string
	JWTSecret   string

	CORSAllowedOrigins []string
	RateLimitPerMinute int
	MaxUploadBytes     int64
}

func (c Config) Development() bool {
	return c.AppEnv == "development"
}

// NeedsFirebase reports whether any configured backend talks to Firebase.
func (c Config) NeedsFirebase() bool {
	return c.StoreBackend == StoreFirestore || c.BlobBackend == BlobGCS || c.AuthBackend == AuthFirebase
}

func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	port := getEnv("HTTP_PORT", "8000")
	cfg := Config{
		HTTPPort: port,
		LogLevel: getEnv("LOG_LEVEL", "INFO"),
		AppEnv:   getEnv("APP_ENV", "production"),

		StoreBackend:        strings.ToLower(getEnv("STORE_BACKEND", StoreSQLite)),
		DatabaseURL:         getEnv("DATABASE_URL", "studyhelp.db"),
		GoogleCloudProject:  getEnv("GOOGLE_CLOUD_PROJECT", ""),
		FirebaseCredentials: getEnv("FIREBASE_CREDENTIALS", ""),

		BlobBackend:           strings.ToLower(getEnv("BLOB_BACKEND", BlobLocal)),
		FirebaseStorageBucket: getEnv("FIREBASE_STORAGE_BUCKET", ""),
		S3Bucket:              getEnv("S3_BUCKET", ""),
		S3Region:              getEnv("S3_REGION", "us-east-1"),
		S3Endpoint:            getEnv("S3_ENDPOINT", ""),
		LocalUploadDir:        getEnv("LOCAL_UPLOAD_DIR", "uploads"),
		PublicBaseURL:         getEnv("PUBLIC_BASE_URL", "http://localhost:"+port),

		AuthBackend: strings.ToLower(getEnv("AUTH_BACKEND", AuthJWT)),
		JWTSecret:   getEnv("JWT_SECRET", ""),

		CORSAllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		RateLimitPerMinute: getEnvAsInt("RATE_LIMIT_PER_MINUTE", 120),
		MaxUploadBytes:     int64(getEnvAsInt("MAX_UPLOAD_BYTES", 20<<20)),
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.StoreBackend {
	case StoreFirestore:
		if c.GoogleCloudProject == "" {
			return fmt.Errorf("GOOGLE_CLOUD_PROJECT is required for the firestore store backend")
		}
	case StoreSQLite:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the sqlite store backend")
		}
	case StoreMemory:
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.StoreBackend)
	}

	switch c.BlobBackend {
	case BlobGCS:
		if c.FirebaseStorageBucket == "" {
			return fmt.Errorf("FIREBASE_STORAGE_BUCKET is required for the gcs blob backend")
		}
	case BlobS3:
		if c.S3Bucket == "" {
			return fmt.Errorf("S3_BUCKET is required for the s3 blob backend")
		}
	case BlobLocal:
	default:
		return fmt.Errorf("unknown BLOB_BACKEND %q", c.BlobBackend)
	}

	switch c.AuthBackend {
	case AuthFirebase:
	case AuthJWT:
		if c.JWTSecret == "" {
			return fmt.Errorf("JWT_SECRET environment variable is required for the jwt auth backend")
		}
	default:
		return fmt.Errorf("unknown AUTH_BACKEND %q", c.AuthBackend)
	}

	if c.RateLimitPerMinute <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be positive")
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("MAX_UPLOAD_BYTES must be positive")
	}
	return nil
}

func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	var out []string
	for _, v := range strings.Split(valueStr, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
