package main

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"go.uber.org/zap"
	"google.golang.org/api/option"
	"studyhelp.app/backend/internal/auth"
	"studyhelp.app/backend/internal/blob"
	"studyhelp.app/backend/internal/config"
	"studyhelp.app/backend/internal/docstore"
)

type backends struct {
	db       docstore.Store
	uploader blob.Uploader
	verifier auth.Verifier
	// uploadDir is set for the local blob backend and served under /uploads.
	uploadDir string
}

func openBackends(ctx context.Context, cfg config.Config, log *zap.Logger) (*backends, error) {
	var app *firebase.App
	if cfg.NeedsFirebase() {
		var opts []option.ClientOption
		if cfg.FirebaseCredentials != "" {
			opts = append(opts, option.WithCredentialsFile(cfg.FirebaseCredentials))
		}
		var err error
		app, err = firebase.NewApp(ctx, &firebase.Config{
			ProjectID:     cfg.GoogleCloudProject,
			StorageBucket: cfg.FirebaseStorageBucket,
		}, opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
		}
	}

	b := &backends{}

	switch cfg.StoreBackend {
	case config.StoreFirestore:
		client, err := app.Firestore(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to create firestore client: %w", err)
		}
		b.db = docstore.NewFirestoreStore(client)
	case config.StoreSQLite:
		db, err := docstore.NewSQLiteStore(cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		b.db = db
	default:
		log.Warn("using the in-memory document store; data is lost on restart")
		b.db = docstore.NewMemoryStore()
	}

	switch cfg.BlobBackend {
	case config.BlobGCS:
		client, err := app.Storage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to create storage client: %w", err)
		}
		bucket, err := client.Bucket(cfg.FirebaseStorageBucket)
		if err != nil {
			return nil, fmt.Errorf("failed to open bucket %s: %w", cfg.FirebaseStorageBucket, err)
		}
		b.uploader = blob.NewGCSUploader(bucket, cfg.FirebaseStorageBucket)
	case config.BlobS3:
		u, err := blob.NewS3Uploader(ctx, cfg.S3Region, cfg.S3Bucket, cfg.S3Endpoint)
		if err != nil {
			return nil, err
		}
		b.uploader = u
	default:
		u, err := blob.NewLocalUploader(cfg.LocalUploadDir, cfg.PublicBaseURL)
		if err != nil {
			return nil, err
		}
		b.uploader = u
		b.uploadDir = u.Dir()
	}

	switch cfg.AuthBackend {
	case config.AuthFirebase:
		client, err := app.Auth(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to create firebase auth client: %w", err)
		}
		b.verifier = auth.NewFirebaseVerifier(client)
	default:
		b.verifier = auth.NewHMACVerifier(cfg.JWTSecret)
	}

	return b, nil
}
