package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"studyhelp.app/backend/internal/api"
	"studyhelp.app/backend/internal/auth"
	"studyhelp.app/backend/internal/config"
	"studyhelp.app/backend/internal/core"
	"studyhelp.app/backend/internal/logger"
	"studyhelp.app/backend/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	zl, err := logger.New(cfg.LogLevel, cfg.Development())
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zl.Sync()

	// Command line flags for issuing development tokens
	issueFor := flag.String("issue-token", "", "Print a development JWT for the given uid and exit")
	issueEmail := flag.String("email", "", "E-mail claim of the token printed by -issue-token")
	flag.Parse()

	if *issueFor != "" {
		if cfg.AuthBackend != config.AuthJWT {
			log.Fatalf("-issue-token requires AUTH_BACKEND=%s", config.AuthJWT)
		}
		token, err := auth.NewHMACVerifier(cfg.JWTSecret).Issue(*issueFor, *issueEmail, 24*time.Hour)
		if err != nil {
			log.Fatalf("Failed to issue token: %v", err)
		}
		fmt.Println(token)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	b, err := openBackends(ctx, cfg, zl)
	if err != nil {
		zl.Fatal("failed to initialize backends", zap.Error(err))
	}
	defer b.db.Close()

	messages := store.NewMessageStore(b.db)
	metas := store.NewChatMetaStore(b.db, messages, zl)
	chatService := core.NewChatService(messages, metas, b.uploader, zl)
	userService := core.NewUserService(store.NewUserStore(b.db), b.uploader, zl)
	catalogService := core.NewCatalogService(store.NewCourseStore(b.db))

	limiter := api.NewIPRateLimiter(cfg.RateLimitPerMinute, zl)
	go limiter.Cleanup(ctx, 5*time.Minute)

	apiHandler := api.NewAPIHandler(chatService, userService, catalogService, zl, cfg.MaxUploadBytes)
	router := api.NewRouter(apiHandler, b.verifier, zl, api.RouterOptions{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		UploadDir:      b.uploadDir,
		RateLimiter:    limiter,
		Metrics:        api.NewMetrics(),
	})

	serverAddr := fmt.Sprintf(":%s", cfg.HTTPPort)
	srv := &http.Server{
		Addr:         serverAddr,
		Handler:      router,
		ReadTimeout:  30 * time.Second, // multipart uploads
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		zl.Info("starting server",
			zap.String("addr", serverAddr),
			zap.String("store", cfg.StoreBackend),
			zap.String("blob", cfg.BlobBackend),
			zap.String("auth", cfg.AuthBackend))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zl.Fatal("could not listen", zap.String("addr", serverAddr), zap.Error(err))
		}
	}()

	<-ctx.Done()
	zl.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zl.Error("server forced to shutdown", zap.Error(err))
		os.Exit(1)
	}
	zl.Info("server exiting gracefully")
}
