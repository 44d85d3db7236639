package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mkondo/kajiboard/internal/database"
	"github.com/mkondo/kajiboard/internal/logging"
	"github.com/mkondo/kajiboard/internal/server"
)

func main() {
	port := os.Getenv("KAJIBOARD_PORT")
	if port == "" {
		port = "8080"
	}

	dbPath := os.Getenv("KAJIBOARD_DB_PATH")
	if dbPath == "" {
		dbPath = "kajiboard.db"
	}

	uploadDir := os.Getenv("KAJIBOARD_UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "uploads"
	}

	logger := logging.Setup(os.Getenv("KAJIBOARD_LOG_LEVEL"))

	db, err := database.Open(dbPath)
	if err != nil {
		logger.Error("open database", "path", dbPath, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	srv := server.New(db, server.Config{UploadDir: uploadDir}, logger)

	httpServer := &http.Server{
		Addr:         ":" + port,
		Handler:      srv.Router(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Periodic cleanup of expired sessions and stale rate-limit entries
	stopCleanup := make(chan struct{})
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if n, err := srv.SessionStore().DeleteExpired(); err != nil {
					logger.Error("session cleanup", "error", err)
				} else if n > 0 {
					logger.Info("expired sessions removed", "count", n)
				}
				srv.RateLimiter().Cleanup()
			case <-stopCleanup:
				return
			}
		}
	}()

	go func() {
		fmt.Printf("Kajiboard running at http://localhost:%s\n", port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("\nShutting down...")
	close(stopCleanup)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
		os.Exit(1)
	}
}
