package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/mhosigiri/FeedbackAI/internal/analysis"
	"github.com/mhosigiri/FeedbackAI/internal/config"
	"github.com/mhosigiri/FeedbackAI/internal/enrichment"
	"github.com/mhosigiri/FeedbackAI/internal/models"
	"github.com/mhosigiri/FeedbackAI/internal/notifications"
	"github.com/mhosigiri/FeedbackAI/internal/pipeline"
	"github.com/mhosigiri/FeedbackAI/internal/scheduler"
	"github.com/mhosigiri/FeedbackAI/internal/server"
	"github.com/mhosigiri/FeedbackAI/internal/sources"
	"github.com/mhosigiri/FeedbackAI/internal/storage"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load environment variables from .env file if it exists
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logrus.SetLevel(logrus.InfoLevel)
	if cfg.Debug {
		logrus.SetLevel(logrus.DebugLevel)
	}
	logrus.SetFormatter(&logrus.JSONFormatter{})

	logrus.Infof("Starting FeedbackAI for brand %s", cfg.BrandName)

	// Feedback storage is optional; without it the feedback source and
	// submission endpoints stay disabled.
	var store storage.Store
	if cfg.HasStorageCredentials() {
		azureStore, err := storage.NewAzureStore(cfg.StorageAccount, cfg.StorageContainer)
		if err != nil {
			logrus.Fatalf("Failed to initialize storage: %v", err)
		}
		store = azureStore
	} else {
		logrus.Warn("AZURE_STORAGE_ACCOUNT not set, feedback storage disabled")
	}

	srcs := []sources.Source{
		sources.NewRedditSource(sources.RedditConfig{
			Brand:        cfg.BrandName,
			ClientID:     cfg.RedditClientID,
			ClientSecret: cfg.RedditClientSecret,
			BearerToken:  cfg.RedditBearerToken,
			UserAgent:    cfg.RedditUserAgent,
			BaseURL:      cfg.RedditBaseURL,
			Subreddits:   cfg.Subreddits,
		}),
		sources.NewFeedbackSource(store),
	}

	classifier := enrichment.NewClient(enrichment.ClientConfig{
		APIKey:  cfg.EnrichmentAPIKey,
		BaseURL: cfg.EnrichmentBaseURL,
		Model:   cfg.EnrichmentModel,
		Brand:   cfg.BrandName,
	})

	filter := analysis.NewRelevanceFilter(cfg.BrandName)
	pipelineService := pipeline.NewService(filter, srcs, classifier)

	notifier := notifications.NewService(notifications.Config{
		Brand:             cfg.BrandName,
		NotificationEmail: cfg.NotificationEmail,
		SMTPHost:          cfg.SMTPHost,
		SMTPPort:          cfg.SMTPPort,
		SMTPUsername:      cfg.SMTPUsername,
		SMTPPassword:      cfg.SMTPPassword,
		WebhookURL:        cfg.WebhookURL,
	})

	digestQuery := models.Query{Text: cfg.DigestQuery, Limit: cfg.DigestLimit}
	schedulerService := scheduler.NewService(cfg.DigestSchedule, digestQuery, pipelineService, notifier)
	if err := schedulerService.Start(); err != nil {
		logrus.Fatalf("Failed to start scheduler: %v", err)
	}
	defer schedulerService.Stop()

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      server.New(cfg, pipelineService, store).Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logrus.Infof("HTTP server starting on port %s", cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("HTTP server failed: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	logrus.Info("Server exited")
}
