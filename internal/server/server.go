package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/mhosigiri/FeedbackAI/internal/config"
	"github.com/mhosigiri/FeedbackAI/internal/models"
	"github.com/mhosigiri/FeedbackAI/internal/pipeline"
	"github.com/mhosigiri/FeedbackAI/internal/storage"
	"github.com/sirupsen/logrus"
)

// Server is the thin HTTP surface over the pipeline. Routing and transport
// only; all behavior lives in the injected collaborators.
type Server struct {
	config   *config.Config
	pipeline *pipeline.Service
	store    storage.Store
}

// New creates a new HTTP server wrapper. store may be nil when feedback
// persistence is not configured.
func New(cfg *config.Config, pipelineService *pipeline.Service, store storage.Store) *Server {
	return &Server{
		config:   cfg,
		pipeline: pipelineService,
		store:    store,
	}
}

// Router builds the route table.
func (s *Server) Router() *mux.Router {
	router := mux.NewRouter()
	router.Use(corsMiddleware)

	router.HandleFunc("/health", s.handleHealth).Methods("GET")
	router.HandleFunc("/config", s.handleConfig).Methods("GET")
	router.HandleFunc("/posts", s.handlePosts).Methods("GET")
	router.HandleFunc("/analyze", s.handleAnalyze).Methods("POST")
	router.HandleFunc("/feedback", s.handleSubmitFeedback).Methods("POST")
	router.HandleFunc("/feedback/analyses", s.handleListFeedback).Methods("GET")

	return router
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{
		"has_reddit_credentials":     s.config.HasRedditCredentials(),
		"has_enrichment_credentials": s.config.HasEnrichmentCredentials(),
		"has_storage_credentials":    s.config.HasStorageCredentials(),
	})
}

func (s *Server) handlePosts(w http.ResponseWriter, r *http.Request) {
	query := models.Query{
		Text:  r.URL.Query().Get("query"),
		Limit: parseIntParam(r, "limit", 5),
	}
	if query.Text == "" {
		query.Text = s.config.BrandName
	}

	posts, err := s.pipeline.FetchPosts(r.Context(), query)
	if err != nil {
		writeError(w, err)
		return
	}
	if posts == nil {
		posts = []models.Post{}
	}

	writeJSON(w, http.StatusOK, posts)
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var query models.Query
	if err := json.NewDecoder(r.Body).Decode(&query); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	result, err := s.pipeline.Analyze(r.Context(), query)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleSubmitFeedback(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "feedback storage not configured"})
		return
	}

	var record models.FeedbackRecord
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if record.Text == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "feedback text must not be empty"})
		return
	}

	if err := storage.SaveFeedback(s.store, record); err != nil {
		logrus.Errorf("Failed to save feedback record: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to save feedback"})
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"status": "stored"})
}

func (s *Server) handleListFeedback(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "feedback storage not configured"})
		return
	}

	limit := parseIntParam(r, "limit", 10)
	records, err := storage.ListFeedback(s.store, limit)
	if err != nil {
		logrus.Errorf("Failed to list feedback records: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list feedback"})
		return
	}
	if records == nil {
		records = []models.FeedbackRecord{}
	}

	writeJSON(w, http.StatusOK, records)
}

func writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, pipeline.ErrInvalidQuery) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	logrus.Errorf("Request failed: %v", err)
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logrus.Errorf("Failed to encode response: %v", err)
	}
}

func parseIntParam(r *http.Request, name string, defaultValue int) int {
	if raw := r.URL.Query().Get(name); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			return parsed
		}
	}
	return defaultValue
}
