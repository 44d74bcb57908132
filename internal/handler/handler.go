// Package handler serves the JSON API.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/Ateebshaikh21/Thinkora/internal/i18n"
	"github.com/Ateebshaikh21/Thinkora/internal/llm"
	"github.com/Ateebshaikh21/Thinkora/internal/store"
)

// Config holds handler settings.
type Config struct {
	// QuizTimeLimit is the time allowed per quiz, in seconds.
	QuizTimeLimit int
	// TokenHash is a bcrypt hash of the API token guarding destructive
	// routes. Empty disables the guard.
	TokenHash string
	// CORSOrigins lists the allowed browser origins.
	CORSOrigins []string
	// MaxUploadBytes caps a multipart upload.
	MaxUploadBytes int64
}

const (
	defaultTimeLimit  = 1800
	defaultMaxUpload  = 32 << 20
	defaultQuizCount  = 20
	maxQuizCount      = 100
	healthPingTimeout = 2 * time.Second
)

// Handler holds shared dependencies for HTTP handlers.
type Handler struct {
	store  *store.Store
	llm    *llm.Client
	config Config
}

// New creates a new Handler. A nil llm client disables explanations.
func New(s *store.Store, l *llm.Client, cfg Config) *Handler {
	if cfg.QuizTimeLimit <= 0 {
		cfg.QuizTimeLimit = defaultTimeLimit
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = defaultMaxUpload
	}
	return &Handler{store: s, llm: l, config: cfg}
}

// Router builds the chi router with middleware and all routes.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	if len(h.config.CORSOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   h.config.CORSOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Accept-Language", "Authorization", "Content-Type", tokenHeader},
			AllowCredentials: false,
			MaxAge:           300,
		}))
	}
	r.Use(i18n.Middleware())
	h.Routes(r)
	return r
}

// Routes registers all HTTP routes.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/health", h.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/sessions", h.handleCreateSession)
		r.Get("/sessions", h.handleListSessions)
		r.Route("/sessions/{sessionID}", func(r chi.Router) {
			r.Get("/", h.handleGetSession)
			r.With(h.requireToken).Delete("/", h.handleDeleteSession)
			r.With(h.requireToken).Put("/rename", h.handleRenameSession)
			r.Post("/questions", h.handleGenerateQuestions)
			r.Get("/questions/export", h.handleExportQuestions)
			r.Post("/quiz", h.handleGenerateQuiz)
			r.Get("/quiz/history", h.handleQuizHistory)
			r.Get("/quiz/export", h.handleExportQuiz)
		})
		r.Post("/quiz/submit", h.handleSubmitQuiz)
		r.Post("/explanations", h.handleExplain)
	})
}

type healthResponse struct {
	Status    string   `json:"status"`
	Database  string   `json:"database"`
	LLM       bool     `json:"llm_configured"`
	Languages []string `json:"languages"`
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{Status: "ok", Database: "ok", LLM: h.llm != nil, Languages: []string{}}
	for _, tag := range i18n.Languages() {
		resp.Languages = append(resp.Languages, tag.String())
	}

	ctx, cancel := context.WithTimeout(r.Context(), healthPingTimeout)
	defer cancel()
	if err := h.store.Ping(ctx); err != nil {
		slog.Error("database ping failed", "error", err)
		resp.Status, resp.Database = "degraded", "unavailable"
		writeJSON(w, http.StatusServiceUnavailable, resp)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
