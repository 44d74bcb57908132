package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Ateebshaikh21/Thinkora/internal/analysis"
	"github.com/Ateebshaikh21/Thinkora/internal/export"
	"github.com/Ateebshaikh21/Thinkora/internal/i18n"
	"github.com/Ateebshaikh21/Thinkora/internal/model"
	"github.com/Ateebshaikh21/Thinkora/internal/quizgen"
	"github.com/Ateebshaikh21/Thinkora/internal/scoring"
)

type quizResponse struct {
	model.Quiz
	TotalQuestions int    `json:"total_questions"`
	Instructions   string `json:"instructions"`
	Summary        string `json:"summary"`
}

func (h *Handler) handleGenerateQuiz(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")
	q := r.URL.Query()

	count := defaultQuizCount
	if v := q.Get("count"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > maxQuizCount {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("count must be between 1 and %d", maxQuizCount))
			return
		}
		count = n
	}
	seed := uint64(time.Now().UnixNano())
	if v := q.Get("seed"); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "seed must be a non-negative integer")
			return
		}
		seed = n
	}
	trueFalse := 0
	if v := q.Get("true_false"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 || n > maxQuizCount {
			writeError(w, http.StatusBadRequest, "true_false must be a small non-negative integer")
			return
		}
		trueFalse = n
	}

	sess, err := h.store.GetSession(r.Context(), id)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	if sess.Questions == nil || sess.Questions.Len() == 0 {
		writeError(w, http.StatusBadRequest, "generate questions for this session first")
		return
	}
	items, err := quizgen.Build(analysis.Content(sess.Documents), sess.Questions.All(), count, trueFalse, seed)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("session question set is too small: %v", err))
		return
	}

	quiz, err := h.store.SaveQuiz(r.Context(), model.Quiz{
		SessionID: id,
		Items:     items,
		TimeLimit: h.config.QuizTimeLimit,
	})
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	slog.Info("generated quiz", "session", id, "quiz", quiz.ID, "items", len(items), "seed", seed)

	ctx := r.Context()
	writeJSON(w, http.StatusCreated, quizResponse{
		Quiz:           quiz,
		TotalQuestions: len(items),
		Instructions:   i18n.Td(ctx, "QuizInstructions", map[string]any{"Minutes": quiz.TimeLimit / 60}),
		Summary:        i18n.Tp(ctx, "QuizQuestionCount", len(items)),
	})
}

func (h *Handler) handleSubmitQuiz(w http.ResponseWriter, r *http.Request) {
	var sub model.QuizSubmission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}
	if sub.QuizID == "" {
		writeError(w, http.StatusBadRequest, "quiz_id is required")
		return
	}
	quiz, err := h.store.GetQuiz(r.Context(), sub.QuizID)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	if sub.SessionID == "" {
		sub.SessionID = quiz.SessionID
	}
	if sub.SessionID != quiz.SessionID {
		writeError(w, http.StatusBadRequest, "quiz does not belong to the given session")
		return
	}

	res := scoring.Evaluate(r.Context(), quiz.Items, sub)
	if err := h.store.SaveQuizResult(r.Context(), res); err != nil {
		writeStoreError(w, r, err)
		return
	}
	slog.Info("scored quiz", "quiz", quiz.ID, "user", sub.UserID, "percentage", res.Percentage, "grade", res.Grade)
	writeJSON(w, http.StatusOK, res)
}

func (h *Handler) handleQuizHistory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")
	if _, err := h.store.GetSession(r.Context(), id); err != nil {
		writeStoreError(w, r, err)
		return
	}
	results, err := h.store.ListQuizResults(r.Context(), id, r.URL.Query().Get("user_id"))
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, scoring.Summarize(results))
}

func (h *Handler) handleExportQuiz(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "csv"
	}
	if format != "csv" && format != "pdf" {
		writeError(w, http.StatusBadRequest, "format must be csv or pdf")
		return
	}

	sess, err := h.store.GetSession(r.Context(), id)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	quiz, err := h.store.LatestQuiz(r.Context(), id)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	filename := fmt.Sprintf("%s-quiz.%s", id, format)
	if format == "csv" {
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		if err := export.WriteCSV(w, quiz.Items); err != nil {
			slog.Error("write quiz csv", "session", id, "error", err)
		}
		return
	}

	out, err := export.QuizPDF(sess.DisplayName+" Quiz", quiz.Items)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	writePDF(w, filename, out)
}

func (h *Handler) handleExportQuestions(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")
	sess, err := h.store.GetSession(r.Context(), id)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	if sess.Questions == nil {
		writeError(w, http.StatusBadRequest, "generate questions for this session first")
		return
	}
	out, err := export.QuestionSetPDF(sess.DisplayName+" Important Questions", *sess.Questions)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	writePDF(w, id+"-questions.pdf", out)
}

func writePDF(w http.ResponseWriter, filename string, data []byte) {
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	if _, err := w.Write(data); err != nil {
		slog.Error("write pdf", "file", filename, "error", err)
	}
}
