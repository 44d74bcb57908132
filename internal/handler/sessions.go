package handler

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Ateebshaikh21/Thinkora/internal/analysis"
	"github.com/Ateebshaikh21/Thinkora/internal/docs"
	"github.com/Ateebshaikh21/Thinkora/internal/extract"
	"github.com/Ateebshaikh21/Thinkora/internal/model"
	"github.com/Ateebshaikh21/Thinkora/internal/store"
)

type fileStat struct {
	Filename  string             `json:"filename"`
	Type      model.DocumentType `json:"document_type"`
	Size      int                `json:"size"`
	Questions int                `json:"questions_found"`
}

type createSessionResponse struct {
	Session            model.StudySession `json:"session"`
	Files              []fileStat         `json:"files"`
	QuestionsExtracted int                `json:"questions_extracted"`
	Warnings           []string           `json:"warnings"`
}

func (h *Handler) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.config.MaxUploadBytes)
	if err := r.ParseMultipartForm(h.config.MaxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart upload: "+err.Error())
		return
	}
	subject := strings.TrimSpace(r.FormValue("subject"))
	if subject == "" {
		writeError(w, http.StatusBadRequest, "subject is required")
		return
	}
	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		writeError(w, http.StatusBadRequest, "no files uploaded")
		return
	}

	resp := createSessionResponse{Files: []fileStat{}, Warnings: []string{}}
	var documents []model.Document
	for _, fh := range files {
		if !docs.Supported(fh.Filename) {
			resp.Warnings = append(resp.Warnings, fmt.Sprintf("%s: unsupported file type (supported: %s)",
				fh.Filename, strings.Join(docs.SupportedExtensions(), ", ")))
			continue
		}
		f, err := fh.Open()
		if err != nil {
			resp.Warnings = append(resp.Warnings, fmt.Sprintf("%s: cannot open upload", fh.Filename))
			continue
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			resp.Warnings = append(resp.Warnings, fmt.Sprintf("%s: cannot read upload", fh.Filename))
			continue
		}
		text, err := docs.Extract(r.Context(), fh.Filename, data)
		if err != nil {
			slog.Warn("document extraction failed", "file", fh.Filename, "error", err)
			resp.Warnings = append(resp.Warnings, fmt.Sprintf("%s: %v", fh.Filename, err))
			continue
		}
		if text == "" {
			resp.Warnings = append(resp.Warnings, fmt.Sprintf("%s: no text content", fh.Filename))
			continue
		}
		documents = append(documents, model.Document{
			Filename: fh.Filename,
			Type:     analysis.DocumentType(fh.Filename),
			Content:  text,
			Size:     len(data),
		})
	}
	if len(documents) == 0 {
		writeJSON(w, http.StatusBadRequest, struct {
			Error    string   `json:"error"`
			Warnings []string `json:"warnings"`
		}{"no file could be processed", resp.Warnings})
		return
	}

	sess, err := h.store.CreateSession(r.Context(), model.StudySession{
		Subject: subject,
		UserID:  r.FormValue("user_id"),
	})
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	for _, d := range documents {
		d.SessionID = sess.ID
		saved, err := h.store.AddDocument(r.Context(), d)
		if err != nil {
			writeStoreError(w, r, err)
			return
		}
		n := len(extract.Extract(d.Content))
		resp.QuestionsExtracted += n
		resp.Files = append(resp.Files, fileStat{Filename: saved.Filename, Type: saved.Type, Size: saved.Size, Questions: n})
		sess.Documents = append(sess.Documents, saved)
	}
	resp.Session = sess

	slog.Info("created study session", "session", sess.ID, "files", len(documents), "questions", resp.QuestionsExtracted)
	writeJSON(w, http.StatusCreated, resp)
}

func (h *Handler) handleListSessions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	sessions, err := h.store.ListSessions(r.Context(), q.Get("user_id"), q.Get("subject"))
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"sessions": sessions, "total": len(sessions)})
}

func (h *Handler) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := h.store.GetSession(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

func (h *Handler) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")
	if err := h.store.DeleteSession(r.Context(), id); err != nil {
		writeStoreError(w, r, err)
		return
	}
	slog.Info("deleted study session", "session", id)
	writeJSON(w, http.StatusOK, map[string]string{"deleted": id})
}

func (h *Handler) handleRenameSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")
	newID := r.URL.Query().Get("new_id")
	if store.CleanID(newID) == "" {
		writeError(w, http.StatusBadRequest, "new_id must contain letters or digits")
		return
	}
	sess, err := h.store.RenameSession(r.Context(), id, newID)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	slog.Info("renamed study session", "from", id, "to", sess.ID)
	writeJSON(w, http.StatusOK, sess)
}

func (h *Handler) handleGenerateQuestions(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")
	sess, err := h.store.GetSession(r.Context(), id)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	if len(sess.Documents) == 0 {
		writeError(w, http.StatusBadRequest, "session has no documents")
		return
	}

	report := analysis.Analyze(sess.Documents)
	if report.UniqueQuestions == 0 {
		writeError(w, http.StatusBadRequest, "no questions could be extracted from the session documents")
		return
	}
	if err := h.store.SaveQuestionSet(r.Context(), id, report.Questions); err != nil {
		writeStoreError(w, r, err)
		return
	}
	slog.Info("generated question set", "session", id, "extracted", report.QuestionsExtracted, "unique", report.UniqueQuestions)
	writeJSON(w, http.StatusOK, report)
}
