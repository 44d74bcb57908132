package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Ateebshaikh21/Thinkora/internal/llm"
)

func (h *Handler) handleExplain(w http.ResponseWriter, r *http.Request) {
	if h.llm == nil {
		writeError(w, http.StatusServiceUnavailable, llm.ErrNotConfigured.Error())
		return
	}
	var req llm.ExplanationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		writeError(w, http.StatusBadRequest, "question is required")
		return
	}
	if req.Kind != "" && !req.Kind.Valid() {
		writeError(w, http.StatusBadRequest, "kind must be detailed, short or tips")
		return
	}

	exp, err := h.llm.Explain(r.Context(), req)
	if errors.Is(err, llm.ErrNotConfigured) {
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	if err != nil {
		slog.Error("explanation failed", "kind", req.Kind, "error", err)
		writeError(w, http.StatusBadGateway, "explanation service failed")
		return
	}
	writeJSON(w, http.StatusOK, exp)
}
