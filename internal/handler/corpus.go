package handler

import (
	"log/slog"
	"net/http"

	"archiva/internal/domain/services"
	"archiva/internal/httputil"
)

// CorpusHandler handles HTTP requests for corpus operations
type CorpusHandler struct {
	corpusService services.CorpusService
	logger        *slog.Logger
}

// NewCorpusHandler creates a new corpus handler
func NewCorpusHandler(corpusService services.CorpusService, logger *slog.Logger) *CorpusHandler {
	return &CorpusHandler{
		corpusService: corpusService,
		logger:        logger,
	}
}

// Create handles POST /api/corpora
func (h *CorpusHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req services.CreateCorpusRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	req.OwnerID = httputil.GetUserID(r)

	corpus, err := h.corpusService.CreateCorpus(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, corpus)
}

// List handles GET /api/corpora
func (h *CorpusHandler) List(w http.ResponseWriter, r *http.Request) {
	corpora, err := h.corpusService.ListCorpora(r.Context(), httputil.GetUserID(r))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, corpora)
}

// Get handles GET /api/corpora/{id}
func (h *CorpusHandler) Get(w http.ResponseWriter, r *http.Request) {
	corpus, err := h.corpusService.GetCorpus(r.Context(), r.PathValue("id"), httputil.GetUserID(r))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, corpus)
}

// Update handles PATCH /api/corpora/{id}
func (h *CorpusHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req services.UpdateCorpusRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	corpus, err := h.corpusService.UpdateCorpus(r.Context(), r.PathValue("id"), httputil.GetUserID(r), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, corpus)
}

// Delete handles DELETE /api/corpora/{id}
func (h *CorpusHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.corpusService.DeleteCorpus(r.Context(), r.PathValue("id"), httputil.GetUserID(r)); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
