package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"archiva/internal/domain/services"
	"archiva/internal/httputil"
)

// DocumentHandler handles HTTP requests for document operations
type DocumentHandler struct {
	docService services.DocumentService
	logger     *slog.Logger
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(docService services.DocumentService, logger *slog.Logger) *DocumentHandler {
	return &DocumentHandler{
		docService: docService,
		logger:     logger,
	}
}

// updateDocumentDTO is the PATCH wire format. FolderID is tri-state, like a
// folder's parent_id.
type updateDocumentDTO struct {
	Name     *string                 `json:"name"`
	Content  *string                 `json:"content"`
	FolderID httputil.OptionalString `json:"folder_id"`
}

// Create handles POST /api/documents
func (h *DocumentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req services.CreateDocumentRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	req.UserID = httputil.GetUserID(r)

	doc, err := h.docService.CreateDocument(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, doc)
}

// Get handles GET /api/documents/{id}
func (h *DocumentHandler) Get(w http.ResponseWriter, r *http.Request) {
	corpusID, ok := requireQuery(w, r, "corpus_id")
	if !ok {
		return
	}

	doc, err := h.docService.GetDocument(r.Context(), r.PathValue("id"), corpusID, httputil.GetUserID(r))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, doc)
}

// Update handles PATCH /api/documents/{id}
func (h *DocumentHandler) Update(w http.ResponseWriter, r *http.Request) {
	corpusID, ok := requireQuery(w, r, "corpus_id")
	if !ok {
		return
	}

	var dto updateDocumentDTO
	if err := httputil.ParseJSON(w, r, &dto); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	req := &services.UpdateDocumentRequest{
		CorpusID: corpusID,
		UserID:   httputil.GetUserID(r),
		Name:     dto.Name,
		Content:  dto.Content,
		FolderID: services.OptionalID{
			Present: dto.FolderID.Present,
			Value:   dto.FolderID.Value,
		},
	}

	doc, err := h.docService.UpdateDocument(r.Context(), r.PathValue("id"), req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, doc)
}

// Delete handles DELETE /api/documents/{id}
func (h *DocumentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	corpusID, ok := requireQuery(w, r, "corpus_id")
	if !ok {
		return
	}

	if err := h.docService.DeleteDocument(r.Context(), r.PathValue("id"), corpusID, httputil.GetUserID(r)); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Search handles GET /api/documents/search
func (h *DocumentHandler) Search(w http.ResponseWriter, r *http.Request) {
	corpusID, ok := requireQuery(w, r, "corpus_id")
	if !ok {
		return
	}
	query, ok := requireQuery(w, r, "q")
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	results, err := h.docService.SearchDocuments(r.Context(), &services.SearchDocumentsRequest{
		CorpusID: corpusID,
		UserID:   httputil.GetUserID(r),
		Query:    query,
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, results)
}
