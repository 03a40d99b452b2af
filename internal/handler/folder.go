package handler

import (
	"log/slog"
	"net/http"

	"archiva/internal/domain/services"
	"archiva/internal/httputil"
)

// FolderHandler handles HTTP requests for folder operations
type FolderHandler struct {
	folderService services.FolderService
	logger        *slog.Logger
}

// NewFolderHandler creates a new folder handler
func NewFolderHandler(folderService services.FolderService, logger *slog.Logger) *FolderHandler {
	return &FolderHandler{
		folderService: folderService,
		logger:        logger,
	}
}

// updateFolderDTO is the PATCH wire format. ParentID is tri-state: absent
// leaves the folder in place, null moves it to the corpus root and a string
// moves it under that folder.
type updateFolderDTO struct {
	Name        *string                 `json:"name"`
	Description *string                 `json:"description"`
	Color       *string                 `json:"color"`
	Icon        *string                 `json:"icon"`
	Tags        []string                `json:"tags"`
	Published   *bool                   `json:"published"`
	ParentID    httputil.OptionalString `json:"parent_id"`
}

// Create handles POST /api/folders
func (h *FolderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req services.CreateFolderRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	req.UserID = httputil.GetUserID(r)

	folder, err := h.folderService.CreateFolder(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, folder)
}

// Get handles GET /api/folders/{id}, returning the folder with its computed
// path and breadcrumb
func (h *FolderHandler) Get(w http.ResponseWriter, r *http.Request) {
	corpusID, ok := requireQuery(w, r, "corpus_id")
	if !ok {
		return
	}

	detail, err := h.folderService.GetFolder(r.Context(), r.PathValue("id"), corpusID, httputil.GetUserID(r))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, detail)
}

// Update handles PATCH /api/folders/{id}
func (h *FolderHandler) Update(w http.ResponseWriter, r *http.Request) {
	corpusID, ok := requireQuery(w, r, "corpus_id")
	if !ok {
		return
	}

	var dto updateFolderDTO
	if err := httputil.ParseJSON(w, r, &dto); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	req := &services.UpdateFolderRequest{
		CorpusID:    corpusID,
		UserID:      httputil.GetUserID(r),
		Name:        dto.Name,
		Description: dto.Description,
		Color:       dto.Color,
		Icon:        dto.Icon,
		Tags:        dto.Tags,
		Published:   dto.Published,
		ParentID: services.OptionalID{
			Present: dto.ParentID.Present,
			Value:   dto.ParentID.Value,
		},
	}

	folder, err := h.folderService.UpdateFolder(r.Context(), r.PathValue("id"), req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, folder)
}

// Delete handles DELETE /api/folders/{id}
func (h *FolderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	corpusID, ok := requireQuery(w, r, "corpus_id")
	if !ok {
		return
	}

	if err := h.folderService.DeleteFolder(r.Context(), r.PathValue("id"), corpusID, httputil.GetUserID(r)); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Children handles GET /api/folders/{id}/children
func (h *FolderHandler) Children(w http.ResponseWriter, r *http.Request) {
	corpusID, ok := requireQuery(w, r, "corpus_id")
	if !ok {
		return
	}

	folderID := r.PathValue("id")
	contents, err := h.folderService.ListChildren(r.Context(), &folderID, corpusID, httputil.GetUserID(r))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, contents)
}

// Destinations handles GET /api/folders/{id}/destinations, listing every
// folder the given one may move into
func (h *FolderHandler) Destinations(w http.ResponseWriter, r *http.Request) {
	corpusID, ok := requireQuery(w, r, "corpus_id")
	if !ok {
		return
	}

	destinations, err := h.folderService.ListDestinations(r.Context(), r.PathValue("id"), corpusID, httputil.GetUserID(r))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, destinations)
}
