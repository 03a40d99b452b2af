package handler

import (
	"log/slog"
	"net/http"

	"archiva/internal/domain/models"
	"archiva/internal/domain/services"
	"archiva/internal/httputil"
)

// ViewHandler handles per-user tree view state requests
type ViewHandler struct {
	viewService services.ViewStateService
	logger      *slog.Logger
}

// NewViewHandler creates a new view state handler
func NewViewHandler(viewService services.ViewStateService, logger *slog.Logger) *ViewHandler {
	return &ViewHandler{
		viewService: viewService,
		logger:      logger,
	}
}

// selectionDTO is the PUT selection wire format. Kind is "root", "folder" or
// "trash"; folder_id is required only for "folder".
type selectionDTO struct {
	Kind     string  `json:"kind"`
	FolderID *string `json:"folder_id"`
}

// Get handles GET /api/corpora/{id}/view
func (h *ViewHandler) Get(w http.ResponseWriter, r *http.Request) {
	state, err := h.viewService.GetView(r.Context(), httputil.GetUserID(r), r.PathValue("id"))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, state)
}

// Select handles PUT /api/corpora/{id}/view/selection
func (h *ViewHandler) Select(w http.ResponseWriter, r *http.Request) {
	var dto selectionDTO
	if err := httputil.ParseJSON(w, r, &dto); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	userID := httputil.GetUserID(r)
	corpusID := r.PathValue("id")

	var state *models.ViewState
	var err error
	switch models.SelectionKind(dto.Kind) {
	case models.SelectionRoot:
		state, err = h.viewService.SelectRoot(r.Context(), userID, corpusID)
	case models.SelectionTrash:
		state, err = h.viewService.SelectTrash(r.Context(), userID, corpusID)
	case models.SelectionFolder:
		if dto.FolderID == nil || *dto.FolderID == "" {
			httputil.RespondError(w, http.StatusBadRequest, "folder_id is required when selecting a folder")
			return
		}
		state, err = h.viewService.SelectFolder(r.Context(), userID, corpusID, *dto.FolderID)
	default:
		httputil.RespondError(w, http.StatusBadRequest, "kind must be one of root, folder, trash")
		return
	}
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, state)
}

// Toggle handles POST /api/corpora/{id}/view/expanded/{folderID}/toggle
func (h *ViewHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	state, err := h.viewService.ToggleExpanded(r.Context(),
		httputil.GetUserID(r), r.PathValue("id"), r.PathValue("folderID"))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, state)
}

// ExpandAll handles POST /api/corpora/{id}/view/expand-all
func (h *ViewHandler) ExpandAll(w http.ResponseWriter, r *http.Request) {
	state, err := h.viewService.ExpandAll(r.Context(), httputil.GetUserID(r), r.PathValue("id"))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, state)
}

// CollapseAll handles POST /api/corpora/{id}/view/collapse-all
func (h *ViewHandler) CollapseAll(w http.ResponseWriter, r *http.Request) {
	state, err := h.viewService.CollapseAll(r.Context(), httputil.GetUserID(r), r.PathValue("id"))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, state)
}
