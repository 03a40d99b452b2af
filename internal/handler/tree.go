package handler

import (
	"log/slog"
	"net/http"

	"archiva/internal/domain/services"
	"archiva/internal/httputil"
)

// TreeHandler handles HTTP requests for tree operations
type TreeHandler struct {
	treeService   services.TreeService
	folderService services.FolderService
	logger        *slog.Logger
}

// NewTreeHandler creates a new tree handler
func NewTreeHandler(treeService services.TreeService, folderService services.FolderService, logger *slog.Logger) *TreeHandler {
	return &TreeHandler{
		treeService:   treeService,
		folderService: folderService,
		logger:        logger,
	}
}

// GetTree handles GET /api/corpora/{id}/tree
func (h *TreeHandler) GetTree(w http.ResponseWriter, r *http.Request) {
	corpusID := r.PathValue("id")
	userID := httputil.GetUserID(r)

	tree, err := h.treeService.GetCorpusTree(r.Context(), corpusID, userID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, tree)
}

// ListFolders handles GET /api/corpora/{id}/folders, returning the flat
// folder collection the tree derives from
func (h *TreeHandler) ListFolders(w http.ResponseWriter, r *http.Request) {
	corpusID := r.PathValue("id")
	userID := httputil.GetUserID(r)

	folders, err := h.folderService.ListFolders(r.Context(), corpusID, userID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, folders)
}

// GetTrash handles GET /api/corpora/{id}/trash
func (h *TreeHandler) GetTrash(w http.ResponseWriter, r *http.Request) {
	corpusID := r.PathValue("id")
	userID := httputil.GetUserID(r)

	trash, err := h.treeService.GetTrash(r.Context(), corpusID, userID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, trash)
}

// ListRootChildren handles GET /api/corpora/{id}/children, the root-level
// counterpart of a folder's children listing
func (h *TreeHandler) ListRootChildren(w http.ResponseWriter, r *http.Request) {
	corpusID := r.PathValue("id")
	userID := httputil.GetUserID(r)

	contents, err := h.folderService.ListChildren(r.Context(), nil, corpusID, userID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, contents)
}
