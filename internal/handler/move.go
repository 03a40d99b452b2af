package handler

import (
	"log/slog"
	"net/http"

	"archiva/internal/domain/services"
	"archiva/internal/httputil"
)

// MoveHandler handles drag-and-drop move requests
type MoveHandler struct {
	moveService services.MoveService
	logger      *slog.Logger
}

// NewMoveHandler creates a new move handler
func NewMoveHandler(moveService services.MoveService, logger *slog.Logger) *MoveHandler {
	return &MoveHandler{
		moveService: moveService,
		logger:      logger,
	}
}

// Move handles POST /api/corpora/{id}/moves. The body carries the drop
// intent: what was dragged (folder or document), where it was dropped (a
// folder ID or the "root"/"parent" sentinels) and, for "parent", which
// folder the client was viewing.
func (h *MoveHandler) Move(w http.ResponseWriter, r *http.Request) {
	var req services.MoveRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	req.CorpusID = r.PathValue("id")
	req.UserID = httputil.GetUserID(r)

	result, err := h.moveService.Move(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, result)
}
