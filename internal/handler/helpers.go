package handler

import (
	"errors"
	"net/http"

	"archiva/internal/domain"
	"archiva/internal/httputil"
)

// handleError converts domain errors to HTTP responses
func handleError(w http.ResponseWriter, err error) {
	var httpErr domain.HTTPError
	if errors.As(err, &httpErr) {
		handleConflictDetail(w, err, httpErr.StatusCode())
		return
	}

	switch {
	case errors.Is(err, domain.ErrValidation):
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		httputil.RespondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		httputil.RespondError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		httputil.RespondError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, domain.ErrConflict):
		httputil.RespondError(w, http.StatusConflict, err.Error())
	default:
		httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
	}
}

// handleConflictDetail surfaces the conflicting resource's identity on 409s
// so clients can link to the existing record instead of retrying blindly.
func handleConflictDetail(w http.ResponseWriter, err error, status int) {
	var conflictErr *domain.ConflictError
	if errors.As(err, &conflictErr) && conflictErr.ResourceID != "" {
		httputil.RespondErrorWithExtras(w, status, conflictErr.Error(), map[string]interface{}{
			"resource_type": conflictErr.ResourceType,
			"resource_id":   conflictErr.ResourceID,
		})
		return
	}
	httputil.RespondError(w, status, err.Error())
}

// requireQuery reads a mandatory query parameter, writing a 400 when absent.
func requireQuery(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	value := r.URL.Query().Get(name)
	if value == "" {
		httputil.RespondError(w, http.StatusBadRequest, name+" query parameter is required")
		return "", false
	}
	return value, true
}
