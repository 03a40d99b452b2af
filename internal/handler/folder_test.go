package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"archiva/internal/domain"
	"archiva/internal/domain/models"
	"archiva/internal/domain/services"
)

// stubFolderService records the last update request and returns canned
// responses.
type stubFolderService struct {
	lastUpdate *services.UpdateFolderRequest
	updateErr  error
}

func (s *stubFolderService) CreateFolder(ctx context.Context, req *services.CreateFolderRequest) (*models.Folder, error) {
	return &models.Folder{ID: "folder-1", Name: req.Name}, nil
}

func (s *stubFolderService) GetFolder(ctx context.Context, id, corpusID, userID string) (*services.FolderDetail, error) {
	return nil, domain.ErrNotFound
}

func (s *stubFolderService) UpdateFolder(ctx context.Context, id string, req *services.UpdateFolderRequest) (*models.Folder, error) {
	s.lastUpdate = req
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	return &models.Folder{ID: id}, nil
}

func (s *stubFolderService) DeleteFolder(ctx context.Context, id, corpusID, userID string) error {
	return nil
}

func (s *stubFolderService) ListFolders(ctx context.Context, corpusID, userID string) ([]models.Folder, error) {
	return nil, nil
}

func (s *stubFolderService) ListChildren(ctx context.Context, folderID *string, corpusID, userID string) (*services.FolderContents, error) {
	return &services.FolderContents{}, nil
}

func (s *stubFolderService) ListDestinations(ctx context.Context, id, corpusID, userID string) ([]models.Folder, error) {
	return nil, nil
}

var _ services.FolderService = (*stubFolderService)(nil)

func patchFolder(t *testing.T, h *FolderHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	r := httptest.NewRequest(http.MethodPatch, "/api/folders/folder-1?corpus_id=corpus-1", strings.NewReader(body))
	r.SetPathValue("id", "folder-1")
	w := httptest.NewRecorder()
	h.Update(w, r)
	return w
}

func TestFolderUpdate_ParentIDTriState(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantPresent bool
		wantValue   *string
	}{
		{"absent leaves folder in place", `{"name": "Renamed"}`, false, nil},
		{"null moves to root", `{"parent_id": null}`, true, nil},
		{"id moves under folder", `{"parent_id": "folder-2"}`, true, strPtr("folder-2")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubFolderService{}
			h := NewFolderHandler(svc, slog.Default())

			w := patchFolder(t, h, tt.body)
			if w.Code != http.StatusOK {
				t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
			}
			if svc.lastUpdate == nil {
				t.Fatal("service was not called")
			}

			got := svc.lastUpdate.ParentID
			if got.Present != tt.wantPresent {
				t.Errorf("Present = %v, want %v", got.Present, tt.wantPresent)
			}
			switch {
			case tt.wantValue == nil && got.Value != nil:
				t.Errorf("Value = %q, want nil", *got.Value)
			case tt.wantValue != nil && (got.Value == nil || *got.Value != *tt.wantValue):
				t.Errorf("Value = %v, want %q", got.Value, *tt.wantValue)
			}
		})
	}
}

func TestFolderUpdate_RequiresCorpusID(t *testing.T) {
	h := NewFolderHandler(&stubFolderService{}, slog.Default())

	r := httptest.NewRequest(http.MethodPatch, "/api/folders/folder-1", strings.NewReader(`{}`))
	r.SetPathValue("id", "folder-1")
	w := httptest.NewRecorder()
	h.Update(w, r)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestFolderUpdate_ConflictCarriesResourceID(t *testing.T) {
	svc := &stubFolderService{updateErr: &domain.ConflictError{
		Message:      "a folder named 'Legal' already exists here",
		ResourceType: "folder",
		ResourceID:   "folder-9",
	}}
	h := NewFolderHandler(svc, slog.Default())

	w := patchFolder(t, h, `{"name": "Legal"}`)
	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/problem+json" {
		t.Errorf("content type = %q", ct)
	}

	var problem map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &problem); err != nil {
		t.Fatalf("decode problem: %v", err)
	}
	if problem["resource_id"] != "folder-9" {
		t.Errorf("resource_id = %v, want folder-9", problem["resource_id"])
	}
	if problem["resource_type"] != "folder" {
		t.Errorf("resource_type = %v, want folder", problem["resource_type"])
	}
}

func strPtr(s string) *string { return &s }
