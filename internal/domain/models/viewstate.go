package models

import "time"

// SelectionKind distinguishes the three things a corpus view can have open:
// the corpus root, a specific folder, or the trash pseudo-folder.
type SelectionKind string

const (
	SelectionRoot   SelectionKind = "root"
	SelectionFolder SelectionKind = "folder"
	SelectionTrash  SelectionKind = "trash"
)

// Selection is the currently open location in the folder tree.
// FolderID is set only when Kind is SelectionFolder.
type Selection struct {
	Kind     SelectionKind `json:"kind"`
	FolderID *string       `json:"folder_id,omitempty"`
}

// ViewState is a user's per-corpus tree view: which folder is open and which
// tree nodes are expanded. Persisted per user+corpus so the view survives
// sessions. Expanded has set semantics; order is not meaningful.
type ViewState struct {
	Selection Selection `json:"selection"`
	Expanded  []string  `json:"expanded"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DefaultViewState is the fallback when no state is stored or the stored
// state cannot be decoded: root selected, nothing expanded.
func DefaultViewState() *ViewState {
	return &ViewState{
		Selection: Selection{Kind: SelectionRoot},
		Expanded:  []string{},
	}
}

// IsExpanded reports whether a folder is in the expanded set.
func (v *ViewState) IsExpanded(folderID string) bool {
	for _, id := range v.Expanded {
		if id == folderID {
			return true
		}
	}
	return false
}

// Expand adds folder IDs to the expanded set, preserving set semantics.
func (v *ViewState) Expand(folderIDs ...string) {
	for _, id := range folderIDs {
		if !v.IsExpanded(id) {
			v.Expanded = append(v.Expanded, id)
		}
	}
}

// Collapse removes a folder ID from the expanded set.
func (v *ViewState) Collapse(folderID string) {
	for i, id := range v.Expanded {
		if id == folderID {
			v.Expanded = append(v.Expanded[:i], v.Expanded[i+1:]...)
			return
		}
	}
}
