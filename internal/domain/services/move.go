package services

import "context"

// MoveKind identifies what is being dragged.
type MoveKind string

const (
	MoveKindFolder   MoveKind = "folder"
	MoveKindDocument MoveKind = "document"
)

// Drop target sentinels. Anything else in MoveRequest.Target is taken as a
// destination folder ID.
const (
	DropTargetRoot   = "root"   // move to corpus root
	DropTargetParent = "parent" // move to the parent of the currently viewed folder
)

// MoveRequest is a resolved drag-and-drop intent: what was dragged and where
// it was dropped. ViewingFolderID is required when Target is "parent" - the
// ".." drop target only means something relative to the folder being viewed.
type MoveRequest struct {
	CorpusID        string   `json:"-"`
	UserID          string   `json:"-"`
	Kind            MoveKind `json:"kind"`
	ID              string   `json:"id"`
	Target          string   `json:"target"`
	ViewingFolderID *string  `json:"viewing_folder_id,omitempty"`
}

// MoveResult reports where the entity ended up.
type MoveResult struct {
	Kind          MoveKind `json:"kind"`
	ID            string   `json:"id"`
	DestinationID *string  `json:"destination_id"` // nil = corpus root
}

// MoveService resolves drop targets to destination folder IDs and dispatches
// the corresponding folder or document move.
type MoveService interface {
	// Move resolves the drop target and performs the move. Folder moves are
	// validated against the dragged folder's own subtree before dispatch.
	Move(ctx context.Context, req *MoveRequest) (*MoveResult, error)

	// ResolveTarget resolves a drop target to a destination folder ID
	// without performing a move (nil = corpus root).
	ResolveTarget(ctx context.Context, corpusID, target string, viewingFolderID *string) (*string, error)
}
