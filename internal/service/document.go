package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"archiva/internal/config"
	"archiva/internal/domain"
	"archiva/internal/domain/models"
	"archiva/internal/domain/repositories"
	"archiva/internal/domain/services"
)

// documentService implements the DocumentService interface
type documentService struct {
	docRepo    repositories.DocumentRepository
	folderRepo repositories.FolderRepository
	corpusRepo repositories.CorpusRepository
	listCache  repositories.ListCache
	logger     *slog.Logger
}

// NewDocumentService creates a new document service
func NewDocumentService(
	docRepo repositories.DocumentRepository,
	folderRepo repositories.FolderRepository,
	corpusRepo repositories.CorpusRepository,
	listCache repositories.ListCache,
	logger *slog.Logger,
) services.DocumentService {
	return &documentService{
		docRepo:    docRepo,
		folderRepo: folderRepo,
		corpusRepo: corpusRepo,
		listCache:  listCache,
		logger:     logger,
	}
}

// CreateDocument creates a new document
func (s *documentService) CreateDocument(ctx context.Context, req *services.CreateDocumentRequest) (*models.Document, error) {
	if _, err := s.corpusRepo.GetByID(ctx, req.CorpusID, req.UserID); err != nil {
		return nil, err
	}

	req.Name = strings.TrimSpace(req.Name)
	if err := validation.ValidateStruct(req,
		validation.Field(&req.CorpusID, validation.Required),
		validation.Field(&req.Name,
			validation.Required,
			validation.Length(1, config.MaxDocumentNameLength),
		),
	); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	// Empty-string folder_id means the corpus root, same as absent
	if req.FolderID != nil && *req.FolderID == "" {
		req.FolderID = nil
	}
	if req.FolderID != nil {
		if _, err := s.folderRepo.GetByID(ctx, *req.FolderID, req.CorpusID); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	doc := &models.Document{
		CorpusID:  req.CorpusID,
		FolderID:  req.FolderID,
		Name:      req.Name,
		Content:   req.Content,
		WordCount: countWords(req.Content),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.docRepo.Create(ctx, doc); err != nil {
		return nil, err
	}

	// The cached folder collection embeds direct document counts, so it is
	// stale the moment a document appears.
	s.listCache.EvictDocumentLists(ctx, req.CorpusID)
	s.listCache.EvictFolderList(ctx, req.CorpusID)
	s.computePath(ctx, doc)

	s.logger.Info("document created",
		"id", doc.ID,
		"name", doc.Name,
		"corpus_id", req.CorpusID,
		"folder_id", doc.FolderID,
		"word_count", doc.WordCount,
	)
	return doc, nil
}

// GetDocument retrieves a document with content and computed path
func (s *documentService) GetDocument(ctx context.Context, id, corpusID, userID string) (*models.Document, error) {
	if _, err := s.corpusRepo.GetByID(ctx, corpusID, userID); err != nil {
		return nil, err
	}

	doc, err := s.docRepo.GetByID(ctx, id, corpusID)
	if err != nil {
		return nil, err
	}
	s.computePath(ctx, doc)
	return doc, nil
}

// UpdateDocument updates a document (rename, edit or move)
func (s *documentService) UpdateDocument(ctx context.Context, id string, req *services.UpdateDocumentRequest) (*models.Document, error) {
	if _, err := s.corpusRepo.GetByID(ctx, req.CorpusID, req.UserID); err != nil {
		return nil, err
	}

	doc, err := s.docRepo.GetByID(ctx, id, req.CorpusID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		trimmed := strings.TrimSpace(*req.Name)
		if err := validation.Validate(trimmed,
			validation.Required,
			validation.Length(1, config.MaxDocumentNameLength),
		); err != nil {
			return nil, fmt.Errorf("%w: name: %v", domain.ErrValidation, err)
		}
		doc.Name = trimmed
	}

	moved := false
	if req.FolderID.Present {
		dest := req.FolderID.Value
		if dest != nil && *dest == "" {
			dest = nil
		}
		if sameParent(doc.FolderID, dest) {
			return nil, &domain.ValidationError{
				Message: fmt.Sprintf("document '%s' is already in that location", doc.Name),
			}
		}
		if dest != nil {
			if _, err := s.folderRepo.GetByID(ctx, *dest, req.CorpusID); err != nil {
				return nil, err
			}
		}
		doc.FolderID = dest
		moved = true
	}

	if req.Content != nil {
		doc.Content = *req.Content
		doc.WordCount = countWords(doc.Content)
	}

	doc.UpdatedAt = time.Now()
	if err := s.docRepo.Update(ctx, doc); err != nil {
		return nil, err
	}

	// A moved document can appear in (or vanish from) any cached folder
	// listing, so the whole corpus's document lists go.
	if moved {
		s.listCache.EvictDocumentLists(ctx, req.CorpusID)
		s.listCache.EvictFolderList(ctx, req.CorpusID)
	}
	s.computePath(ctx, doc)

	s.logger.Info("document updated",
		"id", doc.ID,
		"name", doc.Name,
		"corpus_id", req.CorpusID,
		"moved", moved,
	)
	return doc, nil
}

// DeleteDocument soft-deletes a document
func (s *documentService) DeleteDocument(ctx context.Context, id, corpusID, userID string) error {
	if _, err := s.corpusRepo.GetByID(ctx, corpusID, userID); err != nil {
		return err
	}
	if err := s.docRepo.Delete(ctx, id, corpusID); err != nil {
		return err
	}

	s.listCache.EvictDocumentLists(ctx, corpusID)
	s.listCache.EvictFolderList(ctx, corpusID)
	s.logger.Info("document deleted", "id", id, "corpus_id", corpusID)
	return nil
}

// ListByFolder lists documents directly in a folder, served from the list
// cache when warm
func (s *documentService) ListByFolder(ctx context.Context, folderID *string, corpusID, userID string) ([]models.Document, error) {
	if _, err := s.corpusRepo.GetByID(ctx, corpusID, userID); err != nil {
		return nil, err
	}
	if folderID != nil {
		if _, err := s.folderRepo.GetByID(ctx, *folderID, corpusID); err != nil {
			return nil, err
		}
	}

	if docs, ok := s.listCache.GetDocumentList(ctx, corpusID, folderID); ok {
		return docs, nil
	}
	docs, err := s.docRepo.ListByFolder(ctx, folderID, corpusID)
	if err != nil {
		return nil, err
	}
	s.listCache.PutDocumentList(ctx, corpusID, folderID, docs)
	return docs, nil
}

// SearchDocuments runs a corpus-scoped full-text search
func (s *documentService) SearchDocuments(ctx context.Context, req *services.SearchDocumentsRequest) ([]models.SearchResult, error) {
	if _, err := s.corpusRepo.GetByID(ctx, req.CorpusID, req.UserID); err != nil {
		return nil, err
	}

	query := strings.TrimSpace(req.Query)
	if query == "" {
		return nil, fmt.Errorf("%w: query must not be empty", domain.ErrValidation)
	}

	limit := req.Limit
	if limit <= 0 || limit > config.MaxSearchResults {
		limit = config.DefaultSearchResults
	}
	offset := req.Offset
	if offset < 0 {
		offset = 0
	}

	return s.docRepo.Search(ctx, req.CorpusID, query, limit, offset)
}

// computePath fills the display path, falling back to the bare name when the
// folder chain cannot be resolved.
func (s *documentService) computePath(ctx context.Context, doc *models.Document) {
	folderPath, err := s.folderRepo.GetPath(ctx, doc.FolderID, doc.CorpusID)
	if err != nil {
		s.logger.Warn("failed to compute path", "doc_id", doc.ID, "error", err)
		doc.Path = doc.Name
		return
	}
	if folderPath == "" {
		doc.Path = doc.Name
		return
	}
	doc.Path = folderPath + "/" + doc.Name
}

// countWords counts whitespace-separated words.
func countWords(content string) int {
	return len(strings.Fields(content))
}
