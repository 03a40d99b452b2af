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

// corpusService implements the CorpusService interface
type corpusService struct {
	corpusRepo repositories.CorpusRepository
	viewRepo   repositories.ViewStateRepository
	listCache  repositories.ListCache
	logger     *slog.Logger
}

// NewCorpusService creates a new corpus service
func NewCorpusService(
	corpusRepo repositories.CorpusRepository,
	viewRepo repositories.ViewStateRepository,
	listCache repositories.ListCache,
	logger *slog.Logger,
) services.CorpusService {
	return &corpusService{
		corpusRepo: corpusRepo,
		viewRepo:   viewRepo,
		listCache:  listCache,
		logger:     logger,
	}
}

// CreateCorpus creates a new corpus
func (s *corpusService) CreateCorpus(ctx context.Context, req *services.CreateCorpusRequest) (*models.Corpus, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := validation.ValidateStruct(req,
		validation.Field(&req.OwnerID, validation.Required),
		validation.Field(&req.Name,
			validation.Required,
			validation.Length(1, config.MaxCorpusNameLength),
		),
	); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	now := time.Now()
	corpus := &models.Corpus{
		OwnerID:   req.OwnerID,
		Name:      req.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.corpusRepo.Create(ctx, corpus); err != nil {
		return nil, err
	}

	s.logger.Info("corpus created", "id", corpus.ID, "name", corpus.Name, "owner_id", corpus.OwnerID)
	return corpus, nil
}

// GetCorpus retrieves a corpus by ID
func (s *corpusService) GetCorpus(ctx context.Context, id, ownerID string) (*models.Corpus, error) {
	return s.corpusRepo.GetByID(ctx, id, ownerID)
}

// ListCorpora retrieves all corpora for a user
func (s *corpusService) ListCorpora(ctx context.Context, ownerID string) ([]models.Corpus, error) {
	return s.corpusRepo.List(ctx, ownerID)
}

// UpdateCorpus renames a corpus
func (s *corpusService) UpdateCorpus(ctx context.Context, id, ownerID string, req *services.UpdateCorpusRequest) (*models.Corpus, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := validation.ValidateStruct(req,
		validation.Field(&req.Name,
			validation.Required,
			validation.Length(1, config.MaxCorpusNameLength),
		),
	); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	corpus, err := s.corpusRepo.GetByID(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	corpus.Name = req.Name
	corpus.UpdatedAt = time.Now()

	if err := s.corpusRepo.Update(ctx, corpus); err != nil {
		return nil, err
	}

	s.logger.Info("corpus updated", "id", corpus.ID, "name", corpus.Name)
	return corpus, nil
}

// DeleteCorpus soft-deletes a corpus and drops its derived state: cached
// lists and the owner's tree view state.
func (s *corpusService) DeleteCorpus(ctx context.Context, id, ownerID string) error {
	if _, err := s.corpusRepo.Delete(ctx, id, ownerID); err != nil {
		return err
	}

	s.listCache.EvictDocumentLists(ctx, id)
	s.listCache.EvictFolderList(ctx, id)
	if err := s.viewRepo.Delete(ctx, ownerID, id); err != nil {
		s.logger.Warn("failed to clear view state", "corpus_id", id, "error", err)
	}

	s.logger.Info("corpus deleted", "id", id, "owner_id", ownerID)
	return nil
}
