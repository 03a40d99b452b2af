package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"archiva/internal/domain"
	"archiva/internal/domain/models"
	"archiva/internal/domain/repositories"
)

// In-memory repository fakes. They keep insertion order so list results are
// deterministic, and honor soft deletion the way the SQL implementations do.

type fakeCorpusRepo struct {
	corpora map[string]*models.Corpus
}

func newFakeCorpusRepo() *fakeCorpusRepo {
	return &fakeCorpusRepo{corpora: make(map[string]*models.Corpus)}
}

func (r *fakeCorpusRepo) Create(_ context.Context, corpus *models.Corpus) error {
	for _, c := range r.corpora {
		if c.OwnerID == corpus.OwnerID && c.Name == corpus.Name && c.DeletedAt == nil {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("corpus '%s' already exists", corpus.Name),
				ResourceType: "corpus",
				ResourceID:   c.ID,
			}
		}
	}
	if corpus.ID == "" {
		corpus.ID = fmt.Sprintf("corpus-%d", len(r.corpora)+1)
	}
	cp := *corpus
	r.corpora[corpus.ID] = &cp
	return nil
}

func (r *fakeCorpusRepo) GetByID(_ context.Context, id, ownerID string) (*models.Corpus, error) {
	c, ok := r.corpora[id]
	if !ok || c.OwnerID != ownerID || c.DeletedAt != nil {
		return nil, fmt.Errorf("corpus %s: %w", id, domain.ErrNotFound)
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCorpusRepo) List(_ context.Context, ownerID string) ([]models.Corpus, error) {
	out := []models.Corpus{}
	for _, c := range r.corpora {
		if c.OwnerID == ownerID && c.DeletedAt == nil {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *fakeCorpusRepo) Update(_ context.Context, corpus *models.Corpus) error {
	c, ok := r.corpora[corpus.ID]
	if !ok || c.DeletedAt != nil {
		return fmt.Errorf("corpus %s: %w", corpus.ID, domain.ErrNotFound)
	}
	cp := *corpus
	r.corpora[corpus.ID] = &cp
	return nil
}

func (r *fakeCorpusRepo) Delete(_ context.Context, id, ownerID string) (*models.Corpus, error) {
	c, ok := r.corpora[id]
	if !ok || c.OwnerID != ownerID || c.DeletedAt != nil {
		return nil, fmt.Errorf("corpus %s: %w", id, domain.ErrNotFound)
	}
	now := time.Now()
	c.DeletedAt = &now
	cp := *c
	return &cp, nil
}

type fakeFolderRepo struct {
	folders map[string]*models.Folder
	order   []string
	seq     int

	// docs mirrors the SQL repository's correlated subquery that fills
	// DocumentCount on list reads.
	docs *fakeDocumentRepo
}

func newFakeFolderRepo() *fakeFolderRepo {
	return &fakeFolderRepo{folders: make(map[string]*models.Folder)}
}

func (r *fakeFolderRepo) directCount(folderID string) int {
	if r.docs == nil {
		return 0
	}
	n := 0
	for _, d := range r.docs.docs {
		if d.DeletedAt == nil && d.FolderID != nil && *d.FolderID == folderID {
			n++
		}
	}
	return n
}

func (r *fakeFolderRepo) Create(_ context.Context, folder *models.Folder) error {
	if folder.ID == "" {
		r.seq++
		folder.ID = fmt.Sprintf("folder-%d", r.seq)
	}
	if folder.Tags == nil {
		folder.Tags = []string{}
	}
	cp := *folder
	r.folders[folder.ID] = &cp
	r.order = append(r.order, folder.ID)
	return nil
}

func (r *fakeFolderRepo) GetByID(_ context.Context, id, corpusID string) (*models.Folder, error) {
	f, ok := r.folders[id]
	if !ok || f.CorpusID != corpusID || f.DeletedAt != nil {
		return nil, fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
	}
	cp := *f
	return &cp, nil
}

func (r *fakeFolderRepo) Update(_ context.Context, folder *models.Folder) error {
	f, ok := r.folders[folder.ID]
	if !ok || f.DeletedAt != nil {
		return fmt.Errorf("folder %s: %w", folder.ID, domain.ErrNotFound)
	}
	cp := *folder
	r.folders[folder.ID] = &cp
	return nil
}

func (r *fakeFolderRepo) Delete(_ context.Context, id, corpusID string) error {
	f, ok := r.folders[id]
	if !ok || f.CorpusID != corpusID || f.DeletedAt != nil {
		return fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
	}
	now := time.Now()
	f.DeletedAt = &now
	return nil
}

func (r *fakeFolderRepo) ListByCorpus(_ context.Context, corpusID string) ([]models.Folder, error) {
	out := []models.Folder{}
	for _, id := range r.order {
		f := r.folders[id]
		if f.CorpusID == corpusID && f.DeletedAt == nil {
			cp := *f
			cp.DocumentCount = r.directCount(f.ID)
			out = append(out, cp)
		}
	}
	return out, nil
}

func (r *fakeFolderRepo) ListChildren(_ context.Context, folderID *string, corpusID string) ([]models.Folder, error) {
	out := []models.Folder{}
	for _, id := range r.order {
		f := r.folders[id]
		if f.CorpusID != corpusID || f.DeletedAt != nil {
			continue
		}
		matches := false
		if folderID == nil {
			matches = f.ParentID == nil
		} else {
			matches = f.ParentID != nil && *f.ParentID == *folderID
		}
		if matches {
			cp := *f
			cp.DocumentCount = r.directCount(f.ID)
			out = append(out, cp)
		}
	}
	return out, nil
}

func (r *fakeFolderRepo) ListTrashed(_ context.Context, corpusID string) ([]models.Folder, error) {
	out := []models.Folder{}
	for _, id := range r.order {
		f := r.folders[id]
		if f.CorpusID == corpusID && f.DeletedAt != nil {
			out = append(out, *f)
		}
	}
	return out, nil
}

func (r *fakeFolderRepo) GetPath(_ context.Context, folderID *string, corpusID string) (string, error) {
	if folderID == nil {
		return "", nil
	}
	segments := []string{}
	current := *folderID
	for i := 0; i < len(r.folders)+1; i++ {
		f, ok := r.folders[current]
		if !ok || f.CorpusID != corpusID || f.DeletedAt != nil {
			return "", fmt.Errorf("folder %s: %w", current, domain.ErrNotFound)
		}
		segments = append([]string{f.Name}, segments...)
		if f.ParentID == nil {
			break
		}
		current = *f.ParentID
	}
	return strings.Join(segments, "/"), nil
}

type fakeDocumentRepo struct {
	docs  map[string]*models.Document
	order []string
	seq   int
}

func newFakeDocumentRepo() *fakeDocumentRepo {
	return &fakeDocumentRepo{docs: make(map[string]*models.Document)}
}

func (r *fakeDocumentRepo) Create(_ context.Context, doc *models.Document) error {
	if doc.ID == "" {
		r.seq++
		doc.ID = fmt.Sprintf("doc-%d", r.seq)
	}
	cp := *doc
	r.docs[doc.ID] = &cp
	r.order = append(r.order, doc.ID)
	return nil
}

func (r *fakeDocumentRepo) GetByID(_ context.Context, id, corpusID string) (*models.Document, error) {
	d, ok := r.docs[id]
	if !ok || d.CorpusID != corpusID || d.DeletedAt != nil {
		return nil, fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
	}
	cp := *d
	return &cp, nil
}

func (r *fakeDocumentRepo) Update(_ context.Context, doc *models.Document) error {
	d, ok := r.docs[doc.ID]
	if !ok || d.DeletedAt != nil {
		return fmt.Errorf("document %s: %w", doc.ID, domain.ErrNotFound)
	}
	cp := *doc
	r.docs[doc.ID] = &cp
	return nil
}

func (r *fakeDocumentRepo) Delete(_ context.Context, id, corpusID string) error {
	d, ok := r.docs[id]
	if !ok || d.CorpusID != corpusID || d.DeletedAt != nil {
		return fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
	}
	now := time.Now()
	d.DeletedAt = &now
	return nil
}

func (r *fakeDocumentRepo) ListByFolder(_ context.Context, folderID *string, corpusID string) ([]models.Document, error) {
	out := []models.Document{}
	for _, id := range r.order {
		d := r.docs[id]
		if d.CorpusID != corpusID || d.DeletedAt != nil {
			continue
		}
		if folderID == nil {
			if d.FolderID == nil {
				out = append(out, *d)
			}
		} else if d.FolderID != nil && *d.FolderID == *folderID {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (r *fakeDocumentRepo) ListByCorpus(_ context.Context, corpusID string) ([]models.Document, error) {
	out := []models.Document{}
	for _, id := range r.order {
		d := r.docs[id]
		if d.CorpusID == corpusID && d.DeletedAt == nil {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (r *fakeDocumentRepo) ListTrashed(_ context.Context, corpusID string) ([]models.Document, error) {
	out := []models.Document{}
	for _, id := range r.order {
		d := r.docs[id]
		if d.CorpusID == corpusID && d.DeletedAt != nil {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (r *fakeDocumentRepo) Search(_ context.Context, corpusID, query string, limit, offset int) ([]models.SearchResult, error) {
	out := []models.SearchResult{}
	needle := strings.ToLower(query)
	for _, id := range r.order {
		d := r.docs[id]
		if d.CorpusID != corpusID || d.DeletedAt != nil {
			continue
		}
		if strings.Contains(strings.ToLower(d.Name), needle) ||
			strings.Contains(strings.ToLower(d.Content), needle) {
			out = append(out, models.SearchResult{Document: *d, Rank: 1})
		}
	}
	if offset >= len(out) {
		return []models.SearchResult{}, nil
	}
	out = out[offset:]
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// fakeTxManager runs the function directly; the fakes have no transactions.
type fakeTxManager struct{}

func (fakeTxManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	return fn(ctx)
}

// fakeListCache is a real in-memory cache so eviction behavior is observable.
type fakeListCache struct {
	docLists    map[string][]models.Document
	folderLists map[string][]models.Folder
}

func newFakeListCache() *fakeListCache {
	return &fakeListCache{
		docLists:    make(map[string][]models.Document),
		folderLists: make(map[string][]models.Folder),
	}
}

func docKey(corpusID string, folderID *string) string {
	if folderID == nil {
		return corpusID + ":root"
	}
	return corpusID + ":" + *folderID
}

func (c *fakeListCache) GetDocumentList(_ context.Context, corpusID string, folderID *string) ([]models.Document, bool) {
	docs, ok := c.docLists[docKey(corpusID, folderID)]
	return docs, ok
}

func (c *fakeListCache) PutDocumentList(_ context.Context, corpusID string, folderID *string, docs []models.Document) {
	c.docLists[docKey(corpusID, folderID)] = docs
}

func (c *fakeListCache) EvictDocumentLists(_ context.Context, corpusID string) {
	for key := range c.docLists {
		if strings.HasPrefix(key, corpusID+":") {
			delete(c.docLists, key)
		}
	}
}

func (c *fakeListCache) GetFolderList(_ context.Context, corpusID string) ([]models.Folder, bool) {
	folders, ok := c.folderLists[corpusID]
	return folders, ok
}

func (c *fakeListCache) PutFolderList(_ context.Context, corpusID string, folders []models.Folder) {
	c.folderLists[corpusID] = folders
}

func (c *fakeListCache) EvictFolderList(_ context.Context, corpusID string) {
	delete(c.folderLists, corpusID)
}

type fakeViewStateRepo struct {
	states map[string]*models.ViewState
}

func newFakeViewStateRepo() *fakeViewStateRepo {
	return &fakeViewStateRepo{states: make(map[string]*models.ViewState)}
}

func (r *fakeViewStateRepo) Get(_ context.Context, userID, corpusID string) (*models.ViewState, error) {
	state, ok := r.states[userID+":"+corpusID]
	if !ok {
		return models.DefaultViewState(), nil
	}
	cp := *state
	cp.Expanded = append([]string{}, state.Expanded...)
	return &cp, nil
}

func (r *fakeViewStateRepo) Put(_ context.Context, userID, corpusID string, state *models.ViewState) error {
	cp := *state
	cp.Expanded = append([]string{}, state.Expanded...)
	r.states[userID+":"+corpusID] = &cp
	return nil
}

func (r *fakeViewStateRepo) Delete(_ context.Context, userID, corpusID string) error {
	delete(r.states, userID+":"+corpusID)
	return nil
}

// Interface guards keep the fakes honest.
var (
	_ repositories.CorpusRepository    = (*fakeCorpusRepo)(nil)
	_ repositories.FolderRepository    = (*fakeFolderRepo)(nil)
	_ repositories.DocumentRepository  = (*fakeDocumentRepo)(nil)
	_ repositories.TransactionManager  = (fakeTxManager{})
	_ repositories.ListCache           = (*fakeListCache)(nil)
	_ repositories.ViewStateRepository = (*fakeViewStateRepo)(nil)
)
