// Package tree derives nested folder trees, breadcrumbs and ancestor/
// descendant sets from the flat corpus-scoped folder collection. Everything
// here is pure: no I/O, no mutation of the input slices, deterministic given
// the same input order.
package tree

import (
	"archiva/internal/domain/models"
)

// Index is the derived lookup structure over one flat folder collection:
// id→node and parent→children in a single pass, plus the root nodes in
// source order. Orphans counts records whose declared parent is absent from
// the collection; such records (and their subtrees) are not reachable from
// Roots.
type Index struct {
	ByID    map[string]*models.FolderNode
	Roots   []*models.FolderNode
	Orphans int
}

// BuildIndex constructs the index from the flat collection. Child order under
// each parent follows the source order of the input; no sort is applied.
func BuildIndex(folders []models.Folder) *Index {
	idx := &Index{
		ByID:  make(map[string]*models.FolderNode, len(folders)),
		Roots: []*models.FolderNode{},
	}

	// First pass: create all nodes
	for i := range folders {
		f := &folders[i]
		idx.ByID[f.ID] = &models.FolderNode{
			ID:            f.ID,
			Name:          f.Name,
			ParentID:      f.ParentID,
			Color:         f.Color,
			Icon:          f.Icon,
			DocumentCount: f.DocumentCount,
			CreatedAt:     f.CreatedAt,
			Folders:       []*models.FolderNode{},
			Documents:     []models.DocumentNode{},
		}
	}

	// Second pass: connect children to parents. A record whose parent ID is
	// not in the collection is an orphan and stays detached from the roots.
	for i := range folders {
		f := &folders[i]
		node := idx.ByID[f.ID]
		if f.ParentID == nil {
			idx.Roots = append(idx.Roots, node)
			continue
		}
		if parent, exists := idx.ByID[*f.ParentID]; exists {
			parent.Folders = append(parent.Folders, node)
		} else {
			idx.Orphans++
		}
	}

	return idx
}

// Build returns the root-level folder nodes, each recursively containing its
// children. Orphaned records are excluded from the result.
func Build(folders []models.Folder) []*models.FolderNode {
	return BuildIndex(folders).Roots
}

// Attach places documents into their folders and collects root-level
// documents. Documents referencing an unknown folder are dropped, mirroring
// the orphan handling for folders.
func Attach(idx *Index, docs []models.Document) []models.DocumentNode {
	rootDocs := make([]models.DocumentNode, 0)
	for _, doc := range docs {
		node := models.DocumentNode{
			ID:        doc.ID,
			Name:      doc.Name,
			FolderID:  doc.FolderID,
			WordCount: doc.WordCount,
			UpdatedAt: doc.UpdatedAt,
		}
		if doc.FolderID == nil {
			rootDocs = append(rootDocs, node)
			continue
		}
		if parent, exists := idx.ByID[*doc.FolderID]; exists {
			parent.Documents = append(parent.Documents, node)
		}
	}
	return rootDocs
}

// AggregateCounts fills TotalDocumentCount on every reachable node: the
// node's direct document count plus the totals of all its children.
func AggregateCounts(idx *Index) {
	for _, root := range idx.Roots {
		aggregate(root)
	}
}

func aggregate(node *models.FolderNode) int {
	total := node.DocumentCount
	for _, child := range node.Folders {
		total += aggregate(child)
	}
	node.TotalDocumentCount = total
	return total
}

// Breadcrumb returns the ordered ancestor chain from root to the target
// folder, ending at the target. If the chain cannot be completed (a parent
// reference points at a record absent from the collection, or a cycle is
// hit), the resolved portion nearest the target is returned. An unknown
// target yields an empty chain.
func Breadcrumb(folders []models.Folder, folderID string) []models.Folder {
	byID := make(map[string]*models.Folder, len(folders))
	for i := range folders {
		byID[folders[i].ID] = &folders[i]
	}

	current, ok := byID[folderID]
	if !ok {
		return []models.Folder{}
	}

	// Walk parent references upward. The visited set guards against cycles,
	// which would otherwise loop forever on inconsistent data.
	chain := []models.Folder{}
	visited := make(map[string]struct{}, len(folders))
	for current != nil {
		if _, seen := visited[current.ID]; seen {
			break
		}
		visited[current.ID] = struct{}{}
		chain = append(chain, *current)

		if current.ParentID == nil {
			break
		}
		current = byID[*current.ParentID] // nil when the reference is broken
	}

	// Reverse into root→target order.
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}

// AncestorIDs returns the IDs of every ancestor of the target folder,
// nearest first. The target itself is not included. Broken chains return the
// resolved portion.
func AncestorIDs(folders []models.Folder, folderID string) []string {
	byID := make(map[string]*models.Folder, len(folders))
	for i := range folders {
		byID[folders[i].ID] = &folders[i]
	}

	ids := []string{}
	current, ok := byID[folderID]
	if !ok {
		return ids
	}

	visited := map[string]struct{}{folderID: {}}
	for current.ParentID != nil {
		parent, exists := byID[*current.ParentID]
		if !exists {
			break
		}
		if _, seen := visited[parent.ID]; seen {
			break
		}
		visited[parent.ID] = struct{}{}
		ids = append(ids, parent.ID)
		current = parent
	}
	return ids
}

// DescendantIDs returns the ID set of the folder's entire subtree, the
// folder itself included. Used to exclude invalid move destinations: a
// folder may not move into itself or any of its descendants.
func DescendantIDs(folders []models.Folder, folderID string) map[string]struct{} {
	children := make(map[string][]string, len(folders))
	for i := range folders {
		if folders[i].ParentID != nil {
			pid := *folders[i].ParentID
			children[pid] = append(children[pid], folders[i].ID)
		}
	}

	set := map[string]struct{}{folderID: {}}
	stack := []string{folderID}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, child := range children[id] {
			if _, seen := set[child]; !seen {
				set[child] = struct{}{}
				stack = append(stack, child)
			}
		}
	}
	return set
}
