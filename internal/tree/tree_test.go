package tree

import (
	"testing"

	"archiva/internal/domain/models"
)

func strPtr(s string) *string { return &s }

func folder(id string, parentID *string, name string) models.Folder {
	return models.Folder{ID: id, ParentID: parentID, Name: name}
}

func collectIDs(nodes []*models.FolderNode) map[string]bool {
	ids := map[string]bool{}
	var walk func([]*models.FolderNode)
	walk = func(ns []*models.FolderNode) {
		for _, n := range ns {
			ids[n.ID] = true
			walk(n.Folders)
		}
	}
	walk(nodes)
	return ids
}

func TestBuild_EmptyCollection(t *testing.T) {
	roots := Build(nil)
	if len(roots) != 0 {
		t.Errorf("expected empty forest, got %d roots", len(roots))
	}
}

func TestBuild_NestsChildrenUnderParents(t *testing.T) {
	flat := []models.Folder{
		folder("1", nil, "Documents"),
		folder("2", strPtr("1"), "Legal"),
	}

	roots := Build(flat)
	if len(roots) != 1 {
		t.Fatalf("expected 1 root, got %d", len(roots))
	}
	if roots[0].Name != "Documents" {
		t.Errorf("expected root Documents, got %q", roots[0].Name)
	}
	if len(roots[0].Folders) != 1 || roots[0].Folders[0].Name != "Legal" {
		t.Fatalf("expected single child Legal, got %+v", roots[0].Folders)
	}
}

func TestBuild_PreservesSourceOrder(t *testing.T) {
	flat := []models.Folder{
		folder("p", nil, "Parent"),
		folder("b", strPtr("p"), "Beta"),
		folder("a", strPtr("p"), "Alpha"),
	}

	roots := Build(flat)
	if len(roots) != 1 || len(roots[0].Folders) != 2 {
		t.Fatalf("unexpected shape: %+v", roots)
	}
	// No sort at this layer: children keep the order the source list provides
	if roots[0].Folders[0].Name != "Beta" || roots[0].Folders[1].Name != "Alpha" {
		t.Errorf("children reordered: got %q, %q", roots[0].Folders[0].Name, roots[0].Folders[1].Name)
	}
}

func TestBuild_DropsOrphans(t *testing.T) {
	flat := []models.Folder{
		folder("1", nil, "Root"),
		folder("2", strPtr("missing"), "Orphan"),
		folder("3", strPtr("2"), "OrphanChild"),
	}

	idx := BuildIndex(flat)
	ids := collectIDs(idx.Roots)
	if ids["2"] || ids["3"] {
		t.Error("orphaned records must not be reachable from the roots")
	}
	if !ids["1"] {
		t.Error("root record missing from tree")
	}
	if idx.Orphans != 1 {
		t.Errorf("expected 1 orphan counted, got %d", idx.Orphans)
	}
}

func TestBuild_ExcludesCycles(t *testing.T) {
	// Inconsistent data: a and b reference each other. Neither chain
	// terminates at a root, so neither may appear in the tree.
	flat := []models.Folder{
		folder("root", nil, "Root"),
		folder("a", strPtr("b"), "A"),
		folder("b", strPtr("a"), "B"),
	}

	ids := collectIDs(Build(flat))
	if ids["a"] || ids["b"] {
		t.Error("cyclic records must not be reachable from the roots")
	}
}

func TestBreadcrumb_RootToTarget(t *testing.T) {
	flat := []models.Folder{
		folder("1", nil, "Documents"),
		folder("2", strPtr("1"), "Legal"),
	}

	crumbs := Breadcrumb(flat, "2")
	if len(crumbs) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(crumbs))
	}
	if crumbs[0].Name != "Documents" || crumbs[1].Name != "Legal" {
		t.Errorf("expected [Documents, Legal], got [%s, %s]", crumbs[0].Name, crumbs[1].Name)
	}
}

func TestBreadcrumb_EndsAtTargetWithParentChildPairs(t *testing.T) {
	flat := []models.Folder{
		folder("a", nil, "A"),
		folder("b", strPtr("a"), "B"),
		folder("c", strPtr("b"), "C"),
		folder("d", strPtr("c"), "D"),
	}

	crumbs := Breadcrumb(flat, "d")
	if len(crumbs) == 0 || crumbs[len(crumbs)-1].ID != "d" {
		t.Fatal("breadcrumb must end at the target folder")
	}
	for i := 1; i < len(crumbs); i++ {
		if crumbs[i].ParentID == nil || *crumbs[i].ParentID != crumbs[i-1].ID {
			t.Errorf("entry %d is not a child of entry %d", i, i-1)
		}
	}
}

func TestBreadcrumb_FailsSoftOnBrokenChain(t *testing.T) {
	flat := []models.Folder{
		folder("b", strPtr("missing"), "B"),
		folder("c", strPtr("b"), "C"),
	}

	crumbs := Breadcrumb(flat, "c")
	if len(crumbs) != 2 {
		t.Fatalf("expected resolved portion [B, C], got %d entries", len(crumbs))
	}
	if crumbs[0].ID != "b" || crumbs[1].ID != "c" {
		t.Errorf("expected [b, c], got [%s, %s]", crumbs[0].ID, crumbs[1].ID)
	}
}

func TestBreadcrumb_UnknownTarget(t *testing.T) {
	flat := []models.Folder{folder("a", nil, "A")}
	if crumbs := Breadcrumb(flat, "nope"); len(crumbs) != 0 {
		t.Errorf("expected empty chain for unknown target, got %d entries", len(crumbs))
	}
}

func TestAncestorIDs(t *testing.T) {
	flat := []models.Folder{
		folder("a", nil, "A"),
		folder("b", strPtr("a"), "B"),
		folder("c", strPtr("b"), "C"),
	}

	got := AncestorIDs(flat, "c")
	if len(got) != 2 || got[0] != "b" || got[1] != "a" {
		t.Errorf("expected [b a], got %v", got)
	}

	if got := AncestorIDs(flat, "a"); len(got) != 0 {
		t.Errorf("root folder has no ancestors, got %v", got)
	}
}

func TestDescendantIDs(t *testing.T) {
	flat := []models.Folder{
		folder("a", nil, "A"),
		folder("b", strPtr("a"), "B"),
		folder("c", strPtr("b"), "C"),
		folder("x", nil, "X"),
	}

	set := DescendantIDs(flat, "a")
	for _, want := range []string{"a", "b", "c"} {
		if _, ok := set[want]; !ok {
			t.Errorf("expected %s in descendant set", want)
		}
	}
	if _, ok := set["x"]; ok {
		t.Error("unrelated folder must not be in descendant set")
	}
}

func TestAttachAndAggregateCounts(t *testing.T) {
	flat := []models.Folder{
		{ID: "a", Name: "A", DocumentCount: 1},
		{ID: "b", ParentID: strPtr("a"), Name: "B", DocumentCount: 2},
		{ID: "c", ParentID: strPtr("b"), Name: "C", DocumentCount: 3},
	}
	docs := []models.Document{
		{ID: "d1", Name: "root doc"},
		{ID: "d2", FolderID: strPtr("b"), Name: "in b"},
		{ID: "d3", FolderID: strPtr("missing"), Name: "orphan doc"},
	}

	idx := BuildIndex(flat)
	rootDocs := Attach(idx, docs)
	AggregateCounts(idx)

	if len(rootDocs) != 1 || rootDocs[0].ID != "d1" {
		t.Errorf("expected single root document d1, got %+v", rootDocs)
	}
	if got := len(idx.ByID["b"].Documents); got != 1 {
		t.Errorf("expected 1 document attached to b, got %d", got)
	}

	if idx.ByID["c"].TotalDocumentCount != 3 {
		t.Errorf("leaf total = %d, want 3", idx.ByID["c"].TotalDocumentCount)
	}
	if idx.ByID["b"].TotalDocumentCount != 5 {
		t.Errorf("b total = %d, want 5", idx.ByID["b"].TotalDocumentCount)
	}
	if idx.ByID["a"].TotalDocumentCount != 6 {
		t.Errorf("a total = %d, want 6", idx.ByID["a"].TotalDocumentCount)
	}
}
