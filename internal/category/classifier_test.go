package category

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"tagforge/internal/dataset"
	"tagforge/internal/testsupport"
)

func writeCatalog(t *testing.T, defs []Definition) string {
	t.Helper()

	data, err := json.Marshal(defs)
	if err != nil {
		t.Fatalf("marshal catalog: %v", err)
	}
	path := filepath.Join(t.TempDir(), "categories.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
	return path
}

func loadStore(t *testing.T, images map[string][]string) (*dataset.Store, string) {
	t.Helper()

	folder := testsupport.SeedDataset(t, images)
	store := dataset.NewStore(testsupport.NewConfig(t), nil)
	t.Cleanup(func() { store.Close() })
	if _, err := store.Load(folder); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return store, folder
}

func newClassifier(t *testing.T, store *dataset.Store, defs []Definition) *Classifier {
	t.Helper()

	c, err := NewClassifier(store, writeCatalog(t, defs), nil)
	if err != nil {
		t.Fatalf("NewClassifier: %v", err)
	}
	return c
}

func categoryTags(t *testing.T, c *Classifier, name string) []string {
	t.Helper()

	for _, view := range c.Categories() {
		if view.Name == name {
			return view.Tags
		}
	}
	t.Fatalf("category %q not found", name)
	return nil
}

func TestNewClassifierMissingCatalog(t *testing.T) {
	store, _ := loadStore(t, map[string][]string{"one.png": {"a"}})

	_, err := NewClassifier(store, filepath.Join(t.TempDir(), "absent.json"), nil)
	if !errors.Is(err, ErrCatalogMissing) {
		t.Errorf("err = %v, want ErrCatalogMissing", err)
	}
}

func TestAutoCategorizeEndToEnd(t *testing.T) {
	store, _ := loadStore(t, map[string][]string{
		"one.png": {"red_hair", "eyes"},
	})
	c := newClassifier(t, store, []Definition{
		{Name: "Hair", AutoKeywords: []string{"*hair*"}},
	})

	if got := c.AutoCategorize(); got != 1 {
		t.Errorf("AutoCategorize = %d, want 1", got)
	}
	if got := categoryTags(t, c, "Hair"); !reflect.DeepEqual(got, []string{"red_hair"}) {
		t.Errorf("Hair tags = %v", got)
	}

	uncat := c.Uncategorized()
	if len(uncat) != 1 || uncat[0].Tag != "eyes" {
		t.Errorf("uncategorized = %v, want eyes only", uncat)
	}
}

func TestAutoCategorizeKeywordPriorityOrdersTags(t *testing.T) {
	store, _ := loadStore(t, map[string][]string{
		"one.png": {"blonde_hair", "red_eyes"},
	})
	c := newClassifier(t, store, []Definition{
		{Name: "Looks", AutoKeywords: []string{"red*", "*hair*"}},
	})

	if got := c.AutoCategorize(); got != 2 {
		t.Fatalf("AutoCategorize = %d, want 2", got)
	}
	// blonde_hair is visited first alphabetically but matched keyword 1;
	// red_eyes matched keyword 0 and sorts before it.
	if got := categoryTags(t, c, "Looks"); !reflect.DeepEqual(got, []string{"red_eyes", "blonde_hair"}) {
		t.Errorf("Looks tags = %v", got)
	}
}

func TestAutoCategorizeFirstCategoryWins(t *testing.T) {
	store, _ := loadStore(t, map[string][]string{
		"one.png": {"red_hair"},
	})
	c := newClassifier(t, store, []Definition{
		{Name: "Colors", AutoKeywords: []string{"red*"}},
		{Name: "Hair", AutoKeywords: []string{"*hair*"}},
	})

	c.AutoCategorize()
	if got := categoryTags(t, c, "Colors"); !reflect.DeepEqual(got, []string{"red_hair"}) {
		t.Errorf("Colors tags = %v", got)
	}
	if got := categoryTags(t, c, "Hair"); len(got) != 0 {
		t.Errorf("Hair tags = %v, want empty", got)
	}
}

func TestMoveTag(t *testing.T) {
	store, _ := loadStore(t, map[string][]string{"one.png": {"red_hair"}})
	c := newClassifier(t, store, []Definition{
		{Name: "Colors", AutoKeywords: []string{"red*"}},
		{Name: "Hair", AutoKeywords: []string{"*hair*"}},
	})
	c.AutoCategorize()

	if err := c.MoveTag("red_hair", "Colors", "Hair"); err != nil {
		t.Fatalf("MoveTag: %v", err)
	}
	if got := categoryTags(t, c, "Hair"); !reflect.DeepEqual(got, []string{"red_hair"}) {
		t.Errorf("Hair tags = %v", got)
	}

	if err := c.MoveTag("red_hair", "Colors", "Hair"); !errors.Is(err, ErrTagNotInCategory) {
		t.Errorf("second move err = %v", err)
	}
	if err := c.MoveTag("x", "Nope", "Hair"); !errors.Is(err, ErrUnknownCategory) {
		t.Errorf("unknown category err = %v", err)
	}
}

func TestRemoveFromCategoryReturnsFreshCount(t *testing.T) {
	store, _ := loadStore(t, map[string][]string{
		"one.png": {"red_hair"},
		"two.png": {"red_hair"},
	})
	c := newClassifier(t, store, []Definition{
		{Name: "Hair", AutoKeywords: []string{"*hair*"}},
	})
	c.AutoCategorize()

	count, err := c.RemoveFromCategory("red_hair", "Hair")
	if err != nil {
		t.Fatalf("RemoveFromCategory: %v", err)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
	uncat := c.Uncategorized()
	if len(uncat) != 1 || uncat[0].Tag != "red_hair" || uncat[0].Count != 2 {
		t.Errorf("uncategorized = %v", uncat)
	}
}

func TestAddTagToCategoryZeroOccurrences(t *testing.T) {
	store, _ := loadStore(t, map[string][]string{"one.png": {"eyes"}})
	c := newClassifier(t, store, []Definition{
		{Name: "Hair", AutoKeywords: []string{"*hair*"}},
	})

	if err := c.AddTagToCategory("Hair", "future_hair"); err != nil {
		t.Fatalf("AddTagToCategory: %v", err)
	}
	if got := categoryTags(t, c, "Hair"); !reflect.DeepEqual(got, []string{"future_hair"}) {
		t.Errorf("Hair tags = %v", got)
	}
	if err := c.AddTagToCategory("Hair", "future_hair"); !errors.Is(err, ErrAlreadyMember) {
		t.Errorf("duplicate add err = %v", err)
	}
	if err := c.AddTagToCategory("Hair", ""); !errors.Is(err, ErrEmptyTag) {
		t.Errorf("empty tag err = %v", err)
	}
}

func TestRenameDisplayValidation(t *testing.T) {
	store, _ := loadStore(t, map[string][]string{"one.png": {"a"}})
	c := newClassifier(t, store, []Definition{{Name: "Misc"}})

	if err := c.RenameDisplay("", "x"); !errors.Is(err, ErrEmptyTag) {
		t.Errorf("empty old err = %v", err)
	}
	if err := c.RenameDisplay("a", "a"); err == nil {
		t.Error("identical rename accepted")
	}
	if err := c.RenameDisplay("a", "b"); err != nil {
		t.Errorf("RenameDisplay: %v", err)
	}
	if got := c.PendingRenames(); got["a"] != "b" {
		t.Errorf("renames = %v", got)
	}
}

func TestUndoRedo(t *testing.T) {
	store, _ := loadStore(t, map[string][]string{"one.png": {"red_hair", "eyes"}})
	c := newClassifier(t, store, []Definition{
		{Name: "Hair", AutoKeywords: []string{"*hair*"}},
	})

	if err := c.Undo(); !errors.Is(err, ErrNothingToUndo) {
		t.Errorf("empty undo err = %v", err)
	}
	if err := c.Redo(); !errors.Is(err, ErrNothingToRedo) {
		t.Errorf("empty redo err = %v", err)
	}

	c.AutoCategorize()
	if err := c.Undo(); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if got := categoryTags(t, c, "Hair"); len(got) != 0 {
		t.Errorf("Hair tags after undo = %v", got)
	}
	if len(c.Uncategorized()) != 2 {
		t.Errorf("uncategorized after undo = %v", c.Uncategorized())
	}

	if err := c.Redo(); err != nil {
		t.Fatalf("Redo: %v", err)
	}
	if got := categoryTags(t, c, "Hair"); !reflect.DeepEqual(got, []string{"red_hair"}) {
		t.Errorf("Hair tags after redo = %v", got)
	}

	// A new mutation clears redo.
	if err := c.Undo(); err != nil {
		t.Fatalf("second undo: %v", err)
	}
	c.AutoCategorize()
	if err := c.Redo(); !errors.Is(err, ErrNothingToRedo) {
		t.Errorf("redo after fresh mutation err = %v", err)
	}
}

func TestCommitReordersByMembership(t *testing.T) {
	store, folder := loadStore(t, map[string][]string{
		"one.png": {"eyes", "red_hair"},
	})
	c := newClassifier(t, store, []Definition{
		{Name: "Hair", AutoKeywords: []string{"*hair*"}},
	})
	c.AutoCategorize()

	changed, err := c.Commit()
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if changed != 1 {
		t.Errorf("changed = %d, want 1", changed)
	}

	got := testsupport.ReadSidecar(t, filepath.Join(folder, "one.png"))
	if got != "red_hair, eyes" {
		t.Errorf("sidecar = %q, want %q", got, "red_hair, eyes")
	}
	if _, err := os.Stat(GroupRecordPath(folder)); err != nil {
		t.Errorf("grouping record missing: %v", err)
	}
}

func TestCommitAppliesDisplayRenames(t *testing.T) {
	store, folder := loadStore(t, map[string][]string{
		"one.png": {"red_hair"},
	})
	c := newClassifier(t, store, []Definition{
		{Name: "Hair", AutoKeywords: []string{"*hair*"}},
	})
	c.AutoCategorize()
	if err := c.RenameDisplay("red_hair", "crimson_hair"); err != nil {
		t.Fatalf("RenameDisplay: %v", err)
	}

	if _, err := c.Commit(); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	got := testsupport.ReadSidecar(t, filepath.Join(folder, "one.png"))
	if got != "crimson_hair" {
		t.Errorf("sidecar = %q, want crimson_hair", got)
	}
	if got := categoryTags(t, c, "Hair"); !reflect.DeepEqual(got, []string{"crimson_hair"}) {
		t.Errorf("Hair tags after commit = %v", got)
	}
	if len(c.PendingRenames()) != 0 {
		t.Errorf("renames not cleared: %v", c.PendingRenames())
	}
}

func TestCommitThenRestoreInNewSession(t *testing.T) {
	store, folder := loadStore(t, map[string][]string{
		"one.png": {"red_hair", "eyes"},
	})
	catalog := writeCatalog(t, []Definition{
		{Name: "Hair", AutoKeywords: []string{"*hair*"}},
	})

	first, err := NewClassifier(store, catalog, nil)
	if err != nil {
		t.Fatalf("NewClassifier: %v", err)
	}
	first.AutoCategorize()
	if _, err := first.Commit(); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reloaded := dataset.NewStore(testsupport.NewConfig(t), nil)
	t.Cleanup(func() { reloaded.Close() })
	if _, err := reloaded.Load(folder); err != nil {
		t.Fatalf("reload: %v", err)
	}
	second, err := NewClassifier(reloaded, catalog, nil)
	if err != nil {
		t.Fatalf("second NewClassifier: %v", err)
	}

	if got := categoryTags(t, second, "Hair"); !reflect.DeepEqual(got, []string{"red_hair"}) {
		t.Errorf("restored Hair tags = %v", got)
	}
	uncat := second.Uncategorized()
	if len(uncat) != 1 || uncat[0].Tag != "eyes" {
		t.Errorf("restored uncategorized = %v", uncat)
	}
}
