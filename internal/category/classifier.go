package category

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"path/filepath"
	"slices"
	"sort"

	"tagforge/internal/dataset"
	"tagforge/internal/logging"
	"tagforge/internal/textutil"
)

var (
	// ErrNothingToUndo is returned when the undo stack is empty.
	ErrNothingToUndo = errors.New("nothing to undo")
	// ErrNothingToRedo is returned when the redo stack is empty.
	ErrNothingToRedo = errors.New("nothing to redo")
	// ErrUnknownCategory is returned for a category name not in the catalog.
	ErrUnknownCategory = errors.New("unknown category")
	// ErrTagNotInCategory is returned when a tag is not a member of the
	// named category.
	ErrTagNotInCategory = errors.New("tag not in category")
	// ErrAlreadyMember is returned when a tag is already in the category.
	ErrAlreadyMember = errors.New("tag already in category")
	// ErrEmptyTag rejects blank tag input before any mutation.
	ErrEmptyTag = errors.New("tag must not be empty")
)

// manualIndex orders tags placed by hand (move, add, restore without a
// matching keyword) after auto-placed tags within a category.
const manualIndex = math.MaxInt

// member is one tag inside a category together with the priority index of
// the keyword that placed it. Earlier-priority keywords sort earlier.
type member struct {
	tag          string
	keywordIndex int
}

type categoryState struct {
	def     Definition
	members []member
}

func (cs *categoryState) indexOf(tag string) int {
	for i, m := range cs.members {
		if m.tag == tag {
			return i
		}
	}
	return -1
}

// insert places tag before the first member whose keyword index is greater,
// keeping insertion order among equal indices.
func (cs *categoryState) insert(tag string, keywordIndex int) {
	pos := len(cs.members)
	for i, m := range cs.members {
		if m.keywordIndex > keywordIndex {
			pos = i
			break
		}
	}
	cs.members = slices.Insert(cs.members, pos, member{tag: tag, keywordIndex: keywordIndex})
}

// matchKeyword returns the priority index of the first keyword pattern
// matching tag, or -1 when none match.
func (cs *categoryState) matchKeyword(tag string) int {
	for i, pattern := range cs.def.AutoKeywords {
		if textutil.MatchWildcard(tag, pattern) {
			return i
		}
	}
	return -1
}

// View is a read-only projection of one category for display.
type View struct {
	Name        string
	Description string
	Tags        []string
}

// Classifier assigns the loaded dataset's tags to catalog categories. All
// mutating actions push a snapshot first, so Undo and Redo walk linear
// history.
type Classifier struct {
	store  *dataset.Store
	logger *slog.Logger

	categories    []*categoryState
	uncategorized map[string]int
	renames       map[string]string

	undo []*snapshot
	redo []*snapshot
}

// NewClassifier loads the catalog at catalogPath, seeds the uncategorized
// set from the store's live index, and restores prior assignments from the
// dataset's grouping record when one exists.
func NewClassifier(store *dataset.Store, catalogPath string, logger *slog.Logger) (*Classifier, error) {
	defs, err := LoadCatalog(catalogPath)
	if err != nil {
		return nil, err
	}

	c := &Classifier{
		store:         store,
		logger:        logging.NewComponentLogger(logger, "category"),
		uncategorized: make(map[string]int),
		renames:       make(map[string]string),
	}
	for _, def := range defs {
		c.categories = append(c.categories, &categoryState{def: def})
	}
	for _, tc := range store.Index().AllByFrequency() {
		c.uncategorized[tc.Tag] = tc.Count
	}

	record, err := LoadGroupRecord(store.Folder())
	if err != nil {
		return nil, err
	}
	if record != nil {
		c.restoreFromRecord(record)
	}
	return c, nil
}

// restoreFromRecord re-applies prior category assignments to tags present in
// the current subset. Categories claim tags in catalog order; the first
// claim wins when the record assigns a tag to several categories.
func (c *Classifier) restoreFromRecord(record *GroupRecord) {
	claimed := make(map[string]map[string]struct{}, len(c.categories))
	for _, assignments := range record.Images {
		for catName, tags := range assignments {
			if claimed[catName] == nil {
				claimed[catName] = make(map[string]struct{})
			}
			for _, tag := range tags {
				claimed[catName][tag] = struct{}{}
			}
		}
	}

	restored := 0
	for _, cat := range c.categories {
		tags := make([]string, 0, len(claimed[cat.def.Name]))
		for tag := range claimed[cat.def.Name] {
			tags = append(tags, tag)
		}
		sort.Strings(tags)
		for _, tag := range tags {
			if _, present := c.uncategorized[tag]; !present {
				continue
			}
			keywordIndex := cat.matchKeyword(tag)
			if keywordIndex < 0 {
				keywordIndex = manualIndex
			}
			cat.insert(tag, keywordIndex)
			delete(c.uncategorized, tag)
			restored++
		}
	}
	if restored > 0 {
		c.logger.Info("restored category assignments",
			logging.Int(logging.FieldCount, restored))
	}
}

// Categories returns catalog-ordered views of every category with stored
// tag values in member order.
func (c *Classifier) Categories() []View {
	views := make([]View, 0, len(c.categories))
	for _, cat := range c.categories {
		view := View{Name: cat.def.Name, Description: cat.def.Description}
		for _, m := range cat.members {
			view.Tags = append(view.Tags, m.tag)
		}
		views = append(views, view)
	}
	return views
}

// Uncategorized returns unowned tags sorted by count descending, ties by
// tag ascending.
func (c *Classifier) Uncategorized() []dataset.TagCount {
	out := make([]dataset.TagCount, 0, len(c.uncategorized))
	for tag, count := range c.uncategorized {
		out = append(out, dataset.TagCount{Tag: tag, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Tag < out[j].Tag
	})
	return out
}

// PendingRenames returns a copy of the display renames awaiting commit.
func (c *Classifier) PendingRenames() map[string]string {
	out := make(map[string]string, len(c.renames))
	for tag, display := range c.renames {
		out[tag] = display
	}
	return out
}

// AutoCategorize assigns every uncategorized tag to the first category with
// a matching keyword, placing it by the keyword's priority. Tags matching
// nothing stay uncategorized. Returns the number of tags placed.
func (c *Classifier) AutoCategorize() int {
	c.beginMutation()

	tags := make([]string, 0, len(c.uncategorized))
	for tag := range c.uncategorized {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	placed := 0
	for _, tag := range tags {
		for _, cat := range c.categories {
			keywordIndex := cat.matchKeyword(tag)
			if keywordIndex < 0 {
				continue
			}
			cat.insert(tag, keywordIndex)
			delete(c.uncategorized, tag)
			placed++
			break
		}
	}
	c.logger.Info("auto-categorized tags", logging.Int(logging.FieldCount, placed))
	return placed
}

// MoveTag transfers a tag between categories, re-deriving its placement
// from the destination's keywords.
func (c *Classifier) MoveTag(tag, fromCategory, toCategory string) error {
	from := c.lookup(fromCategory)
	if from == nil {
		return fmt.Errorf("%w: %s", ErrUnknownCategory, fromCategory)
	}
	to := c.lookup(toCategory)
	if to == nil {
		return fmt.Errorf("%w: %s", ErrUnknownCategory, toCategory)
	}
	idx := from.indexOf(tag)
	if idx < 0 {
		return fmt.Errorf("%w: %s in %s", ErrTagNotInCategory, tag, fromCategory)
	}

	c.beginMutation()
	from.members = slices.Delete(from.members, idx, idx+1)
	keywordIndex := to.matchKeyword(tag)
	if keywordIndex < 0 {
		keywordIndex = manualIndex
	}
	to.insert(tag, keywordIndex)
	return nil
}

// RemoveFromCategory returns a tag to the uncategorized set with a freshly
// computed occurrence count from the live subset.
func (c *Classifier) RemoveFromCategory(tag, categoryName string) (int, error) {
	cat := c.lookup(categoryName)
	if cat == nil {
		return 0, fmt.Errorf("%w: %s", ErrUnknownCategory, categoryName)
	}
	idx := cat.indexOf(tag)
	if idx < 0 {
		return 0, fmt.Errorf("%w: %s in %s", ErrTagNotInCategory, tag, categoryName)
	}

	c.beginMutation()
	cat.members = slices.Delete(cat.members, idx, idx+1)
	count := c.store.Index().FrequencyOf(tag)
	c.uncategorized[tag] = count
	return count, nil
}

// RenameDisplay records a cosmetic rename for tag. Image files are not
// touched until Commit.
func (c *Classifier) RenameDisplay(tag, newDisplayName string) error {
	if tag == "" || newDisplayName == "" {
		return ErrEmptyTag
	}
	if tag == newDisplayName {
		return fmt.Errorf("rename %q: old and new values are identical", tag)
	}

	c.beginMutation()
	c.renames[tag] = newDisplayName
	return nil
}

// AddTagToCategory creates membership for tag, even when it occurs on no
// image yet.
func (c *Classifier) AddTagToCategory(categoryName, tag string) error {
	if tag == "" {
		return ErrEmptyTag
	}
	cat := c.lookup(categoryName)
	if cat == nil {
		return fmt.Errorf("%w: %s", ErrUnknownCategory, categoryName)
	}
	if cat.indexOf(tag) >= 0 {
		return fmt.Errorf("%w: %s in %s", ErrAlreadyMember, tag, categoryName)
	}

	c.beginMutation()
	keywordIndex := cat.matchKeyword(tag)
	if keywordIndex < 0 {
		keywordIndex = manualIndex
	}
	cat.insert(tag, keywordIndex)
	delete(c.uncategorized, tag)
	return nil
}

// Undo restores the most recent snapshot, pushing the current state onto
// the redo stack.
func (c *Classifier) Undo() error {
	if len(c.undo) == 0 {
		return ErrNothingToUndo
	}
	snap := c.undo[len(c.undo)-1]
	c.undo = c.undo[:len(c.undo)-1]
	c.redo = append(c.redo, c.capture())
	c.restore(snap)
	return nil
}

// Redo reverses the most recent Undo.
func (c *Classifier) Redo() error {
	if len(c.redo) == 0 {
		return ErrNothingToRedo
	}
	snap := c.redo[len(c.redo)-1]
	c.redo = c.redo[:len(c.redo)-1]
	c.undo = append(c.undo, c.capture())
	c.restore(snap)
	return nil
}

// Commit rewrites every image's tag list ordered by category membership
// with pending renames applied, appends leftover tags owned by no category,
// saves through the store, and writes the grouping record. Returns the
// number of images whose tag list changed. Snapshot history is discarded
// once state is persisted.
func (c *Classifier) Commit() (int, error) {
	owned := make(map[string]*categoryState)
	for _, cat := range c.categories {
		for _, m := range cat.members {
			if _, taken := owned[m.tag]; !taken {
				owned[m.tag] = cat
			}
		}
	}

	record := &GroupRecord{
		ProjectName: filepath.Base(c.store.Folder()),
		Images:      make(map[string]map[string][]string),
	}

	changed := 0
	for _, image := range c.store.Images() {
		originals := c.store.GetTags(image)
		present := make(map[string]struct{}, len(originals))
		for _, tag := range originals {
			present[tag] = struct{}{}
		}

		var rebuilt []string
		assignments := make(map[string][]string)
		for _, cat := range c.categories {
			for _, m := range cat.members {
				if _, ok := present[m.tag]; !ok {
					continue
				}
				if owned[m.tag] != cat {
					continue
				}
				value := c.displayName(m.tag)
				rebuilt = append(rebuilt, value)
				assignments[cat.def.Name] = append(assignments[cat.def.Name], value)
			}
		}
		for _, tag := range originals {
			if _, isOwned := owned[tag]; isOwned {
				continue
			}
			if _, hasRename := c.renames[tag]; hasRename {
				continue
			}
			rebuilt = append(rebuilt, tag)
		}

		if len(assignments) > 0 {
			record.Images[filepath.Base(image)] = assignments
		}
		if slices.Equal(rebuilt, originals) {
			continue
		}
		if err := c.store.SaveTags(image, rebuilt); err != nil {
			c.logger.Warn("commit skipped image",
				logging.String(logging.FieldImage, filepath.Base(image)),
				logging.Error(err))
			continue
		}
		changed++
	}

	if err := WriteGroupRecord(c.store.Folder(), record); err != nil {
		return changed, err
	}

	c.applyRenamesToMembers()
	c.refreshUncategorized()
	c.undo = nil
	c.redo = nil
	c.logger.Info("committed category assignments",
		logging.Int(logging.FieldCount, changed))
	return changed, nil
}

func (c *Classifier) lookup(name string) *categoryState {
	for _, cat := range c.categories {
		if cat.def.Name == name {
			return cat
		}
	}
	return nil
}

func (c *Classifier) displayName(tag string) string {
	if display, ok := c.renames[tag]; ok {
		return display
	}
	return tag
}

// applyRenamesToMembers folds committed display renames into the member
// lists so the live state matches what was written to disk.
func (c *Classifier) applyRenamesToMembers() {
	for _, cat := range c.categories {
		for i, m := range cat.members {
			if display, ok := c.renames[m.tag]; ok {
				cat.members[i].tag = display
			}
		}
	}
	c.renames = make(map[string]string)
}

// refreshUncategorized rebuilds the uncategorized set from the live index,
// excluding tags owned by a category.
func (c *Classifier) refreshUncategorized() {
	owned := make(map[string]struct{})
	for _, cat := range c.categories {
		for _, m := range cat.members {
			owned[m.tag] = struct{}{}
		}
	}
	c.uncategorized = make(map[string]int)
	for _, tc := range c.store.Index().AllByFrequency() {
		if _, isOwned := owned[tc.Tag]; isOwned {
			continue
		}
		c.uncategorized[tc.Tag] = tc.Count
	}
}
