package bulk

import (
	"errors"
	"log/slog"
	"strings"

	"tagforge/internal/dataset"
	"tagforge/internal/logging"
)

// ErrEmptyTag is returned when a mutation is requested with a blank tag.
var ErrEmptyTag = errors.New("tag must not be empty")

// ErrSameTag is returned when a rename's old and new values are identical.
var ErrSameTag = errors.New("old and new tag are identical")

// Mutator performs add/remove/rename operations across image subsets.
type Mutator struct {
	store  *dataset.Store
	logger *slog.Logger
}

// NewMutator wraps a loaded store.
func NewMutator(store *dataset.Store, logger *slog.Logger) *Mutator {
	return &Mutator{
		store:  store,
		logger: logging.NewComponentLogger(logger, "bulk"),
	}
}

// AddGlobally appends tag to every target image that lacks it and returns
// the number of images changed. A nil target list means every loaded image.
func (m *Mutator) AddGlobally(tag string, targets []string) (int, error) {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return 0, ErrEmptyTag
	}

	count := 0
	for _, image := range m.targetsOrAll(targets) {
		tags := m.store.GetTags(image)
		if containsTag(tags, tag) {
			continue
		}
		tags = append(tags, tag)
		if err := m.store.SaveTags(image, tags); err != nil {
			m.logSkip("add", image, err)
			continue
		}
		count++
	}

	m.logger.Info("added tag globally",
		logging.String(logging.FieldTag, tag),
		logging.Int(logging.FieldCount, count))
	return count, nil
}

// RemoveGlobally removes tag from every target image that contains it and
// returns the number of images changed.
func (m *Mutator) RemoveGlobally(tag string, targets []string) (int, error) {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return 0, ErrEmptyTag
	}

	count := 0
	for _, image := range m.targetsOrAll(targets) {
		tags := m.store.GetTags(image)
		idx := indexOfTag(tags, tag)
		if idx < 0 {
			continue
		}
		tags = append(tags[:idx], tags[idx+1:]...)
		if err := m.store.SaveTags(image, tags); err != nil {
			m.logSkip("remove", image, err)
			continue
		}
		count++
	}

	m.logger.Info("removed tag globally",
		logging.String(logging.FieldTag, tag),
		logging.Int(logging.FieldCount, count))
	return count, nil
}

// RenameGlobally replaces oldTag with newTag in place, preserving its
// position, on every target image containing the exact (case-sensitive)
// oldTag. When an image already carries newTag, the save path's
// deduplication collapses the pair, keeping the first occurrence.
func (m *Mutator) RenameGlobally(oldTag, newTag string, targets []string) (int, error) {
	oldTag = strings.TrimSpace(oldTag)
	newTag = strings.TrimSpace(newTag)
	if oldTag == "" || newTag == "" {
		return 0, ErrEmptyTag
	}
	if oldTag == newTag {
		return 0, ErrSameTag
	}

	count := 0
	for _, image := range m.targetsOrAll(targets) {
		tags := m.store.GetTags(image)
		idx := indexOfTag(tags, oldTag)
		if idx < 0 {
			continue
		}
		tags[idx] = newTag
		if err := m.store.SaveTags(image, tags); err != nil {
			m.logSkip("rename", image, err)
			continue
		}
		count++
	}

	m.logger.Info("renamed tag globally",
		logging.String("old_tag", oldTag),
		logging.String("new_tag", newTag),
		logging.Int(logging.FieldCount, count))
	return count, nil
}

func (m *Mutator) targetsOrAll(targets []string) []string {
	if targets == nil {
		return m.store.Images()
	}
	return targets
}

func (m *Mutator) logSkip(op, image string, err error) {
	m.logger.Warn("skipping image in bulk operation",
		logging.String("op", op),
		logging.String(logging.FieldImage, image),
		logging.Error(err))
}

func containsTag(tags []string, tag string) bool {
	return indexOfTag(tags, tag) >= 0
}

func indexOfTag(tags []string, tag string) int {
	for i, t := range tags {
		if t == tag {
			return i
		}
	}
	return -1
}
