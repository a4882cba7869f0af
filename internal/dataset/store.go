package dataset

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"tagforge/internal/config"
	"tagforge/internal/fileutil"
	"tagforge/internal/logging"
)

// ErrNothingToUndo is returned by Undo when the history is empty.
var ErrNothingToUndo = errors.New("nothing to undo")

// ErrUnknownImage is returned when an operation references an image that is
// not part of the loaded dataset.
var ErrUnknownImage = errors.New("image not part of loaded dataset")

// Store manages the tag collections of one loaded dataset folder.
type Store struct {
	cfg    *config.Config
	logger *slog.Logger

	folder string
	lock   *sessionLock
	images []string            // sorted image paths
	tags   map[string][]string // image path -> ordered unique tags
	index  *Index
	undo   *undoHistory
}

// NewStore creates an empty store. Call Load before any other operation.
func NewStore(cfg *config.Config, logger *slog.Logger) *Store {
	return &Store{
		cfg:    cfg,
		logger: logging.NewComponentLogger(logger, "dataset"),
		tags:   make(map[string][]string),
		index:  NewIndex(),
		undo:   newUndoHistory(cfg.History.MaxDepth),
	}
}

// Load scans folder for supported image files, reading each image's sidecar
// tag file or creating an empty one, and returns the number of images found.
// Unreadable sidecars are logged and treated as empty rather than aborting
// the scan. Loading resets the frequency index and the undo history.
func (s *Store) Load(folder string) (int, error) {
	folder, err := config.ExpandPath(folder)
	if err != nil {
		return 0, err
	}
	info, err := os.Stat(folder)
	if err != nil {
		return 0, fmt.Errorf("stat dataset folder: %w", err)
	}
	if !info.IsDir() {
		return 0, fmt.Errorf("dataset path %s is not a directory", folder)
	}

	// Reloading the already-locked folder keeps the existing lock; flock is
	// per file description, so re-acquiring our own lock would fail.
	if s.lock == nil || s.folder != folder {
		lock, err := acquireSessionLock(folder)
		if err != nil {
			return 0, err
		}
		if s.lock != nil {
			_ = s.lock.release()
		}
		s.lock = lock
	}

	s.folder = folder
	s.images = s.images[:0]
	s.tags = make(map[string][]string)
	s.undo.reset()

	if err := s.scan(folder); err != nil {
		return 0, err
	}

	sort.Strings(s.images)
	s.index.Rebuild(s.tags)

	s.logger.Info("dataset loaded",
		logging.String(logging.FieldDataset, folder),
		logging.Int(logging.FieldCount, len(s.images)),
		logging.Int("distinct_tags", s.index.Distinct()))
	return len(s.images), nil
}

func (s *Store) scan(folder string) error {
	extensions := make(map[string]struct{}, len(s.cfg.Dataset.Extensions))
	for _, ext := range s.cfg.Dataset.Extensions {
		extensions[ext] = struct{}{}
	}

	addImage := func(path string) {
		ext := strings.ToLower(filepath.Ext(path))
		if _, ok := extensions[ext]; !ok {
			return
		}
		s.images = append(s.images, path)
		s.tags[path] = s.loadSidecar(path)
	}

	if s.cfg.Dataset.Recursive {
		return filepath.WalkDir(folder, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				s.logger.Warn("skipping unreadable entry",
					logging.String("path", path), logging.Error(err))
				return nil
			}
			if !d.IsDir() {
				addImage(path)
			}
			return nil
		})
	}

	entries, err := os.ReadDir(folder)
	if err != nil {
		return fmt.Errorf("read dataset folder: %w", err)
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			addImage(filepath.Join(folder, entry.Name()))
		}
	}
	return nil
}

// loadSidecar reads an image's sidecar tag file, creating an empty one when
// missing. Failures are logged and reported as an empty tag list.
func (s *Store) loadSidecar(image string) []string {
	path := SidecarPath(image)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			if touchErr := fileutil.Touch(path); touchErr != nil {
				s.logger.Warn("create sidecar failed",
					logging.String(logging.FieldImage, image), logging.Error(touchErr))
			}
			return nil
		}
		s.logger.Warn("read sidecar failed",
			logging.String(logging.FieldImage, image), logging.Error(err))
		return nil
	}
	return ParseTags(string(data), s.cfg.Dataset.Separator)
}

// Close releases the dataset session lock.
func (s *Store) Close() error {
	if s.lock == nil {
		return nil
	}
	err := s.lock.release()
	s.lock = nil
	return err
}

// Folder returns the loaded dataset folder path.
func (s *Store) Folder() string {
	return s.folder
}

// Images returns a copy of the sorted image paths of the dataset.
func (s *Store) Images() []string {
	out := make([]string, len(s.images))
	copy(out, s.images)
	return out
}

// Contains reports whether image is part of the loaded dataset.
func (s *Store) Contains(image string) bool {
	_, ok := s.tags[image]
	return ok
}

// GetTags returns a copy of the image's current tags. The copy never aliases
// internal state, so callers may mutate it freely.
func (s *Store) GetTags(image string) []string {
	tags := s.tags[image]
	out := make([]string, len(tags))
	copy(out, tags)
	return out
}

// Index exposes the global frequency index.
func (s *Store) Index() *Index {
	return s.index
}

// UndoDepth returns the number of saves currently recoverable.
func (s *Store) UndoDepth() int {
	return s.undo.depth()
}

// SaveTags normalizes tags (trim, drop empties, dedup keeping first
// occurrence, optional lowercase fold), writes the image's sidecar file, and
// on success commits the normalized list in memory, pushes the pre-mutation
// state onto the undo history, and rebuilds the frequency index.
//
// Write-then-commit: when the sidecar write fails, in-memory state and the
// undo history are left exactly as they were before the call.
func (s *Store) SaveTags(image string, tags []string) error {
	previous, ok := s.tags[image]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownImage, image)
	}

	cleaned := NormalizeTags(tags, s.cfg.Dataset.EnforceLowercase)
	if err := s.writeSidecar(image, cleaned); err != nil {
		return err
	}

	s.undo.push(image, previous)
	s.tags[image] = cleaned
	s.index.Rebuild(s.tags)

	s.logger.Debug("saved tags",
		logging.String(logging.FieldImage, image),
		logging.Int(logging.FieldCount, len(cleaned)))
	return nil
}

// Undo reverts the most recent save: it restores that image's previous tags,
// re-persists them, rebuilds the index, and returns the affected image path.
// Undo is not itself undoable — it consumes the entry without creating a new
// one. Returns ErrNothingToUndo when the history is empty.
func (s *Store) Undo() (string, error) {
	entry, ok := s.undo.pop()
	if !ok {
		return "", ErrNothingToUndo
	}
	if _, exists := s.tags[entry.image]; !exists {
		return "", fmt.Errorf("%w: %s", ErrUnknownImage, entry.image)
	}

	if err := s.writeSidecar(entry.image, entry.tags); err != nil {
		// Keep memory and disk consistent: the entry stays available for retry.
		s.undo.entries = append(s.undo.entries, entry)
		return "", err
	}

	s.tags[entry.image] = entry.tags
	s.index.Rebuild(s.tags)

	s.logger.Info("undid save",
		logging.String(logging.FieldImage, entry.image),
		logging.Int(logging.FieldCount, len(entry.tags)))
	return entry.image, nil
}

// FilterByTag returns the images whose tag lists contain the search term as
// a case-insensitive substring. An empty term returns every image.
func (s *Store) FilterByTag(term string) []string {
	if strings.TrimSpace(term) == "" {
		return s.Images()
	}
	term = strings.ToLower(term)
	var filtered []string
	for _, image := range s.images {
		for _, tag := range s.tags[image] {
			if strings.Contains(strings.ToLower(tag), term) {
				filtered = append(filtered, image)
				break
			}
		}
	}
	return filtered
}

func (s *Store) writeSidecar(image string, tags []string) error {
	path := SidecarPath(image)
	content := SerializeTags(tags, s.cfg.Dataset.Separator)
	if err := fileutil.WriteFileAtomic(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write sidecar for %s: %w", image, err)
	}
	return nil
}

// SidecarPath returns the tag file path that accompanies an image: the same
// base name with a .txt extension.
func SidecarPath(image string) string {
	ext := filepath.Ext(image)
	return strings.TrimSuffix(image, ext) + ".txt"
}
