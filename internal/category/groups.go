package category

import (
	"crypto/md5"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"tagforge/internal/fileutil"
)

// GroupRecord is the per-project grouping file written by Commit and read
// back on classifier startup. Images are keyed by file name; each image maps
// category names to the tags that image carries in that category.
type GroupRecord struct {
	ProjectName string                         `json:"project_name"`
	Images      map[string]map[string][]string `json:"images"`
}

// GroupRecordPath derives the grouping file location for a dataset folder.
// The name embeds a short hash of the absolute folder path so records for
// different projects never collide when copied around.
func GroupRecordPath(folder string) string {
	abs, err := filepath.Abs(folder)
	if err != nil {
		abs = folder
	}
	sum := md5.Sum([]byte(abs))
	return filepath.Join(folder, fmt.Sprintf(".tagforge_groups_%x.json", sum[:4]))
}

// LoadGroupRecord reads the grouping record for folder. A missing file
// returns nil with no error; prior assignments are optional.
func LoadGroupRecord(folder string) (*GroupRecord, error) {
	path := GroupRecordPath(folder)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read grouping record: %w", err)
	}

	var record GroupRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("parse grouping record %s: %w", path, err)
	}
	return &record, nil
}

// WriteGroupRecord persists the grouping record atomically inside folder.
func WriteGroupRecord(folder string, record *GroupRecord) error {
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("encode grouping record: %w", err)
	}
	data = append(data, '\n')
	if err := fileutil.WriteFileAtomic(GroupRecordPath(folder), data, 0o644); err != nil {
		return fmt.Errorf("write grouping record: %w", err)
	}
	return nil
}
