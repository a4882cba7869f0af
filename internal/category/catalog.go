package category

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// ErrCatalogMissing indicates the category catalog file does not exist. The
// classifier cannot start without it.
var ErrCatalogMissing = errors.New("category catalog not found")

// Definition is one category as declared in the catalog file. AutoKeywords
// are wildcard patterns in priority order; the first matching keyword decides
// placement during auto-categorization.
type Definition struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	AutoKeywords []string `json:"auto_keywords"`
}

// LoadCatalog reads category definitions from path. A missing file is a
// fatal error for the classifier, not an empty catalog.
func LoadCatalog(path string) ([]Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrCatalogMissing, path)
		}
		return nil, fmt.Errorf("read category catalog: %w", err)
	}

	var defs []Definition
	if err := json.Unmarshal(data, &defs); err != nil {
		return nil, fmt.Errorf("parse category catalog %s: %w", path, err)
	}

	seen := make(map[string]struct{}, len(defs))
	for _, def := range defs {
		if def.Name == "" {
			return nil, fmt.Errorf("category catalog %s: category with empty name", path)
		}
		if _, dup := seen[def.Name]; dup {
			return nil, fmt.Errorf("category catalog %s: duplicate category %q", path, def.Name)
		}
		seen[def.Name] = struct{}{}
	}
	return defs, nil
}
