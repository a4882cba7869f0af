package dataset

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ParseTags splits sidecar file contents into tags using the separator's
// core delimiter, trimming each tag and discarding empties. Files written
// with a padded separator (", ") parse identically to bare commas because of
// the per-tag trim.
func ParseTags(content, separator string) []string {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil
	}
	delimiter := strings.TrimSpace(separator)
	if delimiter == "" {
		delimiter = separator
	}
	parts := strings.Split(content, delimiter)
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// SerializeTags joins tags with the separator into single-line sidecar
// contents. Zero tags serialize to the empty string.
func SerializeTags(tags []string, separator string) string {
	return strings.Join(tags, separator)
}

// NormalizeTags trims every tag, drops empties, removes duplicates keeping
// the first occurrence, and folds to lowercase when enforceLowercase is set.
// The fold applies before deduplication so "Cat" and "cat" collapse when
// folding is on.
func NormalizeTags(tags []string, enforceLowercase bool) []string {
	caser := cases.Lower(language.Und)
	cleaned := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if enforceLowercase {
			tag = caser.String(tag)
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		cleaned = append(cleaned, tag)
	}
	return cleaned
}
