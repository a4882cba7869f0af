package suggest

import (
	"sort"

	"tagforge/internal/dataset"
	"tagforge/internal/textutil"
)

// Engine suggests tags that are within a fixed edit distance of any tag
// already on an image. Candidates come from the dataset's frequency index.
type Engine struct {
	index     *dataset.Index
	threshold int
}

// NewEngine builds an engine over the given frequency index. threshold is
// the maximum Levenshtein distance for a tag to qualify as a near-duplicate.
func NewEngine(index *dataset.Index, threshold int) *Engine {
	return &Engine{index: index, threshold: threshold}
}

// Suggest returns known tags whose distance to any of currentTags is within
// the threshold and which are not already on the image. Each qualifying tag
// appears once even when it is close to several current tags. Results are
// sorted by global frequency descending; equal frequencies order by
// ascending tag so the output is deterministic.
func (e *Engine) Suggest(currentTags []string) []dataset.TagCount {
	if len(currentTags) == 0 {
		return nil
	}

	present := make(map[string]struct{}, len(currentTags))
	for _, tag := range currentTags {
		present[tag] = struct{}{}
	}

	var matches []dataset.TagCount
	seen := make(map[string]struct{})
	for _, candidate := range e.index.AllByFrequency() {
		if _, onImage := present[candidate.Tag]; onImage {
			continue
		}
		if _, dup := seen[candidate.Tag]; dup {
			continue
		}
		for _, current := range currentTags {
			if textutil.Distance(current, candidate.Tag) <= e.threshold {
				seen[candidate.Tag] = struct{}{}
				matches = append(matches, candidate)
				break
			}
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Count != matches[j].Count {
			return matches[i].Count > matches[j].Count
		}
		return matches[i].Tag < matches[j].Tag
	})
	return matches
}
