package dataset

import "sort"

// TagCount pairs a tag with its occurrence count across the dataset.
type TagCount struct {
	Tag   string
	Count int
}

// Index is the global tag frequency table. It is rebuilt from scratch after
// every save rather than patched incrementally, so after any committed
// mutation it equals a full recount of every image's tag list.
type Index struct {
	counts map[string]int
}

// NewIndex returns an empty frequency index.
func NewIndex() *Index {
	return &Index{counts: make(map[string]int)}
}

// Rebuild clears the index and recounts every tag occurrence.
func (x *Index) Rebuild(tagsByImage map[string][]string) {
	x.counts = make(map[string]int, len(x.counts))
	for _, tags := range tagsByImage {
		for _, tag := range tags {
			x.counts[tag]++
		}
	}
}

// FrequencyOf returns the occurrence count for tag, zero when unknown.
func (x *Index) FrequencyOf(tag string) int {
	return x.counts[tag]
}

// Distinct returns the number of distinct tags known to the index.
func (x *Index) Distinct() int {
	return len(x.counts)
}

// AllByFrequency returns every known tag sorted by count descending, ties
// broken by ascending case-sensitive tag order.
func (x *Index) AllByFrequency() []TagCount {
	out := make([]TagCount, 0, len(x.counts))
	for tag, count := range x.counts {
		out = append(out, TagCount{Tag: tag, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Tag < out[j].Tag
	})
	return out
}
