package dataset

import (
	"reflect"
	"testing"
)

func TestIndexRebuildAndFrequency(t *testing.T) {
	index := NewIndex()
	index.Rebuild(map[string][]string{
		"a.png": {"hair", "eyes", "smile"},
		"b.png": {"hair", "eyes"},
		"c.png": {"hair"},
	})

	if got := index.FrequencyOf("hair"); got != 3 {
		t.Errorf("FrequencyOf(hair) = %d, want 3", got)
	}
	if got := index.FrequencyOf("missing"); got != 0 {
		t.Errorf("FrequencyOf(missing) = %d, want 0", got)
	}
	if got := index.Distinct(); got != 3 {
		t.Errorf("Distinct = %d, want 3", got)
	}

	// Rebuild replaces rather than accumulates.
	index.Rebuild(map[string][]string{"a.png": {"solo"}})
	if got := index.FrequencyOf("hair"); got != 0 {
		t.Errorf("stale count after rebuild: %d", got)
	}
	if got := index.FrequencyOf("solo"); got != 1 {
		t.Errorf("FrequencyOf(solo) = %d, want 1", got)
	}
}

func TestAllByFrequencyOrdering(t *testing.T) {
	index := NewIndex()
	index.Rebuild(map[string][]string{
		"a.png": {"zebra", "apple", "mango"},
		"b.png": {"zebra", "apple"},
		"c.png": {"Banana"},
	})

	got := index.AllByFrequency()
	want := []TagCount{
		{Tag: "apple", Count: 2},
		{Tag: "zebra", Count: 2},
		{Tag: "Banana", Count: 1},
		{Tag: "mango", Count: 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("AllByFrequency = %v, want %v", got, want)
	}
}
