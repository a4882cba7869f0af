package textutil

import "strings"

// MatchWildcard reports whether tag matches the glob-style pattern.
// Matching is case-insensitive. A pattern without `*` requires exact
// equality. Otherwise the pattern is split on `*` into literal segments that
// must occur in the tag in order and without overlap; each segment matches at
// its first occurrence at or after the end of the previous segment's match.
// A pattern without a leading `*` anchors the first segment at the start of
// the tag; a pattern without a trailing `*` anchors the last segment at the
// end. A pattern consisting only of wildcards matches every tag.
func MatchWildcard(tag, pattern string) bool {
	tag = strings.ToLower(tag)
	pattern = strings.ToLower(pattern)

	if !strings.Contains(pattern, "*") {
		return tag == pattern
	}

	segments := strings.Split(pattern, "*")
	anchoredStart := segments[0] != ""

	if last := segments[len(segments)-1]; last != "" {
		// The final segment must end exactly at the end of the tag, so it is
		// matched against the suffix rather than leftmost-from-cursor.
		if !strings.HasSuffix(tag, last) {
			return false
		}
		tag = tag[:len(tag)-len(last)]
		segments = segments[:len(segments)-1]
	}

	cursor := 0
	first := true
	for _, segment := range segments {
		if segment == "" {
			continue
		}
		idx := strings.Index(tag[cursor:], segment)
		if idx < 0 {
			return false
		}
		if first && anchoredStart && cursor+idx != 0 {
			return false
		}
		cursor += idx + len(segment)
		first = false
	}
	return true
}
