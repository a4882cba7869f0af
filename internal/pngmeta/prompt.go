package pngmeta

import (
	"regexp"
	"strings"
)

// angleTag matches inline weight/resource directives like <lora:name:0.8>.
var angleTag = regexp.MustCompile(`<[^<>]+:[^<>]*>`)

var commaRun = regexp.MustCompile(`,\s*,`)

// PositivePrompt isolates the positive prompt from a raw parameters string:
// everything before the first "Negative prompt:" marker or inline directive,
// with blacklist phrases removed and comma runs collapsed. When nothing
// usable remains the raw parameters are returned as-is.
func PositivePrompt(parameters string, blacklist []string) string {
	cut := parameters
	if idx := strings.Index(cut, "Negative prompt:"); idx >= 0 {
		cut = cut[:idx]
	}
	if loc := angleTag.FindStringIndex(cut); loc != nil {
		cut = cut[:loc[0]]
	}

	prompt := strings.TrimSpace(cut)
	if prompt == "" {
		return strings.TrimSpace(parameters)
	}

	for _, phrase := range blacklist {
		if phrase == "" {
			continue
		}
		prompt = strings.ReplaceAll(prompt, phrase, "")
	}
	for {
		collapsed := commaRun.ReplaceAllString(prompt, ",")
		if collapsed == prompt {
			break
		}
		prompt = collapsed
	}
	return strings.Trim(prompt, ", ")
}
