package config

const (
	defaultSeparator           = ", "
	defaultSimilarityThreshold = 2
	defaultHistoryMaxDepth     = 10
	defaultCategoriesPath      = "~/.config/tagforge/categories.json"
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"
)

func defaultExtensions() []string {
	return []string{".jpg", ".jpeg", ".png", ".webp"}
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Dataset: Dataset{
			Separator:        defaultSeparator,
			Extensions:       defaultExtensions(),
			Recursive:        true,
			EnforceLowercase: false,
		},
		Suggestions: Suggestions{
			SimilarityThreshold: defaultSimilarityThreshold,
		},
		History: History{
			MaxDepth: defaultHistoryMaxDepth,
		},
		Categories: Categories{
			Path: defaultCategoriesPath,
		},
		Journal: Journal{
			Enabled: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
