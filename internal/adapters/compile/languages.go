package compile

// versionIndex maps each supported language to the execution service's version selector.
var versionIndex = map[string]string{
	"python3": "3",
	"java":    "3",
	"cpp":     "4",
	"nodejs":  "3",
	"c":       "4",
	"ruby":    "3",
	"go":      "3",
	"scala":   "3",
	"bash":    "3",
	"sql":     "3",
	"pascal":  "2",
	"csharp":  "3",
	"php":     "3",
	"swift":   "3",
	"rust":    "3",
	"r":       "3",
}

// VersionIndex reports the selector for language and whether it is supported.
func VersionIndex(language string) (string, bool) {
	v, ok := versionIndex[language]
	return v, ok
}
