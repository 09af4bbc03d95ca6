package elexer

import "strings"

// langTags maps a lowercased file extension (including the leading dot)
// to the fence tag the renderer should use for syntax highlighting.
// Spec.md §1 calls this table "the extension→language mapping used only
// by the embed lexer (a static lookup table)" and explicitly places it
// out of scope for the resolver; it lives here, next to its only caller.
var langTags = map[string]string{
	".go":    "go",
	".py":    "python",
	".js":    "javascript",
	".ts":    "typescript",
	".c":     "c",
	".h":     "c",
	".cpp":   "cpp",
	".cc":    "cpp",
	".cxx":   "cpp",
	".hpp":   "cpp",
	".java":  "java",
	".rs":    "rust",
	".rb":    "ruby",
	".sh":    "bash",
	".json":  "json",
	".yaml":  "yaml",
	".yml":   "yaml",
	".md":    "markdown",
	".sql":   "sql",
	".html":  "html",
	".css":   "css",
	".xml":   "xml",
	".toml":  "toml",
}

const defaultLangTag = "plaintext"

// langTagFor returns the fence tag for filename's extension, matched
// case-insensitively, defaulting to "plaintext".
func langTagFor(filename string) string {
	dot := strings.LastIndexByte(filename, '.')
	if dot < 0 {
		return defaultLangTag
	}
	ext := strings.ToLower(filename[dot:])
	if tag, ok := langTags[ext]; ok {
		return tag
	}
	return defaultLangTag
}
