package llm

import "strings"

// cleanMarkdownWrapper strips the markdown code fences and the literal "json"
// language tag that chat models habitually wrap JSON payloads in, leaving the
// bare object for parsing.
func cleanMarkdownWrapper(content string) string {
	content = strings.ReplaceAll(content, "`", "")
	content = strings.ReplaceAll(content, "json", "")
	return strings.TrimSpace(content)
}
