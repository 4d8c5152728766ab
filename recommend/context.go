package recommend

import (
	"strings"

	"github.com/poiesic/animerec/core"
)

const (
	// maxContextDocs bounds how many retrieved chunks enter the prompt.
	maxContextDocs = 15

	// maxDocChars bounds each chunk's contribution to the prompt.
	maxDocChars = 200
)

// formatContext renders retrieved matches into the prompt context window.
// Only the first maxContextDocs matches are used, each truncated to
// maxDocChars characters, joined by blank lines. Retrieval order is
// preserved.
func formatContext(matches []*core.SimilarityMatch) string {
	var parts []string
	for _, match := range matches {
		if len(parts) == maxContextDocs {
			break
		}
		if match == nil || match.Document == nil {
			continue
		}
		text := match.Document.Text
		if runes := []rune(text); len(runes) > maxDocChars {
			text = string(runes[:maxDocChars])
		}
		parts = append(parts, text)
	}
	return strings.Join(parts, "\n\n")
}
