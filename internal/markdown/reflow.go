package markdown

import (
	"strings"

	"github.com/muesli/reflow/wordwrap"

	internalstrings "github.com/eklerner/tdo/internal/strings"
)

// ReflowParagraphs wraps and normalizes plain paragraph text. Unlike Render
// it applies no markdown styling, which suits single fields like a todo
// description.
func ReflowParagraphs(value string, width int) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	if width < 1 {
		width = 1
	}

	paragraphs := splitParagraphs(value)
	wrapped := make([]string, 0, len(paragraphs))
	for _, paragraph := range paragraphs {
		normalized := internalstrings.NormalizeWhitespace(paragraph)
		if normalized == "" {
			continue
		}
		wrapped = append(wrapped, wordwrap.String(normalized, width))
	}
	return strings.Join(wrapped, "\n\n")
}

func splitParagraphs(value string) []string {
	normalized := internalstrings.NormalizeNewlines(value)
	return strings.Split(normalized, "\n\n")
}
