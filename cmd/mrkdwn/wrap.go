package main

import (
	"strings"

	"github.com/muesli/reflow/ansi"
	"github.com/muesli/reflow/wordwrap"
)

// wrapMarkdown wraps prose lines at the given width. Fenced code blocks and
// lines already within the width pass through untouched.
func wrapMarkdown(text string, width int) string {
	if width <= 0 {
		return text
	}
	var out strings.Builder
	out.Grow(len(text))
	inFence := false
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		switch {
		case strings.HasPrefix(strings.TrimSpace(line), "```"):
			inFence = !inFence
			out.WriteString(line)
		case inFence || ansi.PrintableRuneWidth(line) <= width:
			out.WriteString(line)
		default:
			out.WriteString(wordwrap.String(line, width))
		}
		if i < len(lines)-1 {
			out.WriteByte('\n')
		}
	}
	return out.String()
}
