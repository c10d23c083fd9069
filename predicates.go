package mrkdwn

import (
	"strings"
	"unicode"
)

const (
	bulletGlyph = '•'
	backtick    = '`'
)

// htmlEntity is one of the entities the engine decodes. Decoding applies in
// every state, including inside code fences.
type htmlEntity struct {
	text        string
	replacement token
}

var htmlEntities = [...]htmlEntity{
	{"&gt;", '>'},
	{"&lt;", '<'},
	{"&amp;", '&'},
}

// The longest URL scheme prefix a link opener must reveal: "https://".
const linkSchemeLookahead = 8

// shouldEnterFormattedText reports whether the marker under the cursor opens
// a formatted span. A later occurrence of the marker must exist, and neither
// end of the span may touch whitespace: "* text *" never bolds, and an
// unmatched marker stays literal.
func shouldEnterFormattedText(w window, marker token) bool {
	if w.current() != marker {
		return false
	}
	next := w.next()
	closing := indexToken(next, marker)
	if closing < 0 {
		return false
	}
	if isWhitespace(next[0]) {
		return false
	}
	if closing > 0 && isWhitespace(next[closing-1]) {
		return false
	}
	return true
}

// isCodeBlockStart reports a fence: exactly three backticks from the cursor.
func isCodeBlockStart(w window) bool {
	if w.current() != backtick {
		return false
	}
	next := w.next()
	return len(next) >= 2 && next[0] == backtick && next[1] == backtick
}

// isInlineCode reports a code span opener: a backtick that is not part of a
// fence, with a later backtick to close it.
func isInlineCode(w window) bool {
	if w.current() != backtick || isCodeBlockStart(w) {
		return false
	}
	return indexToken(w.next(), backtick) >= 0
}

// isLinkStart reports a chat link opener: `<` immediately followed by an
// http or https scheme within the next eight tokens.
func isLinkStart(w window) bool {
	if w.current() != '<' {
		return false
	}
	next := w.next()
	n := len(next)
	if n > linkSchemeLookahead {
		n = linkSchemeLookahead
	}
	head := string(next[:n])
	return strings.HasPrefix(head, "http://") || strings.HasPrefix(head, "https://")
}

// isBeginningOfLine reports whether the cursor sits at the start of the input
// or right after a newline.
func isBeginningOfLine(w window) bool {
	prev := w.previous()
	return len(prev) == 0 || prev[len(prev)-1] == '\n'
}

// isBulletListMarker reports a line-initial bullet: the bullet glyph, or an
// asterisk immediately followed by a space.
func isBulletListMarker(w window) bool {
	if !isBeginningOfLine(w) {
		return false
	}
	if w.current() == bulletGlyph {
		return true
	}
	next := w.next()
	return w.current() == '*' && len(next) > 0 && next[0] == ' '
}

// isOrderedListMarker reports a line-initial ordered marker: one or more
// digits, a dot, then a space.
func isOrderedListMarker(w window) bool {
	if !isBeginningOfLine(w) || !isDigit(w.current()) {
		return false
	}
	return isOrderedMarkerTail(w.next())
}

// isOrderedMarkerTail scans consecutive digits for the ". " that completes an
// ordered marker. The leading digit has already been seen by the caller.
func isOrderedMarkerTail(next []token) bool {
	i := 0
	for i < len(next) && isDigit(next[i]) {
		i++
	}
	if i >= len(next) || next[i] != '.' {
		return false
	}
	return i+1 < len(next) && next[i+1] == ' '
}

// isHtmlEntity reports whether the cursor begins the exact entity text.
func isHtmlEntity(w window, entity string) bool {
	if w.current() != '&' {
		return false
	}
	rest := []token(entity)
	if len(rest) == 0 || rest[0] != '&' {
		return false
	}
	next := w.next()
	if len(next) < len(rest)-1 {
		return false
	}
	for i, r := range rest[1:] {
		if next[i] != r {
			return false
		}
	}
	return true
}

// matchEntity resolves the cursor against the supported entity set.
func matchEntity(w window) (htmlEntity, bool) {
	for _, ent := range htmlEntities {
		if isHtmlEntity(w, ent.text) {
			return ent, true
		}
	}
	return htmlEntity{}, false
}

// nextLineIsListItem reports whether the tokens following a newline begin
// with a bullet or ordered-list marker. Shared by the list and quote exits,
// which need the same "are we still in a list" lookahead.
func nextLineIsListItem(next []token) bool {
	if len(next) == 0 {
		return false
	}
	switch {
	case next[0] == bulletGlyph:
		return true
	case next[0] == '*':
		return len(next) > 1 && next[1] == ' '
	case isDigit(next[0]):
		return isOrderedMarkerTail(next[1:])
	}
	return false
}

// nextLineIsBlockquote reports whether the tokens following a newline begin
// with `>` or its entity spelling.
func nextLineIsBlockquote(next []token) bool {
	if len(next) == 0 {
		return false
	}
	if next[0] == '>' {
		return true
	}
	return hasTokenPrefix(next, "&gt;")
}

func hasTokenPrefix(tokens []token, prefix string) bool {
	want := []token(prefix)
	if len(tokens) < len(want) {
		return false
	}
	for i, r := range want {
		if tokens[i] != r {
			return false
		}
	}
	return true
}

func indexToken(tokens []token, t token) int {
	for i, r := range tokens {
		if r == t {
			return i
		}
	}
	return -1
}

func isWhitespace(t token) bool {
	return unicode.IsSpace(t)
}

func isDigit(t token) bool {
	return t >= '0' && t <= '9'
}
