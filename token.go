package mrkdwn

// A token is a single Unicode code point of the input. The machine consumes
// the token sequence exactly once, left to right. Combining marks are not
// special-cased.
type token = rune

// tokenize splits the input into its token sequence. The sequence is built
// once per conversion and read-only thereafter.
func tokenize(text string) []token {
	return []rune(text)
}

// window is the machine's view of the token sequence at one position: all
// tokens before the cursor, the current token, and all tokens after it. A
// window can be re-derived for any index without mutating prior state; it is
// the unit handed to every predicate and handler.
type window struct {
	tokens []token
	pos    int
}

func (w window) current() token {
	return w.tokens[w.pos]
}

// previous returns the tokens before the current one, order preserved.
func (w window) previous() []token {
	return w.tokens[:w.pos]
}

// next returns the tokens after the current one, order preserved.
func (w window) next() []token {
	return w.tokens[w.pos+1:]
}

// atEnd reports whether the current token is the last of the input.
func (w window) atEnd() bool {
	return w.pos+1 >= len(w.tokens)
}
