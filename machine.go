package mrkdwn

import (
	"errors"
	"fmt"
	"strings"
)

// errInvariant marks a dispatch whose state payload does not match its
// handler. The driver recovers it per token; conversion never aborts.
var errInvariant = errors.New("machine state does not match dispatch")

// machine is one conversion in flight: the active state and the append-only
// result buffer. A fresh machine is built per Convert call and discarded
// afterwards, so conversions are independent and reentrant.
type machine struct {
	state machineState
	out   strings.Builder
	log   Logger
}

func newMachine(log Logger) *machine {
	return &machine{
		state: basicState{kind: stateText, prev: stateText},
		log:   log,
	}
}

// done reports whether the terminal state was reached.
func (m *machine) done() bool {
	s, ok := m.state.(basicState)
	return ok && s.kind == stateEnd
}

// setState performs a transition, reporting it to the diagnostic sink.
func (m *machine) setState(next machineState, what string) {
	m.log.Tracef("mrkdwn: %s -> %s (%s)", m.state.stateTag(), next.stateTag(), what)
	m.state = next
}

// step processes one token. Handler faults are recovered here: the offending
// token is copied verbatim, the state kept, and the loop continues.
func (m *machine) step(w window) {
	if err := m.dispatch(w); err != nil {
		m.log.Errorf("mrkdwn: recovered at token %d (%q): %v", w.pos, w.current(), err)
		m.out.WriteRune(w.current())
	}
}

func (m *machine) dispatch(w window) error {
	switch s := m.state.(type) {
	case skipState:
		return m.handleSkip(s, w)
	case linkState:
		return m.handleLink(s, w)
	case basicState:
		handler, ok := basicHandlers[s.kind]
		if !ok {
			return fmt.Errorf("%w: no handler for %s", errInvariant, s.kind)
		}
		return handler(m, s, w)
	default:
		return fmt.Errorf("%w: unknown state variant %T", errInvariant, m.state)
	}
}

// basicHandlers is the dispatch table for states without extra payload.
// stateEnd deliberately has no entry: reaching it through dispatch is an
// invariant violation the driver recovers from.
var basicHandlers = map[basicKind]func(*machine, basicState, window) error{
	stateText:          (*machine).handleText,
	stateBold:          (*machine).handleFormatted,
	stateItalic:        (*machine).handleFormatted,
	stateStrikethrough: (*machine).handleFormatted,
	stateInlineCode:    (*machine).handleFormatted,
	stateCodeBlock:     (*machine).handleCodeBlock,
	stateBlockquote:    (*machine).handleBlockquote,
	stateBulletList:    (*machine).handleBulletList,
}

func (m *machine) handleText(s basicState, w window) error {
	cur := w.current()
	if isBeginningOfLine(w) {
		if cur == '>' {
			m.out.WriteRune('>')
			m.setState(basicState{kind: stateBlockquote, prev: stateText}, "blockquote")
			return nil
		}
		if isHtmlEntity(w, "&gt;") {
			m.out.WriteRune('>')
			m.setState(skipState{
				remaining: len("&gt;") - 1,
				resume:    basicState{kind: stateBlockquote, prev: stateText},
			}, "blockquote entity")
			return nil
		}
	}
	if isCodeBlockStart(w) {
		m.enterCodeBlock(s, w)
		return nil
	}
	if isBulletListMarker(w) || isOrderedListMarker(w) {
		if cur == bulletGlyph {
			m.out.WriteRune('*')
		} else {
			m.out.WriteRune(cur)
		}
		m.setState(basicState{kind: stateBulletList, prev: stateText}, "list")
		return nil
	}
	return m.handleProse(s, w)
}

// handleProse covers the inline constructs shared by TEXT, BLOCKQUOTE and
// BULLET_LIST: links, formatted spans, the mid-line bullet glyph, entities,
// and the literal fallback.
func (m *machine) handleProse(s basicState, w window) error {
	cur := w.current()
	if isLinkStart(w) {
		m.setState(linkState{phase: phaseURL, resume: s}, "link")
		return nil
	}
	switch {
	case shouldEnterFormattedText(w, '*'):
		m.out.WriteString("**")
		m.setState(basicState{kind: stateBold, prev: s.kind}, "bold")
		return nil
	case shouldEnterFormattedText(w, '_'):
		m.out.WriteRune('_')
		m.setState(basicState{kind: stateItalic, prev: s.kind}, "italic")
		return nil
	case shouldEnterFormattedText(w, '~'):
		m.out.WriteString("~~")
		m.setState(basicState{kind: stateStrikethrough, prev: s.kind}, "strikethrough")
		return nil
	case isInlineCode(w):
		m.out.WriteRune(backtick)
		m.setState(basicState{kind: stateInlineCode, prev: s.kind}, "inline code")
		return nil
	}
	if cur == bulletGlyph {
		m.out.WriteRune('*')
		return nil
	}
	if ent, ok := matchEntity(w); ok {
		m.decodeEntity(ent, s)
		return nil
	}
	m.copyLiteral(w)
	return nil
}

// enterCodeBlock emits the opening fence and normalizes it onto its own
// line: a newline is injected after the fence unless the input already has
// one there.
func (m *machine) enterCodeBlock(s basicState, w window) {
	m.out.WriteString("```")
	next := w.next()
	if len(next) > 2 && next[2] != '\n' {
		m.out.WriteRune('\n')
	}
	m.setState(skipState{
		remaining: 2,
		resume:    basicState{kind: stateCodeBlock, prev: s.kind},
	}, "code block")
}

// formatSpec parameterizes the shared formatted-text handler: the chat
// marker that delimits the span and the Markdown emitted in its place.
type formatSpec struct {
	marker   token
	markdown string
}

var formatSpecs = map[basicKind]formatSpec{
	stateBold:          {'*', "**"},
	stateItalic:        {'_', "_"},
	stateStrikethrough: {'~', "~~"},
	stateInlineCode:    {'`', "`"},
}

// handleFormatted runs BOLD, ITALIC, STRIKETHROUGH and INLINE_CODE. The
// closing marker emits the Markdown equivalent and resumes the stored state.
// Links and entities are honored inside the span; nothing else is
// interpreted.
func (m *machine) handleFormatted(s basicState, w window) error {
	spec, ok := formatSpecs[s.kind]
	if !ok {
		return fmt.Errorf("%w: %s is not a formatted-text state", errInvariant, s.kind)
	}
	cur := w.current()
	if cur == spec.marker {
		m.out.WriteString(spec.markdown)
		m.resumeState(basicState{kind: s.prev, prev: stateText}, w, "close "+s.kind.String())
		return nil
	}
	if isLinkStart(w) {
		m.setState(linkState{phase: phaseURL, resume: s}, "nested link")
		return nil
	}
	if ent, ok := matchEntity(w); ok {
		m.decodeEntity(ent, s)
		return nil
	}
	m.copyLiteral(w)
	return nil
}

// handleCodeBlock copies fence content verbatim. Formatting markers are
// never interpreted here, but entities still decode and links still convert.
// Only another three-backtick run closes the block.
func (m *machine) handleCodeBlock(s basicState, w window) error {
	if isCodeBlockStart(w) {
		prev := w.previous()
		if len(prev) > 0 && prev[len(prev)-1] != '\n' {
			m.out.WriteRune('\n')
		}
		m.out.WriteString("```")
		m.setState(skipState{
			remaining: 2,
			resume:    basicState{kind: s.prev, prev: stateText},
		}, "close code block")
		return nil
	}
	if isLinkStart(w) {
		m.setState(linkState{phase: phaseURL, resume: s}, "link in code block")
		return nil
	}
	if ent, ok := matchEntity(w); ok {
		m.decodeEntity(ent, s)
		return nil
	}
	m.copyLiteral(w)
	return nil
}

// handleBlockquote runs quoted lines. Content behaves like TEXT; the newline
// decides whether the quote continues (next line starts with > or &gt;) or
// exits with the blank-line policy.
func (m *machine) handleBlockquote(s basicState, w window) error {
	if w.current() == '\n' {
		next := w.next()
		if nextLineIsBlockquote(next) {
			m.out.WriteRune('\n')
			return nil
		}
		m.exitBlock(next, "leave blockquote")
		return nil
	}
	return m.handleProse(s, w)
}

// handleBulletList runs bullet and ordered list lines, which share the same
// continuation lookahead. Bullet glyphs are rewritten to *; ordered markers
// pass through unchanged, numbering preserved verbatim.
func (m *machine) handleBulletList(s basicState, w window) error {
	cur := w.current()
	if cur == '\n' {
		next := w.next()
		if nextLineIsListItem(next) {
			m.out.WriteRune('\n')
			return nil
		}
		m.exitBlock(next, "leave list")
		return nil
	}
	if cur == bulletGlyph {
		m.out.WriteRune('*')
		return nil
	}
	return m.handleProse(s, w)
}

// exitBlock closes a blockquote or list at its trailing newline. Exactly one
// blank line separates the block from following content, none is added when
// one already exists, and none trails at end of input.
func (m *machine) exitBlock(next []token, what string) {
	m.out.WriteRune('\n')
	if len(next) == 0 {
		m.setState(basicState{kind: stateEnd, prev: stateText}, what)
		return
	}
	if next[0] != '\n' {
		m.out.WriteRune('\n')
	}
	m.setState(basicState{kind: stateText, prev: stateText}, what)
}

// handleLink accumulates url and display text. `|` switches halves, `>`
// closes and emits [display](url); the consumed <...> markup is dropped. A
// link still open at end of input is flushed back as literal text.
func (m *machine) handleLink(st machineState, w window) error {
	s, ok := st.(linkState)
	if !ok {
		return fmt.Errorf("%w: link handler got %s", errInvariant, st.stateTag())
	}
	cur := w.current()
	switch {
	case cur == '>':
		m.out.WriteString(s.markdown())
		m.resumeState(s.resume, w, "close link")
		return nil
	case cur == '|' && s.phase == phaseURL:
		s.phase = phaseDisplayText
	case s.phase == phaseDisplayText:
		s.display = append(s.display, cur)
	default:
		s.url = append(s.url, cur)
	}
	if w.atEnd() {
		m.out.WriteString(s.raw())
		m.setState(basicState{kind: stateEnd, prev: stateText}, "unterminated link")
		return nil
	}
	m.state = s
	return nil
}

// handleSkip consumes tokens of an already-emitted construct. The current
// token counts against the budget.
func (m *machine) handleSkip(st machineState, w window) error {
	s, ok := st.(skipState)
	if !ok {
		return fmt.Errorf("%w: skip handler got %s", errInvariant, st.stateTag())
	}
	s.remaining--
	if s.remaining > 0 {
		m.state = s
		return nil
	}
	m.resumeState(s.resume, w, "skip done")
	return nil
}

// resumeState returns to a stored basic state, or END when the input is
// exhausted.
func (m *machine) resumeState(s basicState, w window, what string) {
	if w.atEnd() {
		m.setState(basicState{kind: stateEnd, prev: stateText}, what)
		return
	}
	m.setState(s, what)
}

// decodeEntity emits the replacement character and swallows the remaining
// raw entity text.
func (m *machine) decodeEntity(ent htmlEntity, resume basicState) {
	m.out.WriteRune(ent.replacement)
	m.setState(skipState{
		remaining: len(ent.text) - 1,
		resume:    resume,
	}, "entity "+ent.text)
}

// copyLiteral is the fallback every token can take: copy it verbatim, stay
// in state, and terminate when the input is exhausted.
func (m *machine) copyLiteral(w window) {
	m.out.WriteRune(w.current())
	if w.atEnd() {
		m.setState(basicState{kind: stateEnd, prev: stateText}, "input exhausted")
	}
}
