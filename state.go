package mrkdwn

// basicKind enumerates the machine states that carry no payload beyond the
// state to resume when they close.
type basicKind uint8

const (
	stateText basicKind = iota
	stateBold
	stateItalic
	stateStrikethrough
	stateInlineCode
	stateCodeBlock
	stateBlockquote
	stateBulletList
	stateEnd
)

var basicKindNames = [...]string{
	stateText:          "TEXT",
	stateBold:          "BOLD",
	stateItalic:        "ITALIC",
	stateStrikethrough: "STRIKETHROUGH",
	stateInlineCode:    "INLINE_CODE",
	stateCodeBlock:     "CODE_BLOCK",
	stateBlockquote:    "BLOCKQUOTE",
	stateBulletList:    "BULLET_LIST",
	stateEnd:           "END",
}

func (k basicKind) String() string {
	if int(k) < len(basicKindNames) {
		return basicKindNames[k]
	}
	return "UNKNOWN"
}

// machineState is the tagged union over the three state variants. Exactly one
// state is active at a time; stateEnd is terminal. The sealed interface keeps
// illegal combinations unrepresentable: a state either is basic, carries link
// payload, or carries a skip counter, never a mix.
type machineState interface {
	stateTag() string
}

// basicState is any state that only needs to remember which basic state to
// resume. prev matters for the formatting and list/quote states; for plain
// TEXT it is simply TEXT.
type basicState struct {
	kind basicKind
	prev basicKind
}

func (s basicState) stateTag() string { return s.kind.String() }

// linkPhase selects which half of a <url|display> link is accumulating.
type linkPhase uint8

const (
	phaseURL linkPhase = iota
	phaseDisplayText
)

// linkState accumulates a chat-style link until `>` closes it. The consumed
// <...> markup is reproducible from the payload, which keeps unterminated
// links recoverable as literal text.
type linkState struct {
	url     []token
	display []token
	phase   linkPhase
	resume  basicState
}

func (s linkState) stateTag() string { return "LINK" }

// markdown renders the closed link. A link without display text uses the URL
// as its own label.
func (s linkState) markdown() string {
	url := string(s.url)
	display := string(s.display)
	if display == "" {
		display = url
	}
	return "[" + display + "](" + url + ")"
}

// raw reconstructs the consumed input verbatim, for links that never close.
func (s linkState) raw() string {
	out := "<" + string(s.url)
	if s.phase == phaseDisplayText {
		out += "|" + string(s.display)
	}
	return out
}

// skipState consumes the remaining raw characters of a construct whose
// replacement was already emitted, such as the tail of an HTML entity or the
// two extra backticks of a fence. The current token counts toward remaining,
// so remaining=N swallows exactly N tokens.
type skipState struct {
	remaining int
	resume    basicState
}

func (s skipState) stateTag() string { return "SKIP_TOKENS" }
