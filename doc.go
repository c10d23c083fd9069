// Package mrkdwn converts chat-style lightweight markup to standard Markdown.
//
// The input dialect is the one used by chat platforms: *bold*, _italic_,
// ~strike~, backtick code spans, triple-backtick fences, <url|text> links,
// bullet (U+2022) and ordered list markers, > block quotes, and the HTML
// entities &gt;, &lt; and &amp;. Conversion is a single left-to-right pass of
// a character-level state machine with bounded lookahead; anything that is
// not recognized markup passes through unchanged.
//
// Core properties:
//   - Pure and synchronous: string in, string out, no I/O
//   - Reentrant: every call owns its own machine, safe for concurrent use
//   - Ambiguous markup is never an error; it is copied verbatim
//   - Code fence content is preserved, only fence newlines are normalized
//
// Example:
//
//	md := mrkdwn.Convert("a *bold* statement with a <https://pkt.systems|link>")
//	fmt.Println(md)
//	// a **bold** statement with a [link](https://pkt.systems)
//
// A diagnostic sink can be injected with WithLogger to observe state
// transitions and recovered faults; it never affects the result.
package mrkdwn
