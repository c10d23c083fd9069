package mrkdwn

import (
	"errors"
	"fmt"
	"io"
)

// Convert rewrites chat markup as standard Markdown. It accepts any Unicode
// string, including the empty string, and always returns a result: malformed
// or ambiguous markup is copied through verbatim, never rejected. Each call
// owns its own machine and buffer, so Convert is safe to call concurrently.
func Convert(text string, opts ...Option) string {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	m := newMachine(cfg.log)
	tokens := tokenize(text)
	m.log.Debugf("mrkdwn: converting %d tokens", len(tokens))
	for i := range tokens {
		if m.done() {
			break
		}
		m.step(window{tokens: tokens, pos: i})
	}
	m.log.Debugf("mrkdwn: emitted %d bytes in state %s", m.out.Len(), m.state.stateTag())
	return m.out.String()
}

// Request describes a Render call: chat markup in, Markdown out.
type Request struct {
	Reader  io.Reader
	Writer  io.Writer
	Options []Option
}

// Render reads all input from the request's reader, converts it, and writes
// the Markdown to the writer. It is a convenience wrapper around Convert;
// the conversion itself is not incremental.
func Render(req Request) error {
	if req.Reader == nil || req.Writer == nil {
		return errors.New("render: reader and writer are required")
	}
	src, err := io.ReadAll(req.Reader)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	if _, err := io.WriteString(req.Writer, Convert(string(src), req.Options...)); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
