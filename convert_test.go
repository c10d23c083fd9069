package mrkdwn

import (
	"strings"
	"sync"
	"testing"
)

func TestConvertPlainTextIdentity(t *testing.T) {
	inputs := []string{
		"",
		"plain text",
		"multiple\nlines\nof plain text",
		"unicode: żółć, 完全, emoji ☕",
		"trailing newline\n",
	}
	for _, in := range inputs {
		if got := Convert(in); got != in {
			t.Fatalf("expected identity for %q, got %q", in, got)
		}
	}
}

func TestConvertFormatting(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"bold", "This *text* is bold", "This **text** is bold"},
		{"italic", "This _text_ is italic", "This _text_ is italic"},
		{"strikethrough", "This ~text~ is struck", "This ~~text~~ is struck"},
		{"inline code", "run `go build` now", "run `go build` now"},
		{"bold at start", "*lead* text", "**lead** text"},
		{"bold at end", "text *tail*", "text **tail**"},
		{"whole string bold", "*all*", "**all**"},
		{"space after opener", "hey *this * should not be boldened", "hey *this * should not be boldened"},
		{"space before closer", "a * text* b", "a * text* b"},
		{"unclosed marker", "lonely *star", "lonely *star"},
		{"unclosed tilde", "a ~ b", "a ~ b"},
		{"multiple spans", "*a* and ~b~ and _c_", "**a** and ~~b~~ and _c_"},
	}
	for _, tc := range cases {
		if got := Convert(tc.in); got != tc.want {
			t.Fatalf("%s: expected %q, got %q", tc.name, tc.want, got)
		}
	}
}

func TestConvertLinks(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"link with text", "<https://example.com|Example Website>", "[Example Website](https://example.com)"},
		{"bare link", "<https://example.com>", "[https://example.com](https://example.com)"},
		{"http link", "<http://example.com|plain>", "[plain](http://example.com)"},
		{"link in sentence", "see <https://pkt.systems|the site> now", "see [the site](https://pkt.systems) now"},
		{"link inside bold", "*see <https://example.com|this>!*", "**see [this](https://example.com)!**"},
		{"angle bracket not a link", "a < b", "a < b"},
		{"non-http angle", "<mailto:x@y.z>", "<mailto:x@y.z>"},
		{"unterminated link", "go to <https://example.com", "go to <https://example.com"},
		{"unterminated with pipe", "<https://example.com|text", "<https://example.com|text"},
	}
	for _, tc := range cases {
		if got := Convert(tc.in); got != tc.want {
			t.Fatalf("%s: expected %q, got %q", tc.name, tc.want, got)
		}
	}
}

func TestConvertEntities(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"greater than", "This is &gt; than that", "This is > than that"},
		{"less than", "a &lt; b", "a < b"},
		{"ampersand", "salt &amp; pepper", "salt & pepper"},
		{"inside bold", "*a &amp; b*", "**a & b**"},
		{"inside inline code", "`a &lt; b`", "`a < b`"},
		{"unknown entity literal", "&copy; stays", "&copy; stays"},
		{"isolated ampersand", "tom & jerry", "tom & jerry"},
		{"entity at end", "left &gt;", "left >"},
	}
	for _, tc := range cases {
		if got := Convert(tc.in); got != tc.want {
			t.Fatalf("%s: expected %q, got %q", tc.name, tc.want, got)
		}
	}
}

func TestConvertCodeBlocks(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"fence newline injection", "```const x = 10;```", "```\nconst x = 10;\n```"},
		{"fence newlines kept", "```\ncode\n```", "```\ncode\n```"},
		{"markers literal in fence", "```a *b* _c_ ~d~```", "```\na *b* _c_ ~d~\n```"},
		{"entity decoded in fence", "```if a &gt; b {}```", "```\nif a > b {}\n```"},
		{"link converted in fence", "```see <https://example.com|docs>```", "```\nsee [docs](https://example.com)\n```"},
		{"text around fence", "before ```x``` after", "before ```\nx\n``` after"},
		{"unclosed fence", "```abc", "```\nabc"},
		{"two backticks literal", "a `` b", "a `` b"},
	}
	for _, tc := range cases {
		if got := Convert(tc.in); got != tc.want {
			t.Fatalf("%s: expected %q, got %q", tc.name, tc.want, got)
		}
	}
}

func TestConvertLists(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"bullets with trailing text", "• Item 1\n• Item 2\nNormal text after", "* Item 1\n* Item 2\n\nNormal text after"},
		{"bullets at end of input", "• Item 1\n• Item 2", "* Item 1\n* Item 2"},
		{"blank line not duplicated", "• Item 1\n\nafter", "* Item 1\n\nafter"},
		{"asterisk bullets", "* one\n* two\nafter", "* one\n* two\n\nafter"},
		{"ordered list", "1. one\n2. two\nafter", "1. one\n2. two\n\nafter"},
		{"ordered numbering kept", "3. c\n1. a\n1. a again", "3. c\n1. a\n1. a again"},
		{"mixed bullet and ordered", "• one\n2. two\nafter", "* one\n2. two\n\nafter"},
		{"mid-line bullet", "a • b", "a * b"},
		{"formatting in list item", "• a *bold* word\nafter", "* a **bold** word\n\nafter"},
		{"digit without dot is not a list", "1and text", "1and text"},
	}
	for _, tc := range cases {
		if got := Convert(tc.in); got != tc.want {
			t.Fatalf("%s: expected %q, got %q", tc.name, tc.want, got)
		}
	}
}

func TestConvertBlockquotes(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"quote then text", "> quoted\nnormal", "> quoted\n\nnormal"},
		{"quote continues", "> a\n> b\nafter", "> a\n> b\n\nafter"},
		{"quote at end", "> final words", "> final words"},
		{"quote blank line kept", "> a\n\nafter", "> a\n\nafter"},
		{"entity quote start", "&gt; quoted\nnormal", "> quoted\n\nnormal"},
		{"formatting in quote", "> a *b* c\nafter", "> a **b** c\n\nafter"},
		{"bullet inside quote", "> • item\nafter", "> * item\n\nafter"},
		{"gt mid-line literal", "a > b", "a > b"},
	}
	for _, tc := range cases {
		if got := Convert(tc.in); got != tc.want {
			t.Fatalf("%s: expected %q, got %q", tc.name, tc.want, got)
		}
	}
}

func TestConvertMalformedInputDoesNotPanic(t *testing.T) {
	inputs := []string{
		"&",
		"&gt",
		"<",
		"<http",
		"`",
		"``",
		"*",
		"~ _ ` * <",
		"*a\nb",
		strings.Repeat("*", 7),
		strings.Repeat("`", 5),
	}
	for _, in := range inputs {
		got := Convert(in)
		if got == "" && in != "" {
			t.Fatalf("expected non-empty output for %q", in)
		}
	}
}

func TestConvertMixedDocument(t *testing.T) {
	in := "*Update*\n" +
		"• fixed &lt;nil&gt; crash\n" +
		"• docs at <https://pkt.systems|pkt.systems>\n" +
		"```go test ./...```"
	want := "**Update**\n" +
		"* fixed <nil> crash\n" +
		"* docs at [pkt.systems](https://pkt.systems)\n\n" +
		"```\ngo test ./...\n```"
	if got := Convert(in); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestConvertConcurrent(t *testing.T) {
	const workers = 8
	in := "a *b* <https://example.com|c> ~d~\n• e\nf"
	want := Convert(in)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				if got := Convert(in); got != want {
					t.Errorf("expected %q, got %q", want, got)
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestRender(t *testing.T) {
	var out strings.Builder
	err := Render(Request{
		Reader: strings.NewReader("a *b* c"),
		Writer: &out,
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got := out.String(); got != "a **b** c" {
		t.Fatalf("expected %q, got %q", "a **b** c", got)
	}

	if err := Render(Request{}); err == nil {
		t.Fatalf("expected error for missing reader and writer")
	}
}
