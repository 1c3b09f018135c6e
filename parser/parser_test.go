package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"newswire/parser"
)

func TestCleanHTMLStripsTags(t *testing.T) {
	assert.Equal(t, "Hi World", parser.CleanHTML("<b>Hi</b> World"))
	assert.Equal(t, "Hello", parser.CleanHTML("<p><em>Hello</em></p>"))
	assert.Equal(t, "a b", parser.CleanHTML(`<a href="https://example.com">a</a> b`))
}

func TestCleanHTMLDecodesEntities(t *testing.T) {
	assert.Equal(t, "a & b", parser.CleanHTML("a &amp; b"))
	assert.Equal(t, "«quoted»", parser.CleanHTML("&laquo;quoted&raquo;"))
}

func TestCleanHTMLTrimsWhitespace(t *testing.T) {
	assert.Equal(t, "trimmed", parser.CleanHTML("  trimmed\n"))
	assert.Equal(t, "", parser.CleanHTML("   "))
	assert.Equal(t, "", parser.CleanHTML(""))
}

func TestCleanHTMLIdempotent(t *testing.T) {
	inputs := []string{
		"<b>Hi</b> World",
		"plain text, no markup",
		"a &amp; b",
		"  padded  inner  spaces  ",
	}
	for _, in := range inputs {
		once := parser.CleanHTML(in)
		assert.Equal(t, once, parser.CleanHTML(once), "input: %q", in)
	}
}

func TestCleanHTMLPreservesInnerWhitespace(t *testing.T) {
	assert.Equal(t, "two  spaces", parser.CleanHTML("two  spaces"))
}

func TestCleanHTMLToleratesMalformedMarkup(t *testing.T) {
	// Unclosed and garbled tags degrade gracefully, never error.
	assert.Equal(t, "unclosed", parser.CleanHTML("<div>unclosed"))
	assert.Equal(t, "text", parser.CleanHTML("<div><p><b>text"))
}
