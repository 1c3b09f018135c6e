package parser

import (
	"strings"

	"golang.org/x/net/html"
)

// CleanHTML strips markup tags from s, decodes entities and trims
// surrounding whitespace. It never fails: input that is not parseable
// as markup is returned entity-decoded and trimmed. Whitespace inside
// the text is preserved, so the function is idempotent.
func CleanHTML(s string) string {
	if s == "" {
		return ""
	}

	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		return strings.TrimSpace(html.UnescapeString(s))
	}

	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return strings.TrimSpace(b.String())
}
