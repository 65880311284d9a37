package extract

import (
	"strings"

	"golang.org/x/net/html"
)

// blockBoundary lists elements whose closing edge implies a line break
// when flattening markup to text.
var blockBoundary = map[string]bool{
	"p": true, "div": true, "section": true, "article": true,
	"li": true, "ul": true, "ol": true, "tr": true, "table": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"blockquote": true, "pre": true,
}

// skippedElements never contribute text.
var skippedElements = map[string]bool{
	"script": true, "style": true, "noscript": true,
}

// blockText flattens a node to plain text, preserving internal line
// breaks at block-level boundaries and <br> tags. Lines are trimmed and
// empty lines dropped.
func blockText(n *html.Node) string {
	var b strings.Builder
	appendNodeText(n, &b)
	return tidyLines(b.String())
}

func appendNodeText(n *html.Node, b *strings.Builder) {
	if n == nil {
		return
	}
	switch n.Type {
	case html.TextNode:
		b.WriteString(n.Data)
		return
	case html.ElementNode:
		if skippedElements[n.Data] {
			return
		}
		if n.Data == "br" {
			b.WriteString("\n")
			return
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		appendNodeText(c, b)
	}
	if n.Type == html.ElementNode && blockBoundary[n.Data] {
		b.WriteString("\n")
	}
}

func tidyLines(raw string) string {
	lines := strings.Split(raw, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}

// containsAnyFold reports whether text contains any of the phrases,
// ignoring case.
func containsAnyFold(text string, phrases []string) bool {
	lower := strings.ToLower(text)
	for _, p := range phrases {
		if p == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(p)) {
			return true
		}
	}
	return false
}

// startsWithAnyFold reports whether text opens with any of the
// phrases, ignoring case.
func startsWithAnyFold(text string, phrases []string) bool {
	lower := strings.ToLower(strings.TrimSpace(text))
	for _, p := range phrases {
		if p == "" {
			continue
		}
		if strings.HasPrefix(lower, strings.ToLower(p)) {
			return true
		}
	}
	return false
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
