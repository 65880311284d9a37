package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// workoutStrategy attempts to locate the primary workout block. It
// reports ok=false when the document carries no signal the strategy
// recognizes, letting the dispatcher fall through to the next one.
type workoutStrategy func(doc *goquery.Document) (text string, ok bool)

// workoutStrategies returns the strategies in priority order: the
// keyword-anchored node walk first, then the coarser full-document
// element scan.
func (l *Locator) workoutStrategies() []workoutStrategy {
	return []workoutStrategy{
		l.keywordAnchoredWalk,
		l.fullDocumentScan,
	}
}

// keywordAnchoredWalk finds the first text node containing a workout
// phrase and walks forward from its enclosing element across sibling
// elements, bounded by maxSiblingHops, until a node whose flattened
// text carries a phrase is reassembled into the candidate block. The
// container's full text (line breaks preserved) wins over the single
// matched node when it yields strictly more content.
func (l *Locator) keywordAnchoredWalk(doc *goquery.Document) (string, bool) {
	if len(doc.Selection.Nodes) == 0 {
		return "", false
	}
	node := firstMatchingTextNode(doc.Selection.Nodes[0], l.keywords.Workout)
	if node == nil {
		return "", false
	}

	candidate := strings.TrimSpace(node.Data)
	hops := 0
	for el := enclosingElement(node); el != nil && hops < maxSiblingHops; el = nextElementSibling(el) {
		text := blockText(el)
		if containsAnyFold(text, l.keywords.Workout) {
			if len(text) > len(candidate) {
				candidate = text
			}
			break
		}
		hops++
	}

	return candidate, candidate != ""
}

// fullDocumentScan is the fallback: the first paragraph/section/
// container-like element whose flattened text carries a workout phrase.
// It catches phrases that inline markup splits across text nodes.
func (l *Locator) fullDocumentScan(doc *goquery.Document) (string, bool) {
	found := ""
	doc.Find(workoutFallbackSelector).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if len(sel.Nodes) == 0 {
			return true
		}
		text := blockText(sel.Nodes[0])
		if containsAnyFold(text, l.keywords.Workout) {
			found = text
			return false
		}
		return true
	})
	return found, found != ""
}

// firstMatchingTextNode walks the tree in document order and returns
// the first text node containing any of the phrases.
func firstMatchingTextNode(root *html.Node, phrases []string) *html.Node {
	if root == nil {
		return nil
	}
	if root.Type == html.TextNode {
		if containsAnyFold(root.Data, phrases) {
			return root
		}
		return nil
	}
	if root.Type == html.ElementNode && skippedElements[root.Data] {
		return nil
	}
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if found := firstMatchingTextNode(c, phrases); found != nil {
			return found
		}
	}
	return nil
}

// enclosingElement returns the nearest element ancestor of a text node.
func enclosingElement(n *html.Node) *html.Node {
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode {
			return p
		}
	}
	return nil
}

// nextElementSibling skips over text and comment siblings.
func nextElementSibling(n *html.Node) *html.Node {
	for s := n.NextSibling; s != nil; s = s.NextSibling {
		if s.Type == html.ElementNode {
			return s
		}
	}
	return nil
}
