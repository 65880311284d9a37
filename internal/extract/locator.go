// Package extract locates the workout content inside hand-authored
// markup that has no stable schema. It applies ordered heuristic
// strategies with explicit fallbacks and never fails hard: malformed or
// unrecognizable input degrades to empty values that downstream stages
// replace with sentinels.
package extract

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/wodbot/wodbot/internal/wod"
)

const (
	// maxSiblingHops bounds the forward walk from a keyword-anchored
	// text node so a pathological document cannot cause runaway
	// traversal.
	maxSiblingHops = 6

	// dateTokenLength is the exact length of the page's date heading.
	dateTokenLength = 6

	defaultMinScaledLen = 20
)

// scaledCandidateSelector covers the list/paragraph/section-like
// elements the scaled variant is published in.
const scaledCandidateSelector = "p, li, div, section"

// workoutFallbackSelector covers the container-like elements scanned by
// the full-document fallback strategy.
const workoutFallbackSelector = "p, div, section, li"

// headingSelector covers the heading roles that carry the date token.
const headingSelector = "h1, h2"

// Locator scans a document for the date token, the primary workout
// block, and an optional scaled variant block.
type Locator struct {
	keywords     Keywords
	minScaledLen int
}

// NewLocator builds a Locator. Empty keyword lists fall back to the
// curated defaults.
func NewLocator(keywords Keywords) *Locator {
	return &Locator{
		keywords:     keywords.withDefaults(),
		minScaledLen: defaultMinScaledLen,
	}
}

// Locate extracts the date token, workout text, and scaled text from
// raw markup. It is a pure function over the parsed document: it never
// returns an error, reporting misses as empty fields plus degradation
// tags so callers (and tests) can tell which heuristic came up short.
func (l *Locator) Locate(markup []byte) (wod.Extraction, []wod.Degradation) {
	var ext wod.Extraction
	var degradations []wod.Degradation

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(markup))
	if err != nil {
		// goquery's parser tolerates almost anything; a reader error
		// here means there is nothing to scan at all.
		return ext, []wod.Degradation{
			wod.DegradeNoDateToken,
			wod.DegradeNoWorkoutText,
		}
	}

	ext.DateToken = l.findDateToken(doc)
	if ext.DateToken == "" {
		degradations = append(degradations, wod.DegradeNoDateToken)
	}

	ext.WorkoutText = l.findWorkoutText(doc)
	if ext.WorkoutText == "" {
		degradations = append(degradations, wod.DegradeNoWorkoutText)
	}

	// A missing scaled variant is not a degradation; many days simply
	// publish none.
	ext.ScaledText = l.findScaledText(doc)

	return ext, degradations
}

// findDateToken returns the first heading whose trimmed text is exactly
// six digits, in document order.
func (l *Locator) findDateToken(doc *goquery.Document) string {
	token := ""
	doc.Find(headingSelector).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		text := tidyLines(sel.Text())
		if len(text) == dateTokenLength && isDigits(text) {
			token = text
			return false
		}
		return true
	})
	return token
}

// findWorkoutText evaluates the ordered workout strategies and returns
// the first non-empty result.
func (l *Locator) findWorkoutText(doc *goquery.Document) string {
	for _, strategy := range l.workoutStrategies() {
		if text, ok := strategy(doc); ok {
			return text
		}
	}
	return ""
}

// findScaledText collects the innermost list/paragraph/section-like
// elements publishing a scaled variant and joins them with newlines.
// Containers are skipped when a descendant qualifies on its own; a
// div wrapping the whole day would otherwise drag the primary workout
// into the scaled field.
func (l *Locator) findScaledText(doc *goquery.Document) string {
	var blocks []string
	doc.Find(scaledCandidateSelector).Each(func(_ int, sel *goquery.Selection) {
		if len(sel.Nodes) == 0 {
			return
		}
		text := blockText(sel.Nodes[0])
		if !l.scaledCandidate(text) || l.hasScaledDescendant(sel) {
			return
		}
		for _, seen := range blocks {
			if seen == text {
				return
			}
		}
		blocks = append(blocks, text)
	})
	return strings.Join(blocks, "\n")
}

// scaledCandidate applies the plausibility filter for scaled blocks. A
// block that opens with a scaling phrase is taken at its word; a block
// that merely mentions one somewhere must also carry a workout-domain
// term, which keeps marketing copy and page chrome out. Everything
// below the minimum length is noise (nav labels, icon captions).
func (l *Locator) scaledCandidate(text string) bool {
	if len(text) <= l.minScaledLen {
		return false
	}
	if startsWithAnyFold(text, l.keywords.Scaling) {
		return true
	}
	return containsAnyFold(text, l.keywords.Scaling) && containsAnyFold(text, l.keywords.Domain)
}

// hasScaledDescendant reports whether any nested candidate element
// qualifies by itself.
func (l *Locator) hasScaledDescendant(sel *goquery.Selection) bool {
	qualifying := false
	sel.Find(scaledCandidateSelector).EachWithBreak(func(_ int, child *goquery.Selection) bool {
		if len(child.Nodes) > 0 && l.scaledCandidate(blockText(child.Nodes[0])) {
			qualifying = true
			return false
		}
		return true
	})
	return qualifying
}
