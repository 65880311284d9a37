package fetch

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// BlockDetector decides whether a successful response is actually an
// anti-bot block or challenge page using simple HTML signals.
type BlockDetector struct {
	minBodyBytes int
	markers      [][]byte
	selectors    []string
}

// DefaultBlockMarkers are phrases commonly found on challenge pages.
func DefaultBlockMarkers() []string {
	return []string{
		"captcha",
		"access denied",
		"request blocked",
		"verify you are human",
		"attention required",
	}
}

// NewBlockDetector constructs a detector. A body shorter than minBytes,
// containing any marker phrase, or missing any of the required
// selectors is treated as a suspected block.
func NewBlockDetector(minBytes int, markers, selectors []string) *BlockDetector {
	lowered := make([][]byte, 0, len(markers))
	for _, m := range markers {
		m = strings.TrimSpace(m)
		if m == "" {
			continue
		}
		lowered = append(lowered, bytes.ToLower([]byte(m)))
	}
	return &BlockDetector{
		minBodyBytes: minBytes,
		markers:      lowered,
		selectors:    selectors,
	}
}

// SuspectedBlock reports whether the body looks like a block or
// challenge page rather than the real document.
func (d *BlockDetector) SuspectedBlock(body []byte) bool {
	switch {
	case d.bodyBelowThreshold(body):
		return true
	case d.containsMarker(body):
		return true
	default:
		return d.missingSelectors(body)
	}
}

func (d *BlockDetector) bodyBelowThreshold(body []byte) bool {
	return d.minBodyBytes > 0 && len(body) < d.minBodyBytes
}

func (d *BlockDetector) containsMarker(body []byte) bool {
	if len(body) == 0 || len(d.markers) == 0 {
		return false
	}
	lowerBody := bytes.ToLower(body)
	for _, m := range d.markers {
		if bytes.Contains(lowerBody, m) {
			return true
		}
	}
	return false
}

func (d *BlockDetector) missingSelectors(body []byte) bool {
	if len(d.selectors) == 0 || len(body) == 0 {
		return false
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return true
	}
	for _, sel := range d.selectors {
		if sel == "" {
			continue
		}
		if doc.Find(sel).Length() == 0 {
			return true
		}
	}
	return false
}
