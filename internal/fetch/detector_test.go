package fetch

import (
	"strings"
	"testing"
)

func TestBlockDetector(t *testing.T) {
	d := NewBlockDetector(100, DefaultBlockMarkers(), nil)

	realPage := "<html><body><h1>251130</h1><p>For time: 21-15-9</p>" +
		strings.Repeat("<p>warm up thoroughly before starting</p>", 10) +
		"</body></html>"

	tests := []struct {
		name string
		body string
		want bool
	}{
		{name: "tiny body is suspect", body: "<html></html>", want: true},
		{name: "empty body is suspect", body: "", want: true},
		{name: "captcha marker", body: realPage + "<p>please solve this CAPTCHA</p>", want: true},
		{name: "access denied marker", body: realPage + "Access Denied", want: true},
		{name: "plausible page passes", body: realPage, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := d.SuspectedBlock([]byte(tt.body))
			if got != tt.want {
				t.Fatalf("SuspectedBlock = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBlockDetectorSelectors(t *testing.T) {
	d := NewBlockDetector(0, nil, []string{"h1, h2"})

	if !d.SuspectedBlock([]byte("<html><body><p>no headings at all</p></body></html>")) {
		t.Fatal("expected missing selector to mark the page suspect")
	}
	if d.SuspectedBlock([]byte("<html><body><h2>251130</h2></body></html>")) {
		t.Fatal("expected page with required selector to pass")
	}
}

func TestBlockDetectorDisabledThreshold(t *testing.T) {
	d := NewBlockDetector(0, nil, nil)
	if d.SuspectedBlock([]byte("x")) {
		t.Fatal("detector with no thresholds should pass everything")
	}
}
