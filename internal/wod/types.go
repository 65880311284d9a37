// Package wod defines the core types shared across the fetch and
// extraction subsystems.
package wod

import "time"

// Sentinel values substituted when extraction yields no usable content.
const (
	UnknownDateToken   = "unknown"
	WorkoutNotFound    = "Workout details not found"
	WorkoutParseFailed = "Workout parsing failed"
)

// Record is the structured result of one extraction attempt. It is
// assembled exactly once per pipeline run and never mutated afterwards.
type Record struct {
	// DateToken is the raw 6-character token lifted from the page
	// heading, or UnknownDateToken when no heading matched.
	DateToken string `json:"date_token"`
	// ISODate is always a syntactically valid YYYY-MM-DD string. It
	// falls back to the current date when DateToken cannot be parsed.
	ISODate string `json:"iso_date"`
	// IsRestDay reports whether the extracted content describes a rest
	// day rather than a prescribed workout.
	IsRestDay bool `json:"is_rest_day"`
	// WorkoutText is the best extracted workout prescription. It is
	// never empty; WorkoutNotFound stands in when nothing matched.
	WorkoutText string `json:"workout_text"`
	// ScaledText holds the scaled/modified variant when one was found.
	// Empty means absent.
	ScaledText string `json:"scaled_text,omitempty"`
	// SourceURL is the page the record was derived from.
	SourceURL string `json:"source_url"`
}

// HasScaled reports whether a scaled variant was extracted.
func (r Record) HasScaled() bool {
	return r.ScaledText != ""
}

// Extraction is the raw output of the content locator before sentinels
// and date normalization are applied.
type Extraction struct {
	DateToken   string
	WorkoutText string
	ScaledText  string
}

// Clock returns the current time. Injected so date fallbacks and tests
// agree on what "today" means.
type Clock interface {
	Now() time.Time
}

// SystemClock implements Clock with the real UTC time.
type SystemClock struct{}

// Now returns the current UTC time.
func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}
