// Package classify decides whether extracted workout content describes
// a rest day.
package classify

import (
	"strings"
	"unicode"
)

// shortTextLimit gates the terse-announcement heuristic: below this
// trimmed length a bare "rest"/"recovery"/"off" marks a rest day, while
// longer workouts that merely mention recovery movements do not
// over-trigger.
const shortTextLimit = 50

// Phrases configures the classifier's indicator sets.
type Phrases struct {
	// Rest phrases mark a rest day wherever they appear.
	Rest []string `mapstructure:"rest"`
	// ShortWords mark a rest day only in short announcements.
	ShortWords []string `mapstructure:"short_words"`
}

// DefaultPhrases returns the curated English indicator sets.
func DefaultPhrases() Phrases {
	return Phrases{
		Rest: []string{
			"rest day",
			"no workout",
			"recovery day",
			"active recovery",
			"day off",
			"mobility day",
			"take a rest",
		},
		ShortWords: []string{"rest", "recovery", "off"},
	}
}

// Classifier applies the rest-day heuristics.
type Classifier struct {
	phrases Phrases
}

// NewClassifier builds a Classifier. Empty phrase lists fall back to
// the defaults.
func NewClassifier(phrases Phrases) *Classifier {
	def := DefaultPhrases()
	if len(phrases.Rest) == 0 {
		phrases.Rest = def.Rest
	}
	if len(phrases.ShortWords) == 0 {
		phrases.ShortWords = def.ShortWords
	}
	return &Classifier{phrases: phrases}
}

// IsRestDay reports whether the workout text describes a rest day.
// Empty text is not a rest day: absence of evidence is not evidence of
// rest.
func (c *Classifier) IsRestDay(workoutText string) bool {
	trimmed := strings.TrimSpace(workoutText)
	if trimmed == "" {
		return false
	}
	lower := strings.ToLower(trimmed)

	for _, phrase := range c.phrases.Rest {
		if strings.Contains(lower, strings.ToLower(phrase)) {
			return true
		}
	}

	if len(trimmed) >= shortTextLimit {
		return false
	}
	words := strings.FieldsFunc(lower, func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	for _, w := range words {
		for _, indicator := range c.phrases.ShortWords {
			if w == strings.ToLower(indicator) {
				return true
			}
		}
	}
	return false
}
