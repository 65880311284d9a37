package extract

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"

	"github.com/wodbot/wodbot/internal/wod"
)

func mustParse(t *testing.T, markup string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	require.NoError(t, err)
	return doc
}

const fullPage = `
<html>
<body>
	<nav><a href="/">Home</a><a href="/about">Scaling guide</a></nav>
	<h1>251130</h1>
	<div>
		<p>For time: 21-15-9 Pull-ups, Push-ups, Air squats</p>
		<p>Scaled: Assisted pull-ups, knee push-ups, air squats</p>
		<p>Beginner: 15-12-9 reps, band-assisted movements</p>
	</div>
</body>
</html>`

func TestLocateFullPage(t *testing.T) {
	l := NewLocator(Keywords{})

	ext, degradations := l.Locate([]byte(fullPage))

	require.Equal(t, "251130", ext.DateToken)
	require.Contains(t, ext.WorkoutText, "For time: 21-15-9 Pull-ups, Push-ups, Air squats")
	require.Contains(t, ext.ScaledText, "Assisted pull-ups")
	require.Contains(t, ext.ScaledText, "Beginner: 15-12-9 reps")
	require.Empty(t, degradations)
}

func TestLocateScenarios(t *testing.T) {
	l := NewLocator(Keywords{})

	tests := []struct {
		name        string
		markup      string
		wantToken   string
		wantWorkout string
		wantScaled  string
	}{
		{
			name:        "amrap with scaled",
			markup:      `<div><h2>251201</h2><p>AMRAP 12 minutes: 5 pull-ups, 10 push-ups, 15 squats</p><p>Scaled: Assisted pull-ups, knee push-ups, air squats</p></div>`,
			wantToken:   "251201",
			wantWorkout: "AMRAP 12 minutes",
			wantScaled:  "Assisted pull-ups",
		},
		{
			name:        "for time with beginner option",
			markup:      `<div><h1>251202</h1><p>For time: 21-15-9 Burpees and Box Jumps</p><p>Beginner: Step-ups instead of box jumps, same reps</p></div>`,
			wantToken:   "251202",
			wantWorkout: "For time: 21-15-9 Burpees and Box Jumps",
			wantScaled:  "Step-ups instead of box jumps",
		},
		{
			name:        "rest day has no scaled",
			markup:      `<div><h1>251203</h1><p>Rest Day - Focus on mobility and recovery</p></div>`,
			wantToken:   "251203",
			wantWorkout: "Rest Day - Focus on mobility and recovery",
			wantScaled:  "",
		},
		{
			name:        "emom",
			markup:      `<div><h2>251204</h2><p>EMOM 10: 3 deadlifts at 80%</p><p>Scaled: Use lighter weight, focus on form</p></div>`,
			wantToken:   "251204",
			wantWorkout: "EMOM 10: 3 deadlifts",
			wantScaled:  "Use lighter weight",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ext, _ := l.Locate([]byte(tt.markup))
			require.Equal(t, tt.wantToken, ext.DateToken)
			require.Contains(t, ext.WorkoutText, tt.wantWorkout)
			if tt.wantScaled == "" {
				require.Empty(t, ext.ScaledText)
			} else {
				require.Contains(t, ext.ScaledText, tt.wantScaled)
			}
		})
	}
}

func TestLocateEmptyDocument(t *testing.T) {
	l := NewLocator(Keywords{})

	ext, degradations := l.Locate([]byte(`<html><body><p>Nothing interesting here.</p></body></html>`))

	require.Empty(t, ext.DateToken)
	require.Empty(t, ext.WorkoutText)
	require.Empty(t, ext.ScaledText)
	require.Contains(t, degradations, wod.DegradeNoDateToken)
	require.Contains(t, degradations, wod.DegradeNoWorkoutText)
}

func TestLocateMalformedMarkup(t *testing.T) {
	l := NewLocator(Keywords{})

	// Broken markup must never panic or error, only degrade.
	ext, _ := l.Locate([]byte(`<div><h1>2511<p>For time: <<<`))
	require.NotNil(t, ext)
}

func TestDateTokenRules(t *testing.T) {
	l := NewLocator(Keywords{})

	tests := []struct {
		name   string
		markup string
		want   string
	}{
		{name: "h1 token", markup: `<h1>251130</h1>`, want: "251130"},
		{name: "h2 token", markup: `<h2>250101</h2>`, want: "250101"},
		{name: "first in document order wins", markup: `<h2>250101</h2><h1>250202</h1>`, want: "250101"},
		{name: "whitespace tolerated", markup: `<h1>  251130  </h1>`, want: "251130"},
		{name: "h3 ignored", markup: `<h3>251130</h3>`, want: ""},
		{name: "non numeric ignored", markup: `<h1>25113a</h1>`, want: ""},
		{name: "wrong length ignored", markup: `<h1>2511301</h1>`, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ext, _ := l.Locate([]byte(tt.markup))
			require.Equal(t, tt.want, ext.DateToken)
		})
	}
}

func TestKeywordAnchoredWalkPrefersRicherContainer(t *testing.T) {
	l := NewLocator(Keywords{})

	markup := `<div><p>For time:<br>21 thrusters<br>15 pull-ups<br>9 burpees</p></div>`
	ext, _ := l.Locate([]byte(markup))

	require.Contains(t, ext.WorkoutText, "For time:")
	require.Contains(t, ext.WorkoutText, "21 thrusters")
	require.Contains(t, ext.WorkoutText, "9 burpees")
	require.Contains(t, ext.WorkoutText, "\n")
}

func TestFullDocumentScanCatchesSplitPhrases(t *testing.T) {
	l := NewLocator(Keywords{})

	// Inline markup splits "For time:" across text nodes, so the
	// keyword-anchored walk finds no single matching node and the
	// element scan has to take over.
	markup := `<p>For <b>time:</b> 5 rounds of 10 burpees</p>`

	doc := mustParse(t, markup)
	_, ok := l.keywordAnchoredWalk(doc)
	require.False(t, ok)

	text, ok := l.fullDocumentScan(doc)
	require.True(t, ok)
	require.Contains(t, text, "5 rounds of 10 burpees")

	ext, _ := l.Locate([]byte(markup))
	require.Contains(t, ext.WorkoutText, "5 rounds of 10 burpees")
}

func TestScaledFiltersNavNoise(t *testing.T) {
	l := NewLocator(Keywords{})

	tests := []struct {
		name   string
		markup string
		want   string
	}{
		{
			name:   "short nav label rejected",
			markup: `<li>Scaling guide</li>`,
			want:   "",
		},
		{
			name:   "scaling phrase without domain term rejected",
			markup: `<p>Check out our beginner friendly coaching philosophy page</p>`,
			want:   "",
		},
		{
			name:   "qualifying block accepted",
			markup: `<p>Scaled: reduce the weight and complete 3 rounds instead of 5</p>`,
			want:   "Scaled: reduce the weight",
		},
		{
			name:   "multiple blocks joined",
			markup: `<p>Scaled: 3 rounds with lighter weight</p><p>Beginner: 2 rounds, half the reps</p>`,
			want:   "Scaled: 3 rounds with lighter weight\nBeginner: 2 rounds, half the reps",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ext, _ := l.Locate([]byte(tt.markup))
			if tt.want == "" {
				require.Empty(t, ext.ScaledText)
			} else {
				require.Contains(t, ext.ScaledText, tt.want)
			}
		})
	}
}

func TestScaledVariantWithoutDomainTerm(t *testing.T) {
	l := NewLocator(Keywords{})

	// The scaled line names only exercises, no counts or loads; opening
	// with a scaling phrase must be enough.
	markup := `<h1>251130</h1>
<p>For time: 21-15-9 Pull-ups, Push-ups, Air squats</p>
<p>Scaled: Assisted pull-ups, knee push-ups, air squats</p>`
	ext, _ := l.Locate([]byte(markup))

	require.Equal(t, "251130", ext.DateToken)
	require.Contains(t, ext.WorkoutText, "For time: 21-15-9")
	require.Contains(t, ext.ScaledText, "Assisted pull-ups")
	require.NotContains(t, ext.ScaledText, "For time")
}

func TestScaledPrefersInnermostBlocks(t *testing.T) {
	l := NewLocator(Keywords{})

	// The wrapping div mentions "Scaled" and "time" so it qualifies on
	// its own; it must be skipped in favor of the paragraphs inside it,
	// or the primary workout leaks into the scaled field.
	markup := `<div>
	<h1>251130</h1>
	<p>For time: 21-15-9 Pull-ups, Push-ups, Air squats</p>
	<p>Scaled: Assisted pull-ups, knee push-ups, air squats</p>
	<p>Beginner: 15-12-9 reps, band-assisted movements</p>
</div>`
	ext, _ := l.Locate([]byte(markup))

	require.Contains(t, ext.ScaledText, "Scaled: Assisted pull-ups")
	require.Contains(t, ext.ScaledText, "Beginner: 15-12-9 reps")
	require.NotContains(t, ext.ScaledText, "For time")
}

func TestScaledDropsNestedDuplicates(t *testing.T) {
	l := NewLocator(Keywords{})

	markup := `<div><p>Scaled: reduce the weight and complete 3 rounds instead of 5</p></div>`
	ext, _ := l.Locate([]byte(markup))

	require.Equal(t, "Scaled: reduce the weight and complete 3 rounds instead of 5", ext.ScaledText)
}

func TestLocateIsIdempotent(t *testing.T) {
	l := NewLocator(Keywords{})

	first, firstDegr := l.Locate([]byte(fullPage))
	second, secondDegr := l.Locate([]byte(fullPage))

	require.Equal(t, first, second)
	require.Equal(t, firstDegr, secondDegr)
}
