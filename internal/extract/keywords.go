package extract

// Keywords holds the phrase sets that drive content location. The lists
// are configuration data rather than hard-coded constants so new
// publisher phrasing can be added without touching the extraction logic.
type Keywords struct {
	// Workout phrases anchor the primary workout search. Matched
	// case-insensitively as substrings, in document order.
	Workout []string `mapstructure:"workout"`
	// Scaling phrases identify scaled/modified variant blocks.
	Scaling []string `mapstructure:"scaling"`
	// Domain terms gate scaled candidates: a scaling match must also
	// contain one of these to be considered workout content rather
	// than nav or header noise.
	Domain []string `mapstructure:"domain"`
}

// DefaultKeywords returns the hand-curated English phrase sets used when
// configuration supplies none.
func DefaultKeywords() Keywords {
	return Keywords{
		Workout: []string{
			"For time:",
			"AMRAP",
			"EMOM",
			"Rest Day",
			"Tabata",
			"Death by",
			"For load:",
			"rounds for time",
			"rounds of:",
		},
		Scaling: []string{
			"scaled",
			"beginner",
			"modified",
			"scaling",
			"substitute",
			"intermediate",
		},
		Domain: []string{
			"rounds",
			"reps",
			"time",
			"weight",
			"distance",
			"substitute",
			"modify",
		},
	}
}

func (k Keywords) withDefaults() Keywords {
	def := DefaultKeywords()
	if len(k.Workout) == 0 {
		k.Workout = def.Workout
	}
	if len(k.Scaling) == 0 {
		k.Scaling = def.Scaling
	}
	if len(k.Domain) == 0 {
		k.Domain = def.Domain
	}
	return k
}
