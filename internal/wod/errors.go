package wod

import "fmt"

// FetchError reports that the page could not be retrieved after
// exhausting every attempt. It is the only hard failure the pipeline
// surfaces; everything past the network boundary degrades to sentinels.
type FetchError struct {
	URL      string
	Attempts int
	Err      error
}

// Error implements the error interface, including the attempt count so
// operators can see how hard the fetcher tried.
func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s failed after %d attempts: %v", e.URL, e.Attempts, e.Err)
}

// Unwrap exposes the final underlying transport error.
func (e *FetchError) Unwrap() error {
	return e.Err
}

// Degradation tags a parsing irregularity that was absorbed into a
// sentinel value instead of being raised as an error. Tests use these
// to assert which heuristic failed rather than only that "something"
// failed.
type Degradation string

// Degradation reasons recorded by the extraction stages.
const (
	DegradeNoDateToken   Degradation = "no_date_token"
	DegradeBadDateToken  Degradation = "bad_date_token"
	DegradeNoWorkoutText Degradation = "no_workout_text"
	DegradeAssemblyPanic Degradation = "assembly_panic"
)
