package wod

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestFetchErrorMessageIncludesAttempts(t *testing.T) {
	underlying := errors.New("connection refused")
	err := &FetchError{URL: "https://example.com/wod", Attempts: 3, Err: underlying}

	msg := err.Error()
	if !strings.Contains(msg, "3 attempts") {
		t.Fatalf("error message should include the attempt count, got %q", msg)
	}
	if !errors.Is(err, underlying) {
		t.Fatal("FetchError should unwrap to the underlying error")
	}
}

func TestFetchErrorMatchesThroughWrapping(t *testing.T) {
	err := fmt.Errorf("pipeline: %w", &FetchError{Attempts: 2})

	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatal("errors.As should find the FetchError through wrapping")
	}
	if fetchErr.Attempts != 2 {
		t.Fatalf("attempts = %d, want 2", fetchErr.Attempts)
	}
}
