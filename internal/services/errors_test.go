package services

import (
	"errors"
	"testing"
)

func TestWrapTagsMarker(t *testing.T) {
	underlying := errors.New("connection reset")
	err := Wrap(ErrTransient, "tmdb", "find", "lookup failed", underlying)
	if !errors.Is(err, ErrTransient) {
		t.Fatalf("expected error to match ErrTransient: %v", err)
	}
	if !errors.Is(err, underlying) {
		t.Fatalf("expected error to wrap underlying cause: %v", err)
	}
	want := "transient failure: tmdb: find: lookup failed: connection reset"
	if err.Error() != want {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestWrapNilMarkerDefaultsToTransient(t *testing.T) {
	err := Wrap(nil, "omdb", "detail", "", nil)
	if !errors.Is(err, ErrTransient) {
		t.Fatalf("expected nil marker to default to ErrTransient: %v", err)
	}
}

func TestRetryable(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"transient", Wrap(ErrTransient, "a", "b", "", nil), true},
		{"timeout", Wrap(ErrTimeout, "a", "b", "", nil), true},
		{"not found", Wrap(ErrNotFound, "a", "b", "", nil), false},
		{"configuration", Wrap(ErrConfiguration, "a", "b", "", nil), false},
		{"parse", Wrap(ErrParse, "a", "b", "", nil), false},
		{"untagged", errors.New("anything"), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Retryable(tc.err); got != tc.want {
				t.Fatalf("Retryable(%v) = %v, want %v", tc.err, got, tc.want)
			}
		})
	}
}
