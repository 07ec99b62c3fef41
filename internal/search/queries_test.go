package search

import (
	"reflect"
	"testing"

	"streamscout/internal/media"
)

func TestBuildQueriesMovie(t *testing.T) {
	md := media.Metadata{Title: "Inception", Year: 2010}
	got := BuildQueries(md, media.KindMovie)
	want := []string{"Inception 2010 full movie"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("BuildQueries = %v, want %v", got, want)
	}
}

func TestBuildQueriesMovieWithoutYear(t *testing.T) {
	md := media.Metadata{Title: "Inception"}
	got := BuildQueries(md, media.KindMovie)
	want := []string{"Inception full movie"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("BuildQueries = %v, want %v", got, want)
	}
}

func TestBuildQueriesSeries(t *testing.T) {
	md := media.Metadata{Title: "Show", Season: 1, Episode: 5}
	got := BuildQueries(md, media.KindSeries)
	want := []string{"Show S01E05"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("BuildQueries = %v, want %v", got, want)
	}

	md.EpisodeTitle = "Pilot"
	got = BuildQueries(md, media.KindSeries)
	want = []string{"Show S01E05", "Show S01E05 Pilot"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("BuildQueries with episode title = %v, want %v", got, want)
	}
}

func TestBuildQueriesEmptyTitle(t *testing.T) {
	if got := BuildQueries(media.Metadata{}, media.KindMovie); len(got) != 0 {
		t.Fatalf("expected no queries for empty title, got %v", got)
	}
}

func TestEpisodeTag(t *testing.T) {
	if got := EpisodeTag(1, 5); got != "S01E05" {
		t.Fatalf("EpisodeTag(1, 5) = %q", got)
	}
	if got := EpisodeTag(12, 34); got != "S12E34" {
		t.Fatalf("EpisodeTag(12, 34) = %q", got)
	}
}

func TestResultURL(t *testing.T) {
	got := ResultURL("https://www.google.com/search", "Inception 2010 full movie")
	want := "https://www.google.com/search?q=Inception+2010+full+movie&tbs=dur:l&tbm=vid"
	if got != want {
		t.Fatalf("ResultURL = %q, want %q", got, want)
	}
}
