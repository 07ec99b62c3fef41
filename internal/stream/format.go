package stream

import (
	"fmt"
	"regexp"
	"strings"

	"streamscout/internal/media"
	"streamscout/internal/scoring"
)

// Result sites append their own attribution to video titles; strip the
// known forms before display.
var platformSuffixRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\s*-\s*video\s+Dailymotion\s*$`),
	regexp.MustCompile(`(?i)\s*\|\s*YouTube\s*$`),
	regexp.MustCompile(`(?i)\s*-\s*YouTube\s*$`),
	regexp.MustCompile(`(?i)\s*\|\s*Facebook\s*$`),
}

var trailingNoiseRe = regexp.MustCompile(`[\s\-,|]+$`)

// formatCandidate renders one selected candidate as an output stream: the
// cleaned title behind a [source] prefix, plus a duration line when the
// result page displayed one.
func formatCandidate(s scoring.Scored) media.Stream {
	source := s.Source
	if source == "" {
		source = "Stream"
	}
	title := fmt.Sprintf("[%s] %s", source, cleanTitle(s.Title))
	if s.Candidate.Duration != "" {
		title += "\nDuration: " + s.Candidate.Duration
	}
	return media.Stream{
		Title:       title,
		ExternalURL: s.URL,
		IsExternal:  true,
	}
}

func cleanTitle(title string) string {
	for _, re := range platformSuffixRes {
		title = re.ReplaceAllString(title, "")
	}
	title = trailingNoiseRe.ReplaceAllString(title, "")
	return strings.TrimSpace(title)
}
