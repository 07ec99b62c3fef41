package media

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind distinguishes the two content shapes the pipeline resolves.
type Kind string

const (
	KindMovie  Kind = "movie"
	KindSeries Kind = "series"
)

// ParseKind validates a content kind string.
func ParseKind(value string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(value))) {
	case KindMovie:
		return KindMovie, nil
	case KindSeries:
		return KindSeries, nil
	default:
		return "", fmt.Errorf("unknown content kind %q", value)
	}
}

// ContentID is the parsed form of an opaque identifier string. It is built
// once per request and never mutated afterward.
//
// Accepted formats: a bare external id ("tt0414762" for IMDb, "603" for a
// TMDB-native id), or for series a composite "externalId:season:episode".
type ContentID struct {
	Kind    Kind
	Raw     string
	IMDBID  string
	TMDBID  string
	Season  int
	Episode int
}

// ParseContentID parses an opaque identifier for the given kind.
func ParseContentID(kind Kind, raw string) (ContentID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ContentID{}, fmt.Errorf("identifier is empty")
	}

	id := ContentID{Kind: kind, Raw: raw}
	parts := strings.Split(raw, ":")

	if strings.HasPrefix(parts[0], "tt") {
		id.IMDBID = parts[0]
	} else {
		id.TMDBID = parts[0]
	}

	if kind == KindSeries {
		if len(parts) < 3 {
			return ContentID{}, fmt.Errorf("series identifier %q needs id:season:episode", raw)
		}
		season, err := strconv.Atoi(parts[1])
		if err != nil || season < 0 {
			return ContentID{}, fmt.Errorf("series identifier %q has invalid season", raw)
		}
		episode, err := strconv.Atoi(parts[2])
		if err != nil || episode < 0 {
			return ContentID{}, fmt.Errorf("series identifier %q has invalid episode", raw)
		}
		id.Season = season
		id.Episode = episode
	}

	return id, nil
}
