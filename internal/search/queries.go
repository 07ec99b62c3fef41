package search

import (
	"fmt"
	"net/url"
	"strings"

	"streamscout/internal/media"
)

// BuildQueries turns resolved metadata into the ordered list of search
// queries to scrape. An empty title yields an empty list, which tells the
// caller to skip scraping and serve fallback links only.
//
// Movies get a single query. Series get the compact season/episode form and,
// when the episode title is known, a second more specific variant with the
// episode title appended.
func BuildQueries(md media.Metadata, kind media.Kind) []string {
	title := strings.TrimSpace(md.Title)
	if title == "" {
		return nil
	}

	if kind == media.KindSeries {
		compact := fmt.Sprintf("%s %s", title, EpisodeTag(md.Season, md.Episode))
		queries := []string{compact}
		if episodeTitle := strings.TrimSpace(md.EpisodeTitle); episodeTitle != "" {
			queries = append(queries, compact+" "+episodeTitle)
		}
		return queries
	}

	if md.Year > 0 {
		return []string{fmt.Sprintf("%s %d full movie", title, md.Year)}
	}
	return []string{title + " full movie"}
}

// EpisodeTag renders the compact zero-padded season/episode marker, "S01E05".
func EpisodeTag(season, episode int) string {
	return fmt.Sprintf("S%02dE%02d", season, episode)
}

// ResultURL builds the results-page URL for one query, scoped to the video
// vertical with the long-duration filter applied.
func ResultURL(baseURL, query string) string {
	return baseURL + "?q=" + url.QueryEscape(query) + "&tbs=dur:l&tbm=vid"
}
