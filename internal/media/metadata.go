package media

import "strings"

// Metadata is the accumulator the enrichment waterfall fills in. Fields obey
// first-write-wins: a value set by a higher-priority source is never
// overwritten by a later phase. The Set helpers are the only mutation path,
// which keeps that invariant explicit and testable.
type Metadata struct {
	IMDBID       string
	TMDBID       string
	Title        string
	Year         int
	Runtime      int // whole minutes
	EpisodeTitle string
	Season       int
	Episode      int
}

// SetIMDBID fills the IMDb id if unset.
func (m *Metadata) SetIMDBID(v string) {
	if m.IMDBID == "" {
		m.IMDBID = strings.TrimSpace(v)
	}
}

// SetTMDBID fills the TMDB id if unset.
func (m *Metadata) SetTMDBID(v string) {
	if m.TMDBID == "" {
		m.TMDBID = strings.TrimSpace(v)
	}
}

// SetTitle fills the display title if unset.
func (m *Metadata) SetTitle(v string) {
	if m.Title == "" {
		m.Title = strings.TrimSpace(v)
	}
}

// SetYear fills the release year if unset. Zero and negative values are
// treated as "source had nothing".
func (m *Metadata) SetYear(v int) {
	if m.Year == 0 && v > 0 {
		m.Year = v
	}
}

// SetRuntime fills the runtime in minutes if unset. A source reporting an
// absent runtime never clears an existing value.
func (m *Metadata) SetRuntime(v int) {
	if m.Runtime == 0 && v > 0 {
		m.Runtime = v
	}
}

// SetEpisodeTitle fills the episode title if unset.
func (m *Metadata) SetEpisodeTitle(v string) {
	if m.EpisodeTitle == "" {
		m.EpisodeTitle = strings.TrimSpace(v)
	}
}

// Candidate is one scraped search result, with its 0-based rank within the
// originating query's result list.
type Candidate struct {
	Title    string
	URL      string
	Source   string
	Duration string
	Index    int
}

// QueryStat records how many unique candidates one query contributed.
type QueryStat struct {
	Query string
	Count int
}

// Stream is the externally visible result unit: one record per selected
// candidate, plus deterministic fallback records.
type Stream struct {
	Title       string
	ExternalURL string
	IsExternal  bool
}
