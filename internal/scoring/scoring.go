// Package scoring ranks scraped candidates against resolved metadata. All
// functions are pure: they take the candidate list, the metadata, and the
// weight configuration, and return deterministic scores with a per-component
// breakdown for diagnostics.
package scoring

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"streamscout/internal/config"
	"streamscout/internal/media"
)

// Breakdown itemizes one candidate's score. DurationDiff is diagnostic
// metadata only and is never part of Total.
type Breakdown struct {
	GoogleRank    float64
	Title         float64
	EpisodeNumber float64
	EpisodeTitle  float64
	Season        float64
	Duration      float64
	Whitelist     float64
	DurationDiff  float64
	Total         float64
}

// Scored pairs a candidate with its breakdown.
type Scored struct {
	media.Candidate
	Breakdown Breakdown
}

// Score computes the breakdown for a single candidate.
func Score(c media.Candidate, md media.Metadata, kind media.Kind, cfg config.Scoring, whitelist []string) Breakdown {
	w := cfg.Weights
	var b Breakdown

	b.GoogleRank = math.Max(0, w.GoogleRankBonus-float64(c.Index))
	b.Title = titleScore(c.Title, md.Title, w)

	if kind == media.KindSeries {
		if md.Episode > 0 && episodeMarkerRe(md.Episode).MatchString(c.Title) {
			b.EpisodeNumber = w.EpisodeNumberMatch
		}
		if md.Season > 0 && seasonMarkerRe(md.Season).MatchString(c.Title) {
			b.Season = w.SeasonNumberBonus
		}
		if md.EpisodeTitle != "" {
			b.EpisodeTitle = overlapRatio(c.Title, md.EpisodeTitle) * w.EpisodeTitleMatch
		}
	}

	b.Duration, b.DurationDiff = durationScore(c.Duration, md.Runtime, kind, cfg)

	lowered := strings.ToLower(c.URL)
	for _, domain := range whitelist {
		if strings.Contains(lowered, strings.ToLower(domain)) {
			b.Whitelist = w.WhitelistBonus
			break
		}
	}

	b.Total = b.GoogleRank + b.Title + b.EpisodeNumber + b.EpisodeTitle + b.Season + b.Duration + b.Whitelist
	return b
}

// Rank scores every candidate and sorts descending by total. The sort is
// stable, so ties keep discovery order, which correlates with query
// specificity and search-engine rank.
func Rank(candidates []media.Candidate, md media.Metadata, kind media.Kind, cfg config.Scoring, whitelist []string) []Scored {
	scored := make([]Scored, 0, len(candidates))
	for _, c := range candidates {
		scored = append(scored, Scored{Candidate: c, Breakdown: Score(c, md, kind, cfg, whitelist)})
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Breakdown.Total > scored[j].Breakdown.Total
	})
	return scored
}

// Select trims a ranked list to the configured result policy: at most
// MaxResults candidates, each scoring strictly above MinScore.
func Select(ranked []Scored, sel config.Selection) []Scored {
	out := make([]Scored, 0, sel.MaxResults)
	for _, s := range ranked {
		if len(out) >= sel.MaxResults {
			break
		}
		if s.Breakdown.Total > sel.MinScore {
			out = append(out, s)
		}
	}
	return out
}

// titleScore gives full weight when the resolved title appears verbatim in
// the candidate title, otherwise proportional credit on word overlap. When
// fewer than half of the title's words are present the mismatch penalty is
// added on top of the proportional credit.
func titleScore(candidateTitle, title string, w config.Weights) float64 {
	title = strings.TrimSpace(title)
	if title == "" {
		return 0
	}
	if strings.Contains(strings.ToLower(candidateTitle), strings.ToLower(title)) {
		return w.TitleMatch
	}
	ratio := overlapRatio(candidateTitle, title)
	score := ratio * w.TitleMatch
	if ratio < 0.5 {
		score += w.TitlePartialMismatchPenalty
	}
	return score
}

// overlapRatio is the fraction of reference words present in the candidate
// text. Tokenization is case-insensitive with punctuation stripped.
func overlapRatio(candidateText, reference string) float64 {
	refWords := tokenize(reference)
	if len(refWords) == 0 {
		return 0
	}
	candWords := make(map[string]struct{})
	for _, word := range tokenize(candidateText) {
		candWords[word] = struct{}{}
	}
	matched := 0
	for _, word := range refWords {
		if _, ok := candWords[word]; ok {
			matched++
		}
	}
	return float64(matched) / float64(len(refWords))
}

var tokenSplitRe = regexp.MustCompile(`[^a-z0-9]+`)

func tokenize(s string) []string {
	parts := tokenSplitRe.Split(strings.ToLower(s), -1)
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// episodeMarkerRe matches "episode 5", "episode 05", "e5", or "e05" forms
// anywhere in a title.
func episodeMarkerRe(episode int) *regexp.Regexp {
	return regexp.MustCompile(fmt.Sprintf(`(?i)episode\s+0?%d|e0?%d`, episode, episode))
}

// seasonMarkerRe matches "season 1", "season 01", "s1", or "s01" forms.
func seasonMarkerRe(season int) *regexp.Regexp {
	return regexp.MustCompile(fmt.Sprintf(`(?i)season\s+0?%d|s0?%d`, season, season))
}

// durationScore compares the candidate's displayed duration against the
// resolved runtime. Within tolerance the weight decays linearly with the
// difference; past tolerance the flat mismatch penalty applies. Unknown
// runtime or an unparseable display string scores zero.
func durationScore(display string, runtimeMins int, kind media.Kind, cfg config.Scoring) (score, diff float64) {
	if runtimeMins <= 0 {
		return 0, 0
	}
	parsed, ok := ParseDurationMinutes(display)
	if !ok {
		return 0, 0
	}
	tolerance := cfg.MovieDurationToleranceMins
	if kind == media.KindSeries {
		tolerance = cfg.SeriesDurationToleranceMins
	}
	diff = math.Abs(parsed - float64(runtimeMins))
	if tolerance <= 0 || diff > tolerance {
		return cfg.Weights.DurationMismatchPenalty, diff
	}
	return cfg.Weights.DurationMatch * (1 - diff/tolerance), diff
}

// ParseDurationMinutes parses the "MM:SS" and "HH:MM:SS" display forms into
// fractional minutes. Anything else is unparseable.
func ParseDurationMinutes(display string) (float64, bool) {
	parts := strings.Split(strings.TrimSpace(display), ":")
	nums := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < 0 {
			return 0, false
		}
		nums = append(nums, n)
	}
	switch len(nums) {
	case 2:
		return float64(nums[0]) + float64(nums[1])/60, true
	case 3:
		return float64(nums[0])*60 + float64(nums[1]) + float64(nums[2])/60, true
	default:
		return 0, false
	}
}
