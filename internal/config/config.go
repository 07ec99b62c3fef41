package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// HTTP contains outbound HTTP client settings shared by every component.
type HTTP struct {
	TimeoutSeconds    int    `toml:"timeout_seconds"`
	RetryAttempts     int    `toml:"retry_attempts"`
	RetryDelaySeconds int    `toml:"retry_delay_seconds"`
	UserAgent         string `toml:"user_agent"`
	ProxyURL          string `toml:"proxy_url"`
}

// Timeout returns the per-call timeout as a duration.
func (h HTTP) Timeout() time.Duration {
	return time.Duration(h.TimeoutSeconds) * time.Second
}

// RetryDelay returns the fixed inter-attempt delay as a duration.
func (h HTTP) RetryDelay() time.Duration {
	return time.Duration(h.RetryDelaySeconds) * time.Second
}

// TMDB contains configuration for The Movie Database API.
type TMDB struct {
	APIKey   string `toml:"api_key"`
	BaseURL  string `toml:"base_url"`
	Language string `toml:"language"`
}

// OMDB contains configuration for the OMDb API fallback provider.
type OMDB struct {
	APIKey  string `toml:"api_key"`
	BaseURL string `toml:"base_url"`
}

// IMDB contains configuration for scraping IMDb's public pages.
type IMDB struct {
	BaseURL   string        `toml:"base_url"`
	Selectors IMDBSelectors `toml:"selectors"`
}

// IMDBSelectors lists ordered selector candidates for each scraped field.
// The first selector yielding a non-empty match wins, which tolerates
// markup drift without a redeploy.
type IMDBSelectors struct {
	Title           []string `toml:"title"`
	Year            []string `toml:"year"`
	Runtime         []string `toml:"runtime"`
	EpisodeListItem []string `toml:"episode_list_item"`
	EpisodeNumber   []string `toml:"episode_number"`
	EpisodeTitle    []string `toml:"episode_title"`
}

// GoogleSelectors lists ordered selector candidates for each field of one
// organic video result on the search results page.
type GoogleSelectors struct {
	ResultItem []string `toml:"result_item"`
	Link       []string `toml:"link"`
	Title      []string `toml:"title"`
	Source     []string `toml:"source"`
	Duration   []string `toml:"duration"`
}

// Search contains configuration for the Google video-search scraper.
type Search struct {
	BaseURL            string          `toml:"base_url"`
	MinIntervalMillis  int             `toml:"min_interval_millis"`
	WhitelistedDomains []string        `toml:"whitelisted_domains"`
	Selectors          GoogleSelectors `toml:"selectors"`
}

// MinInterval returns the pacing interval between scrape requests.
func (s Search) MinInterval() time.Duration {
	return time.Duration(s.MinIntervalMillis) * time.Millisecond
}

// Weights holds the fixed heuristic weights of the scoring model.
type Weights struct {
	GoogleRankBonus             float64 `toml:"google_rank_bonus"`
	TitleMatch                  float64 `toml:"title_match"`
	TitlePartialMismatchPenalty float64 `toml:"title_partial_mismatch_penalty"`
	EpisodeNumberMatch          float64 `toml:"episode_number_match"`
	EpisodeTitleMatch           float64 `toml:"episode_title_match"`
	SeasonNumberBonus           float64 `toml:"season_number_bonus"`
	DurationMatch               float64 `toml:"duration_match"`
	DurationMismatchPenalty     float64 `toml:"duration_mismatch_penalty"`
	WhitelistBonus              float64 `toml:"whitelist_bonus"`
}

// Scoring contains the weights and duration tolerances of the ranker.
type Scoring struct {
	Weights                     Weights `toml:"weights"`
	MovieDurationToleranceMins  float64 `toml:"movie_duration_tolerance_mins"`
	SeriesDurationToleranceMins float64 `toml:"series_duration_tolerance_mins"`
}

// Selection controls how many scored candidates are promoted to output.
type Selection struct {
	MaxResults int     `toml:"max_results"`
	MinScore   float64 `toml:"min_score"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format          string `toml:"format"`
	Level           string `toml:"level"`
	DetailedScoring bool   `toml:"detailed_scoring"`
}

// Config encapsulates all configuration values for streamscout.
//
// Sections by subsystem:
//   - HTTP: timeout, retry budget, user agent, optional proxy
//   - TMDB: primary metadata provider credentials and endpoints
//   - OMDB: secondary metadata provider credentials
//   - IMDB: scraped public pages and selector candidates
//   - Search: Google video search endpoint, pacing, whitelist, selectors
//   - Scoring: heuristic weights and duration tolerances
//   - Selection: top-N promotion policy
//   - Logging: log format, level, per-candidate score detail
type Config struct {
	HTTP      HTTP      `toml:"http"`
	TMDB      TMDB      `toml:"tmdb"`
	OMDB      OMDB      `toml:"omdb"`
	IMDB      IMDB      `toml:"imdb"`
	Search    Search    `toml:"search"`
	Scoring   Scoring   `toml:"scoring"`
	Selection Selection `toml:"selection"`
	Logging   Logging   `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration
// file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/streamscout/config.toml")
}

// Load locates and parses a configuration file, layering it over defaults
// and environment overrides. The boolean reports whether a file was found.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.applyEnvOverrides()
	return &cfg, resolvedPath, exists, nil
}

func (c *Config) applyEnvOverrides() {
	if v := strings.TrimSpace(os.Getenv("STREAMSCOUT_TMDB_API_KEY")); v != "" {
		c.TMDB.APIKey = v
	}
	if v := strings.TrimSpace(os.Getenv("STREAMSCOUT_OMDB_API_KEY")); v != "" {
		c.OMDB.APIKey = v
	}
	if v := strings.TrimSpace(os.Getenv("STREAMSCOUT_PROXY")); v != "" {
		c.HTTP.ProxyURL = v
	}
}

func resolveConfigPath(path string) (string, bool, error) {
	if strings.TrimSpace(path) == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			return "", false, err
		}
		path = defaultPath
	} else {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		path = expanded
	}

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return path, false, nil
		}
		return "", false, fmt.Errorf("stat config: %w", err)
	}
	return path, true, nil
}

// ExpandPath resolves a user-supplied path, expanding a leading "~" and
// normalizing to an absolute path.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

func expandPath(pathValue string) (string, error) {
	pathValue = strings.TrimSpace(pathValue)
	if pathValue == "" {
		return "", errors.New("path is empty")
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		pathValue = filepath.Join(home, strings.TrimPrefix(pathValue, "~"))
	}
	abs, err := filepath.Abs(pathValue)
	if err != nil {
		return "", fmt.Errorf("resolve path: %w", err)
	}
	return abs, nil
}

// CreateSample writes the embedded sample configuration to path, refusing to
// overwrite an existing file.
func CreateSample(path string) error {
	resolved, err := expandPath(path)
	if err != nil {
		return err
	}
	if _, err := os.Stat(resolved); err == nil {
		return fmt.Errorf("config already exists at %s", resolved)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(resolved, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
