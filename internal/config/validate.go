package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateTMDB(); err != nil {
		return err
	}
	if err := c.validateHTTP(); err != nil {
		return err
	}
	if err := c.validateSearch(); err != nil {
		return err
	}
	if err := c.validateScoring(); err != nil {
		return err
	}
	if err := c.validateSelection(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateTMDB() error {
	if strings.TrimSpace(c.TMDB.APIKey) == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/streamscout/config.toml"
		}
		return fmt.Errorf("tmdb.api_key is required. Set STREAMSCOUT_TMDB_API_KEY or edit %s (create with 'streamscout config init')", defaultPath)
	}
	if strings.TrimSpace(c.TMDB.BaseURL) == "" {
		return errors.New("tmdb.base_url must be set")
	}
	return nil
}

func (c *Config) validateHTTP() error {
	if c.HTTP.TimeoutSeconds <= 0 {
		return errors.New("http.timeout_seconds must be positive")
	}
	if c.HTTP.RetryAttempts < 1 {
		return errors.New("http.retry_attempts must be at least 1")
	}
	if c.HTTP.RetryDelaySeconds < 0 {
		return errors.New("http.retry_delay_seconds must not be negative")
	}
	if proxy := strings.TrimSpace(c.HTTP.ProxyURL); proxy != "" {
		if _, err := url.Parse(proxy); err != nil {
			return fmt.Errorf("http.proxy_url is not a valid URL: %w", err)
		}
	}
	return nil
}

func (c *Config) validateSearch() error {
	if strings.TrimSpace(c.Search.BaseURL) == "" {
		return errors.New("search.base_url must be set")
	}
	if len(c.Search.Selectors.ResultItem) == 0 {
		return errors.New("search.selectors.result_item needs at least one selector")
	}
	if len(c.Search.Selectors.Link) == 0 {
		return errors.New("search.selectors.link needs at least one selector")
	}
	if len(c.Search.Selectors.Title) == 0 {
		return errors.New("search.selectors.title needs at least one selector")
	}
	return nil
}

func (c *Config) validateScoring() error {
	if c.Scoring.MovieDurationToleranceMins <= 0 {
		return errors.New("scoring.movie_duration_tolerance_mins must be positive")
	}
	if c.Scoring.SeriesDurationToleranceMins <= 0 {
		return errors.New("scoring.series_duration_tolerance_mins must be positive")
	}
	return nil
}

func (c *Config) validateSelection() error {
	if c.Selection.MaxResults < 1 {
		return errors.New("selection.max_results must be at least 1")
	}
	return nil
}
