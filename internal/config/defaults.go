package config

const (
	defaultHTTPTimeoutSeconds = 10
	defaultRetryAttempts      = 3
	defaultRetryDelaySeconds  = 2
	defaultUserAgent          = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/108.0.0.0 Safari/537.36"

	defaultTMDBBaseURL  = "https://api.themoviedb.org/3"
	defaultTMDBLanguage = "en-US"
	defaultOMDBBaseURL  = "https://www.omdbapi.com/"
	defaultIMDBBaseURL  = "https://www.imdb.com"

	defaultSearchBaseURL     = "https://www.google.com/search"
	defaultMinIntervalMillis = 250

	defaultLogFormat = "console"
	defaultLogLevel  = "info"

	defaultMaxResults = 2
	defaultMinScore   = 0.0
)

// Default returns a Config populated with repository defaults. Weight and
// tolerance values are starting heuristics, not guarantees; tune them in the
// config file when the ranking misbehaves for a library.
func Default() Config {
	return Config{
		HTTP: HTTP{
			TimeoutSeconds:    defaultHTTPTimeoutSeconds,
			RetryAttempts:     defaultRetryAttempts,
			RetryDelaySeconds: defaultRetryDelaySeconds,
			UserAgent:         defaultUserAgent,
		},
		TMDB: TMDB{
			BaseURL:  defaultTMDBBaseURL,
			Language: defaultTMDBLanguage,
		},
		OMDB: OMDB{
			BaseURL: defaultOMDBBaseURL,
		},
		IMDB: IMDB{
			BaseURL: defaultIMDBBaseURL,
			Selectors: IMDBSelectors{
				Title: []string{
					`h1[data-testid="hero__pageTitle"] span`,
					`h1 span.hero__primary-text`,
					`h1`,
				},
				Year: []string{
					`ul[data-testid="hero-title-block__metadata"] li a[href*="releaseinfo"]`,
					`span#titleYear a`,
				},
				Runtime: []string{
					`li[data-testid="title-techspec_runtime"] div`,
					`time[datetime]`,
				},
				EpisodeListItem: []string{
					`article.episode-item-wrapper`,
					`div.list_item`,
				},
				EpisodeNumber: []string{
					`meta[itemprop="episodeNumber"]`,
					`div[data-testid="slate-list-card-title"]`,
					`h4`,
				},
				EpisodeTitle: []string{
					`a[itemprop="name"]`,
					`div[data-testid="slate-list-card-title"] a`,
					`h4 a`,
				},
			},
		},
		Search: Search{
			BaseURL:           defaultSearchBaseURL,
			MinIntervalMillis: defaultMinIntervalMillis,
			WhitelistedDomains: []string{
				"youtube.com",
				"dailymotion.com",
				"vimeo.com",
				"archive.org",
				"facebook.com",
				"ok.ru",
			},
			Selectors: GoogleSelectors{
				ResultItem: []string{"div.vt6azd", "div.g"},
				Link:       []string{"a"},
				Title:      []string{"h3.LC20lb", "h3"},
				Source:     []string{"cite"},
				Duration:   []string{".c8rnLc span", ".O1CVkc"},
			},
		},
		Scoring: Scoring{
			Weights: Weights{
				GoogleRankBonus:             5,
				TitleMatch:                  6,
				TitlePartialMismatchPenalty: -5,
				EpisodeNumberMatch:          5,
				EpisodeTitleMatch:           5,
				SeasonNumberBonus:           2,
				DurationMatch:               6,
				DurationMismatchPenalty:     -10,
				WhitelistBonus:              1,
			},
			MovieDurationToleranceMins:  20,
			SeriesDurationToleranceMins: 3,
		},
		Selection: Selection{
			MaxResults: defaultMaxResults,
			MinScore:   defaultMinScore,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
