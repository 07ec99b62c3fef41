package metadata

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"streamscout/internal/config"
	"streamscout/internal/httpx"
	"streamscout/internal/logging"
	"streamscout/internal/media"
	"streamscout/internal/metadata/imdbweb"
	"streamscout/internal/metadata/omdb"
	"streamscout/internal/metadata/tmdb"
)

// Resolver turns a parsed content identifier into display metadata by
// walking a prioritized waterfall of sources. Every phase is individually
// failure-isolated: a dead provider logs and falls through, it never aborts
// the resolution. Resolve therefore returns a Metadata value, not an error;
// in the worst case the value carries a synthesized placeholder title.
type Resolver struct {
	tmdb   *tmdb.Client
	omdb   *omdb.Client
	imdb   *imdbweb.Client
	logger *slog.Logger

	attempts int
	delay    time.Duration
}

// NewResolver wires the provider clients from configuration. The OMDb client
// is optional; a missing key simply removes the secondary phase from the
// waterfall.
func NewResolver(cfg *config.Config, httpClient *httpx.Client, logger *slog.Logger) (*Resolver, error) {
	tmdbClient, err := tmdb.New(cfg.TMDB.APIKey, cfg.TMDB.BaseURL, cfg.TMDB.Language,
		tmdb.WithHTTPClient(httpClient.Underlying()))
	if err != nil {
		return nil, fmt.Errorf("tmdb client: %w", err)
	}

	var omdbClient *omdb.Client
	if strings.TrimSpace(cfg.OMDB.APIKey) != "" {
		omdbClient, err = omdb.New(cfg.OMDB.APIKey, cfg.OMDB.BaseURL,
			omdb.WithHTTPClient(httpClient.Underlying()))
		if err != nil {
			return nil, fmt.Errorf("omdb client: %w", err)
		}
	}

	imdbClient, err := imdbweb.New(cfg.IMDB.BaseURL, httpClient, cfg.IMDB.Selectors)
	if err != nil {
		return nil, fmt.Errorf("imdb scraper: %w", err)
	}

	return &Resolver{
		tmdb:     tmdbClient,
		omdb:     omdbClient,
		imdb:     imdbClient,
		logger:   logging.NewComponentLogger(logger, "metadata"),
		attempts: cfg.HTTP.RetryAttempts,
		delay:    cfg.HTTP.RetryDelay(),
	}, nil
}

// Resolve runs the enrichment waterfall for the given identifier.
func (r *Resolver) Resolve(ctx context.Context, id media.ContentID) media.Metadata {
	logger := logging.WithContext(ctx, r.logger)

	md := media.Metadata{
		IMDBID:  id.IMDBID,
		TMDBID:  id.TMDBID,
		Season:  id.Season,
		Episode: id.Episode,
	}

	r.crossReference(ctx, logger, id.Kind, &md)
	r.fetchDetails(ctx, logger, id.Kind, &md)
	r.scrapeFallback(ctx, logger, &md)
	r.syntheticFallback(logger, id, &md)

	logger.Info("metadata resolved",
		logging.String("title", md.Title),
		logging.Int("year", md.Year),
		logging.Int("runtime_mins", md.Runtime),
		logging.String("imdb_id", md.IMDBID),
		logging.String("tmdb_id", md.TMDBID))
	return md
}

// crossReference resolves a TMDB-native id from an IMDb id, keeping the
// find result's title and year as a first pass.
func (r *Resolver) crossReference(ctx context.Context, logger *slog.Logger, kind media.Kind, md *media.Metadata) {
	if md.IMDBID == "" || md.TMDBID != "" {
		return
	}
	resp, ok := httpx.Retry(ctx, logger, "tmdb.find", r.attempts, r.delay,
		func(ctx context.Context) (*tmdb.FindResponse, error) {
			return r.tmdb.FindByIMDBID(ctx, md.IMDBID)
		})
	if !ok {
		logger.Warn("phase degraded", logging.String(logging.FieldPhase, "cross-reference"))
		return
	}

	results := resp.MovieResults
	if kind == media.KindSeries {
		results = resp.TVResults
	}
	if len(results) == 0 {
		logger.Warn("phase degraded",
			logging.String(logging.FieldPhase, "cross-reference"),
			logging.String("reason", "no results for external id"))
		return
	}

	first := results[0]
	md.SetTMDBID(strconv.FormatInt(first.ID, 10))
	md.SetTitle(first.DisplayTitle())
	md.SetYear(yearFromDate(first.Date()))
}

// fetchDetails fans out the primary (TMDB) and secondary (OMDb) detail
// lookups concurrently, then merges TMDB first so its values win every tie.
func (r *Resolver) fetchDetails(ctx context.Context, logger *slog.Logger, kind media.Kind, md *media.Metadata) {
	var (
		wg         sync.WaitGroup
		tmdbResult *tmdb.Result
		omdbResult *omdb.Title
	)

	if md.TMDBID != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tmdbResult, _ = httpx.Retry(ctx, logger, "tmdb.details", r.attempts, r.delay,
				func(ctx context.Context) (*tmdb.Result, error) {
					if kind == media.KindSeries {
						return r.tmdb.TVDetails(ctx, md.TMDBID)
					}
					return r.tmdb.MovieDetails(ctx, md.TMDBID)
				})
		}()
	}

	if md.IMDBID != "" && r.omdb != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			omdbResult, _ = httpx.Retry(ctx, logger, "omdb.details", r.attempts, r.delay,
				func(ctx context.Context) (*omdb.Title, error) {
					return r.omdb.ByIMDBID(ctx, md.IMDBID)
				})
		}()
	}

	wg.Wait()

	if tmdbResult != nil {
		md.SetTitle(tmdbResult.DisplayTitle())
		md.SetYear(yearFromDate(tmdbResult.Date()))
		md.SetRuntime(tmdbResult.RuntimeMinutes())
		if tmdbResult.ExternalIDs != nil {
			md.SetIMDBID(tmdbResult.ExternalIDs.IMDBID)
		}
	} else {
		logger.Warn("phase degraded", logging.String(logging.FieldPhase, "primary-details"))
	}

	if omdbResult != nil {
		md.SetTitle(omdbResult.Title)
		md.SetYear(omdbResult.YearInt())
		md.SetRuntime(omdbResult.RuntimeMinutes())
	}
}

// scrapeFallback recovers title/year/runtime from the IMDb title page when
// both API providers came up empty.
func (r *Resolver) scrapeFallback(ctx context.Context, logger *slog.Logger, md *media.Metadata) {
	if md.Title != "" || md.IMDBID == "" {
		return
	}
	info, ok := httpx.Retry(ctx, logger, "imdb.title-page", r.attempts, r.delay,
		func(ctx context.Context) (imdbweb.TitleInfo, error) {
			return r.imdb.TitlePage(ctx, md.IMDBID)
		})
	if !ok {
		logger.Warn("phase degraded", logging.String(logging.FieldPhase, "scrape-fallback"))
		return
	}
	md.SetTitle(info.Title)
	md.SetYear(info.Year)
	md.SetRuntime(info.Runtime)
}

var titleCaser = cases.Title(language.English)

// syntheticFallback manufactures a placeholder title so downstream stages
// can still emit fallback links instead of erroring the request.
func (r *Resolver) syntheticFallback(logger *slog.Logger, id media.ContentID, md *media.Metadata) {
	if md.Title != "" {
		return
	}
	raw := strings.ReplaceAll(id.Raw, ":", " ")
	md.Title = fmt.Sprintf("%s (%d)", titleCaser.String(raw), time.Now().Year())
	logger.Warn("all sources failed, synthesized placeholder title",
		logging.String("title", md.Title))
}

// EnrichEpisode attempts to resolve the episode title (and, when still
// unknown, the episode runtime) for a series. The chain runs primary
// provider, secondary provider, then listing-page scrape; every failure is
// non-fatal and simply leaves EpisodeTitle unset.
func (r *Resolver) EnrichEpisode(ctx context.Context, md *media.Metadata) {
	logger := logging.WithContext(ctx, r.logger)

	if md.TMDBID != "" {
		ep, ok := httpx.Retry(ctx, logger, "tmdb.episode", r.attempts, r.delay,
			func(ctx context.Context) (*tmdb.Episode, error) {
				return r.tmdb.EpisodeDetails(ctx, md.TMDBID, md.Season, md.Episode)
			})
		if ok {
			md.SetEpisodeTitle(ep.Name)
			md.SetRuntime(ep.Runtime)
		}
	}

	if md.EpisodeTitle == "" && md.IMDBID != "" && r.omdb != nil {
		title, ok := httpx.Retry(ctx, logger, "omdb.episode", r.attempts, r.delay,
			func(ctx context.Context) (*omdb.Title, error) {
				return r.omdb.Episode(ctx, md.IMDBID, md.Season, md.Episode)
			})
		if ok {
			md.SetEpisodeTitle(title.Title)
			md.SetRuntime(title.RuntimeMinutes())
		}
	}

	if md.EpisodeTitle == "" && md.IMDBID != "" {
		title, ok := httpx.Retry(ctx, logger, "imdb.episode-list", r.attempts, r.delay,
			func(ctx context.Context) (string, error) {
				return r.imdb.EpisodeTitle(ctx, md.IMDBID, md.Season, md.Episode)
			})
		if ok {
			md.SetEpisodeTitle(title)
		}
	}

	if md.EpisodeTitle == "" {
		logger.Info("episode title unresolved, queries will omit it",
			logging.Int("season", md.Season),
			logging.Int("episode", md.Episode))
	}
}

func yearFromDate(date string) int {
	date = strings.TrimSpace(date)
	if len(date) < 4 {
		return 0
	}
	year, err := strconv.Atoi(date[:4])
	if err != nil {
		return 0
	}
	return year
}
