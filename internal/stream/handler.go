package stream

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"streamscout/internal/config"
	"streamscout/internal/httpx"
	"streamscout/internal/logging"
	"streamscout/internal/media"
	"streamscout/internal/metadata"
	"streamscout/internal/scoring"
	"streamscout/internal/search"
	"streamscout/internal/services"
)

// Handler is the per-request pipeline: resolve metadata, build queries,
// scrape, rank, format. It holds no per-request state, so one Handler
// serves concurrent requests.
type Handler struct {
	cfg      *config.Config
	resolver *metadata.Resolver
	scraper  *search.Scraper
	logger   *slog.Logger
}

// NewHandler wires the pipeline from configuration.
func NewHandler(cfg *config.Config, logger *slog.Logger) (*Handler, error) {
	httpClient, err := httpx.New(httpx.Options{
		Timeout:   cfg.HTTP.Timeout(),
		UserAgent: cfg.HTTP.UserAgent,
		ProxyURL:  cfg.HTTP.ProxyURL,
	})
	if err != nil {
		return nil, fmt.Errorf("http client: %w", err)
	}
	resolver, err := metadata.NewResolver(cfg, httpClient, logger)
	if err != nil {
		return nil, fmt.Errorf("resolver: %w", err)
	}
	scraper, err := search.NewScraper(cfg.Search, httpClient, logger)
	if err != nil {
		return nil, fmt.Errorf("scraper: %w", err)
	}
	return &Handler{
		cfg:      cfg,
		resolver: resolver,
		scraper:  scraper,
		logger:   logging.NewComponentLogger(logger, "stream"),
	}, nil
}

// Streams runs the full pipeline for one identifier. It never returns an
// error: every internal failure degrades toward fallback-only output, and
// even a malformed identifier yields a manual-search record.
func (h *Handler) Streams(ctx context.Context, kind media.Kind, rawID string) []media.Stream {
	ctx = services.WithRequestID(ctx, uuid.NewString())
	logger := logging.WithContext(ctx, h.logger).With(
		logging.String(logging.FieldContentID, rawID),
		logging.String("kind", string(kind)))

	id, err := media.ParseContentID(kind, rawID)
	if err != nil {
		logger.Error("invalid identifier", logging.Error(err))
		return []media.Stream{{
			Title:       "[Google] Metadata unavailable, search manually",
			ExternalURL: h.cfg.Search.BaseURL,
			IsExternal:  true,
		}}
	}

	md := h.resolver.Resolve(ctx, id)
	if kind == media.KindSeries && (md.TMDBID != "" || md.IMDBID != "") {
		h.resolver.EnrichEpisode(ctx, &md)
	}

	queries := search.BuildQueries(md, kind)
	if len(queries) == 0 {
		logger.Warn("no usable title, serving fallback links only")
		return h.fallbackStreams(md, kind)
	}

	candidates, stats := h.scraper.Search(ctx, queries)
	for _, stat := range stats {
		logger.Info("query scraped",
			logging.String(logging.FieldQuery, stat.Query),
			logging.Int("candidates", stat.Count))
	}

	ranked := scoring.Rank(candidates, md, kind, h.cfg.Scoring, h.cfg.Search.WhitelistedDomains)
	if h.cfg.Logging.DetailedScoring {
		for _, s := range ranked {
			logger.Info("candidate scored",
				logging.String("url", s.URL),
				logging.String("title", s.Title),
				logging.Float64("total", s.Breakdown.Total),
				logging.Float64("google_rank", s.Breakdown.GoogleRank),
				logging.Float64("title_score", s.Breakdown.Title),
				logging.Float64("episode_num", s.Breakdown.EpisodeNumber),
				logging.Float64("episode_title", s.Breakdown.EpisodeTitle),
				logging.Float64("season", s.Breakdown.Season),
				logging.Float64("duration", s.Breakdown.Duration),
				logging.Float64("duration_diff", s.Breakdown.DurationDiff),
				logging.Float64("whitelist", s.Breakdown.Whitelist))
		}
	}
	selected := scoring.Select(ranked, h.cfg.Selection)

	streams := make([]media.Stream, 0, len(selected)+3)
	for _, s := range selected {
		streams = append(streams, formatCandidate(s))
	}
	streams = append(streams, h.fallbackStreams(md, kind)...)

	logger.Info("request served",
		logging.Int("scraped", len(candidates)),
		logging.Int("selected", len(selected)),
		logging.Int("streams", len(streams)))
	return streams
}

// fallbackStreams builds the deterministic tail records appended to every
// response: a search-engine deep link for the resolved content (the spaced
// season/episode form reads better as a manual query), a more specific
// variant when the episode title is known, and, when the IMDb id is known,
// a link to the title page.
func (h *Handler) fallbackStreams(md media.Metadata, kind media.Kind) []media.Stream {
	out := make([]media.Stream, 0, 3)

	query := fallbackQuery(md, kind)
	out = append(out, media.Stream{
		Title:       "[Google] Search: " + query,
		ExternalURL: search.ResultURL(h.cfg.Search.BaseURL, query),
		IsExternal:  true,
	})

	if kind == media.KindSeries && md.EpisodeTitle != "" {
		specific := query + " " + md.EpisodeTitle
		out = append(out, media.Stream{
			Title:       "[Google] Search: " + specific,
			ExternalURL: search.ResultURL(h.cfg.Search.BaseURL, specific),
			IsExternal:  true,
		})
	}

	if md.IMDBID != "" {
		out = append(out, media.Stream{
			Title:       "[IMDb] View title page",
			ExternalURL: h.cfg.IMDB.BaseURL + "/title/" + md.IMDBID + "/",
			IsExternal:  true,
		})
	}
	return out
}

func fallbackQuery(md media.Metadata, kind media.Kind) string {
	if kind == media.KindSeries {
		return fmt.Sprintf("%s S%02d E%02d", md.Title, md.Season, md.Episode)
	}
	if md.Year > 0 {
		return fmt.Sprintf("%s %d full movie", md.Title, md.Year)
	}
	return md.Title + " full movie"
}
