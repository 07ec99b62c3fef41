package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"streamscout/internal/httpx"
	"streamscout/internal/media"
	"streamscout/internal/metadata"
	"streamscout/internal/search"
)

func newResolveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <movie|series> <id>",
		Short: "Resolve an identifier to metadata without scraping",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := media.ParseKind(args[0])
			if err != nil {
				return err
			}
			id, err := media.ParseContentID(kind, args[1])
			if err != nil {
				return err
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.newLogger()
			if err != nil {
				return err
			}

			httpClient, err := httpx.New(httpx.Options{
				Timeout:   cfg.HTTP.Timeout(),
				UserAgent: cfg.HTTP.UserAgent,
				ProxyURL:  cfg.HTTP.ProxyURL,
			})
			if err != nil {
				return fmt.Errorf("http client: %w", err)
			}
			resolver, err := metadata.NewResolver(cfg, httpClient, logger)
			if err != nil {
				return fmt.Errorf("resolver: %w", err)
			}

			md := resolver.Resolve(cmd.Context(), id)
			if kind == media.KindSeries {
				resolver.EnrichEpisode(cmd.Context(), &md)
			}

			rows := [][]string{
				{"Title", md.Title},
				{"Year", intCell(md.Year)},
				{"Runtime (min)", intCell(md.Runtime)},
				{"IMDb id", md.IMDBID},
				{"TMDB id", md.TMDBID},
			}
			if kind == media.KindSeries {
				rows = append(rows,
					[]string{"Episode", search.EpisodeTag(md.Season, md.Episode)},
					[]string{"Episode title", md.EpisodeTitle},
				)
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"FIELD", "VALUE"},
				rows,
				[]columnAlignment{alignLeft, alignLeft},
			))
			return nil
		},
	}
}

func intCell(v int) string {
	if v <= 0 {
		return ""
	}
	return strconv.Itoa(v)
}
