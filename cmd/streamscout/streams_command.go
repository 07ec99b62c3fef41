package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"streamscout/internal/media"
	"streamscout/internal/stream"
)

func newStreamsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "streams <movie|series> <id>",
		Short: "Resolve an identifier and rank scraped stream candidates",
		Long: `Runs the full pipeline for one identifier: metadata resolution,
query building, result-page scraping, and scoring. Movie identifiers are
bare IMDb ids (tt1375666); series identifiers append season and episode
(tt0386676:1:5).`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := media.ParseKind(args[0])
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

			handler, err := stream.NewHandler(cfg, logger)
			if err != nil {
				return fmt.Errorf("build pipeline: %w", err)
			}

			streams := handler.Streams(cmd.Context(), kind, args[1])
			if len(streams) == 0 {
				return fmt.Errorf("no streams for %s %s", args[0], args[1])
			}

			out := cmd.OutOrStdout()
			if !stdoutIsTerminal() {
				for _, s := range streams {
					title, duration := splitStreamTitle(s.Title)
					fmt.Fprintf(out, "%s\t%s\t%s\n", title, duration, s.ExternalURL)
				}
				return nil
			}

			rows := make([][]string, 0, len(streams))
			for i, s := range streams {
				title, duration := splitStreamTitle(s.Title)
				rows = append(rows, []string{fmt.Sprintf("%d", i+1), title, duration, s.ExternalURL})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"#", "TITLE", "DURATION", "URL"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignRight, alignLeft},
			))
			return nil
		},
	}
}

// splitStreamTitle separates the display title from its optional
// "Duration: X" second line.
func splitStreamTitle(title string) (string, string) {
	lines := strings.SplitN(title, "\n", 2)
	if len(lines) == 1 {
		return lines[0], ""
	}
	return lines[0], strings.TrimPrefix(lines[1], "Duration: ")
}
