package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/maxtixador/scrapernhl/internal/export"
	"github.com/maxtixador/scrapernhl/internal/schema"
	"github.com/maxtixador/scrapernhl/pkg/models"
)

func newGameCmd(root *rootOptions) *cobra.Command {
	var (
		nhlify bool
		strict bool
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "game <league> <game-id>",
		Short: "Scrape one game's play-by-play",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			league, err := models.ParseLeague(args[0])
			if err != nil {
				return err
			}
			gameID, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid game id %q: %w", args[1], err)
			}

			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}
			s, closer := buildScraper(cmd.Context(), cfg)
			defer closer()

			events, err := s.ScrapeGame(cmd.Context(), league, gameID, nhlify)
			if err != nil {
				return err
			}
			if strict {
				if err := schema.Validate(events); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("creating %s: %w", output, err)
				}
				defer f.Close()
				out = f
			}

			switch format {
			case "csv":
				return export.WriteCSV(out, events)
			case "json":
				return export.WriteJSON(out, events)
			default:
				return fmt.Errorf("unsupported format %q (use csv or json)", format)
			}
		},
	}

	cmd.Flags().BoolVar(&nhlify, "nhlify", true, "merge shot and goal rows into single goal rows")
	cmd.Flags().BoolVar(&strict, "strict", false, "fail when required canonical columns are entirely missing")
	cmd.Flags().StringVar(&format, "format", "json", "output format: csv or json")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	return cmd
}
