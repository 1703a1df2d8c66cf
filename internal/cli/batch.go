package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/maxtixador/scrapernhl/internal/batch"
	"github.com/maxtixador/scrapernhl/internal/export"
	"github.com/maxtixador/scrapernhl/pkg/models"
)

func newBatchCmd(root *rootOptions) *cobra.Command {
	var (
		nhlify bool
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "batch <league> <game-id>[,<game-id>...]",
		Short: "Scrape several games concurrently into one stream",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			league, err := models.ParseLeague(args[0])
			if err != nil {
				return err
			}
			gameIDs, err := parseGameIDs(args[1])
			if err != nil {
				return err
			}

			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}
			s, closer := buildScraper(cmd.Context(), cfg)
			defer closer()

			exec := batch.NewExecutor(s, cfg.Workers, cfg.RatePerSecond, cfg.Burst, cfg.MaxRetries, cfg.Backoff)
			result, err := exec.Run(cmd.Context(), league, gameIDs, nhlify)
			if err != nil {
				return err
			}
			for _, f := range result.Failed {
				fmt.Fprintf(cmd.ErrOrStderr(), "game %d failed: %v\n", f.GameID, f.Err)
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
				err = export.WriteCSV(out, result.Events)
			case "json":
				err = export.WriteJSON(out, result.Events)
			default:
				err = fmt.Errorf("unsupported format %q (use csv or json)", format)
			}
			if err != nil {
				return err
			}

			if len(result.Failed) > 0 {
				return fmt.Errorf("%d of %d games failed (success rate %.0f%%)",
					len(result.Failed), len(gameIDs), result.SuccessRate()*100)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&nhlify, "nhlify", true, "merge shot and goal rows into single goal rows")
	cmd.Flags().StringVar(&format, "format", "json", "output format: csv or json")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	return cmd
}

func parseGameIDs(s string) ([]int64, error) {
	parts := strings.Split(s, ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid game id %q: %w", part, err)
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("no game ids given")
	}
	return ids, nil
}
