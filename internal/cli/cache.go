package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/maxtixador/scrapernhl/internal/cache"
)

func newCacheCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the play-by-play cache",
	}
	cmd.AddCommand(newCacheStatsCmd(root))
	cmd.AddCommand(newCacheClearCmd(root))
	return cmd
}

func newCacheStatsCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show cached game counts per league",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}
			rc := redisClient(cmd.Context(), cfg)
			if rc == nil {
				return fmt.Errorf("cache unavailable")
			}
			defer rc.Close()

			stats, err := cache.New(rc, cfg.CacheTTL).Stats(cmd.Context())
			if err != nil {
				return err
			}
			if len(stats) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "cache is empty")
				return nil
			}
			leagues := make([]string, 0, len(stats))
			for league := range stats {
				leagues = append(leagues, league)
			}
			sort.Strings(leagues)
			for _, league := range leagues {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %d games\n", league, stats[league])
			}
			return nil
		},
	}
}

func newCacheClearCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached play-by-play entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}
			rc := redisClient(cmd.Context(), cfg)
			if rc == nil {
				return fmt.Errorf("cache unavailable")
			}
			defer rc.Close()

			removed, err := cache.New(rc, cfg.CacheTTL).Clear(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed %d entries\n", removed)
			return nil
		},
	}
}
