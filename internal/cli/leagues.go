package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/maxtixador/scrapernhl/internal/config"
	"github.com/maxtixador/scrapernhl/internal/registry"
)

func newLeaguesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "leagues",
		Short: "List the supported leagues and their feed families",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := registry.New(config.Feeds())

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "LEAGUE\tFEED\tNAME")
			for _, league := range reg.Leagues() {
				module, err := reg.Module(league)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", module.Key(), module.Feed().Type, module.DisplayName())
			}
			return w.Flush()
		},
	}
}
