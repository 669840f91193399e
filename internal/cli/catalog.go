package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/bookingfields/pkg/bookingfields"
	"github.com/mesh-intelligence/bookingfields/pkg/types"
)

func newCatalogCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "Print the system booking fields",
		Long: "Print the system fields every booking form carries: the before fields\n" +
			"rendered ahead of user fields and the after fields rendered behind them.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := bookingfields.DefaultCatalog()
			if a.flags.jsonMode {
				return render(cmd.OutOrStdout(), map[string][]types.Field{
					"before": c.BeforeFields(),
					"after":  c.AfterFields(),
				}, outputJSON)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "POSITION\tNAME\tTYPE\tEDITABLE\tREQUIRED")
			for _, f := range c.BeforeFields() {
				fmt.Fprintf(w, "before\t%s\t%s\t%s\t%t\n", f.Name, f.Type, f.Editable, f.IsRequired())
			}
			for _, f := range c.AfterFields() {
				fmt.Fprintf(w, "after\t%s\t%s\t%s\t%t\n", f.Name, f.Type, f.Editable, f.IsRequired())
			}
			return w.Flush()
		},
	}
}
