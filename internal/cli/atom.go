package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/bookingfields/pkg/atom"
	"github.com/mesh-intelligence/bookingfields/pkg/types"
)

func newAtomCmd(a *app) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "atom <slug>",
		Short: "Print a stored event type in booking widget form",
		Long: "Atom converts a stored event type into the shape the embeddable booking\n" +
			"widget consumes, with reconciled booking fields and transformed locations.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withEventTypes(func(tbl types.Table) error {
				e, err := findBySlug(tbl, args[0])
				if err != nil {
					return err
				}
				out, err := atom.NewTransformer(a.settings.Atom, a.newReconciler()).Transform(e)
				if err != nil {
					if errors.Is(err, atom.ErrNoUsers) || errors.Is(err, atom.ErrInvalidLocation) ||
						errors.Is(err, types.ErrInvalidBookerLayouts) {
						return userError(err)
					}
					return err
				}
				return render(cmd.OutOrStdout(), out, output)
			})
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", outputJSON, "output format: json or yaml")
	return cmd
}
