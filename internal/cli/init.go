package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/bookingfields/pkg/types"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration and the event type store",
		Long:  "Create the configuration and data directories, write a default config.yaml\nand initialize the event type store.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Config directory and config.yaml were created by setup.
			err := a.withEventTypes(func(types.Table) error { return nil })
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "bookingfields initialized (config: %s)\n", a.configDir)
			return nil
		},
	}
}
