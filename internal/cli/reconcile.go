package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/bookingfields/pkg/bookingfields"
	"github.com/mesh-intelligence/bookingfields/pkg/types"
)

func newReconcileCmd(a *app) *cobra.Command {
	var (
		eventType string
		output    string
	)
	cmd := &cobra.Command{
		Use:   "reconcile [file|-]",
		Short: "Merge the system fields into a persisted field list",
		Long: `Reconcile reads a persisted booking field list and prints the complete list:
missing before fields, the persisted fields with catalog attributes filled in,
then missing after fields.

Input is a JSON array of fields or an object with a bookingFields array, read
from the file argument, from stdin, or from a stored event type.

Example:
  bookingfields reconcile fields.json
  cat event.json | bookingfields reconcile --output yaml
  bookingfields reconcile --event-type intro-call`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if eventType != "" && len(args) > 0 {
				return userError(fmt.Errorf("use either a file or --event-type, not both"))
			}

			var persisted []types.Field
			if eventType != "" {
				err := a.withEventTypes(func(tbl types.Table) error {
					e, err := findBySlug(tbl, eventType)
					if err != nil {
						return err
					}
					persisted = e.BookingFields
					return nil
				})
				if err != nil {
					return err
				}
			} else {
				var name string
				if len(args) > 0 {
					name = args[0]
				}
				data, err := readInput(cmd, name)
				if err != nil {
					return userError(fmt.Errorf("read input: %w", err))
				}
				if persisted, err = decodeFields(data); err != nil {
					return userError(err)
				}
			}

			list, err := a.newReconciler().Reconcile(persisted)
			if err != nil {
				return fmt.Errorf("reconcile: %w", err)
			}
			return render(cmd.OutOrStdout(), list, output)
		},
	}
	cmd.Flags().StringVar(&eventType, "event-type", "", "reconcile the fields of the stored event type with this slug")
	cmd.Flags().StringVarP(&output, "output", "o", outputJSON, "output format: json or yaml")
	return cmd
}

// validationReport is the JSON shape of a validate result.
type validationReport struct {
	Valid     bool                    `json:"valid"`
	Fields    int                     `json:"fields"`
	Missing   string                  `json:"missing,omitempty"`
	Anomalies []bookingfields.Anomaly `json:"anomalies"`
}

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file|-]",
		Short: "Check that a field list contains every system field",
		Long: "Validate reads a field list and reports whether every system field is\n" +
			"present. Duplicates are reported as anomalies and do not fail validation.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var name string
			if len(args) > 0 {
				name = args[0]
			}
			data, err := readInput(cmd, name)
			if err != nil {
				return userError(fmt.Errorf("read input: %w", err))
			}
			fields, err := decodeFields(data)
			if err != nil {
				return userError(err)
			}

			list, verr := bookingfields.Validate(fields)
			report := validationReport{
				Valid:     verr == nil,
				Fields:    len(fields),
				Anomalies: list.Anomalies(),
			}
			if report.Anomalies == nil {
				report.Anomalies = []bookingfields.Anomaly{}
			}
			var missing *bookingfields.MissingSystemFieldError
			if errors.As(verr, &missing) {
				report.Missing = missing.Field
			}

			out := cmd.OutOrStdout()
			if a.flags.jsonMode {
				if err := render(out, report, outputJSON); err != nil {
					return err
				}
			} else {
				if report.Valid {
					fmt.Fprintf(out, "valid: %d fields\n", report.Fields)
				}
				for _, an := range report.Anomalies {
					fmt.Fprintf(out, "warning: %s field %q at position %d\n", an.Kind, an.Name, an.Position)
				}
			}
			if verr != nil {
				return userError(verr)
			}
			return nil
		},
	}
}
