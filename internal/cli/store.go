package cli

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/bookingfields/pkg/types"
)

func newImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file|->",
		Short: "Load event types into the store",
		Long: `Import reads event types from a JSON array or JSONL file and stores them.
An event type whose slug is already stored replaces the stored one.

Example:
  bookingfields import event-types.json
  bookingfields import event_types.jsonl`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args[0])
			if err != nil {
				return userError(fmt.Errorf("read input: %w", err))
			}
			list, err := decodeEventTypes(data)
			if err != nil {
				return userError(err)
			}

			created, updated := 0, 0
			err = a.withEventTypes(func(tbl types.Table) error {
				for i, e := range list {
					if e == nil {
						return userError(fmt.Errorf("event type %d is null", i))
					}
					id := e.ID
					existing, err := findBySlug(tbl, e.Slug)
					switch {
					case err == nil:
						id = existing.ID
						updated++
					case exitCode(err) == exitUserError:
						created++
					default:
						return err
					}
					if _, err := tbl.Set(id, e); err != nil {
						return storeError(fmt.Errorf("event type %d (%q): %w", i, e.Slug, err))
					}
				}
				return nil
			})
			if err != nil {
				return err
			}

			a.log.Info("imported event types", zap.Int("created", created), zap.Int("updated", updated))
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d event types (%d created, %d updated)\n", len(list), created, updated)
			return nil
		},
	}
}

func newGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <slug>",
		Short: "Print a stored event type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withEventTypes(func(tbl types.Table) error {
				e, err := findBySlug(tbl, args[0])
				if err != nil {
					return err
				}
				return render(cmd.OutOrStdout(), e, outputJSON)
			})
		},
	}
}

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list [filter...]",
		Short: "List stored event types",
		Long: `List prints stored event types, oldest first.

Filters are key=value pairs and are ANDed together.
Keys: slug, title, hidden (true/false), limit.

Example:
  bookingfields list
  bookingfields list hidden=false limit=10`,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := parseFilter(args)
			if err != nil {
				return userError(err)
			}
			return a.withEventTypes(func(tbl types.Table) error {
				found, err := tbl.Fetch(filter)
				if err != nil {
					return storeError(err)
				}
				if a.flags.jsonMode {
					return render(cmd.OutOrStdout(), found, outputJSON)
				}
				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "SLUG\tTITLE\tLENGTH\tFIELDS\tID")
				for _, f := range found {
					e := f.(*types.EventType)
					fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\n", e.Slug, e.Title, e.LengthInMinutes, len(e.BookingFields), e.ID)
				}
				return w.Flush()
			})
		},
	}
}

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <slug>",
		Short: "Delete a stored event type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withEventTypes(func(tbl types.Table) error {
				e, err := findBySlug(tbl, args[0])
				if err != nil {
					return err
				}
				if err := tbl.Delete(e.ID); err != nil {
					return storeError(err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", e.Slug)
				return nil
			})
		},
	}
}

// storeError classifies table errors: invalid input is a user error, anything
// else is a system error.
func storeError(err error) error {
	for _, userErr := range []error{
		types.ErrInvalidData, types.ErrInvalidFilter, types.ErrDuplicateSlug,
		types.ErrInvalidName, types.ErrInvalidSlug, types.ErrInvalidLength,
		types.ErrInvalidField, types.ErrNotFound,
	} {
		if errors.Is(err, userErr) {
			return userError(err)
		}
	}
	return sysError(err)
}
