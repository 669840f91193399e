package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/bookingfields/internal/logger"
	"github.com/mesh-intelligence/bookingfields/internal/paths"
	"github.com/mesh-intelligence/bookingfields/internal/sqlite"
	"github.com/mesh-intelligence/bookingfields/pkg/bookingfields"
	"github.com/mesh-intelligence/bookingfields/pkg/types"
)

// Output formats for --output.
const (
	outputJSON = "json"
	outputYAML = "yaml"
)

// withEventTypes attaches the store, runs fn with the event types table and
// detaches. Store failures are system errors.
func (a *app) withEventTypes(fn func(types.Table) error) error {
	dataDir, err := paths.ResolveDataDir(a.flags.dataDir, a.settings.DataDir)
	if err != nil {
		return sysError(fmt.Errorf("resolve data dir: %w", err))
	}

	store := sqlite.NewBackend(sqlite.WithLogger(logger.Named("store")))
	if err := store.Attach(a.settings.storeConfig(dataDir)); err != nil {
		return sysError(fmt.Errorf("attach store: %w", err))
	}

	var fnErr error
	if tbl, err := store.GetTable(types.EventTypesTable); err != nil {
		fnErr = sysError(fmt.Errorf("open %s: %w", types.EventTypesTable, err))
	} else {
		fnErr = fn(tbl)
	}
	if err := store.Detach(); err != nil && fnErr == nil {
		return sysError(fmt.Errorf("detach store: %w", err))
	}
	return fnErr
}

// findBySlug returns the stored event type with slug.
func findBySlug(tbl types.Table, slug string) (*types.EventType, error) {
	found, err := tbl.Fetch(map[string]any{sqlite.FilterSlug: slug})
	if err != nil {
		return nil, sysError(fmt.Errorf("fetch event type: %w", err))
	}
	if len(found) == 0 {
		return nil, userError(fmt.Errorf("event type %q not found", slug))
	}
	return found[0].(*types.EventType), nil
}

// newReconciler returns a reconciler that logs through the global logger.
func (a *app) newReconciler() *bookingfields.Reconciler {
	return bookingfields.NewReconciler(bookingfields.WithLogger(logger.Named("reconciler")))
}

// readInput reads the named file, or stdin when name is empty or "-".
func readInput(cmd *cobra.Command, name string) ([]byte, error) {
	if name == "" || name == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(name)
}

// decodeFields accepts either a JSON array of fields or an object with a
// bookingFields array, such as a stored event type.
func decodeFields(data []byte) ([]types.Field, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, errors.New("empty input")
	}
	switch data[0] {
	case '[':
		var fields []types.Field
		if err := json.Unmarshal(data, &fields); err != nil {
			return nil, fmt.Errorf("decode fields: %w", err)
		}
		return fields, nil
	case '{':
		var wrapper struct {
			BookingFields []types.Field `json:"bookingFields"`
		}
		if err := json.Unmarshal(data, &wrapper); err != nil {
			return nil, fmt.Errorf("decode event type: %w", err)
		}
		return wrapper.BookingFields, nil
	default:
		return nil, errors.New("input must be a JSON array of fields or an object with bookingFields")
	}
}

// decodeEventTypes accepts a JSON array of event types or JSONL with one
// event type per line.
func decodeEventTypes(data []byte) ([]*types.EventType, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}
	if data[0] == '[' {
		var list []*types.EventType
		if err := json.Unmarshal(data, &list); err != nil {
			return nil, fmt.Errorf("decode event types: %w", err)
		}
		return list, nil
	}

	var list []*types.EventType
	for i, line := range bytes.Split(data, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		var e types.EventType
		if err := json.Unmarshal(line, &e); err != nil {
			return nil, fmt.Errorf("decode line %d: %w", i+1, err)
		}
		list = append(list, &e)
	}
	return list, nil
}

// parseFilter converts key=value arguments into a Fetch filter.
func parseFilter(args []string) (map[string]any, error) {
	filter := make(map[string]any, len(args))
	for _, arg := range args {
		key, val, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid filter %q (want key=value)", arg)
		}
		switch key {
		case sqlite.FilterHidden:
			b, err := strconv.ParseBool(val)
			if err != nil {
				return nil, fmt.Errorf("invalid filter %q: %w", arg, err)
			}
			filter[key] = b
		case sqlite.FilterLimit:
			n, err := strconv.Atoi(val)
			if err != nil {
				return nil, fmt.Errorf("invalid filter %q: %w", arg, err)
			}
			filter[key] = n
		default:
			filter[key] = val
		}
	}
	return filter, nil
}

// render writes v to w as indented JSON or as YAML with the JSON key order.
func render(w io.Writer, v any, format string) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	switch format {
	case outputJSON, "":
		_, err = fmt.Fprintln(w, string(data))
		return err
	case outputYAML:
		var node yaml.Node
		if err := yaml.Unmarshal(data, &node); err != nil {
			return fmt.Errorf("convert output: %w", err)
		}
		blockStyle(&node)
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(&node); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	default:
		return userError(fmt.Errorf("unknown output format %q (want json or yaml)", format))
	}
}

// blockStyle clears the flow and quoting styles JSON input carries.
func blockStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		blockStyle(c)
	}
}
