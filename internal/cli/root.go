// Package cli implements the bookingfields command-line interface.
package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/bookingfields/internal/logger"
	"github.com/mesh-intelligence/bookingfields/internal/paths"
	"github.com/mesh-intelligence/bookingfields/pkg/bookingfields"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// Version is the CLI version, overridden at build time with -ldflags.
var Version = "0.1.0-dev"

const modulePath = "github.com/mesh-intelligence/bookingfields"

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	jsonMode  bool
	logLevel  string
}

// app is the state shared by the commands of one root command.
type app struct {
	flags     rootFlags
	configDir string
	settings  settings
	log       *zap.Logger
}

// NewRootCmd creates the top-level "bookingfields" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	a := &app{log: zap.NewNop()}

	root := &cobra.Command{
		Use:   "bookingfields",
		Short: "Reconcile booking form fields with the system field catalog",
		Long: "bookingfields merges the product's system booking fields into user-edited\n" +
			"field lists, validates the result and manages a local store of event types.",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	root.PersistentFlags().StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	root.PersistentFlags().StringVar(&a.flags.dataDir, "data-dir", "", "data directory (default: platform data dir)")
	root.PersistentFlags().BoolVar(&a.flags.jsonMode, "json", false, "output in JSON format")
	root.PersistentFlags().StringVar(&a.flags.logLevel, "log-level", "", "log level: debug, info, warn, error")

	root.AddCommand(
		newVersionCmd(),
		newInitCmd(a),
		newCatalogCmd(a),
		newReconcileCmd(a),
		newValidateCmd(a),
		newImportCmd(a),
		newGetCmd(a),
		newListCmd(a),
		newDeleteCmd(a),
		newAtomCmd(a),
	)
	return root
}

// setup resolves directories, loads configuration and initializes logging.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	if cmd.Name() == "version" {
		return nil
	}

	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return sysError(fmt.Errorf("resolve config dir: %w", err))
	}
	s, err := loadConfig(configDir)
	if err != nil {
		return sysError(err)
	}

	if err := logger.Init(s.Log.Level, s.Log.Format, cmd.ErrOrStderr()); err != nil {
		return sysError(fmt.Errorf("init logging: %w", err))
	}
	if a.flags.logLevel != "" {
		if err := logger.SetLevel(a.flags.logLevel); err != nil {
			return userError(fmt.Errorf("--log-level: %w", err))
		}
	}

	a.configDir = configDir
	a.settings = s
	a.log = logger.Named("cli")
	a.log.Debug("configuration loaded",
		zap.String("config_dir", configDir),
		zap.String("backend", s.Backend),
		zap.Stringer("log_level", logger.GetLevel()))
	return nil
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	loadDotEnv()
	root := NewRootCmd()
	err := root.Execute()
	if err != nil {
		fmt.Fprintln(root.ErrOrStderr(), "Error:", err)
	}
	_ = logger.Sync()
	return exitCode(err)
}

// exitError carries the exit code for an error.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func userError(err error) error {
	return &exitError{code: exitUserError, err: err}
}

func sysError(err error) error {
	return &exitError{code: exitSysError, err: err}
}

// exitCode maps an error to an exit code. Configuration defects of the field
// catalog are system errors; unclassified errors are user errors.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	if errors.Is(err, bookingfields.ErrConfigurationDefect) {
		return exitSysError
	}
	return exitUserError
}
