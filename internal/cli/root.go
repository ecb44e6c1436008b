// Package cli implements the evreg command tree.
package cli

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/evreg/internal/config"
	"github.com/roach88/evreg/internal/logging"
	"github.com/roach88/evreg/internal/registry"
	"github.com/roach88/evreg/internal/store"
	"github.com/roach88/evreg/internal/tax"
)

// RootOptions holds global flags for all commands, and the configuration and
// logger resolved from them before any subcommand runs.
type RootOptions struct {
	ConfigFile string
	Verbose    bool

	Config config.Config
	Logger *slog.Logger
}

// NewRootCommand creates the root command for the evreg CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}
	defaults := config.Defaults()

	cmd := &cobra.Command{
		Use:   "evreg",
		Short: "Electric vehicle registry queries",
		Long: `Query a state electric vehicle registration file.

evreg loads the registry CSV, groups registrations by vehicle, and answers
tax and popularity questions over each vehicle's current registration.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.resolve(cmd)
		},
	}

	// Global flags. Defaults mirror config.Defaults(); viper only reads a flag
	// when it was set explicitly.
	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.ConfigFile, "config", "", "config file (default ./evreg.yaml if present)")
	flags.String("data", defaults.Data, "registry CSV file")
	flags.String("format", defaults.Output, "output format (json|text)")
	flags.String("log-level", defaults.Log.Level, "log level (debug|info|warn|error)")
	flags.String("log-format", defaults.Log.Format, "log format (text|json)")
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")

	// Add subcommands
	cmd.AddCommand(NewInfoCommand(opts))
	cmd.AddCommand(NewTaxCommand(opts))
	cmd.AddCommand(NewPopularCommand(opts))
	cmd.AddCommand(NewHistoryCommand(opts))
	cmd.AddCommand(NewStatsCommand(opts))
	cmd.AddCommand(NewCheckCommand(opts))
	cmd.AddCommand(NewConfigCommand(opts))

	return cmd
}

// resolve loads configuration and builds the logger. The output format may
// itself be invalid here, so configuration errors are written as plain text.
func (o *RootOptions) resolve(cmd *cobra.Command) error {
	cfg, err := config.Load(o.ConfigFile, cmd.Flags())
	if err == nil {
		o.Logger, err = logging.New(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format)
	}
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		return WrapExitError(ExitCommandError, "invalid configuration", err)
	}

	o.Config = cfg
	return nil
}

// formatter creates the output formatter for cmd.
func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Config.Output,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   o.Verbose,
	}
}

// openRegistry loads the configured data file. Load failures are reported
// through f and returned as command errors.
func (o *RootOptions) openRegistry(f *OutputFormatter) (*store.Store, *registry.Registry, error) {
	logger := o.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	f.VerboseLog("Loading %s", o.Config.Data)
	s, err := store.Open(o.Config.Data, store.WithLogger(logging.Component(logger, "store")))
	if err != nil {
		var pe *store.ParseError
		if !errors.As(err, &pe) {
			return nil, nil, f.Fail(ErrCodeLoad, err)
		}
		_ = f.Error(ErrCodeLoad, err.Error(), map[string]interface{}{
			"line":  pe.Line,
			"code":  pe.Code,
			"field": pe.Field,
			"value": pe.Value,
		})
		return nil, nil, WrapExitError(ExitCommandError, ErrCodeLoad, err)
	}
	f.Snapshot = s.SnapshotID()
	f.VerboseLog("Loaded %d vehicle(s), %d registration(s), snapshot %s", s.Len(), s.RowCount(), s.SnapshotID())

	r, err := registry.New(s)
	if err != nil {
		return nil, nil, f.Fail(ErrCodeGeneric, err)
	}
	return s, r, nil
}

// taxErrorCode maps tax calculation errors to CLI error codes.
func taxErrorCode(err error) string {
	switch {
	case tax.IsUnsupportedYear(err):
		return ErrCodeUnsupportedYear
	case tax.IsUnsupportedVehicleType(err):
		return ErrCodeUnsupportedType
	default:
		return ErrCodeGeneric
	}
}

