package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/evreg/internal/config"
)

// ConfigOptions holds flags for the config command.
type ConfigOptions struct {
	*RootOptions
	Init string // write a default config file here instead of printing
}

// NewConfigCommand creates the config command.
func NewConfigCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ConfigOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Print the configuration after applying defaults, the config file,
EVREG_* environment variables, and flags.

With --init, write the default configuration to a file instead.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfig(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Init, "init", "", "write a default config file to this path")

	return cmd
}

func runConfig(opts *ConfigOptions, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	if opts.Init != "" {
		if err := config.WriteDefault(opts.Init); err != nil {
			return formatter.Fail(ErrCodeGeneric, err)
		}
		if formatter.Format == "json" {
			return formatter.Success(map[string]string{"written": opts.Init})
		}
		fmt.Fprintf(formatter.Writer, "Wrote default configuration to %s\n", opts.Init)
		return nil
	}

	if opts.Config.File != "" {
		formatter.VerboseLog("Using config file %s", opts.Config.File)
	}

	if formatter.Format == "json" {
		return formatter.Success(opts.Config)
	}

	data, err := opts.Config.YAML()
	if err != nil {
		return formatter.Fail(ErrCodeGeneric, err)
	}
	_, err = formatter.Writer.Write(data)
	return err
}
