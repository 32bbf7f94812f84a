package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/evitadb/evitago/internal/config"
)

// NewConfigCommand creates the config command group.
func NewConfigCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and validate configuration files",
	}
	cmd.AddCommand(newConfigValidateCommand(rootOpts))
	cmd.AddCommand(newConfigShowCommand(rootOpts))
	return cmd
}

func newConfigValidateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "validate <file>",
		Short:         "Validate a configuration file against the schema",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := rootOpts.formatter(cmd)
			if _, err := config.Load(args[0]); err != nil {
				var le *config.LoadError
				if errors.As(err, &le) {
					return f.Fail(ExitFailure, ErrCodeConfig, le.Error(), map[string]string{"code": le.Code})
				}
				return f.Fail(ExitCommandError, ErrCodeReadFailed, err.Error(), nil)
			}
			if f.Format == "json" {
				return f.Success(map[string]string{"file": args[0]})
			}
			fmt.Fprintf(f.Writer, "✓ %s is valid\n", args[0])
			return nil
		},
	}
}

func newConfigShowCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "show",
		Short:         "Print the effective configuration",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := rootOpts.formatter(cmd)
			cfg, err := rootOpts.loadConfig()
			if err != nil {
				return f.Fail(ExitCommandError, ErrCodeConfig, err.Error(), nil)
			}
			if f.Format == "json" {
				return f.Success(cfg)
			}
			data, err := yaml.Marshal(cfg)
			if err != nil {
				return f.Fail(ExitCommandError, ErrCodeGeneric, err.Error(), nil)
			}
			_, err = f.Writer.Write(data)
			return err
		},
	}
}
