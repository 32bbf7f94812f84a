package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/evitadb/evitago/internal/schema"
)

// NamingOptions holds flags for the naming command.
type NamingOptions struct {
	*RootOptions
	Convention string
}

// NameVariantsResult maps a name to its variant per convention.
type NameVariantsResult struct {
	Name     string            `json:"name"`
	Variants map[string]string `json:"variants"`
}

// NewNamingCommand creates the naming command.
func NewNamingCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &NamingOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "naming <name>...",
		Short: "Show a schema name in every naming convention",
		Long: `Render schema names in the naming conventions schemas are looked up by:
camelCase, PascalCase, snake_case, UPPER_SNAKE_CASE and kebab-case.

With --convention only that variant is printed, one per line.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNaming(opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Convention, "convention", "", "print only this convention")

	return cmd
}

func runNaming(opts *NamingOptions, names []string, cmd *cobra.Command) error {
	f := opts.formatter(cmd)

	if opts.Convention != "" {
		c, err := schema.ParseNamingConvention(opts.Convention)
		if err != nil {
			return f.Fail(ExitCommandError, ErrCodeBadNaming, err.Error(), nil)
		}
		out := make([]string, 0, len(names))
		for _, name := range names {
			out = append(out, c.Apply(name))
		}
		if f.Format == "json" {
			return f.Success(out)
		}
		for _, s := range out {
			fmt.Fprintln(f.Writer, s)
		}
		return nil
	}

	results := make([]NameVariantsResult, 0, len(names))
	for _, name := range names {
		variants := schema.NameVariants(name)
		res := NameVariantsResult{Name: name, Variants: make(map[string]string, len(schema.Conventions()))}
		for _, c := range schema.Conventions() {
			res.Variants[c.String()] = variants.Get(c)
		}
		results = append(results, res)
	}
	if f.Format == "json" {
		return f.Success(results)
	}

	for i, res := range results {
		fmt.Fprintf(f.Writer, "%s\n", res.Name)
		for _, c := range schema.Conventions() {
			fmt.Fprintf(f.Writer, "  %-17s %s\n", c.String()+":", res.Variants[c.String()])
		}
		if i < len(results)-1 {
			fmt.Fprintln(f.Writer)
		}
	}
	return nil
}
