package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/evitadb/evitago/internal/query"
	"github.com/evitadb/evitago/internal/value"
)

// PrintOptions holds flags for the print command.
type PrintOptions struct {
	*RootOptions
	Indent        string
	Parameterized bool
	Normalize     bool
}

// PrintedQuery is one printed query of a document.
type PrintedQuery struct {
	Name       string   `json:"name,omitempty"`
	Query      string   `json:"query"`
	Parameters []string `json:"parameters,omitempty"`
}

// NewPrintCommand creates the print command.
func NewPrintCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PrintOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "print <document>",
		Short: "Print the queries of a document in canonical form",
		Long: `Compile a YAML or CUE query document and print every query in the
canonical EvitaQL form.

With --parameterized, literal arguments are replaced by '?' and listed
separately in print order.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPrint(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Indent, "indent", "", "indentation unit, empty prints one line (default from config)")
	cmd.Flags().BoolVarP(&opts.Parameterized, "parameterized", "p", false, "replace literals by placeholders")
	cmd.Flags().BoolVarP(&opts.Normalize, "normalize", "n", false, "normalize queries before printing")

	return cmd
}

func runPrint(opts *PrintOptions, path string, cmd *cobra.Command) error {
	f := opts.formatter(cmd)

	cfg, err := opts.loadConfig()
	if err != nil {
		return f.Fail(ExitCommandError, ErrCodeConfig, err.Error(), nil)
	}
	printOpts := cfg.PrintOptions()
	if cmd.Flags().Changed("indent") {
		printOpts = nil
		if opts.Indent != "" {
			printOpts = []query.PrintOption{query.WithIndent(opts.Indent)}
		}
	}
	parameterized := opts.Parameterized || cfg.Print.Parameterized
	normalize := opts.Normalize || cfg.Print.Normalize

	docs, err := loadDocuments(f, path)
	if err != nil {
		return err
	}

	printed := make([]PrintedQuery, 0, len(docs))
	for i, doc := range docs {
		q := doc.Query
		if normalize {
			q = q.Normalized()
		}
		pq := PrintedQuery{Name: doc.Name}
		if parameterized {
			text, params, err := q.PrettyPrintParameterized(printOpts...)
			if err != nil {
				return f.Fail(ExitCommandError, ErrCodePrint, fmt.Sprintf("%s: %v", displayName(doc, i), err), nil)
			}
			pq.Query = text
			if pq.Parameters, err = formatParameters(params); err != nil {
				return f.Fail(ExitCommandError, ErrCodePrint, fmt.Sprintf("%s: %v", displayName(doc, i), err), nil)
			}
		} else {
			text, err := q.PrettyPrint(printOpts...)
			if err != nil {
				return f.Fail(ExitCommandError, ErrCodePrint, fmt.Sprintf("%s: %v", displayName(doc, i), err), nil)
			}
			pq.Query = text
		}
		printed = append(printed, pq)
	}

	if f.Format == "json" {
		return f.Success(printed)
	}
	for i, pq := range printed {
		if len(printed) > 1 || pq.Name != "" {
			fmt.Fprintf(f.Writer, "# %s\n", displayName(docs[i], i))
		}
		fmt.Fprintln(f.Writer, pq.Query)
		for j, p := range pq.Parameters {
			fmt.Fprintf(f.Writer, "  ?%d = %s\n", j+1, p)
		}
		if i < len(printed)-1 {
			fmt.Fprintln(f.Writer)
		}
	}
	return nil
}

func formatParameters(params []value.Value) ([]string, error) {
	out := make([]string, 0, len(params))
	for _, p := range params {
		s, err := value.Format(p)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}
