package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/evitadb/evitago/internal/compiler"
	"github.com/evitadb/evitago/internal/fetch"
	"github.com/evitadb/evitago/internal/plancache"
	"github.com/evitadb/evitago/internal/predicate"
	"github.com/evitadb/evitago/internal/query"
)

// ExplainOptions holds flags for the explain command.
type ExplainOptions struct {
	*RootOptions
	Reads []string
}

// ExplainedQuery describes how a query is keyed and what it fetches.
type ExplainedQuery struct {
	Name       string       `json:"name,omitempty"`
	Key        string       `json:"key"`
	Structure  string       `json:"structure"`
	Parameters []string     `json:"parameters,omitempty"`
	Plan       int          `json:"plan"`
	Shared     bool         `json:"shared"`
	Fetch      FetchSummary `json:"fetch"`
	Reads      []ReadResult `json:"reads,omitempty"`
}

// FetchSummary lists the entity facets a query fetches. Name sets print
// as "none", "*" or "[a,b]".
type FetchSummary struct {
	EntityType     string `json:"entityType,omitempty"`
	Body           bool   `json:"body"`
	Attributes     string `json:"attributes"`
	AssociatedData string `json:"associatedData"`
	References     string `json:"references"`
	Locales        string `json:"locales"`
	Prices         string `json:"prices"`
	Hierarchy      bool   `json:"hierarchy"`
}

// ReadResult is the outcome of one --read check.
type ReadResult struct {
	Read    string `json:"read"`
	Fetched bool   `json:"fetched"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

// plan is what the explain command caches per query structure.
type plan struct {
	seq int
}

// NewExplainCommand creates the explain command.
func NewExplainCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExplainOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "explain <document>",
		Short: "Show the structure key and fetched facets of each query",
		Long: `Compile a query document and explain every query: the structure key it
is cached under, the literal parameters, whether it shares a plan with an
earlier query of the document and which entity facets it fetches.

Each --read is checked against the fetched facets; a read of a facet the
query did not fetch fails the command.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExplain(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringArrayVarP(&opts.Reads, "read", "r", nil, "facet read to check, e.g. attribute:name@en (repeatable)")

	return cmd
}

func runExplain(opts *ExplainOptions, path string, cmd *cobra.Command) error {
	f := opts.formatter(cmd)

	cfg, err := opts.loadConfig()
	if err != nil {
		return f.Fail(ExitCommandError, ErrCodeConfig, err.Error(), nil)
	}

	reads := make([]predicate.Read, 0, len(opts.Reads))
	for _, s := range opts.Reads {
		r, err := predicate.ParseRead(s)
		if err != nil {
			return f.Fail(ExitCommandError, ErrCodeBadRead, err.Error(), nil)
		}
		reads = append(reads, r)
	}

	docs, err := loadDocuments(f, path)
	if err != nil {
		return err
	}

	cache := plancache.New[*plan](cfg.PlanCacheOptions(prometheus.NewRegistry()))
	defer cache.Close()

	built := 0
	explained := make([]ExplainedQuery, 0, len(docs))
	missing := 0
	for i, doc := range docs {
		name := displayName(doc, i)
		hitsBefore := cache.Hits()
		p, params, err := cache.Lookup(doc.Query, func(plancache.Key) (*plan, error) {
			built++
			return &plan{seq: built}, nil
		})
		if err != nil {
			return f.Fail(ExitCommandError, ErrCodePrint, fmt.Sprintf("%s: %v", name, err), nil)
		}
		key, _, err := plancache.KeyOf(keyQuery(doc, cfg.PlanCache.Normalize))
		if err != nil {
			return f.Fail(ExitCommandError, ErrCodePrint, fmt.Sprintf("%s: %v", name, err), nil)
		}
		formatted, err := formatParameters(params)
		if err != nil {
			return f.Fail(ExitCommandError, ErrCodePrint, fmt.Sprintf("%s: %v", name, err), nil)
		}

		req, err := fetch.Resolve(doc.Query)
		if err != nil {
			return f.Fail(ExitCommandError, ErrCodeResolve, fmt.Sprintf("%s: %v", name, err), nil)
		}
		set := predicate.NewSet(req)

		eq := ExplainedQuery{
			Name:       doc.Name,
			Key:        key.String(),
			Structure:  key.Text,
			Parameters: formatted,
			Plan:       p.seq,
			Shared:     cache.Hits() > hitsBefore,
			Fetch:      summarize(req),
		}
		for _, r := range reads {
			res := ReadResult{Read: r.String(), Fetched: true}
			if err := r.Check(set); err != nil {
				res.Fetched = false
				res.Message = err.Error()
				var cme *predicate.ContextMissingError
				if errors.As(err, &cme) {
					res.Code = string(cme.Code)
					res.Message = cme.Message
				}
				missing++
			}
			eq.Reads = append(eq.Reads, res)
		}
		slog.Debug("explained query", "query", name, "key", eq.Key, "plan", eq.Plan, "shared", eq.Shared)
		explained = append(explained, eq)
	}

	if f.Format == "json" {
		if err := f.Success(explained); err != nil {
			return err
		}
	} else {
		writeExplained(f, docs, explained)
	}

	if missing > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%s: %d read(s) hit facets that were not fetched", ErrCodeReadMissing, missing))
	}
	return nil
}

// keyQuery returns the query the cache keys doc by.
func keyQuery(doc compiler.Document, normalize bool) *query.Query {
	if normalize {
		return doc.Query.Normalized()
	}
	return doc.Query
}

func summarize(req *fetch.Request) FetchSummary {
	prices := req.Prices.Mode.String()
	if req.Prices.Currency != nil {
		prices += " " + req.Prices.Currency.String()
	}
	if lists := req.Prices.FetchedPriceLists(); len(lists) > 0 {
		prices += " [" + strings.Join(lists, ",") + "]"
	}
	return FetchSummary{
		EntityType:     req.EntityType,
		Body:           req.Body,
		Attributes:     req.Attributes.String(),
		AssociatedData: req.AssociatedData.String(),
		References:     req.References.String(),
		Locales:        req.Locales.String(),
		Prices:         prices,
		Hierarchy:      req.Hierarchy,
	}
}

func writeExplained(f *OutputFormatter, docs []compiler.Document, explained []ExplainedQuery) {
	for i, eq := range explained {
		fmt.Fprintf(f.Writer, "# %s\n", displayName(docs[i], i))
		fmt.Fprintf(f.Writer, "  key:        %s\n", eq.Key)
		fmt.Fprintf(f.Writer, "  structure:  %s\n", eq.Structure)
		for j, p := range eq.Parameters {
			fmt.Fprintf(f.Writer, "  ?%d = %s\n", j+1, p)
		}
		shared := ""
		if eq.Shared {
			shared = " (shared)"
		}
		fmt.Fprintf(f.Writer, "  plan:       #%d%s\n", eq.Plan, shared)
		s := eq.Fetch
		fmt.Fprintf(f.Writer, "  fetch:      entity=%s body=%t hierarchy=%t\n", s.EntityType, s.Body, s.Hierarchy)
		fmt.Fprintf(f.Writer, "    attributes:      %s\n", s.Attributes)
		fmt.Fprintf(f.Writer, "    associated data: %s\n", s.AssociatedData)
		fmt.Fprintf(f.Writer, "    references:      %s\n", s.References)
		fmt.Fprintf(f.Writer, "    locales:         %s\n", s.Locales)
		fmt.Fprintf(f.Writer, "    prices:          %s\n", s.Prices)
		for _, r := range eq.Reads {
			if r.Fetched {
				fmt.Fprintf(f.Writer, "  ✓ %s\n", r.Read)
			} else {
				fmt.Fprintf(f.Writer, "  ✗ %s: %s: %s\n", r.Read, r.Code, r.Message)
			}
		}
		if i < len(explained)-1 {
			fmt.Fprintln(f.Writer)
		}
	}
}
