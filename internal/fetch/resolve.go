package fetch

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"

	"github.com/evitadb/evitago/internal/query"
	"github.com/evitadb/evitago/internal/value"
)

var (
	// ErrNilQuery is returned when Resolve is called without a query.
	ErrNilQuery = errors.New("nil query")

	// ErrUnexpectedArgument is returned when a constraint built through the
	// generic constructors carries an argument of the wrong variant.
	ErrUnexpectedArgument = errors.New("unexpected argument")
)

// Option configures Resolve.
type Option func(*resolver)

// WithClock sets the clock priceValidInNow resolves against. Defaults to
// SystemClock.
func WithClock(clock Clock) Option {
	return func(r *resolver) {
		r.clock = clock
	}
}

type resolver struct {
	clock Clock

	priceSeen bool
}

// Resolve walks the require and filter parts of q and records which facets
// were requested.
//
// Only entityFetch directly under require describes the queried entity;
// fetches nested in referenceContent produce nested requests. Repeated
// content requirements are merged by union; repeated scalar settings
// (locale, currency, validity, price mode) keep the first occurrence and
// log a warning.
func Resolve(q *query.Query, opts ...Option) (*Request, error) {
	if q == nil {
		return nil, ErrNilQuery
	}
	r := &resolver{clock: SystemClock{}}
	for _, opt := range opts {
		opt(r)
	}

	req := &Request{
		EntityType:     q.EntityType(),
		ImplicitLocale: language.Und,
	}
	if f := q.FilterBy(); f != nil {
		if err := r.filter(req, f); err != nil {
			return nil, err
		}
	}
	if rq := q.Require(); rq != nil {
		if err := r.require(req, rq); err != nil {
			return nil, err
		}
	}

	slog.Debug("resolved fetch request",
		"entity_type", req.EntityType,
		"body", req.Body,
		"attributes", req.Attributes.String(),
		"associated_data", req.AssociatedData.String(),
		"references", req.References.String(),
		"locales", req.Locales.String(),
		"price_mode", req.Prices.Mode.String())
	return req, nil
}

func (r *resolver) require(req *Request, rq query.RequireConstraint) error {
	container, ok := rq.(query.Container)
	if !ok {
		return nil
	}
	for _, c := range localesFirst(container.Children()) {
		switch c.Kind() {
		case query.KindEntityFetch:
			if req.Body {
				slog.Warn("duplicate entityFetch in require, merging", "entity_type", req.EntityType)
			}
			req.Body = true
			if err := r.content(req, c.(query.Container)); err != nil {
				return err
			}
		case query.KindDataInLocales, query.KindDataInLocalesAll:
			if err := r.contentItem(req, c); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *resolver) content(req *Request, fetch query.Container) error {
	for _, c := range localesFirst(fetch.Children()) {
		if err := r.contentItem(req, c); err != nil {
			return err
		}
	}
	return nil
}

func (r *resolver) contentItem(req *Request, c query.Constraint) error {
	switch c.Kind() {
	case query.KindAttributeContent:
		names, err := stringArgs(c, 0)
		if err != nil {
			return err
		}
		req.Attributes = req.Attributes.Union(NamesOf(names...))
	case query.KindAttributeContentAll:
		req.Attributes = req.Attributes.Union(Wildcard())
	case query.KindAssociatedDataContent:
		names, err := stringArgs(c, 0)
		if err != nil {
			return err
		}
		req.AssociatedData = req.AssociatedData.Union(NamesOf(names...))
	case query.KindAssociatedDataContentAll:
		req.AssociatedData = req.AssociatedData.Union(Wildcard())
	case query.KindPriceContent, query.KindPriceContentAll, query.KindPriceContentRespectingFilter:
		return r.priceContent(req, c)
	case query.KindReferenceContent:
		names, err := stringArgs(c, 0)
		if err != nil {
			return err
		}
		req.References = req.References.Union(NamesOf(names...))
		if req.ReferenceContent == nil {
			req.ReferenceContent = make(map[string]*ReferenceRequest, len(names))
		}
		for _, name := range names {
			rr, err := r.reference(req, name, c.(query.Container))
			if err != nil {
				return err
			}
			req.ReferenceContent[name] = rr
		}
	case query.KindReferenceContentAll:
		req.References = req.References.Union(Wildcard())
		rr, err := r.reference(req, "", c.(query.Container))
		if err != nil {
			return err
		}
		req.AllReferences = rr
	case query.KindHierarchyContent:
		req.Hierarchy = true
	case query.KindDataInLocales:
		locales, err := localeArgs(c)
		if err != nil {
			return err
		}
		req.Locales = req.Locales.Union(LocalesOf(locales...))
	case query.KindDataInLocalesAll:
		req.Locales = req.Locales.Union(AllLocales())
	}
	return nil
}

func (r *resolver) priceContent(req *Request, c query.Constraint) error {
	args := c.Arguments()
	mode, ok := enumArg[query.PriceContentMode](args, 0)
	if !ok {
		return fmt.Errorf("%s: %w: price content mode", c.Name(), ErrUnexpectedArgument)
	}
	lists, err := stringArgs(c, 1)
	if err != nil {
		return err
	}
	if r.priceSeen {
		slog.Warn("duplicate price content, keeping first",
			"kept", req.Prices.Mode.String(), "ignored", mode.String())
		return nil
	}
	r.priceSeen = true
	req.Prices.Mode = mode
	req.Prices.AdditionalPriceLists = lists
	return nil
}

func (r *resolver) reference(parent *Request, name string, c query.Container) (*ReferenceRequest, error) {
	rr := &ReferenceRequest{Name: name}
	for _, child := range c.Children() {
		switch child.Kind() {
		case query.KindAttributeContent:
			names, err := stringArgs(child, 0)
			if err != nil {
				return nil, err
			}
			rr.Attributes = rr.Attributes.Union(NamesOf(names...))
		case query.KindAttributeContentAll:
			rr.Attributes = rr.Attributes.Union(Wildcard())
		case query.KindEntityFetch:
			nested, err := r.nested(parent, child.(query.Container))
			if err != nil {
				return nil, err
			}
			rr.Entity = nested
		case query.KindEntityGroupFetch:
			nested, err := r.nested(parent, child.(query.Container))
			if err != nil {
				return nil, err
			}
			rr.Group = nested
		}
	}
	return rr, nil
}

// nested resolves an entity fetch of a referenced entity. Locales not
// declared by the nested fetch are inherited from the parent.
func (r *resolver) nested(parent *Request, fetch query.Container) (*Request, error) {
	sub := &resolver{clock: r.clock}
	req := &Request{Body: true, ImplicitLocale: parent.ImplicitLocale}
	if err := sub.content(req, fetch); err != nil {
		return nil, err
	}
	if !req.Locales.Requested() {
		req.Locales = parent.Locales
	}
	return req, nil
}

// filter collects the locale and price scoping of the filter part. Subtrees
// that filter other entities (referenced, hierarchy parents) are skipped.
func (r *resolver) filter(req *Request, f query.FilterConstraint) error {
	var err error
	query.Walk(f, func(c query.Constraint) bool {
		if err != nil {
			return false
		}
		switch c.Kind() {
		case query.KindReferenceHaving, query.KindFacetHaving, query.KindEntityHaving,
			query.KindHierarchyWithin, query.KindHierarchyWithinSelf,
			query.KindHierarchyWithinRoot, query.KindHierarchyWithinRootSelf:
			return false
		}
		if !c.Applicable() {
			return true
		}
		args := c.Arguments()
		switch c.Kind() {
		case query.KindEntityLocaleEquals:
			locale, ok := args[0].(value.Locale)
			if !ok {
				err = fmt.Errorf("%s: %w: %T", c.Name(), ErrUnexpectedArgument, args[0])
				return false
			}
			if req.ImplicitLocale != language.Und {
				slog.Warn("duplicate entityLocaleEquals, keeping first",
					"kept", req.ImplicitLocale.String(), "ignored", locale.Tag().String())
				return true
			}
			req.ImplicitLocale = locale.Tag()
		case query.KindPriceInCurrency:
			unit, ok := currencyArg(args[0])
			if !ok {
				err = fmt.Errorf("%s: %w: %T", c.Name(), ErrUnexpectedArgument, args[0])
				return false
			}
			if req.Prices.Currency != nil {
				slog.Warn("duplicate priceInCurrency, keeping first",
					"kept", req.Prices.Currency.String(), "ignored", unit.String())
				return true
			}
			req.Prices.Currency = &unit
		case query.KindPriceInPriceLists:
			lists, listErr := stringArgs(c, 0)
			if listErr != nil {
				err = listErr
				return false
			}
			req.Prices.PriceLists = appendUnique(req.Prices.PriceLists, lists...)
		case query.KindPriceValidIn, query.KindPriceValidInNow:
			moment := r.clock.Now()
			if c.Kind() == query.KindPriceValidIn {
				t, ok := args[0].(value.OffsetDateTime)
				if !ok {
					err = fmt.Errorf("%s: %w: %T", c.Name(), ErrUnexpectedArgument, args[0])
					return false
				}
				moment = time.Time(t)
			}
			if req.Prices.ValidIn != nil {
				slog.Warn("duplicate price validity, keeping first",
					"kept", req.Prices.ValidIn.Format(time.RFC3339), "ignored", moment.Format(time.RFC3339))
				return true
			}
			req.Prices.ValidIn = &moment
		}
		return true
	})
	return err
}

// localesFirst moves locale requirements to the front, so nested fetches see
// the final locale set of their parent regardless of declaration order.
func localesFirst(children []query.Constraint) []query.Constraint {
	rank := func(c query.Constraint) int {
		switch c.Kind() {
		case query.KindDataInLocales, query.KindDataInLocalesAll:
			return 0
		default:
			return 1
		}
	}
	slices.SortStableFunc(children, func(a, b query.Constraint) int {
		return rank(a) - rank(b)
	})
	return children
}

func stringArgs(c query.Constraint, from int) ([]string, error) {
	args := c.Arguments()
	if from >= len(args) {
		return nil, nil
	}
	out := make([]string, 0, len(args)-from)
	for i, a := range args[from:] {
		s, ok := a.(value.String)
		if !ok {
			return nil, fmt.Errorf("%s argument %d: %w: %T", c.Name(), from+i, ErrUnexpectedArgument, a)
		}
		out = append(out, string(s))
	}
	return out, nil
}

func localeArgs(c query.Constraint) ([]language.Tag, error) {
	args := c.Arguments()
	out := make([]language.Tag, 0, len(args))
	for i, a := range args {
		switch l := a.(type) {
		case value.Locale:
			out = append(out, l.Tag())
		case value.String:
			tag, err := language.Parse(string(l))
			if err != nil {
				return nil, fmt.Errorf("%s argument %d: %w", c.Name(), i, err)
			}
			out = append(out, tag)
		default:
			return nil, fmt.Errorf("%s argument %d: %w: %T", c.Name(), i, ErrUnexpectedArgument, a)
		}
	}
	return out, nil
}

func currencyArg(v value.Value) (currency.Unit, bool) {
	switch c := v.(type) {
	case value.Currency:
		return c.Unit(), true
	case value.String:
		unit, err := currency.ParseISO(string(c))
		return unit, err == nil
	default:
		return currency.Unit{}, false
	}
}

func enumArg[T value.Enumerable](args []value.Value, i int) (T, bool) {
	var zero T
	if i >= len(args) {
		return zero, false
	}
	e, ok := args[i].(value.Enum)
	if !ok {
		return zero, false
	}
	t, ok := e.Raw().(T)
	return t, ok
}

func appendUnique(dst []string, items ...string) []string {
	for _, item := range items {
		if !slices.Contains(dst, item) {
			dst = append(dst, item)
		}
	}
	return dst
}
