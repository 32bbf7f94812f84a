package query

import (
	"errors"
	"fmt"
	"strings"

	"github.com/evitadb/evitago/internal/value"
)

// Placeholder replaces literal arguments in the parameterized form.
const Placeholder = "?"

// PrintOption configures PrettyPrint and PrettyPrintParameterized.
type PrintOption func(*printer)

// WithIndent lays out containers over multiple lines, indenting every nested
// level with indent. The default is the compact single-line form used as the
// cache key.
func WithIndent(indent string) PrintOption {
	return func(p *printer) {
		p.indent = indent
	}
}

// PrettyPrint renders c in its canonical form, e.g.
//
//	and(attributeEquals('code','abc'),not(attributeContains('url','bla')))
//
// Arguments implied by a suffix are omitted. A null in a position that does
// not accept one fails with value.ErrNullValue.
func PrettyPrint(c Constraint, opts ...PrintOption) (string, error) {
	p := newPrinter(opts)
	if err := p.constraint(c, 0); err != nil {
		return "", err
	}
	return p.b.String(), nil
}

// PrettyPrintParameterized renders c like PrettyPrint but replaces literal
// arguments with Placeholder and returns them in printing order. Schema
// identifiers (entity types, attribute and reference names) and nulls stay
// inline, so two trees differing only in literal values share one string.
func PrettyPrintParameterized(c Constraint, opts ...PrintOption) (string, []value.Value, error) {
	p := newPrinter(opts)
	p.parameterized = true
	if err := p.constraint(c, 0); err != nil {
		return "", nil, err
	}
	return p.b.String(), p.params, nil
}

// lenientString backs the String methods: nulls anywhere print as the
// sentinel instead of failing.
func lenientString(c Constraint) string {
	p := newPrinter(nil)
	p.lenient = true
	if err := p.constraint(c, 0); err != nil {
		return c.Name() + "(" + err.Error() + ")"
	}
	return p.b.String()
}

type printer struct {
	b             strings.Builder
	indent        string
	parameterized bool
	lenient       bool
	params        []value.Value
}

func newPrinter(opts []PrintOption) *printer {
	p := &printer{}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// item writes one comma separated element at the given depth.
type item func(p *printer, depth int) error

func (p *printer) constraint(c Constraint, depth int) error {
	if !present(c) {
		return errors.New("nil constraint")
	}
	kind := c.Kind()
	info := kind.info()
	args := c.Arguments()

	var items []item
	for i := info.implicit; i < len(args); i++ {
		items = append(items, func(p *printer, _ int) error {
			return p.argument(kind, info, i, args[i])
		})
	}
	if container, ok := c.(Container); ok {
		for _, child := range append(container.AdditionalChildren(), container.Children()...) {
			items = append(items, func(p *printer, depth int) error {
				return p.constraint(child, depth)
			})
		}
	}
	nested := info.container && len(items) > len(args)-info.implicit
	return p.group(c.Name(), nested, items, depth)
}

// group writes name(items...). Groups holding nested constraints break over
// lines when an indent is configured.
func (p *printer) group(name string, nested bool, items []item, depth int) error {
	multiline := p.indent != "" && nested
	p.b.WriteString(name)
	p.b.WriteByte('(')
	for i, it := range items {
		if i > 0 {
			p.b.WriteByte(',')
		}
		if multiline {
			p.newline(depth + 1)
		}
		if err := it(p, depth+1); err != nil {
			return err
		}
	}
	if multiline {
		p.newline(depth)
	}
	p.b.WriteByte(')')
	return nil
}

func (p *printer) newline(depth int) {
	p.b.WriteByte('\n')
	p.b.WriteString(strings.Repeat(p.indent, depth))
}

func (p *printer) argument(kind Kind, info *kindInfo, i int, v value.Value) error {
	if value.IsNull(v) {
		if info.isNullable(i) || p.lenient {
			p.b.WriteString(value.NullSentinel)
			return nil
		}
		return fmt.Errorf("%s argument %d: %w", kind, i, value.ErrNullValue)
	}
	if p.parameterized && !info.isIdentifier(i) {
		p.b.WriteString(Placeholder)
		p.params = append(p.params, v)
		return nil
	}
	text, err := value.Format(v)
	if err != nil {
		if p.lenient {
			p.b.WriteString(value.NullSentinel)
			return nil
		}
		return fmt.Errorf("%s argument %d: %w", kind, i, err)
	}
	p.b.WriteString(text)
	return nil
}
