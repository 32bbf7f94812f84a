package compiler

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"

	"github.com/evitadb/evitago/internal/query"
	"github.com/evitadb/evitago/internal/value"
)

// Document is one query of a query document.
type Document struct {
	// Name is the name given to the query, "" when unnamed.
	Name  string
	Query *query.Query
	Pos   Pos
}

// compileDocuments compiles the root of a document. The root is a list of
// query parts, a mapping with "query" (and optionally "name"), or a mapping
// with "queries" holding named queries.
func compileDocuments(root *node) ([]Document, error) {
	switch root.kind {
	case nullNode:
		return nil, nil
	case listNode:
		q, err := compileQuery(root, "query")
		if err != nil {
			return nil, err
		}
		return []Document{{Query: q, Pos: root.pos}}, nil
	case mapNode:
	default:
		return nil, errorf(root, "document", "expected a list of query parts or a mapping, got %s", root.describe())
	}

	for _, key := range root.keys {
		if key != "name" && key != "query" && key != "queries" {
			return nil, errorf(root, "document", "unknown key %q", key)
		}
	}

	if queries, ok := root.lookup("queries"); ok {
		if _, dup := root.lookup("query"); dup {
			return nil, errorf(root, "document", "query and queries are mutually exclusive")
		}
		return compileNamed(queries)
	}

	body, ok := root.lookup("query")
	if !ok {
		return nil, errorf(root, "document", "query is required")
	}
	name, err := scalarText(root, "name")
	if err != nil {
		return nil, err
	}
	q, err := compileQuery(body, "query")
	if err != nil {
		return nil, err
	}
	return []Document{{Name: name, Query: q, Pos: body.pos}}, nil
}

func compileNamed(n *node) ([]Document, error) {
	var docs []Document
	switch n.kind {
	case mapNode:
		for i, name := range n.keys {
			field := "queries." + name
			q, err := compileQuery(n.items[i], field)
			if err != nil {
				return nil, err
			}
			docs = append(docs, Document{Name: name, Query: q, Pos: n.items[i].pos})
		}
	case listNode:
		for i, item := range n.items {
			if item.kind != mapNode {
				return nil, errorf(item, fmt.Sprintf("queries[%d]", i), "expected a mapping with name and query")
			}
			more, err := compileDocuments(item)
			if err != nil {
				return nil, err
			}
			docs = append(docs, more...)
		}
	default:
		return nil, errorf(n, "queries", "expected a mapping or a list, got %s", n.describe())
	}
	return docs, nil
}

func scalarText(n *node, key string) (string, error) {
	v, ok := n.lookup(key)
	if !ok || v.kind == nullNode {
		return "", nil
	}
	if v.kind != scalarNode {
		return "", errorf(v, key, "expected a scalar, got %s", v.describe())
	}
	return v.text, nil
}

func compileQuery(n *node, field string) (*query.Query, error) {
	if n.kind != listNode {
		return nil, errorf(n, field, "expected a list of query parts, got %s", n.describe())
	}
	parts := make([]query.Constraint, 0, len(n.items))
	for i, item := range n.items {
		c, err := compileConstraint(item, fmt.Sprintf("%s[%d]", field, i))
		if err != nil {
			return nil, err
		}
		parts = append(parts, c)
	}
	q, err := query.New(parts...)
	if err != nil {
		return nil, &CompileError{Field: field, Message: err.Error(), Pos: n.pos, Err: err}
	}
	return q, nil
}

// compileConstraint compiles a single-key mapping whose key is the printed
// name of a constraint. The value holds the arguments and nested
// constraints, either alone or as a list.
func compileConstraint(n *node, field string) (query.Constraint, error) {
	if n.kind != mapNode || len(n.keys) != 1 {
		return nil, errorf(n, field, "expected a constraint: a mapping with a single constraint name")
	}
	name, body := n.keys[0], n.items[0]
	field = field + "." + name

	kind, ok := query.KindByName(name)
	if !ok {
		return nil, errorf(n, field, "unknown constraint %q", name)
	}

	args := kind.ImplicitArgs()
	var children, additional []query.Constraint

	addItem := func(item *node, itemField string) error {
		if kind.IsContainer() && isBareConstraint(item) {
			item = &node{kind: mapNode, keys: []string{item.text}, items: []*node{{kind: nullNode, pos: item.pos}}, pos: item.pos}
		}
		if constraintLike(item) {
			c, err := compileConstraint(item, itemField)
			if err != nil {
				return err
			}
			if kind.AcceptsAdditional(c.Kind()) {
				additional = append(additional, c)
			} else {
				children = append(children, c)
			}
			return nil
		}
		if item.kind == listNode {
			for j, elem := range item.items {
				v, err := argument(elem, fmt.Sprintf("%s[%d]", itemField, j))
				if err != nil {
					return err
				}
				args = append(args, v)
			}
			return nil
		}
		v, err := argument(item, itemField)
		if err != nil {
			return err
		}
		args = append(args, v)
		return nil
	}

	if body.kind == listNode {
		for i, item := range body.items {
			if err := addItem(item, fmt.Sprintf("%s[%d]", field, i)); err != nil {
				return nil, err
			}
		}
	} else if body.kind != nullNode {
		if err := addItem(body, field); err != nil {
			return nil, err
		}
	}

	c, err := query.NewConstraint(kind, args, children, additional)
	if err != nil {
		return nil, &CompileError{Field: field, Message: err.Error(), Pos: n.pos, Err: err}
	}
	return c, nil
}

// isBareConstraint reports whether n is an unquoted constraint name, a
// constraint without arguments written as a plain scalar.
func isBareConstraint(n *node) bool {
	if n.kind != scalarNode || !n.plain || n.tag != "!!str" {
		return false
	}
	_, ok := query.KindByName(n.text)
	return ok
}

// constraintLike reports whether n can only mean a constraint: a single-key
// mapping whose key is not an argument type. Unknown names then fail as
// unknown constraints.
func constraintLike(n *node) bool {
	if n.kind != mapNode || len(n.keys) != 1 {
		return false
	}
	_, isType := typed[n.keys[0]]
	return !isType
}

// argument converts a node to an argument value. Untagged scalars map by
// their YAML type; unquoted strings naming an enumeration member become
// that member. A single-key mapping {type: value} or a "!type" tag selects
// the type explicitly.
func argument(n *node, field string) (value.Value, error) {
	switch n.kind {
	case nullNode:
		return value.Null{}, nil
	case mapNode:
		if len(n.keys) == 1 {
			if conv, ok := typed[n.keys[0]]; ok {
				return convert(conv, n.keys[0], n.items[0], field)
			}
		}
		return nil, errorf(n, field, "expected an argument, got a mapping with keys %s", strings.Join(n.keys, ", "))
	case listNode:
		return nil, errorf(n, field, "nested lists are not arguments")
	}

	if strings.HasPrefix(n.tag, "!") && !strings.HasPrefix(n.tag, "!!") {
		name := strings.TrimPrefix(n.tag, "!")
		conv, ok := typed[name]
		if !ok {
			return nil, errorf(n, field, "unknown argument type %q", name)
		}
		return convert(conv, name, n, field)
	}

	switch n.tag {
	case "!!int":
		return convert(typed["int"], "int", n, field)
	case "!!float":
		return convert(typed["decimal"], "decimal", n, field)
	case "!!bool":
		return convert(typed["bool"], "bool", n, field)
	case "!!timestamp":
		return convert(temporal, "timestamp", n, field)
	default:
		if n.plain {
			if e, ok := query.LookupEnum(n.text); ok {
				return value.NewEnum(e), nil
			}
		}
		return value.String(n.text), nil
	}
}

type converter func(n *node) (value.Value, error)

func convert(conv converter, name string, n *node, field string) (value.Value, error) {
	v, err := conv(n)
	if err != nil {
		return nil, &CompileError{Field: field, Message: fmt.Sprintf("invalid %s: %v", name, err), Pos: n.pos, Err: err}
	}
	return v, nil
}

// typed maps the explicit argument types to their converters.
var typed = map[string]converter{
	"string": scalar(func(s string) (value.Value, error) { return value.String(s), nil }),
	"char": scalar(func(s string) (value.Value, error) {
		if utf8.RuneCountInString(s) != 1 {
			return nil, fmt.Errorf("%q is not a single character", s)
		}
		r, _ := utf8.DecodeRuneInString(s)
		return value.Char(r), nil
	}),
	"int": scalar(func(s string) (value.Value, error) {
		i, err := strconv.ParseInt(s, 0, 64)
		return value.Int(i), err
	}),
	"decimal": scalar(func(s string) (value.Value, error) { return value.NewDecimal(s) }),
	"bool": scalar(func(s string) (value.Value, error) {
		b, err := strconv.ParseBool(s)
		return value.Bool(b), err
	}),
	"locale": scalar(func(s string) (value.Value, error) {
		tag, err := language.Parse(s)
		return value.Locale(tag), err
	}),
	"currency": scalar(func(s string) (value.Value, error) {
		unit, err := currency.ParseISO(s)
		return value.Currency(unit), err
	}),
	"enum": scalar(func(s string) (value.Value, error) {
		e, ok := query.LookupEnum(s)
		if !ok {
			return nil, fmt.Errorf("unknown enumeration member %q", s)
		}
		return value.NewEnum(e), nil
	}),
	"uuid": scalar(func(s string) (value.Value, error) {
		u, err := uuid.Parse(s)
		return value.UUID(u), err
	}),
	"offsetDateTime": scalar(func(s string) (value.Value, error) {
		t, err := time.Parse(time.RFC3339Nano, s)
		return value.OffsetDateTime(t), err
	}),
	"localDateTime": scalar(func(s string) (value.Value, error) {
		dt, err := civil.ParseDateTime(s)
		return value.LocalDateTime(dt), err
	}),
	"localDate": scalar(func(s string) (value.Value, error) {
		d, err := civil.ParseDate(s)
		return value.LocalDate(d), err
	}),
	"localTime": scalar(func(s string) (value.Value, error) {
		t, err := civil.ParseTime(s)
		return value.LocalTime(t), err
	}),
	"dateTimeRange": bounds(dateTimeRange),
	"decimalRange":  bounds(decimalRange),
	"intRange":      bounds(intRange),
}

func scalar(parse func(string) (value.Value, error)) converter {
	return func(n *node) (value.Value, error) {
		if n.kind != scalarNode {
			return nil, fmt.Errorf("expected a scalar, got %s", n.describe())
		}
		v, err := parse(n.text)
		if err != nil {
			return nil, err
		}
		return v, nil
	}
}

// temporal converts an untagged YAML timestamp by its precision: a date, a
// date-time without offset or an instant with offset.
func temporal(n *node) (value.Value, error) {
	if d, err := civil.ParseDate(n.text); err == nil {
		return value.LocalDate(d), nil
	}
	if t, err := time.Parse(time.RFC3339Nano, n.text); err == nil {
		return value.OffsetDateTime(t), nil
	}
	dt, err := civil.ParseDateTime(n.text)
	if err != nil {
		return nil, err
	}
	return value.LocalDateTime(dt), nil
}

// bounds converts a two-element list [from, to]; null is an open bound.
func bounds(build func(from, to *node) (value.Value, error)) converter {
	return func(n *node) (value.Value, error) {
		if n.kind != listNode || len(n.items) != 2 {
			return nil, fmt.Errorf("expected a list [from, to]")
		}
		from, to := n.items[0], n.items[1]
		if from.kind == nullNode && to.kind == nullNode {
			return nil, fmt.Errorf("at least one bound is required")
		}
		return build(from, to)
	}
}

func dateTimeRange(from, to *node) (value.Value, error) {
	var r value.DateTimeRange
	for _, b := range []struct {
		n   *node
		dst **time.Time
	}{{from, &r.From}, {to, &r.To}} {
		if b.n.kind == nullNode {
			continue
		}
		t, err := time.Parse(time.RFC3339Nano, b.n.text)
		if err != nil {
			return nil, err
		}
		*b.dst = &t
	}
	return r, nil
}

func decimalRange(from, to *node) (value.Value, error) {
	var r value.DecimalRange
	for _, b := range []struct {
		n   *node
		dst **value.Decimal
	}{{from, &r.From}, {to, &r.To}} {
		if b.n.kind == nullNode {
			continue
		}
		d, err := value.NewDecimal(b.n.text)
		if err != nil {
			return nil, err
		}
		*b.dst = &d
	}
	return r, nil
}

func intRange(from, to *node) (value.Value, error) {
	var r value.IntRange
	for _, b := range []struct {
		n   *node
		dst **int64
	}{{from, &r.From}, {to, &r.To}} {
		if b.n.kind == nullNode {
			continue
		}
		i, err := strconv.ParseInt(b.n.text, 0, 64)
		if err != nil {
			return nil, err
		}
		*b.dst = &i
	}
	return r, nil
}
