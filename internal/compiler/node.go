package compiler

import (
	"fmt"
	"strconv"

	"cuelang.org/go/cue"
	"gopkg.in/yaml.v3"
)

type nodeKind int

const (
	nullNode nodeKind = iota
	scalarNode
	listNode
	mapNode
)

// node is a document tree independent of the source format.
type node struct {
	kind nodeKind

	// tag is the resolved YAML tag of a scalar ("!!str", "!!int", "!!float",
	// "!!bool", "!!timestamp") or a custom tag such as "!locale".
	tag  string
	text string

	// plain is set for unquoted YAML scalars.
	plain bool

	keys  []string // map keys, parallel to items
	items []*node

	pos Pos
}

func (n *node) describe() string {
	switch n.kind {
	case nullNode:
		return "null"
	case scalarNode:
		return "scalar"
	case listNode:
		return "list"
	default:
		return "mapping"
	}
}

// lookup returns the value under key of a mapping.
func (n *node) lookup(key string) (*node, bool) {
	for i, k := range n.keys {
		if k == key {
			return n.items[i], true
		}
	}
	return nil, false
}

func fromYAML(y *yaml.Node, file string) (*node, error) {
	pos := Pos{File: file, Line: y.Line, Column: y.Column}
	switch y.Kind {
	case yaml.DocumentNode:
		if len(y.Content) == 0 {
			return &node{kind: nullNode, pos: pos}, nil
		}
		return fromYAML(y.Content[0], file)
	case yaml.AliasNode:
		return fromYAML(y.Alias, file)
	case yaml.ScalarNode:
		tag := y.ShortTag()
		if tag == "!!null" {
			return &node{kind: nullNode, pos: pos}, nil
		}
		quoted := yaml.SingleQuotedStyle | yaml.DoubleQuotedStyle | yaml.LiteralStyle | yaml.FoldedStyle
		return &node{kind: scalarNode, tag: tag, text: y.Value, plain: y.Style&quoted == 0, pos: pos}, nil
	case yaml.SequenceNode:
		out := &node{kind: listNode, pos: pos}
		for _, c := range y.Content {
			item, err := fromYAML(c, file)
			if err != nil {
				return nil, err
			}
			out.items = append(out.items, item)
		}
		return out, nil
	case yaml.MappingNode:
		out := &node{kind: mapNode, pos: pos}
		for i := 0; i+1 < len(y.Content); i += 2 {
			key := y.Content[i]
			if key.Kind != yaml.ScalarNode {
				return nil, &CompileError{Field: "document", Message: "mapping keys must be scalars", Pos: Pos{File: file, Line: key.Line, Column: key.Column}}
			}
			item, err := fromYAML(y.Content[i+1], file)
			if err != nil {
				return nil, err
			}
			out.keys = append(out.keys, key.Value)
			out.items = append(out.items, item)
		}
		return out, nil
	default:
		return nil, &CompileError{Field: "document", Message: fmt.Sprintf("unsupported YAML node kind %d", y.Kind), Pos: pos}
	}
}

func fromCUE(v cue.Value, file string) (*node, error) {
	p := v.Pos()
	pos := Pos{File: file}
	if p.IsValid() {
		pos.Line, pos.Column = p.Line(), p.Column()
	}

	switch v.IncompleteKind() {
	case cue.NullKind:
		return &node{kind: nullNode, pos: pos}, nil
	case cue.BoolKind:
		b, err := v.Bool()
		if err != nil {
			return nil, formatCUEError(err, file)
		}
		return &node{kind: scalarNode, tag: "!!bool", text: strconv.FormatBool(b), pos: pos}, nil
	case cue.IntKind:
		i, err := v.Int64()
		if err != nil {
			return nil, formatCUEError(err, file)
		}
		return &node{kind: scalarNode, tag: "!!int", text: strconv.FormatInt(i, 10), pos: pos}, nil
	case cue.FloatKind, cue.NumberKind:
		text, err := v.MarshalJSON()
		if err != nil {
			return nil, formatCUEError(err, file)
		}
		return &node{kind: scalarNode, tag: "!!float", text: string(text), pos: pos}, nil
	case cue.StringKind:
		s, err := v.String()
		if err != nil {
			return nil, formatCUEError(err, file)
		}
		return &node{kind: scalarNode, tag: "!!str", text: s, pos: pos}, nil
	case cue.ListKind:
		iter, err := v.List()
		if err != nil {
			return nil, formatCUEError(err, file)
		}
		out := &node{kind: listNode, pos: pos}
		for iter.Next() {
			item, err := fromCUE(iter.Value(), file)
			if err != nil {
				return nil, err
			}
			out.items = append(out.items, item)
		}
		return out, nil
	case cue.StructKind:
		iter, err := v.Fields()
		if err != nil {
			return nil, formatCUEError(err, file)
		}
		out := &node{kind: mapNode, pos: pos}
		for iter.Next() {
			item, err := fromCUE(iter.Value(), file)
			if err != nil {
				return nil, err
			}
			out.keys = append(out.keys, iter.Label())
			out.items = append(out.items, item)
		}
		return out, nil
	default:
		return nil, &CompileError{Field: "cue", Message: fmt.Sprintf("value of kind %s is not concrete", v.IncompleteKind()), Pos: pos}
	}
}
