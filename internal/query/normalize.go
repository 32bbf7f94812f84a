package query

import (
	"log/slog"

	"github.com/evitadb/evitago/internal/value"
)

// Normalize returns c without the parts that carry no meaning. Non-applicable
// constraints are dropped and unnecessary containers holding a single child
// are replaced by that child. Rewritten containers are rebuilt through
// CopyWithNewChildren; c itself is never modified.
//
// The second result is false when nothing applicable is left.
func Normalize(c Constraint) (Constraint, bool) {
	if !present(c) {
		return nil, false
	}
	container, ok := c.(Container)
	if !ok {
		if !c.Applicable() {
			return nil, false
		}
		return c, true
	}

	children, childrenChanged := normalizeAll(container.Children())
	additional, additionalChanged := normalizeAll(container.AdditionalChildren())
	result := container
	if childrenChanged || additionalChanged {
		rebuilt, err := container.CopyWithNewChildren(children, additional)
		if err != nil {
			// The rewritten children no longer fit the container, e.g. a
			// collapsed "and" left a specification first in hierarchyWithin.
			slog.Debug("keeping constraint unnormalized", "constraint", c.Name(), "error", err)
			return c, c.Applicable()
		}
		result = rebuilt
	}

	if !result.Applicable() {
		return nil, false
	}
	if !result.Necessary() {
		kept := result.Children()
		if len(kept) == 1 && len(result.AdditionalChildren()) == 0 {
			return kept[0], true
		}
	}
	return result, true
}

func normalizeAll(in []Constraint) ([]Constraint, bool) {
	out := make([]Constraint, 0, len(in))
	changed := false
	for _, c := range in {
		n, ok := Normalize(c)
		if !ok {
			changed = true
			continue
		}
		if n != c {
			changed = true
		}
		out = append(out, n)
	}
	return out, changed
}

// Equal reports whether two constraint trees are structurally equal: same
// kinds, equal arguments, and equal children in the same order.
func Equal(a, b Constraint) bool {
	if !present(a) || !present(b) {
		return present(a) == present(b)
	}
	if a.Kind() != b.Kind() {
		return false
	}
	if !valuesEqual(a.Arguments(), b.Arguments()) {
		return false
	}
	ca, aok := a.(Container)
	cb, bok := b.(Container)
	if aok != bok {
		return false
	}
	if !aok {
		return true
	}
	return constraintsEqual(ca.Children(), cb.Children()) &&
		constraintsEqual(ca.AdditionalChildren(), cb.AdditionalChildren())
}

func valuesEqual(a, b []value.Value) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !value.Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

func constraintsEqual(a, b []Constraint) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}
