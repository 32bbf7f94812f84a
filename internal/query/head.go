package query

// Collection names the entity collection the query targets.
func Collection(entityType string) HeadConstraint {
	return must(NewHead(KindCollection, entityType))
}

// constraints converts typed children to the generic slice, dropping nils so
// optional parts can be passed straight through.
func constraints[T Constraint](in []T) []Constraint {
	out := make([]Constraint, 0, len(in))
	for _, c := range in {
		if present(c) {
			out = append(out, c)
		}
	}
	return out
}

// splitParts separates parts of the container's own category (children) from
// the cross-category ones (additional children).
func splitParts(own Category, parts []Constraint) (children, additional []Constraint) {
	for _, c := range parts {
		if !present(c) {
			continue
		}
		if c.Category() == own {
			children = append(children, c)
		} else {
			additional = append(additional, c)
		}
	}
	return children, additional
}

func anySlice[T any](in []T) []any {
	out := make([]any, len(in))
	for i, v := range in {
		out[i] = v
	}
	return out
}

func prepend(first any, rest []any) []any {
	return append([]any{first}, rest...)
}
