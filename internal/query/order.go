package query

func orderLeaf(kind Kind, args ...any) OrderConstraint {
	return must(NewOrder(kind, args, nil, nil))
}

func orderContainer(kind Kind, args []any, children []OrderConstraint) OrderConstraint {
	return must(NewOrder(kind, args, constraints(children), nil))
}

// OrderBy is the root of the order part. Children apply in sequence, later
// ones breaking ties of earlier ones.
func OrderBy(children ...OrderConstraint) OrderConstraint {
	return orderContainer(KindOrderBy, nil, children)
}

func AttributeNatural(name string, direction OrderDirection) OrderConstraint {
	return orderLeaf(KindAttributeNatural, name, direction)
}

// AttributeSetExact orders entities by the position of their attribute value
// in values.
func AttributeSetExact(name string, values ...any) OrderConstraint {
	return orderLeaf(KindAttributeSetExact, prepend(name, values)...)
}

func AttributeSetInFilter(name string) OrderConstraint {
	return orderLeaf(KindAttributeSetInFilter, name)
}

func PriceNatural(direction OrderDirection) OrderConstraint {
	return orderLeaf(KindPriceNatural, direction)
}

func Random() OrderConstraint { return orderLeaf(KindRandom) }

func EntityPrimaryKeyNatural(direction OrderDirection) OrderConstraint {
	return orderLeaf(KindEntityPrimaryKeyNatural, direction)
}

func EntityPrimaryKeyExact(primaryKeys ...int) OrderConstraint {
	return orderLeaf(KindEntityPrimaryKeyExact, anySlice(primaryKeys)...)
}

func EntityPrimaryKeyInFilter() OrderConstraint { return orderLeaf(KindEntityPrimaryKeyInFilter) }

// ReferenceProperty orders by attributes of the reference referenceName.
func ReferenceProperty(referenceName string, children ...OrderConstraint) OrderConstraint {
	return orderContainer(KindReferenceProperty, []any{referenceName}, children)
}

// EntityProperty orders by properties of the referenced entity. Only valid
// inside ReferenceProperty.
func EntityProperty(children ...OrderConstraint) OrderConstraint {
	return orderContainer(KindEntityProperty, nil, children)
}

func EntityGroupProperty(children ...OrderConstraint) OrderConstraint {
	return orderContainer(KindEntityGroupProperty, nil, children)
}
