package schema

import (
	"fmt"
	"strings"
)

// ValidationError describes one invalid field of a schema.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// AttributeSchema describes an attribute of an entity or a reference.
type AttributeSchema struct {
	Name        string
	Description string

	// Type is the name of the value variant, e.g. "String" or "Decimal".
	Type string

	Localized  bool
	Nullable   bool
	Filterable bool
	Sortable   bool
	Unique     bool
}

// NameVariants renders the attribute name in every convention.
func (s *AttributeSchema) NameVariants() Variants { return NameVariants(s.Name) }

// AssociatedDataSchema describes associated data of an entity.
type AssociatedDataSchema struct {
	Name        string
	Description string
	Type        string
	Localized   bool
	Nullable    bool
}

func (s *AssociatedDataSchema) NameVariants() Variants { return NameVariants(s.Name) }

// Cardinality is the number of entities a reference may point to.
type Cardinality int

const (
	ZeroOrOne Cardinality = iota
	ExactlyOne
	ZeroOrMore
	OneOrMore
)

func (c Cardinality) String() string {
	switch c {
	case ZeroOrOne:
		return "ZERO_OR_ONE"
	case ExactlyOne:
		return "EXACTLY_ONE"
	case ZeroOrMore:
		return "ZERO_OR_MORE"
	case OneOrMore:
		return "ONE_OR_MORE"
	default:
		return fmt.Sprintf("Cardinality(%d)", int(c))
	}
}

// ReferenceSchema describes a reference of an entity to another entity.
// Build it with ReferenceSchemaBuilder.
type ReferenceSchema struct {
	name        string
	description string
	cardinality Cardinality

	entityType        string
	entityTypeManaged bool
	groupType         string
	groupTypeManaged  bool

	indexed bool
	faceted bool

	attributes *NameIndex[*AttributeSchema]
}

func (s *ReferenceSchema) Name() string             { return s.name }
func (s *ReferenceSchema) Description() string      { return s.description }
func (s *ReferenceSchema) Cardinality() Cardinality { return s.cardinality }

// ReferencedEntityType returns the referenced entity type and whether it is
// an entity managed by the database.
func (s *ReferenceSchema) ReferencedEntityType() (string, bool) {
	return s.entityType, s.entityTypeManaged
}

// ReferencedGroupType returns the group type, "" when the reference is not
// grouped, and whether the group is an entity managed by the database.
func (s *ReferenceSchema) ReferencedGroupType() (string, bool) {
	return s.groupType, s.groupTypeManaged
}

func (s *ReferenceSchema) Indexed() bool { return s.indexed }
func (s *ReferenceSchema) Faceted() bool { return s.faceted }

// NameVariants renders the reference name in every convention.
func (s *ReferenceSchema) NameVariants() Variants { return NameVariants(s.name) }

// Attribute returns the reference attribute named name in convention c.
func (s *ReferenceSchema) Attribute(name string, c NamingConvention) (*AttributeSchema, bool) {
	return s.attributes.Lookup(name, c)
}

// Attributes returns the reference attributes in declaration order.
func (s *ReferenceSchema) Attributes() []*AttributeSchema {
	return s.attributes.Elements()
}

// EntitySchema describes an entity collection.
type EntitySchema struct {
	name        string
	description string

	attributes     *NameIndex[*AttributeSchema]
	associatedData *NameIndex[*AssociatedDataSchema]
	references     *NameIndex[*ReferenceSchema]
}

// NewEntitySchema indexes the elements of an entity collection. It fails
// with ErrNameCollision when two elements of one kind share a rendering.
func NewEntitySchema(name, description string, attributes []*AttributeSchema, associatedData []*AssociatedDataSchema, references []*ReferenceSchema) (*EntitySchema, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("entity schema: name is required")
	}
	attrs, err := NewNameIndex(attributes, func(a *AttributeSchema) string { return a.Name })
	if err != nil {
		return nil, fmt.Errorf("entity schema %q attributes: %w", name, err)
	}
	data, err := NewNameIndex(associatedData, func(a *AssociatedDataSchema) string { return a.Name })
	if err != nil {
		return nil, fmt.Errorf("entity schema %q associated data: %w", name, err)
	}
	refs, err := NewNameIndex(references, func(r *ReferenceSchema) string { return r.name })
	if err != nil {
		return nil, fmt.Errorf("entity schema %q references: %w", name, err)
	}
	return &EntitySchema{
		name:           name,
		description:    description,
		attributes:     attrs,
		associatedData: data,
		references:     refs,
	}, nil
}

func (s *EntitySchema) Name() string        { return s.name }
func (s *EntitySchema) Description() string { return s.description }

// NameVariants renders the entity type in every convention.
func (s *EntitySchema) NameVariants() Variants { return NameVariants(s.name) }

// Attribute returns the attribute named name in convention c.
func (s *EntitySchema) Attribute(name string, c NamingConvention) (*AttributeSchema, bool) {
	return s.attributes.Lookup(name, c)
}

// AssociatedData returns the associated data named name in convention c.
func (s *EntitySchema) AssociatedData(name string, c NamingConvention) (*AssociatedDataSchema, bool) {
	return s.associatedData.Lookup(name, c)
}

// Reference returns the reference named name in convention c.
func (s *EntitySchema) Reference(name string, c NamingConvention) (*ReferenceSchema, bool) {
	return s.references.Lookup(name, c)
}

func (s *EntitySchema) Attributes() []*AttributeSchema                 { return s.attributes.Elements() }
func (s *EntitySchema) AssociatedDataSchemas() []*AssociatedDataSchema { return s.associatedData.Elements() }
func (s *EntitySchema) References() []*ReferenceSchema                 { return s.references.Elements() }

// Validate checks the element definitions. It returns every problem found,
// not just the first one.
func (s *EntitySchema) Validate() []ValidationError {
	var errs []ValidationError

	for i, a := range s.Attributes() {
		if strings.TrimSpace(a.Name) == "" {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("attributes[%d].name", i),
				Message: "name is required",
			})
		}
		if a.Unique && a.Nullable {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("attributes[%d]", i),
				Message: fmt.Sprintf("unique attribute %q cannot be nullable", a.Name),
			})
		}
	}
	for i, d := range s.AssociatedDataSchemas() {
		if strings.TrimSpace(d.Name) == "" {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("associatedData[%d].name", i),
				Message: "name is required",
			})
		}
	}
	for i, r := range s.References() {
		for j, a := range r.Attributes() {
			if a.Sortable && r.cardinality != ZeroOrOne && r.cardinality != ExactlyOne {
				errs = append(errs, ValidationError{
					Field:   fmt.Sprintf("references[%d].attributes[%d]", i, j),
					Message: fmt.Sprintf("sortable attribute %q requires a reference of cardinality at most one, got %s", a.Name, r.cardinality),
				})
			}
		}
	}
	return errs
}
