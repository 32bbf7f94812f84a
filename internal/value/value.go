package value

import (
	"time"

	"cloud.google.com/go/civil"
	"github.com/cockroachdb/apd/v3"
	"github.com/google/uuid"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
)

// Value is a sealed interface representing the supported argument types.
// Only the types declared in this package implement it.
// NO float variant - floats are projected to Decimal by Of.
type Value interface {
	value() // Sealed - only these types implement it
}

// Null represents an absent argument. Using an explicit type keeps every
// argument slot a non-nil Value.
type Null struct{}

func (Null) value() {}

// String represents a text argument.
type String string

func (String) value() {}

// Char represents a single character argument.
type Char rune

func (Char) value() {}

// Int represents an integral argument. Always int64.
type Int int64

func (Int) value() {}

// Bool represents a boolean argument.
type Bool bool

func (Bool) value() {}

// Decimal represents an arbitrary precision decimal number.
// The zero Decimal is numerically zero.
type Decimal struct {
	d *apd.Decimal
}

func (Decimal) value() {}

// OffsetDateTime represents an instant with a fixed UTC offset.
type OffsetDateTime time.Time

func (OffsetDateTime) value() {}

// LocalDateTime represents a date and wall-clock time without an offset.
type LocalDateTime civil.DateTime

func (LocalDateTime) value() {}

// LocalDate represents a calendar date.
type LocalDate civil.Date

func (LocalDate) value() {}

// LocalTime represents a wall-clock time of day.
type LocalTime civil.Time

func (LocalTime) value() {}

// Locale represents an IETF BCP 47 language tag.
type Locale language.Tag

func (Locale) value() {}

// Tag returns the underlying language tag.
func (l Locale) Tag() language.Tag {
	return language.Tag(l)
}

// Currency represents an ISO 4217 currency.
type Currency currency.Unit

func (Currency) value() {}

// Unit returns the underlying currency unit.
func (c Currency) Unit() currency.Unit {
	return currency.Unit(c)
}

// UUID represents a universally unique identifier.
type UUID uuid.UUID

func (UUID) value() {}

// Enumerable is implemented by enumerations that may be used as constraint
// arguments. EnumName returns the symbolic name used in the query language.
type Enumerable interface {
	EnumName() string
}

// Enum wraps an Enumerable so that typed enumerations keep their Go type
// while travelling through the argument list.
type Enum struct {
	e Enumerable
}

func (Enum) value() {}

// NewEnum wraps an enumeration value.
func NewEnum(e Enumerable) Enum {
	return Enum{e: e}
}

// Raw returns the wrapped enumeration value.
func (e Enum) Raw() Enumerable {
	return e.e
}

// Name returns the symbolic name of the wrapped enumeration value.
func (e Enum) Name() string {
	if e.e == nil {
		return ""
	}
	return e.e.EnumName()
}

// NewDecimal parses a decimal from its textual representation.
func NewDecimal(s string) (Decimal, error) {
	d, _, err := apd.NewFromString(s)
	if err != nil {
		return Decimal{}, err
	}
	if d.Form != apd.Finite {
		return Decimal{}, ErrNonFinite
	}
	return Decimal{d: d}, nil
}

// MustDecimal is like NewDecimal but panics on malformed input.
// Intended for literals in code and tests.
func MustDecimal(s string) Decimal {
	d, err := NewDecimal(s)
	if err != nil {
		panic(err)
	}
	return d
}

// DecimalFromInt creates a Decimal holding an integral value.
func DecimalFromInt(n int64) Decimal {
	return Decimal{d: apd.New(n, 0)}
}

// Apd returns a copy of the underlying decimal.
func (d Decimal) Apd() *apd.Decimal {
	out := new(apd.Decimal)
	if d.d != nil {
		out.Set(d.d)
	}
	return out
}

// Cmp compares two decimals numerically.
func (d Decimal) Cmp(other Decimal) int {
	return d.Apd().Cmp(other.Apd())
}

// String returns the canonical decimal text (see Format).
func (d Decimal) String() string {
	return canonicalDecimal(d.Apd().Text('G'))
}

// DateTimeRange is a closed interval of instants. A nil bound is unbounded.
type DateTimeRange struct {
	From *time.Time
	To   *time.Time
}

func (DateTimeRange) value() {}

// DateTimeBetween creates a range bounded on both sides.
func DateTimeBetween(from, to time.Time) DateTimeRange {
	return DateTimeRange{From: &from, To: &to}
}

// DateTimeSince creates a range with only a lower bound.
func DateTimeSince(from time.Time) DateTimeRange {
	return DateTimeRange{From: &from}
}

// DateTimeUntil creates a range with only an upper bound.
func DateTimeUntil(to time.Time) DateTimeRange {
	return DateTimeRange{To: &to}
}

// Contains reports whether the instant falls within the range, bounds
// inclusive.
func (r DateTimeRange) Contains(t time.Time) bool {
	if r.From != nil && t.Before(*r.From) {
		return false
	}
	if r.To != nil && t.After(*r.To) {
		return false
	}
	return true
}

// DecimalRange is a closed interval of decimals. A nil bound is unbounded.
type DecimalRange struct {
	From *Decimal
	To   *Decimal
}

func (DecimalRange) value() {}

// DecimalBetween creates a decimal range bounded on both sides.
func DecimalBetween(from, to Decimal) DecimalRange {
	return DecimalRange{From: &from, To: &to}
}

// IntRange is a closed interval of integers. A nil bound is unbounded.
type IntRange struct {
	From *int64
	To   *int64
}

func (IntRange) value() {}

// IntBetween creates an integer range bounded on both sides.
func IntBetween(from, to int64) IntRange {
	return IntRange{From: &from, To: &to}
}

// IsNull reports whether v is absent, either as a nil interface or as Null.
func IsNull(v Value) bool {
	if v == nil {
		return true
	}
	_, ok := v.(Null)
	return ok
}
