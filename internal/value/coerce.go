package value

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"cloud.google.com/go/civil"
	"github.com/cockroachdb/apd/v3"
	"github.com/google/uuid"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
)

var (
	// ErrUnsupportedType is returned when a Go value has no projection into
	// the value union.
	ErrUnsupportedType = errors.New("unsupported argument type")

	// ErrNonFinite is returned for NaN and infinite numbers.
	ErrNonFinite = errors.New("non-finite numbers are not supported")

	// ErrNullValue is returned when a null reaches a position that requires a
	// concrete value.
	ErrNullValue = errors.New("null value in non-nullable position")
)

// Of projects a Go value into the value union.
//
// Projection rules:
//   - nil becomes Null
//   - every signed and unsigned integer kind becomes Int (uint64 overflow fails)
//   - float32 and float64 become Decimal via their shortest decimal text
//   - time.Time becomes OffsetDateTime; civil types become the local variants
//   - language.Tag, currency.Unit, uuid.UUID become Locale, Currency, UUID
//   - any Enumerable becomes Enum
//
// Anything else fails with ErrUnsupportedType.
func Of(v any) (Value, error) {
	switch val := v.(type) {
	case nil:
		return Null{}, nil
	case Value:
		return val, nil
	case string:
		return String(val), nil
	case bool:
		return Bool(val), nil
	case int:
		return Int(val), nil
	case int8:
		return Int(val), nil
	case int16:
		return Int(val), nil
	case int32:
		return Int(val), nil
	case int64:
		return Int(val), nil
	case uint8:
		return Int(val), nil
	case uint16:
		return Int(val), nil
	case uint32:
		return Int(val), nil
	case uint:
		return uintToInt(uint64(val))
	case uint64:
		return uintToInt(val)
	case float32:
		return floatToDecimal(float64(val), 32)
	case float64:
		return floatToDecimal(val, 64)
	case *apd.Decimal:
		if val == nil {
			return Null{}, nil
		}
		if val.Form != apd.Finite {
			return nil, ErrNonFinite
		}
		d := new(apd.Decimal)
		d.Set(val)
		return Decimal{d: d}, nil
	case time.Time:
		return OffsetDateTime(val), nil
	case civil.DateTime:
		return LocalDateTime(val), nil
	case civil.Date:
		return LocalDate(val), nil
	case civil.Time:
		return LocalTime(val), nil
	case language.Tag:
		return Locale(val), nil
	case currency.Unit:
		return Currency(val), nil
	case uuid.UUID:
		return UUID(val), nil
	case Enumerable:
		return NewEnum(val), nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedType, v)
	}
}

// MustOf is like Of but panics when the value has no projection.
func MustOf(v any) Value {
	out, err := Of(v)
	if err != nil {
		panic(err)
	}
	return out
}

func uintToInt(n uint64) (Value, error) {
	if n > math.MaxInt64 {
		return nil, fmt.Errorf("%w: %d overflows int64", ErrUnsupportedType, n)
	}
	return Int(int64(n)), nil
}

// floatToDecimal projects a float through its shortest round-tripping text so
// that 0.1 becomes exactly 0.1 and not the binary approximation.
func floatToDecimal(f float64, bitSize int) (Value, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, ErrNonFinite
	}
	d, _, err := apd.NewFromString(strconv.FormatFloat(f, 'f', -1, bitSize))
	if err != nil {
		return nil, fmt.Errorf("project float %v: %w", f, err)
	}
	return Decimal{d: d}, nil
}

// Normalize projects every argument into the value union.
//
// The result is always a uniform []Value: if any argument needs projection
// (e.g. a float), every argument is replaced by its projected form, so
// downstream formatting never sees a mix of raw and projected values.
func Normalize(args []any) ([]Value, error) {
	out := make([]Value, len(args))
	for i, arg := range args {
		v, err := Of(arg)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i, err)
		}
		out[i] = v
	}
	return out, nil
}

// Equal reports whether two values are the same variant with the same
// content. Decimals compare numerically, instants by the moment they denote
// and offset, locales by their BCP 47 form.
func Equal(a, b Value) bool {
	if IsNull(a) || IsNull(b) {
		return IsNull(a) && IsNull(b)
	}
	switch x := a.(type) {
	case String, Char, Int, Bool, LocalDateTime, LocalDate, LocalTime, Currency, UUID:
		return a == b
	case Decimal:
		y, ok := b.(Decimal)
		return ok && x.Cmp(y) == 0
	case OffsetDateTime:
		y, ok := b.(OffsetDateTime)
		return ok && time.Time(x).Equal(time.Time(y)) && offsetOf(time.Time(x)) == offsetOf(time.Time(y))
	case Locale:
		y, ok := b.(Locale)
		return ok && x.Tag().String() == y.Tag().String()
	case Enum:
		y, ok := b.(Enum)
		return ok && x.e == y.e
	case DateTimeRange:
		y, ok := b.(DateTimeRange)
		return ok && timePtrEqual(x.From, y.From) && timePtrEqual(x.To, y.To)
	case DecimalRange:
		y, ok := b.(DecimalRange)
		return ok && decimalPtrEqual(x.From, y.From) && decimalPtrEqual(x.To, y.To)
	case IntRange:
		y, ok := b.(IntRange)
		return ok && intPtrEqual(x.From, y.From) && intPtrEqual(x.To, y.To)
	default:
		return false
	}
}

func offsetOf(t time.Time) int {
	_, off := t.Zone()
	return off
}

func timePtrEqual(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}

func decimalPtrEqual(a, b *Decimal) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Cmp(*b) == 0
}

func intPtrEqual(a, b *int64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
