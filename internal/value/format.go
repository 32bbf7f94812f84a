package value

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NullSentinel is the literal printed for a null in a nullable position.
const NullSentinel = "<NULL>"

// Layouts of the date and time variants.
const (
	OffsetDateTimeLayout = "2006-01-02T15:04:05-07:00"
	LocalDateTimeLayout  = "2006-01-02T15:04:05"
	LocalDateLayout      = "2006-01-02"
	LocalTimeLayout      = "15:04:05"
)

// Format renders a value in its canonical query-language form.
//
// CRITICAL: this text is consumed by the server-side parser and doubles as a
// cache key, so every rule here is bit exact:
//   - strings and chars are single quoted, inner quotes escaped as \'
//   - integers are plain digits
//   - decimals are invariant text with a lowercase exponent, no '+', no
//     trailing e0 and a leading 0 before a bare '.'
//   - locales, currencies and UUIDs are single quoted
//   - enums print their symbolic name
//
// Null is never formatted: it returns ErrNullValue. Callers that accept null
// in a given position print NullSentinel themselves.
func Format(v Value) (string, error) {
	switch val := v.(type) {
	case nil, Null:
		return "", ErrNullValue
	case String:
		return quote(string(val)), nil
	case Char:
		return quote(string(rune(val))), nil
	case Int:
		return strconv.FormatInt(int64(val), 10), nil
	case Decimal:
		return val.String(), nil
	case Bool:
		return strconv.FormatBool(bool(val)), nil
	case OffsetDateTime:
		return time.Time(val).Format(OffsetDateTimeLayout), nil
	case LocalDateTime:
		return formatLocalDateTime(val), nil
	case LocalDate:
		return formatLocalDate(val), nil
	case LocalTime:
		return formatLocalTime(val), nil
	case Locale:
		return quote(val.Tag().String()), nil
	case Currency:
		return quote(val.Unit().String()), nil
	case UUID:
		return quote(uuid.UUID(val).String()), nil
	case Enum:
		if val.e == nil {
			return "", ErrNullValue
		}
		return val.Name(), nil
	case DateTimeRange:
		return formatRange(timeBound(val.From), timeBound(val.To)), nil
	case DecimalRange:
		return formatRange(decimalBound(val.From), decimalBound(val.To)), nil
	case IntRange:
		return formatRange(intBound(val.From), intBound(val.To)), nil
	default:
		return "", fmt.Errorf("%w: %T", ErrUnsupportedType, v)
	}
}

var quoteEscaper = strings.NewReplacer(`\`, `\\`, "'", `\'`)

// quote wraps s in single quotes and escapes backslashes and inner single
// quotes.
func quote(s string) string {
	return "'" + quoteEscaper.Replace(s) + "'"
}

// canonicalDecimal applies the invariant decimal rules to raw decimal text.
func canonicalDecimal(text string) string {
	s := strings.ToLower(text)
	s = strings.ReplaceAll(s, "+", "")
	s = strings.TrimSuffix(s, "e0")
	switch {
	case strings.HasPrefix(s, "."):
		s = "0" + s
	case strings.HasPrefix(s, "-."):
		s = "-0" + s[1:]
	}
	return s
}

func formatLocalDate(d LocalDate) string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// formatLocalTime drops sub-second precision; the grammar has none.
func formatLocalTime(t LocalTime) string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
}

func formatLocalDateTime(dt LocalDateTime) string {
	return formatLocalDate(LocalDate(dt.Date)) + "T" + formatLocalTime(LocalTime(dt.Time))
}

func formatRange(from, to string) string {
	return "[" + from + "," + to + "]"
}

func timeBound(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(OffsetDateTimeLayout)
}

func decimalBound(d *Decimal) string {
	if d == nil {
		return ""
	}
	return d.String()
}

func intBound(n *int64) string {
	if n == nil {
		return ""
	}
	return strconv.FormatInt(*n, 10)
}
