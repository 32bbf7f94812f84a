package value

import (
	"math"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/cockroachdb/apd/v3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
)

type testDirection int

func (d testDirection) EnumName() string {
	if d == 0 {
		return "ASC"
	}
	return "DESC"
}

func TestValueSealed(t *testing.T) {
	// Verify all variants implement Value (compile-time check via assignment)
	var _ Value = Null{}
	var _ Value = String("test")
	var _ Value = Char('x')
	var _ Value = Int(42)
	var _ Value = Bool(true)
	var _ Value = DecimalFromInt(1)
	var _ Value = OffsetDateTime(time.Now())
	var _ Value = LocalDateTime{}
	var _ Value = LocalDate{}
	var _ Value = LocalTime{}
	var _ Value = Locale(language.Czech)
	var _ Value = Currency(currency.EUR)
	var _ Value = UUID(uuid.Nil)
	var _ Value = NewEnum(testDirection(0))
	var _ Value = DateTimeRange{}
	var _ Value = DecimalRange{}
	var _ Value = IntRange{}
}

func TestOf_Projections(t *testing.T) {
	now := time.Date(2023, 5, 1, 10, 0, 0, 0, time.UTC)
	czk := currency.MustParseISO("CZK")

	tests := []struct {
		name  string
		input any
		want  Value
	}{
		{"nil", nil, Null{}},
		{"string", "abc", String("abc")},
		{"bool", true, Bool(true)},
		{"int", 5, Int(5)},
		{"int8", int8(-3), Int(-3)},
		{"int16", int16(300), Int(300)},
		{"int32", int32(7), Int(7)},
		{"uint8", uint8(255), Int(255)},
		{"uint32", uint32(9), Int(9)},
		{"uint", uint(11), Int(11)},
		{"time", now, OffsetDateTime(now)},
		{"civil date", civil.Date{Year: 2023, Month: 5, Day: 1}, LocalDate{Year: 2023, Month: 5, Day: 1}},
		{"locale", language.Czech, Locale(language.Czech)},
		{"currency", czk, Currency(czk)},
		{"already projected", Int(3), Int(3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Of(tt.input)
			require.NoError(t, err)
			assert.True(t, Equal(tt.want, got), "want %#v, got %#v", tt.want, got)
		})
	}
}

func TestOf_FloatBecomesDecimal(t *testing.T) {
	got, err := Of(0.1)
	require.NoError(t, err)

	d, ok := got.(Decimal)
	require.True(t, ok, "float must project to Decimal, got %T", got)
	assert.Equal(t, "0.1", d.String())

	got32, err := Of(float32(2.5))
	require.NoError(t, err)
	assert.True(t, Equal(MustDecimal("2.5"), got32))
}

func TestOf_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		input any
	}{
		{"slice", []string{"a"}},
		{"map", map[string]int{}},
		{"struct", struct{}{}},
		{"uint64 overflow", uint64(math.MaxUint64)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Of(tt.input)
			assert.ErrorIs(t, err, ErrUnsupportedType)
		})
	}
}

func TestOf_RejectsNonFinite(t *testing.T) {
	_, err := Of(math.NaN())
	assert.ErrorIs(t, err, ErrNonFinite)

	_, err = Of(math.Inf(1))
	assert.ErrorIs(t, err, ErrNonFinite)
}

func TestOf_EnumKeepsGoType(t *testing.T) {
	got, err := Of(testDirection(1))
	require.NoError(t, err)

	e, ok := got.(Enum)
	require.True(t, ok)
	assert.Equal(t, testDirection(1), e.Raw())
	assert.Equal(t, "DESC", e.Name())
}

func TestOf_ApdDecimalIsCopied(t *testing.T) {
	src, _, err := apd.NewFromString("1.25")
	require.NoError(t, err)

	got, err := Of(src)
	require.NoError(t, err)

	// Mutating the source must not leak into the projected value.
	src.SetInt64(99)
	assert.Equal(t, "1.25", got.(Decimal).String())
}

func TestNormalize_ProjectsEveryArgument(t *testing.T) {
	args, err := Normalize([]any{"code", 1.5, 3})
	require.NoError(t, err)
	require.Len(t, args, 3)

	assert.IsType(t, String(""), args[0])
	assert.IsType(t, Decimal{}, args[1])
	assert.IsType(t, Int(0), args[2])
}

func TestNormalize_ReportsPosition(t *testing.T) {
	_, err := Normalize([]any{"ok", []int{1}})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedType)
	assert.Contains(t, err.Error(), "argument 1")
}

func TestEqual(t *testing.T) {
	instant := time.Date(2023, 1, 1, 12, 0, 0, 0, time.FixedZone("", 3600))

	assert.True(t, Equal(Null{}, nil))
	assert.True(t, Equal(MustDecimal("1.0"), MustDecimal("1")))
	assert.False(t, Equal(MustDecimal("1.1"), MustDecimal("1")))
	assert.True(t, Equal(OffsetDateTime(instant), OffsetDateTime(instant)))
	assert.False(t, Equal(OffsetDateTime(instant), OffsetDateTime(instant.UTC())), "offset is part of identity")
	assert.True(t, Equal(Locale(language.MustParse("cs-CZ")), Locale(language.MustParse("cs-CZ"))))
	assert.False(t, Equal(Int(1), String("1")))
	assert.True(t, Equal(IntBetween(1, 5), IntBetween(1, 5)))
	assert.False(t, Equal(IntBetween(1, 5), IntRange{From: ptr(int64(1))}))
}

func TestDateTimeRange_Contains(t *testing.T) {
	from := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)
	r := DateTimeBetween(from, to)

	assert.True(t, r.Contains(from), "lower bound is inclusive")
	assert.True(t, r.Contains(to), "upper bound is inclusive")
	assert.True(t, r.Contains(from.AddDate(0, 6, 0)))
	assert.False(t, r.Contains(from.Add(-time.Second)))
	assert.False(t, r.Contains(to.Add(time.Second)))

	assert.True(t, DateTimeSince(from).Contains(to.AddDate(10, 0, 0)))
	assert.True(t, DateTimeUntil(to).Contains(from.AddDate(-10, 0, 0)))
}

func ptr[T any](v T) *T {
	return &v
}
