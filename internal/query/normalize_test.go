package query

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	testCases := []struct {
		name   string
		in     Constraint
		want   Constraint
		wantOK bool
	}{
		{
			name:   "applicable leaf unchanged",
			in:     AttributeEquals("code", "abc"),
			want:   AttributeEquals("code", "abc"),
			wantOK: true,
		},
		{
			name:   "non applicable leaf dropped",
			in:     AttributeBetween("age", nil, nil),
			wantOK: false,
		},
		{
			name:   "single child and collapsed",
			in:     FilterBy(And(AttributeEquals("code", "abc"))),
			want:   FilterBy(AttributeEquals("code", "abc")),
			wantOK: true,
		},
		{
			name:   "null child removed",
			in:     FilterBy(And(AttributeEquals("code", nil), AttributeEquals("a", 1), AttributeEquals("b", 2))),
			want:   FilterBy(And(AttributeEquals("a", 1), AttributeEquals("b", 2))),
			wantOK: true,
		},
		{
			name:   "collapse cascades",
			in:     FilterBy(Or(And(AttributeEquals("code", nil), AttributeEquals("a", 1)))),
			want:   FilterBy(AttributeEquals("a", 1)),
			wantOK: true,
		},
		{
			name:   "container emptied by normalization dropped",
			in:     FilterBy(And(AttributeEquals("code", nil))),
			wantOK: false,
		},
		{
			name:   "not keeps single child",
			in:     FilterBy(Not(AttributeEquals("a", 1))),
			want:   FilterBy(Not(AttributeEquals("a", 1))),
			wantOK: true,
		},
		{
			name:   "rewrite rejected by container keeps original",
			in:     FilterBy(HierarchyWithinSelf(And(DirectRelation()))),
			want:   FilterBy(HierarchyWithinSelf(And(DirectRelation()))),
			wantOK: true,
		},
		{
			name:   "additional children normalized",
			in:     ReferenceContent("brand", FilterBy(And(AttributeEquals("a", 1)))),
			want:   ReferenceContent("brand", FilterBy(AttributeEquals("a", 1))),
			wantOK: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			before := tc.in.String()

			got, ok := Normalize(tc.in)
			require.Equal(t, tc.wantOK, ok)
			assert.Equal(t, before, tc.in.String(), "input must not change")
			if !tc.wantOK {
				assert.Nil(t, got)
				return
			}
			if diff := cmp.Diff(tc.want.String(), got.String()); diff != "" {
				t.Errorf("Normalize() mismatch (-want +got):\n%s", diff)
			}
			assert.True(t, Equal(tc.want, got))
		})
	}
}

func TestEqual(t *testing.T) {
	testCases := []struct {
		name string
		a, b Constraint
		want bool
	}{
		{
			name: "same tree",
			a:    And(AttributeEquals("a", 1), Not(DirectRelation())),
			b:    And(AttributeEquals("a", 1), Not(DirectRelation())),
			want: true,
		},
		{
			name: "int and int64 project alike",
			a:    AttributeEquals("a", 1),
			b:    AttributeEquals("a", int64(1)),
			want: true,
		},
		{
			name: "different literal",
			a:    AttributeEquals("a", 1),
			b:    AttributeEquals("a", 2),
			want: false,
		},
		{
			name: "different kind",
			a:    And(DirectRelation()),
			b:    Or(DirectRelation()),
			want: false,
		},
		{
			name: "child order matters",
			a:    And(DirectRelation(), ExcludingRoot()),
			b:    And(ExcludingRoot(), DirectRelation()),
			want: false,
		},
		{
			name: "empty attribute content is the all variant",
			a:    AttributeContent(),
			b:    AttributeContentAll(),
			want: true,
		},
		{
			name: "both nil",
			want: true,
		},
		{
			name: "one nil",
			a:    DirectRelation(),
			want: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Equal(tc.a, tc.b))
		})
	}
}
