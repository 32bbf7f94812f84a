package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNamingConvention_Apply(t *testing.T) {
	testCases := []struct {
		name string
		want Variants
	}{
		{name: "productCode", want: Variants{"productCode", "ProductCode", "product_code", "PRODUCT_CODE", "product-code"}},
		{name: "product_code", want: Variants{"productCode", "ProductCode", "product_code", "PRODUCT_CODE", "product-code"}},
		{name: "Product code", want: Variants{"productCode", "ProductCode", "product_code", "PRODUCT_CODE", "product-code"}},
		{name: "URLCode", want: Variants{"urlCode", "UrlCode", "url_code", "URL_CODE", "url-code"}},
		{name: "code", want: Variants{"code", "Code", "code", "CODE", "code"}},
		{name: "Code1Name", want: Variants{"code1Name", "Code1Name", "code1_name", "CODE1_NAME", "code1-name"}},
		{name: "", want: Variants{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NameVariants(tc.name))
			for _, c := range Conventions() {
				assert.Equal(t, tc.want.Get(c), c.Apply(tc.name), c.String())
			}
		})
	}
}

func TestNamingConvention_ApplyIsIdempotent(t *testing.T) {
	for _, c := range Conventions() {
		once := c.Apply("productURLCode")
		assert.Equal(t, once, c.Apply(once), c.String())
	}
}

func TestParseNamingConvention(t *testing.T) {
	testCases := []struct {
		in      string
		want    NamingConvention
		wantErr bool
	}{
		{in: "camelCase", want: CamelCase},
		{in: "PASCALCASE", want: PascalCase},
		{in: "snake", want: SnakeCase},
		{in: "UPPER_SNAKE_CASE", want: UpperSnakeCase},
		{in: "upper-snake", want: UpperSnakeCase},
		{in: "kebab-case", want: KebabCase},
		{in: "title", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseNamingConvention(tc.in)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNamingConvention_String(t *testing.T) {
	assert.Equal(t, "camelCase", CamelCase.String())
	assert.Equal(t, "NamingConvention(7)", NamingConvention(7).String())
	assert.Len(t, Conventions(), conventionCount)
	assert.Equal(t, "", Variants{}.Get(NamingConvention(-1)))
}
