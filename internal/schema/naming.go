package schema

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// NamingConvention is one of the fixed textual renderings of a schema
// element name.
type NamingConvention int

const (
	// CamelCase renders "productCode".
	CamelCase NamingConvention = iota
	// PascalCase renders "ProductCode".
	PascalCase
	// SnakeCase renders "product_code".
	SnakeCase
	// UpperSnakeCase renders "PRODUCT_CODE".
	UpperSnakeCase
	// KebabCase renders "product-code".
	KebabCase

	conventionCount = int(KebabCase) + 1
)

// Conventions returns every naming convention in ordinal order.
func Conventions() []NamingConvention {
	return []NamingConvention{CamelCase, PascalCase, SnakeCase, UpperSnakeCase, KebabCase}
}

func (c NamingConvention) String() string {
	switch c {
	case CamelCase:
		return "camelCase"
	case PascalCase:
		return "PascalCase"
	case SnakeCase:
		return "snake_case"
	case UpperSnakeCase:
		return "UPPER_SNAKE_CASE"
	case KebabCase:
		return "kebab-case"
	default:
		return fmt.Sprintf("NamingConvention(%d)", int(c))
	}
}

// ParseNamingConvention resolves a convention from its String form or its
// identifier ("camel", "pascal", "snake", "upper_snake", "kebab"). Matching
// ignores case.
func ParseNamingConvention(s string) (NamingConvention, error) {
	for _, c := range Conventions() {
		if strings.EqualFold(s, c.String()) {
			return c, nil
		}
	}
	switch strings.ToLower(s) {
	case "camel":
		return CamelCase, nil
	case "pascal":
		return PascalCase, nil
	case "snake":
		return SnakeCase, nil
	case "upper_snake", "upper-snake":
		return UpperSnakeCase, nil
	case "kebab":
		return KebabCase, nil
	}
	return 0, fmt.Errorf("unknown naming convention %q", s)
}

func (c NamingConvention) valid() bool {
	return c >= 0 && int(c) < conventionCount
}

// Apply renders name in the convention. Words are split at separators
// ("_", "-", ".", whitespace) and at case changes; an acronym followed by a
// word ("URLCode") splits before the last upper case letter.
func (c NamingConvention) Apply(name string) string {
	words := splitWords(name)
	if len(words) == 0 {
		return ""
	}

	lower := cases.Lower(language.Und)
	switch c {
	case CamelCase, PascalCase:
		title := cases.Title(language.Und)
		var b strings.Builder
		for i, w := range words {
			if i == 0 && c == CamelCase {
				b.WriteString(lower.String(w))
				continue
			}
			b.WriteString(title.String(w))
		}
		return b.String()
	case SnakeCase:
		return joinWith(words, lower, "_")
	case UpperSnakeCase:
		return joinWith(words, cases.Upper(language.Und), "_")
	case KebabCase:
		return joinWith(words, lower, "-")
	default:
		return name
	}
}

// Variants holds the rendering of a name in every convention, indexed by
// convention ordinal.
type Variants [conventionCount]string

// Get returns the rendering in c.
func (v Variants) Get(c NamingConvention) string {
	if !c.valid() {
		return ""
	}
	return v[c]
}

// NameVariants renders name in every convention.
func NameVariants(name string) Variants {
	var v Variants
	for _, c := range Conventions() {
		v[c] = c.Apply(name)
	}
	return v
}

func joinWith(words []string, caser cases.Caser, sep string) string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = caser.String(w)
	}
	return strings.Join(out, sep)
}

func splitWords(name string) []string {
	var (
		words []string
		cur   []rune
	)
	flush := func() {
		if len(cur) > 0 {
			words = append(words, string(cur))
			cur = cur[:0]
		}
	}

	runes := []rune(name)
	for i, r := range runes {
		if r == '_' || r == '-' || r == '.' || unicode.IsSpace(r) {
			flush()
			continue
		}
		if unicode.IsUpper(r) && len(cur) > 0 {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				flush()
			}
		}
		cur = append(cur, r)
	}
	flush()
	return words
}
