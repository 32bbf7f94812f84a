// Package compiler compiles query documents into queries.
//
// A query document lists the parts of a query as constraints written by
// their printed names. Each constraint is a single-key mapping; its value
// holds the arguments and nested constraints, alone or in a list:
//
//	query:
//	  - collection: product
//	  - filterBy:
//	      and:
//	        - attributeEquals: [code, abc]
//	        - entityLocaleEquals: !locale cs-CZ
//	  - orderBy:
//	      attributeNatural: [name, DESC]
//	  - require:
//	      - entityFetch: [attributeContentAll]
//	      - page: [1, 20]
//
// Documents are YAML streams or CUE files. CUE has no tags, so typed
// arguments are written as {locale: "cs-CZ"} there; the mapping form works
// in YAML too. Unquoted YAML strings naming an enumeration member (ASC,
// RESPECTING_FILTER) become that member, and inside containers unquoted
// constraint names stand for constraints without arguments.
package compiler
