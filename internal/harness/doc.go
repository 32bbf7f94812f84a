// Package harness runs query conformance scenarios.
//
// A scenario compiles one query document and checks everything the driver
// derives from it: the canonical text, the parameterized text and its
// parameters, the normalized form, and which entity facets a fetch with
// the query may read.
//
// # Scenario Format
//
// Scenarios are YAML files:
//
//	name: product_by_code
//	description: "Literal arguments are lifted out of the parameterized form"
//	query:
//	  - collection: product
//	  - filterBy:
//	      attributeEquals: [code, abc]
//	  - require:
//	      - entityFetch:
//	          - attributeContent: [code]
//	expect:
//	  printed: "query(collection('product'),...)"
//	  parameterized: "query(collection('product'),...)"
//	  parameters: ["'abc'"]
//	  normalized: "query(collection('product'),...)"
//	reads:
//	  - read: attribute:code
//	  - read: attribute:url
//	    code: ATTRIBUTE_NOT_FETCHED
//
// The query is written in the document format of package compiler. A
// scenario may name a document file instead, relative to the scenario:
//
//	document: queries/product.cue
//
// Reads use the grammar of predicate.ParseRead. A read without a code is
// expected to succeed.
//
// A scenario expecting the document to be rejected sets expect.error to a
// substring of the compile error and leaves the other expectations empty.
//
// # Deterministic Testing
//
// "now" constraints resolve against a fixed clock, taken from the
// scenario's now field or 2024-01-01T00:00:00Z, so golden snapshots stay
// stable across runs.
//
// # Usage
//
//	scenario, err := harness.LoadScenario("testdata/scenarios/product_by_code.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := harness.Run(scenario)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if !result.Pass {
//	    for _, msg := range result.Errors {
//	        log.Println(msg)
//	    }
//	}
package harness
