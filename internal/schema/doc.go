// Package schema models the schema of entity collections and finds schema
// elements by name in any of the supported naming conventions.
package schema
