// Package value provides the closed set of argument types a query constraint
// may carry, together with their canonical textual form.
//
// Every constraint argument is projected into this union at construction
// time. A Go value that has no projection is rejected, so downstream code
// (printers, resolvers, wire converters) can switch exhaustively over the
// variants without a default branch for "something else".
//
// Key design constraints:
//   - NO float types in the union - float32/float64 project to Decimal
//   - all integer kinds project to Int (int64)
//   - Null is an explicit variant, never a nil interface
//   - the canonical form produced by Format is also a cache key and is parsed
//     by the server, so it must stay bit exact
package value
