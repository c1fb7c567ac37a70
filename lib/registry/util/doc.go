// Package util provides utility components for registry implementations
// that satisfy the registry.IRegistry interface.
//
// The package contains:
//   - hash: The case-insensitive 32-bit name hash under which tables are registered
//   - wstring: Helpers to build and decode the NUL-terminated UTF-16 payloads used by the message repository
//
// The name hash intentionally reproduces the folding rules of the host
// application (lowercase folding, backslash treated as slash) so that a
// table is found under any spelling the host itself would accept.
package util
