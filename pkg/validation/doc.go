// Package validation checks template definitions for structural problems:
// metadata presence and bounds, variable identifiers, case-insensitive name
// uniqueness, registry-known types, constraint consistency and defaults that
// must coerce to their declared type. Every check runs; failures are
// returned as an ordered list of field-scoped issues rather than an error.
package validation
