// Package variable implements the variable type registry: a per-type
// capability table mapping each model.VariableType to a formatter, a coercer
// and a sample generator.
//
// Raw bindings are untyped at the boundary. FromAny converts them into the
// Value tagged union (TextValue, NumberValue, DateValue, BoolValue,
// TableValue, NullValue) so every formatter receives a constrained value and
// coercion failures are explicit branches. Registry.Format never fails:
// unreadable input degrades to the type's safe default (zero amounts, the raw
// string for dates, the "no" word for booleans).
package variable
