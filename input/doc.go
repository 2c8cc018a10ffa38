// Package input provides nil-safe helpers for reading optional values out of
// decoded records.
//
// Client records arrive as JSON or YAML where almost every designation field
// is optional. A missing successor holder, or a designation with no
// is_currently_alive flag, is a normal state rather than a failure, so the
// helpers in this package never return errors.
//
// # Path lookup
//
// Lookup walks an ordered sequence of keys through map[string]any values and
// any typed record implementing Keyed. The result distinguishes three states:
//
//   - Absent: the path does not exist
//   - Null: the final key exists but holds nil
//   - Present: the final key holds a value
//
// Rules use IsFalse to react only to an explicit false:
//
//	if input.Lookup(account, "successor_holder", "is_currently_spouse").IsFalse() {
//	    // ex-spouse still named
//	}
//
// # Typed getters
//
// GetString, GetInt, GetOptionalBool and GetMap
// read a single key with type coercion and defaults. They are used at the
// decoding boundary where JSON numbers may arrive as float64, int or string.
package input
