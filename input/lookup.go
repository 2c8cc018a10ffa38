package input

// State describes what Lookup found at the end of a path.
type State int

const (
	// Absent means the path does not exist: a key is missing or an
	// intermediate value is nil or not a keyed structure.
	Absent State = iota

	// Null means the final key exists but holds nil.
	Null

	// Present means the final key holds a non-nil value.
	Present
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case Absent:
		return "absent"
	case Null:
		return "null"
	case Present:
		return "present"
	default:
		return "unknown"
	}
}

// Keyed is implemented by typed records that expose their optional
// fields by name so Lookup can traverse them like decoded JSON.
//
// Field must return (nil, false) for unset optional fields, including
// when called on a nil receiver.
type Keyed interface {
	Field(key string) (any, bool)
}

// Value is the result of a Lookup. The zero value is Absent.
type Value struct {
	state State
	raw   any
}

// Lookup descends from root through keys and returns whatever it reaches.
// It understands map[string]any and Keyed values; anything else on the
// path yields Absent. Lookup never panics and never returns an error:
// missing data is an expected state, not a failure.
//
//	if input.Lookup(account, "successor_holder", "is_currently_alive").IsFalse() {
//	    // designation has failed
//	}
func Lookup(root any, keys ...string) Value {
	cur := root
	for _, key := range keys {
		var (
			next any
			ok   bool
		)
		switch node := cur.(type) {
		case nil:
			return Value{}
		case map[string]any:
			next, ok = node[key]
		case Keyed:
			next, ok = node.Field(key)
		default:
			return Value{}
		}
		if !ok {
			return Value{}
		}
		cur = next
	}

	if cur == nil {
		return Value{state: Null}
	}
	return Value{state: Present, raw: cur}
}

// State reports whether the value was absent, null or present.
func (v Value) State() State {
	return v.state
}

// IsPresent returns true if the path resolved to a non-nil value.
func (v Value) IsPresent() bool {
	return v.state == Present
}

// IsAbsent returns true if the path does not exist.
func (v Value) IsAbsent() bool {
	return v.state == Absent
}

// IsNull returns true if the path exists but holds nil.
func (v Value) IsNull() bool {
	return v.state == Null
}

// Raw returns the underlying value, or nil when not present.
func (v Value) Raw() any {
	return v.raw
}

// Bool returns the value as a bool. ok is false when the value is not
// present or not a bool.
func (v Value) Bool() (b bool, ok bool) {
	b, ok = v.raw.(bool)
	return b, ok
}

// IsFalse returns true only for an explicit false. Absent, null and
// non-bool values are not false.
func (v Value) IsFalse() bool {
	b, ok := v.Bool()
	return ok && !b
}

// IsTrue returns true only for an explicit true.
func (v Value) IsTrue() bool {
	b, ok := v.Bool()
	return ok && b
}

// AsString returns the value as a string. ok is false when the value is not
// present or not a string.
func (v Value) AsString() (s string, ok bool) {
	s, ok = v.raw.(string)
	return s, ok
}

// Equals returns true if the value is a string equal to s. Typed string
// enums compare through their underlying string.
func (v Value) Equals(s string) bool {
	switch raw := v.raw.(type) {
	case string:
		return raw == s
	case interface{ String() string }:
		return raw.String() == s
	default:
		return false
	}
}

// Float64 returns the value as a float64, coercing numeric types and
// numeric strings.
func (v Value) Float64() (float64, bool) {
	if v.state != Present {
		return 0, false
	}
	return toFloat64(v.raw)
}
