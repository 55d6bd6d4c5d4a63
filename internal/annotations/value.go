package annotations

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies which variant a Value holds
type Kind int

const (
	BoolKind Kind = iota
	StringKind
	NumberKind
	NullKind
	ListKind
	GroupKind
)

// String returns the string representation of the kind
func (k Kind) String() string {
	switch k {
	case BoolKind:
		return "bool"
	case StringKind:
		return "string"
	case NumberKind:
		return "number"
	case NullKind:
		return "null"
	case ListKind:
		return "list"
	case GroupKind:
		return "group"
	default:
		return "unknown"
	}
}

// Entry is one element of a keyed group. Positional entries have no key.
type Entry struct {
	Key    string
	HasKey bool
	Value  Value
}

// Value is the parsed value of a single annotation. It is a tagged variant:
// exactly one of the payload fields is meaningful, selected by Kind.
// The zero Value is Bool(false).
type Value struct {
	kind    Kind
	boolean bool
	text    string // string payload, or the literal text of a number
	number  float64
	list    []Value
	entries []Entry
}

// Bool creates a boolean value
func Bool(b bool) Value {
	return Value{kind: BoolKind, boolean: b}
}

// String creates a string value
func String(s string) Value {
	return Value{kind: StringKind, text: s}
}

// Number creates a numeric value
func Number(n float64) Value {
	return Value{kind: NumberKind, number: n, text: strconv.FormatFloat(n, 'g', -1, 64)}
}

// numberLiteral keeps the literal spelling of a parsed number
func numberLiteral(n float64, literal string) Value {
	return Value{kind: NumberKind, number: n, text: literal}
}

// Null creates a null value
func Null() Value {
	return Value{kind: NullKind}
}

// List creates an ordered list value
func List(items ...Value) Value {
	list := make([]Value, len(items))
	copy(list, items)
	return Value{kind: ListKind, list: list}
}

// Group creates a keyed group value
func Group(entries ...Entry) Value {
	group := make([]Entry, len(entries))
	copy(group, entries)
	return Value{kind: GroupKind, entries: group}
}

// Keyed creates a keyed group entry
func Keyed(key string, v Value) Entry {
	return Entry{Key: key, HasKey: true, Value: v}
}

// Positional creates a group entry without a key
func Positional(v Value) Entry {
	return Entry{Value: v}
}

// Kind returns the variant held by the value
func (v Value) Kind() Kind {
	return v.kind
}

// Bool returns the boolean payload; ok is false for other kinds
func (v Value) Bool() (b bool, ok bool) {
	return v.boolean, v.kind == BoolKind
}

// Str returns the string payload; ok is false for other kinds
func (v Value) Str() (s string, ok bool) {
	if v.kind != StringKind {
		return "", false
	}
	return v.text, true
}

// Number returns the numeric payload; ok is false for other kinds
func (v Value) Number() (n float64, ok bool) {
	return v.number, v.kind == NumberKind
}

// List returns a copy of the list items; ok is false for other kinds
func (v Value) List() ([]Value, bool) {
	if v.kind != ListKind {
		return nil, false
	}
	items := make([]Value, len(v.list))
	copy(items, v.list)
	return items, true
}

// Entries returns a copy of the group entries; ok is false for other kinds
func (v Value) Entries() ([]Entry, bool) {
	if v.kind != GroupKind {
		return nil, false
	}
	entries := make([]Entry, len(v.entries))
	copy(entries, v.entries)
	return entries, true
}

// Len returns the number of list items or group entries, 0 for scalars
func (v Value) Len() int {
	switch v.kind {
	case ListKind:
		return len(v.list)
	case GroupKind:
		return len(v.entries)
	default:
		return 0
	}
}

// Lookup returns the value stored under key in a group.
// When a key repeats, the last entry wins.
func (v Value) Lookup(key string) (Value, bool) {
	if v.kind != GroupKind {
		return Value{}, false
	}
	for i := len(v.entries) - 1; i >= 0; i-- {
		if v.entries[i].HasKey && v.entries[i].Key == key {
			return v.entries[i].Value, true
		}
	}
	return Value{}, false
}

// IsScalar reports whether the value is a bool, string, number or null
func (v Value) IsScalar() bool {
	return v.kind != ListKind && v.kind != GroupKind
}

// Truthy reports whether the value counts as "set" for switch-like tags.
// Empty strings, "0", zero, null, false and empty collections are falsy.
func (v Value) Truthy() bool {
	switch v.kind {
	case BoolKind:
		return v.boolean
	case StringKind:
		return v.text != "" && v.text != "0"
	case NumberKind:
		return v.number != 0
	case NullKind:
		return false
	case ListKind:
		return len(v.list) > 0
	case GroupKind:
		return len(v.entries) > 0
	default:
		return false
	}
}

// String renders the value for diagnostics
func (v Value) String() string {
	switch v.kind {
	case BoolKind:
		return strconv.FormatBool(v.boolean)
	case StringKind:
		return strconv.Quote(v.text)
	case NumberKind:
		return v.text
	case NullKind:
		return "null"
	case ListKind:
		parts := make([]string, len(v.list))
		for i, item := range v.list {
			parts[i] = item.String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case GroupKind:
		parts := make([]string, len(v.entries))
		for i, e := range v.entries {
			if e.HasKey {
				parts[i] = fmt.Sprintf("%s: %s", e.Key, e.Value.String())
			} else {
				parts[i] = e.Value.String()
			}
		}
		return "(" + strings.Join(parts, ", ") + ")"
	default:
		return "<invalid>"
	}
}

// Equal reports whether two values are structurally identical
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case BoolKind:
		return a.boolean == b.boolean
	case StringKind:
		return a.text == b.text
	case NumberKind:
		return a.number == b.number
	case NullKind:
		return true
	case ListKind:
		if len(a.list) != len(b.list) {
			return false
		}
		for i := range a.list {
			if !Equal(a.list[i], b.list[i]) {
				return false
			}
		}
		return true
	case GroupKind:
		if len(a.entries) != len(b.entries) {
			return false
		}
		for i := range a.entries {
			ea, eb := a.entries[i], b.entries[i]
			if ea.HasKey != eb.HasKey || ea.Key != eb.Key || !Equal(ea.Value, eb.Value) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Equivalent is Equal, except a number and a string spelling the same
// number compare equal. Inline tag arguments always come back as strings,
// so this is the comparison that survives a Render/Parse round trip.
func Equivalent(a, b Value) bool {
	if a.kind == NumberKind && b.kind == StringKind {
		return sameNumber(a.number, b.text)
	}
	if a.kind == StringKind && b.kind == NumberKind {
		return sameNumber(b.number, a.text)
	}
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case ListKind:
		if len(a.list) != len(b.list) {
			return false
		}
		for i := range a.list {
			if !Equivalent(a.list[i], b.list[i]) {
				return false
			}
		}
		return true
	case GroupKind:
		if len(a.entries) != len(b.entries) {
			return false
		}
		for i := range a.entries {
			ea, eb := a.entries[i], b.entries[i]
			if ea.HasKey != eb.HasKey || ea.Key != eb.Key || !Equivalent(ea.Value, eb.Value) {
				return false
			}
		}
		return true
	default:
		return Equal(a, b)
	}
}

func sameNumber(n float64, text string) bool {
	parsed, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	return err == nil && parsed == n
}
