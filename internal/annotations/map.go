package annotations

// Map holds the annotations of one comment block, keyed by tag name.
// Keys keep the order in which each tag first appeared.
type Map struct {
	keys   []string
	values map[string]Value
	counts map[string]int // occurrences seen by Add
}

// NewMap creates an empty annotation map
func NewMap() *Map {
	return &Map{
		values: make(map[string]Value),
		counts: make(map[string]int),
	}
}

// Get returns the value stored for name
func (m *Map) Get(name string) (Value, bool) {
	if m == nil {
		return Value{}, false
	}
	v, ok := m.values[name]
	return v, ok
}

// Has reports whether name is present
func (m *Map) Has(name string) bool {
	_, ok := m.Get(name)
	return ok
}

// Keys returns tag names in first-appearance order
func (m *Map) Keys() []string {
	if m == nil {
		return nil
	}
	keys := make([]string, len(m.keys))
	copy(keys, m.keys)
	return keys
}

// Len returns the number of distinct tags
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Set stores value under name, replacing any previous value
func (m *Map) Set(name string, value Value) {
	if _, exists := m.values[name]; !exists {
		m.keys = append(m.keys, name)
	}
	m.values[name] = value
	m.counts[name] = 1
}

// Add records one more occurrence of name. The first occurrence is stored
// as-is, the second turns the entry into a two-element list, and later
// occurrences append to that list.
func (m *Map) Add(name string, value Value) {
	existing, exists := m.values[name]
	if !exists {
		m.Set(name, value)
		return
	}

	count := m.counts[name]
	if count == 1 {
		m.values[name] = List(existing, value)
	} else {
		items := make([]Value, len(existing.list), len(existing.list)+1)
		copy(items, existing.list)
		m.values[name] = Value{kind: ListKind, list: append(items, value)}
	}
	m.counts[name] = count + 1
}

// Range calls fn for every tag in first-appearance order
func (m *Map) Range(fn func(name string, value Value) bool) {
	if m == nil {
		return
	}
	for _, name := range m.keys {
		if !fn(name, m.values[name]) {
			return
		}
	}
}

// Clone returns an independent copy of the map
func (m *Map) Clone() *Map {
	out := NewMap()
	m.Range(func(name string, value Value) bool {
		out.Set(name, value)
		out.counts[name] = m.counts[name]
		return true
	})
	return out
}

// Equal reports whether both maps hold the same tags with equal values.
// Key order is irrelevant.
func (m *Map) Equal(other *Map) bool {
	return m.compare(other, Equal)
}

// Equivalent is Equal using the Equivalent value comparison
func (m *Map) Equivalent(other *Map) bool {
	return m.compare(other, Equivalent)
}

func (m *Map) compare(other *Map, eq func(a, b Value) bool) bool {
	if m.Len() != other.Len() {
		return false
	}
	equal := true
	m.Range(func(name string, value Value) bool {
		ov, ok := other.Get(name)
		if !ok || !eq(value, ov) {
			equal = false
		}
		return equal
	})
	return equal
}
