package yamltree

// Mapping is a string-keyed map that keeps insertion order.
type Mapping struct {
	keys   []string
	values map[string]Value
}

// NewMapping returns an empty mapping.
func NewMapping() *Mapping {
	return &Mapping{values: make(map[string]Value)}
}

// Kind implements Value.
func (*Mapping) Kind() Kind { return KindMapping }

// Interface implements Value.
func (m *Mapping) Interface() any {
	out := make(map[string]any, m.Len())

	for _, k := range m.Keys() {
		out[k] = interfaceOf(m.values[k])
	}

	return out
}

// Clone implements Value.
//
//nolint:ireturn // variant interface
func (m *Mapping) Clone() Value {
	return m.CloneMapping()
}

// CloneMapping is Clone with the concrete type.
func (m *Mapping) CloneMapping() *Mapping {
	out := NewMapping()
	if m == nil {
		return out
	}

	for _, k := range m.keys {
		out.Set(k, cloneOf(m.values[k]))
	}

	return out
}

func (*Mapping) isValue() {}

// Len returns the number of keys.
func (m *Mapping) Len() int {
	if m == nil {
		return 0
	}

	return len(m.keys)
}

// Keys returns the keys in insertion order.
func (m *Mapping) Keys() []string {
	if m == nil {
		return nil
	}

	out := make([]string, len(m.keys))
	copy(out, m.keys)

	return out
}

// Get returns the value at key.
//
//nolint:ireturn // variant interface
func (m *Mapping) Get(key string) (Value, bool) {
	if m == nil {
		return nil, false
	}

	v, ok := m.values[key]

	return v, ok
}

// Has reports whether key is present.
func (m *Mapping) Has(key string) bool {
	_, ok := m.Get(key)

	return ok
}

// Set stores v at key. A new key is appended; an existing key keeps its
// position.
func (m *Mapping) Set(key string, v Value) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}

	m.values[key] = v
}

// Delete removes key.
func (m *Mapping) Delete(key string) {
	if _, ok := m.values[key]; !ok {
		return
	}

	delete(m.values, key)

	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)

			break
		}
	}
}

// Each calls fn for every entry in order until fn returns false.
func (m *Mapping) Each(fn func(key string, v Value) bool) {
	if m == nil {
		return
	}

	for _, k := range m.keys {
		if !fn(k, m.values[k]) {
			return
		}
	}
}
