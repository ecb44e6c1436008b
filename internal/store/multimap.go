package store

// OrderedMultiMap maps each key to an insertion-ordered sequence of values.
//
// Keys iterate in first-seen order. Values under a key keep the order in which
// they were appended. Both orders are part of the contract: the store relies on
// them for deterministic views and for the current-record invariant.
//
// OrderedMultiMap is not safe for concurrent mutation. Once loading finishes
// the store only reads from it, which is safe from any number of goroutines.
type OrderedMultiMap[K comparable, V any] struct {
	keys   []K
	values map[K][]V
	size   int
}

// NewOrderedMultiMap creates an empty map.
func NewOrderedMultiMap[K comparable, V any]() *OrderedMultiMap[K, V] {
	return &OrderedMultiMap[K, V]{values: make(map[K][]V)}
}

// Append adds v to the end of the sequence for k.
func (m *OrderedMultiMap[K, V]) Append(k K, v V) {
	seq, ok := m.values[k]
	if !ok {
		m.keys = append(m.keys, k)
	}
	m.values[k] = append(seq, v)
	m.size++
}

// Get returns the sequence stored under k.
// The returned slice aliases internal storage and must not be modified.
func (m *OrderedMultiMap[K, V]) Get(k K) ([]V, bool) {
	seq, ok := m.values[k]
	return seq, ok
}

// Count returns the number of values stored under k, or 0 for an unknown key.
func (m *OrderedMultiMap[K, V]) Count(k K) int {
	return len(m.values[k])
}

// Keys returns the keys in first-seen order.
func (m *OrderedMultiMap[K, V]) Keys() []K {
	keys := make([]K, len(m.keys))
	copy(keys, m.keys)
	return keys
}

// Len returns the number of distinct keys.
func (m *OrderedMultiMap[K, V]) Len() int {
	return len(m.keys)
}

// Size returns the total number of values across all keys.
func (m *OrderedMultiMap[K, V]) Size() int {
	return m.size
}

// Each calls fn for every key in first-seen order.
// Iteration stops early if fn returns false.
func (m *OrderedMultiMap[K, V]) Each(fn func(k K, seq []V) bool) {
	for _, k := range m.keys {
		if !fn(k, m.values[k]) {
			return
		}
	}
}
