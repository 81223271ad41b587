package jsonmap

import "iter"

// compactMin is the number of removed slots tolerated before the entry list
// is considered for compaction.
const compactMin = 8

type entry[K comparable] struct {
	key K
	val Value[K]
}

// Map associates keys of type K with Values. Keys are unique. Iteration
// order is not part of the contract.
//
// The zero Map is empty and ready to use. Pointers handed out by GetMut,
// ValuesMut, AllMut and Entry stay valid until their key is removed or the
// map is cleared.
type Map[K comparable] struct {
	index   map[K]int
	entries []*entry[K] // nil slots are removed entries
	dead    int
}

// Pair is a single key/value association, used to build a Map.
type Pair[K comparable] struct {
	Key   K
	Value Value[K]
}

// NewMap returns an empty map.
func NewMap[K comparable]() *Map[K] {
	return &Map[K]{index: make(map[K]int)}
}

// FromPairs builds a map from pairs. When a key repeats, the last pair wins,
// exactly as if the pairs were inserted one by one.
func FromPairs[K comparable](pairs ...Pair[K]) *Map[K] {
	m := &Map[K]{index: make(map[K]int, len(pairs))}
	for _, p := range pairs {
		m.Insert(p.Key, p.Value)
	}
	return m
}

// Collect builds a map from a sequence of key/value pairs. When a key
// repeats, the last pair wins.
func Collect[K comparable](seq iter.Seq2[K, Value[K]]) *Map[K] {
	m := NewMap[K]()
	for k, v := range seq {
		m.Insert(k, v)
	}
	return m
}

// Insert stores v under k, replacing and discarding any previous value. Use
// Entry to observe the value being replaced.
func (m *Map[K]) Insert(k K, v Value[K]) {
	if i, ok := m.index[k]; ok {
		m.entries[i].val = v
		return
	}
	m.push(k, v)
}

func (m *Map[K]) push(k K, v Value[K]) *entry[K] {
	if m.index == nil {
		m.index = make(map[K]int)
	}
	e := &entry[K]{key: k, val: v}
	m.index[k] = len(m.entries)
	m.entries = append(m.entries, e)
	return e
}

// Get returns the value stored under k.
func (m *Map[K]) Get(k K) (Value[K], bool) {
	if e := m.lookup(k); e != nil {
		return e.val, true
	}
	return Value[K]{}, false
}

// GetMut returns a pointer to the value stored under k, or nil.
func (m *Map[K]) GetMut(k K) *Value[K] {
	if e := m.lookup(k); e != nil {
		return &e.val
	}
	return nil
}

func (m *Map[K]) lookup(k K) *entry[K] {
	if m == nil {
		return nil
	}
	i, ok := m.index[k]
	if !ok {
		return nil
	}
	return m.entries[i]
}

// Remove deletes k and returns the value it held.
func (m *Map[K]) Remove(k K) (Value[K], bool) {
	if m == nil {
		return Value[K]{}, false
	}
	i, ok := m.index[k]
	if !ok {
		return Value[K]{}, false
	}
	e := m.entries[i]
	m.entries[i] = nil
	delete(m.index, k)
	m.dead++
	if m.dead > compactMin && m.dead*2 > len(m.entries) {
		m.compact()
	}
	return e.val, true
}

func (m *Map[K]) compact() {
	live := make([]*entry[K], 0, len(m.index))
	for _, e := range m.entries {
		if e == nil {
			continue
		}
		m.index[e.key] = len(live)
		live = append(live, e)
	}
	m.entries = live
	m.dead = 0
}

// ContainsKey reports whether k is present.
func (m *Map[K]) ContainsKey(k K) bool {
	return m.lookup(k) != nil
}

// Len returns the number of entries.
func (m *Map[K]) Len() int {
	if m == nil {
		return 0
	}
	return len(m.index)
}

// Clear removes all entries.
func (m *Map[K]) Clear() {
	if m == nil {
		return
	}
	clear(m.index)
	clear(m.entries)
	m.entries = m.entries[:0]
	m.dead = 0
}

// Keys returns a sequence over the keys.
func (m *Map[K]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		for _, e := range m.live() {
			if e != nil && !yield(e.key) {
				return
			}
		}
	}
}

// Values returns a sequence over copies of the values.
func (m *Map[K]) Values() iter.Seq[Value[K]] {
	return func(yield func(Value[K]) bool) {
		for _, e := range m.live() {
			if e != nil && !yield(e.val) {
				return
			}
		}
	}
}

// ValuesMut returns a sequence of pointers to the stored values. Writes
// through them are visible to later reads.
func (m *Map[K]) ValuesMut() iter.Seq[*Value[K]] {
	return func(yield func(*Value[K]) bool) {
		for _, e := range m.live() {
			if e != nil && !yield(&e.val) {
				return
			}
		}
	}
}

// All returns a sequence over the key/value pairs.
func (m *Map[K]) All() iter.Seq2[K, Value[K]] {
	return func(yield func(K, Value[K]) bool) {
		for _, e := range m.live() {
			if e != nil && !yield(e.key, e.val) {
				return
			}
		}
	}
}

// AllMut returns a sequence over keys and pointers to their values.
func (m *Map[K]) AllMut() iter.Seq2[K, *Value[K]] {
	return func(yield func(K, *Value[K]) bool) {
		for _, e := range m.live() {
			if e != nil && !yield(e.key, &e.val) {
				return
			}
		}
	}
}

// Drain returns a sequence that hands over every pair exactly once. The map
// is emptied as soon as the sequence starts; pairs not consumed before the
// loop stops are dropped.
func (m *Map[K]) Drain() iter.Seq2[K, Value[K]] {
	return func(yield func(K, Value[K]) bool) {
		entries := m.live()
		if m != nil {
			m.index = nil
			m.entries = nil
			m.dead = 0
		}
		for _, e := range entries {
			if e != nil && !yield(e.key, e.val) {
				return
			}
		}
	}
}

func (m *Map[K]) live() []*entry[K] {
	if m == nil {
		return nil
	}
	return m.entries
}

// Clone returns a deep copy of m.
func (m *Map[K]) Clone() *Map[K] {
	out := &Map[K]{index: make(map[K]int, m.Len())}
	for k, v := range m.All() {
		out.push(k, v.Clone())
	}
	return out
}

// Equal reports whether m and o hold the same keys with equal values,
// regardless of iteration order.
func (m *Map[K]) Equal(o *Map[K]) bool {
	if m.Len() != o.Len() {
		return false
	}
	for k, v := range m.All() {
		ov, ok := o.Get(k)
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}

// Entry is a handle on the slot for one key, resolved once when the handle
// is created. It must not be used after the map is otherwise modified.
type Entry[K comparable] struct {
	m   *Map[K]
	key K
	e   *entry[K]
}

// Entry returns the slot handle for k, whether or not k is present.
func (m *Map[K]) Entry(k K) *Entry[K] {
	return &Entry[K]{m: m, key: k, e: m.lookup(k)}
}

// Key returns the key the handle refers to.
func (en *Entry[K]) Key() K { return en.key }

// Occupied reports whether the key holds a value.
func (en *Entry[K]) Occupied() bool { return en.e != nil }

// Get returns the current value, if any.
func (en *Entry[K]) Get() (Value[K], bool) {
	if en.e == nil {
		return Value[K]{}, false
	}
	return en.e.val, true
}

// OrInsert stores v if the slot is vacant and returns a pointer to the
// value now held.
func (en *Entry[K]) OrInsert(v Value[K]) *Value[K] {
	if en.e == nil {
		en.e = en.m.push(en.key, v)
	}
	return &en.e.val
}

// OrInsertWith is like OrInsert but only calls fn when the slot is vacant.
func (en *Entry[K]) OrInsertWith(fn func() Value[K]) *Value[K] {
	if en.e == nil {
		en.e = en.m.push(en.key, fn())
	}
	return &en.e.val
}

// AndModify calls fn on the held value if the slot is occupied.
func (en *Entry[K]) AndModify(fn func(*Value[K])) *Entry[K] {
	if en.e != nil {
		fn(&en.e.val)
	}
	return en
}

// Insert stores v in the slot and returns the value it replaced.
func (en *Entry[K]) Insert(v Value[K]) (Value[K], bool) {
	if en.e == nil {
		en.e = en.m.push(en.key, v)
		return Value[K]{}, false
	}
	old := en.e.val
	en.e.val = v
	return old, true
}

// Remove empties the slot and returns the value it held.
func (en *Entry[K]) Remove() (Value[K], bool) {
	if en.e == nil {
		return Value[K]{}, false
	}
	en.e = nil
	return en.m.Remove(en.key)
}
