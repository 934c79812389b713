// Package transientmap implements a map whose entries live for a limited
// number of logical clock ticks.
//
// The structure keeps two maps in lock-step: a backing store (key → value)
// and an expiry index (key → creation tick). A tick counter stands in for
// wall time; it advances once per mutating or lookup operation. An entry is
// expired once its age in ticks exceeds the configured lifetime.
//
// Expiry is lazy. Nothing runs in the background: an expired entry is removed
// when a lookup or overwrite touches it, or when Prune sweeps the whole map.
// Between touches an expired entry may still be physically resident, but it
// is invisible to Get, Has, Len, and iteration.
//
// The map is not safe for concurrent use. Callers sharing it across
// goroutines must wrap it behind their own lock.
package transientmap

import "iter"

// Map is a key-value container with a fixed entry lifetime measured in
// clock ticks. The zero value is not usable; construct with New.
type Map[K comparable, V any] struct {
	store    map[K]V
	created  map[K]uint64
	lifetime uint64
	tick     uint64
}

// New returns an empty Map whose entries expire once their age in ticks
// exceeds lifetime. The clock starts at 0. A lifetime of 0 means an entry is
// expired by the very next tick after its insertion.
func New[K comparable, V any](lifetime uint64) *Map[K, V] {
	return &Map[K, V]{
		store:    make(map[K]V),
		created:  make(map[K]uint64),
		lifetime: lifetime,
	}
}

// expired reports whether an entry created at the given tick has outlived
// the lifetime at the current tick. The predicate is strict: an entry of age
// exactly lifetime is still live.
func (m *Map[K, V]) expired(created uint64) bool {
	return m.tick-created > m.lifetime
}

// dropIfExpired removes key from both maps if it is present and expired.
func (m *Map[K, V]) dropIfExpired(key K) {
	if created, ok := m.created[key]; ok && m.expired(created) {
		delete(m.store, key)
		delete(m.created, key)
	}
}

// Insert stores key → value, advancing the clock and resetting the entry's
// age if the key was already present. It returns the previous value for the
// key and true if one existed and had not yet expired; an expired prior
// entry is pruned first and reported as absent.
func (m *Map[K, V]) Insert(key K, value V) (V, bool) {
	m.tick++
	m.dropIfExpired(key)
	prev, ok := m.store[key]
	m.store[key] = value
	m.created[key] = m.tick
	return prev, ok
}

// Get advances the clock and returns the value for key if it is present and
// live. A key found expired is removed from both maps and reported as a
// miss. No other entry is touched.
func (m *Map[K, V]) Get(key K) (V, bool) {
	m.tick++
	var zero V
	created, ok := m.created[key]
	if !ok {
		return zero, false
	}
	if m.expired(created) {
		delete(m.store, key)
		delete(m.created, key)
		return zero, false
	}
	return m.store[key], true
}

// Has reports whether key is present and live, with the same lazy-expiry
// side effect as Get: an expired key is removed when found.
func (m *Map[K, V]) Has(key K) bool {
	m.tick++
	created, ok := m.created[key]
	if !ok {
		return false
	}
	if m.expired(created) {
		delete(m.store, key)
		delete(m.created, key)
		return false
	}
	return true
}

// Remove advances the clock and deletes key from both maps regardless of
// expiry state. It returns the value that was physically stored, even if it
// had already expired: the caller asked for removal, not a lookup, so the
// expiry filter does not apply.
func (m *Map[K, V]) Remove(key K) (V, bool) {
	m.tick++
	value, ok := m.store[key]
	if ok {
		delete(m.store, key)
		delete(m.created, key)
	}
	return value, ok
}

// Prune advances the clock, removes every expired entry from both maps, and
// returns the keys it removed. This is the only operation that sweeps the
// whole structure; everything else cleans at most the one key it touches.
func (m *Map[K, V]) Prune() []K {
	m.tick++
	var removed []K
	for key, created := range m.created {
		if m.expired(created) {
			removed = append(removed, key)
		}
	}
	for _, key := range removed {
		delete(m.store, key)
		delete(m.created, key)
	}
	return removed
}

// Len returns the number of live entries. It walks the expiry index and
// applies the expiry predicate without mutating anything: the clock does not
// advance and expired-but-resident entries are neither counted nor removed.
func (m *Map[K, V]) Len() int {
	n := 0
	for _, created := range m.created {
		if !m.expired(created) {
			n++
		}
	}
	return n
}

// IsEmpty reports whether the map holds no live entries.
func (m *Map[K, V]) IsEmpty() bool {
	return m.Len() == 0
}

// All returns an iterator over the live (key, value) pairs. Each call yields
// a fresh iteration. Iteration is read-only: expired entries are skipped but
// not pruned, and the clock does not advance. The map must not be mutated
// while ranging over the sequence.
func (m *Map[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for key, created := range m.created {
			if m.expired(created) {
				continue
			}
			if !yield(key, m.store[key]) {
				return
			}
		}
	}
}

// RemainingLifetime returns how many more ticks key may age before expiring,
// without advancing the clock or altering the entry. Missing and expired
// keys report absent. An entry of age exactly lifetime reports 0 but is
// still live for the current tick.
func (m *Map[K, V]) RemainingLifetime(key K) (uint64, bool) {
	created, ok := m.created[key]
	if !ok || m.expired(created) {
		return 0, false
	}
	return m.lifetime - (m.tick - created), true
}

// Advance moves the clock forward one tick without touching any entry.
// It lets a caller age the map between batches of work.
func (m *Map[K, V]) Advance() {
	m.tick++
}

// Clock returns the current tick. Read-only; the clock is owned by the map
// and only ever moves forward.
func (m *Map[K, V]) Clock() uint64 {
	return m.tick
}

// Lifetime returns the entry lifetime the map was constructed with.
func (m *Map[K, V]) Lifetime() uint64 {
	return m.lifetime
}

// Clear advances the clock and removes every entry, live or expired. The
// clock keeps its value; it is never rewound.
func (m *Map[K, V]) Clear() {
	m.tick++
	clear(m.store)
	clear(m.created)
}
