// Package cache defines resolution caches: ordered key to entry tables,
// their text codecs and the Store contract implemented by persistent
// backends in internal/iocache.
//
// This package has no I/O dependencies.
package cache

import (
	"context"
	"iter"
)

// Store persists a cache table.
type Store[K comparable, V any] interface {
	// Load reads the persisted table. A missing location gives an empty
	// table, not an error.
	Load(ctx context.Context) (*Table[K, V], error)

	// Save replaces persisted state with the full table.
	Save(ctx context.Context, tbl *Table[K, V]) error

	// Close releases resources held by the store.
	Close() error
}

// Entry is a cached resolution result.
type Entry[V any] struct {
	Value  V
	Status Status
}

// Resolved creates an entry for a successful lookup.
func Resolved[V any](v V) Entry[V] {
	return Entry[V]{Value: v, Status: StatusResolved}
}

// NotFound creates an entry for a lookup that the service answered with
// "no such record".
func NotFound[V any]() Entry[V] {
	return Entry[V]{Status: StatusNotFound}
}

// Failed creates an entry for a lookup that failed with a transport or
// service error.
func Failed[V any]() Entry[V] {
	return Entry[V]{Status: StatusError}
}

// Get returns the value and true for resolved entries.
func (e Entry[V]) Get() (V, bool) {
	if e.Status != StatusResolved {
		var zero V
		return zero, false
	}
	return e.Value, true
}

// Table is an insertion-ordered mapping of keys to entries.
// It is not safe for concurrent use.
type Table[K comparable, V any] struct {
	keys []K
	data map[K]Entry[V]
}

// NewTable creates an empty table.
func NewTable[K comparable, V any]() *Table[K, V] {
	return &Table[K, V]{data: make(map[K]Entry[V])}
}

// Len returns the number of keys.
func (t *Table[K, V]) Len() int {
	return len(t.keys)
}

// Has reports whether the key is in the table, whatever its status.
func (t *Table[K, V]) Has(k K) bool {
	_, ok := t.data[k]
	return ok
}

// Entry returns the entry for a key.
func (t *Table[K, V]) Entry(k K) (Entry[V], bool) {
	res, ok := t.data[k]
	return res, ok
}

// Get returns a resolved value for a key.
func (t *Table[K, V]) Get(k K) (V, bool) {
	e, ok := t.data[k]
	if !ok {
		var zero V
		return zero, false
	}
	return e.Get()
}

// Set adds or replaces an entry. Replaced keys keep their position.
func (t *Table[K, V]) Set(k K, e Entry[V]) {
	if _, ok := t.data[k]; !ok {
		t.keys = append(t.keys, k)
	}
	t.data[k] = e
}

// Keys returns keys in insertion order.
func (t *Table[K, V]) Keys() []K {
	res := make([]K, len(t.keys))
	copy(res, t.keys)
	return res
}

// All iterates over keys and entries in insertion order.
func (t *Table[K, V]) All() iter.Seq2[K, Entry[V]] {
	return func(yield func(K, Entry[V]) bool) {
		for _, k := range t.keys {
			if !yield(k, t.data[k]) {
				return
			}
		}
	}
}

// Missing returns requested keys that need a lookup, without duplicates
// and in the order of the request. A key needs a lookup when it is absent
// from the table. With retryErrors, keys stored with StatusError need one
// as well.
func (t *Table[K, V]) Missing(keys []K, retryErrors bool) []K {
	seen := make(map[K]struct{}, len(keys))
	var res []K
	for _, k := range keys {
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}

		e, ok := t.data[k]
		if !ok || (retryErrors && e.Status == StatusError) {
			res = append(res, k)
		}
	}
	return res
}

// Restrict returns a new table with requested keys only. Keys keep the
// order of the original table; keys absent from the table are skipped.
func (t *Table[K, V]) Restrict(keys []K) *Table[K, V] {
	want := make(map[K]struct{}, len(keys))
	for _, k := range keys {
		want[k] = struct{}{}
	}

	res := NewTable[K, V]()
	for _, k := range t.keys {
		if _, ok := want[k]; ok {
			res.Set(k, t.data[k])
		}
	}
	return res
}

// Counts returns the number of entries per status.
func (t *Table[K, V]) Counts() map[Status]int {
	res := make(map[Status]int)
	for _, e := range t.data {
		res[e.Status]++
	}
	return res
}
