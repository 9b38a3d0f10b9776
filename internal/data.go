package internal

import (
	"iter"
	"maps"
	"slices"
)

// DataCollection is an insertion-ordered key/value bag a controller fills
// for its view. Re-adding a key overwrites the value and keeps its
// original position.
type DataCollection struct {
	values map[string]any
	keys   []string
}

// NewDataCollection creates an empty collection.
func NewDataCollection() *DataCollection {
	return &DataCollection{values: make(map[string]any)}
}

// Add inserts or overwrites key.
func (d *DataCollection) Add(key string, value any) {
	if _, ok := d.values[key]; !ok {
		d.keys = append(d.keys, key)
	}
	d.values[key] = value
}

// Get returns the value stored under key.
func (d *DataCollection) Get(key string) (any, bool) {
	v, ok := d.values[key]
	return v, ok
}

// Has reports whether key was added.
func (d *DataCollection) Has(key string) bool {
	_, ok := d.values[key]
	return ok
}

// Len returns the number of keys.
func (d *DataCollection) Len() int {
	return len(d.keys)
}

// Keys returns the keys in insertion order.
func (d *DataCollection) Keys() []string {
	return slices.Clone(d.keys)
}

// All iterates over entries in insertion order.
func (d *DataCollection) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		for _, k := range d.keys {
			if !yield(k, d.values[k]) {
				return
			}
		}
	}
}

// Map returns a snapshot of the collection, used as template data.
func (d *DataCollection) Map() map[string]any {
	return maps.Clone(d.values)
}
