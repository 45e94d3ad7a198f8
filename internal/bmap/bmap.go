// Package bmap implements a small, append-only map keyed by []byte or string.
package bmap

import (
	"fmt"
	"unsafe"
)

// BMap implements a generic hashmap with []byte/string key type.
// It is intended to store a small fixed set of keys and it has some limitations:
// keys cannot be deleted.
// Added keys are copied into an internal byte slice for safety.
// Implementation is intended to be as simple (and bug-free) as possible.
// Uses map with string keys internally.
type BMap[T any] struct {
	keys []byte
	smap map[string]T
	max  int
}

// New creates a bytes map. size defines the maximum number of stored keys
// (not counting the empty key); Set panics past that limit, since it signals
// a generator/table mismatch rather than a recoverable runtime condition.
func New[T any](size int) *BMap[T] {
	return &BMap[T]{
		smap: make(map[string]T, size),
		max:  size,
	}
}

// Get returns the stored value by key and a flag telling whether this key is stored in the map.
// Returns the zero value if the key is not present.
func (m *BMap[T]) Get(key []byte) (T, bool) {
	skey := ""
	if len(key) != 0 {
		skey = unsafe.String(&key[0], len(key))
	}
	result, has := m.smap[skey]
	return result, has
}

// GetString is Get for string keys, avoiding a []byte(string) copy.
func (m *BMap[T]) GetString(key string) (T, bool) {
	result, has := m.smap[key]
	return result, has
}

// Set adds or rewrites the value for the given key.
func (m *BMap[T]) Set(key []byte, value T) {
	skey := ""
	_, has := m.Get(key)
	if !has && len(key) != 0 {
		if len(m.smap) >= m.max {
			panic(fmt.Sprintf("bmap: capacity %d exceeded", m.max))
		}
		ofs := len(m.keys)
		m.keys = append(m.keys, key...)
		key = m.keys[ofs : ofs+len(key)]
	}

	if len(key) != 0 {
		skey = unsafe.String(&key[0], len(key))
	}
	m.smap[skey] = value
}

// SetString is Set for string keys.
func (m *BMap[T]) SetString(key string, value T) {
	m.Set([]byte(key), value)
}
