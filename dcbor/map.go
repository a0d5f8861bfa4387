package dcbor

import (
	"bytes"
	"fmt"
	"sort"
)

// Pair is one key/value entry of a Map, exposed in insertion order.
type Pair struct {
	Key   Value
	Value Value
}

// Map is a CBOR map (major type 5) that enforces the dCBOR invariant that no
// two keys are equivalent under Equivalent. Insertion order is preserved for
// Pairs(); Encode reorders entries by the bytewise-sorted encoded key, which
// is the order the deterministic CBOR profile requires on the wire.
type Map struct {
	pairs []Pair
}

// NewMap returns an empty Map.
func NewMap() *Map {
	return &Map{}
}

func (*Map) Kind() Kind { return KindMap }
func (*Map) cborValue() {}

// Len returns the number of pairs in the map.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.pairs)
}

// Pairs returns the map's entries in insertion order. The returned slice
// must not be mutated.
func (m *Map) Pairs() []Pair {
	if m == nil {
		return nil
	}
	return m.pairs
}

// IndexOfEquivalentKey returns the index of the pair whose key is
// Equivalent to key, or -1 if no such pair exists.
func (m *Map) IndexOfEquivalentKey(key Value) int {
	if m == nil {
		return -1
	}
	for i, p := range m.pairs {
		if Equivalent(p.Key, key) {
			return i
		}
	}
	return -1
}

// ContainsKey reports whether an equivalent key is already present.
func (m *Map) ContainsKey(key Value) bool {
	return m.IndexOfEquivalentKey(key) >= 0
}

// InsertUnique appends (key, value) and reports the index of a pre-existing
// equivalent key without modifying the map, letting the caller decide how to
// report the collision (the parser attaches a source span; the composer uses
// InsertLastWriterWins instead). ok is false when the key was already present.
func (m *Map) InsertUnique(key, value Value) (ok bool, existingIndex int) {
	if idx := m.IndexOfEquivalentKey(key); idx >= 0 {
		return false, idx
	}
	m.pairs = append(m.pairs, Pair{Key: key, Value: value})
	return true, -1
}

// InsertLastWriterWins appends (key, value), replacing the value of an
// existing equivalent key in place rather than appending a duplicate. This
// is the composer's relaxed policy (spec §4.3); the parser never calls it.
func (m *Map) InsertLastWriterWins(key, value Value) {
	if idx := m.IndexOfEquivalentKey(key); idx >= 0 {
		m.pairs[idx].Value = value
		return
	}
	m.pairs = append(m.pairs, Pair{Key: key, Value: value})
}

// Encode writes the map in deterministic CBOR order: entries sorted by the
// bytewise order of their encoded key, per RFC 8949's core deterministic
// encoding requirements.
func (m *Map) Encode() ([]byte, error) {
	type encodedPair struct {
		key   []byte
		value []byte
	}
	encoded := make([]encodedPair, m.Len())
	for i, p := range m.pairs {
		k, err := p.Key.Encode()
		if err != nil {
			return nil, fmt.Errorf("encode map key %d: %w", i, err)
		}
		v, err := p.Value.Encode()
		if err != nil {
			return nil, fmt.Errorf("encode map value %d: %w", i, err)
		}
		encoded[i] = encodedPair{key: k, value: v}
	}
	sort.Slice(encoded, func(i, j int) bool {
		return bytes.Compare(encoded[i].key, encoded[j].key) < 0
	})

	var buf bytes.Buffer
	buf.Write(encodeHead(5, uint64(len(encoded))))
	for _, p := range encoded {
		buf.Write(p.key)
		buf.Write(p.value)
	}
	return buf.Bytes(), nil
}
