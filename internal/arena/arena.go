// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package arena implements a pool of values identified by
// stable integer handles.
package arena

import (
	"iter"

	"github.com/gviegas/stage/internal/bitvec"
)

// slot maps an identifier to an index in Map.data.
// It is -1 for unused identifiers.
type slot struct {
	data int
}

// entry is what a Map stores.
type entry[D any] struct {
	data D
	id   int
}

// Map stores data of type D with identifiers of type I.
// Identifiers remain valid until removed, regardless of
// how many other insertions and removals happen.
// The data itself is kept contiguous, so pointers
// returned by Get are only valid until the next call
// to Insert or Remove.
// The zero value is an empty Map.
type Map[I ~int, D any] struct {
	ids   []slot
	idMap bitvec.V[uint32]
	data  []entry[D]
}

// Insert inserts data into m.
// It returns an I value that identifies data in m.
func (m *Map[I, D]) Insert(data D) I {
	if m.idMap.Rem() == 0 {
		nplus := 1
		if n := len(m.ids); n > 0 {
			nplus = n / 32
		}
		m.idMap.Grow(nplus)
		for range nplus * 32 {
			m.ids = append(m.ids, slot{-1})
		}
	}
	idx, ok := m.idMap.Search()
	if !ok {
		// Should never happen.
		panic("unexpected failure from bitvec.V.Search")
	}
	m.idMap.Set(idx)
	m.ids[idx] = slot{len(m.data)}
	m.data = append(m.data, entry[D]{data, idx})
	return I(idx)
}

// Remove removes the data identified by id.
// It returns the removed data.
// id must be valid.
func (m *Map[I, D]) Remove(id I) D {
	d := m.ids[id].data
	data := m.data[d].data
	last := len(m.data) - 1
	if d < last {
		swap := m.data[last].id
		m.ids[swap].data = d
		m.data[d] = m.data[last]
	}
	m.ids[id].data = -1
	m.idMap.Unset(int(id))
	m.data[last] = entry[D]{}
	m.data = m.data[:last]
	return data
}

// Valid reports whether id identifies data in m.
func (m *Map[I, D]) Valid(id I) bool { return m.idMap.IsSet(int(id)) }

// Get returns a pointer to the data identified by id.
// id must be valid.
func (m *Map[I, D]) Get(id I) *D { return &m.data[m.ids[id].data].data }

// Len returns the number of elements in m.
func (m *Map[_, _]) Len() int { return len(m.data) }

// IDs appends the identifiers of every element in m to
// dst and returns the extended slice.
// The order is unspecified.
func (m *Map[I, _]) IDs(dst []I) []I {
	for i := range m.data {
		dst = append(dst, I(m.data[i].id))
	}
	return dst
}

// All returns an iterator over the elements of m.
// m must not be changed during iteration.
func (m *Map[I, D]) All() iter.Seq2[I, *D] {
	return func(yield func(I, *D) bool) {
		for i := range m.data {
			if !yield(I(m.data[i].id), &m.data[i].data) {
				return
			}
		}
	}
}
