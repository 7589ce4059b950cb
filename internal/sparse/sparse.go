// Package sparse provides a sparse set over bytecode offsets.
//
// The VM uses it to deduplicate threads: an offset is a member while some
// live thread rests at that instruction, giving O(1) insert, remove, and
// membership checks without clearing between input positions.
package sparse

// Set is a set of uint32 values backed by the sparse/dense array pair. The
// universe (here, the program length) must be known up front.
type Set struct {
	sparse []uint32
	dense  []uint32
	size   uint32
}

// NewSet creates a set able to hold values in [0, capacity).
func NewSet(capacity uint32) *Set {
	return &Set{
		sparse: make([]uint32, capacity),
		dense:  make([]uint32, 0, capacity),
	}
}

// Insert adds value to the set. Inserting a present value is a no-op.
func (s *Set) Insert(value uint32) {
	if s.Contains(value) {
		return
	}
	s.dense = append(s.dense, value)
	s.sparse[value] = s.size
	s.size++
}

// Contains reports whether value is in the set.
func (s *Set) Contains(value uint32) bool {
	if value >= uint32(len(s.sparse)) {
		return false
	}
	idx := s.sparse[value]
	return idx < s.size && s.dense[idx] == value
}

// Remove removes value from the set. Removing an absent value is a no-op.
func (s *Set) Remove(value uint32) {
	if !s.Contains(value) {
		return
	}
	idx := s.sparse[value]
	last := s.dense[s.size-1]
	s.dense[idx] = last
	s.sparse[last] = idx
	s.size--
	s.dense = s.dense[:s.size]
}

// Clear empties the set in O(1).
func (s *Set) Clear() {
	s.size = 0
	s.dense = s.dense[:0]
}

// Len returns the number of members.
func (s *Set) Len() int {
	return int(s.size)
}
