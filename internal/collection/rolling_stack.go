// Package collection holds small generic containers.
package collection

// RollingStack is a fixed-capacity LIFO stack. Pushing onto a full stack
// discards the oldest entry.
type RollingStack[T any] struct {
	items    []T
	start    int
	size     int
	evicted  int
	capacity int
}

// NewRollingStack returns an empty stack holding at most capacity items.
// A non-positive capacity yields a stack that keeps nothing.
func NewRollingStack[T any](capacity int) *RollingStack[T] {
	if capacity < 0 {
		capacity = 0
	}
	return &RollingStack[T]{items: make([]T, capacity), capacity: capacity}
}

// Push adds v on top and reports whether an older entry was evicted.
func (s *RollingStack[T]) Push(v T) bool {
	if s.capacity == 0 {
		s.evicted++
		return true
	}
	if s.size == s.capacity {
		s.items[s.start] = v
		s.start = (s.start + 1) % s.capacity
		s.evicted++
		return true
	}
	s.items[(s.start+s.size)%s.capacity] = v
	s.size++
	return false
}

// Pop removes and returns the newest entry.
func (s *RollingStack[T]) Pop() (T, bool) {
	var zero T
	if s.size == 0 {
		return zero, false
	}
	idx := (s.start + s.size - 1) % s.capacity
	v := s.items[idx]
	s.items[idx] = zero
	s.size--
	return v, true
}

// Peek returns the newest entry without removing it.
func (s *RollingStack[T]) Peek() (T, bool) {
	var zero T
	if s.size == 0 {
		return zero, false
	}
	return s.items[(s.start+s.size-1)%s.capacity], true
}

// Len returns the number of stored entries.
func (s *RollingStack[T]) Len() int { return s.size }

// Cap returns the capacity.
func (s *RollingStack[T]) Cap() int { return s.capacity }

// Empty reports whether the stack has no entries.
func (s *RollingStack[T]) Empty() bool { return s.size == 0 }

// Evicted returns how many entries have been discarded since creation or Clear.
func (s *RollingStack[T]) Evicted() int { return s.evicted }

// Clear drops every entry and resets the eviction count.
func (s *RollingStack[T]) Clear() {
	var zero T
	for i := range s.items {
		s.items[i] = zero
	}
	s.start, s.size, s.evicted = 0, 0, 0
}
