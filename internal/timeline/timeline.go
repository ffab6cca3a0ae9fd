// Package timeline provides a generic append/branch/prune history with a
// movable head index. The game package keeps three of these in lockstep:
// board states, game conditions and half-move records.
package timeline

import "errors"

// ErrOutOfRange indicates a head index outside [-1, Len()-1].
var ErrOutOfRange = errors.New("timeline: head index out of range")

// Timeline is an ordered sequence of T plus a head index. Head -1 means the
// timeline is positioned before its first element (or is empty). Moving the
// head never mutates stored elements; that is what makes history navigation
// an O(1) operation.
type Timeline[T any] struct {
	items []T
	head  int
}

// New returns an empty timeline with head -1.
func New[T any]() *Timeline[T] {
	return &Timeline[T]{head: -1}
}

// Len returns the number of stored elements.
func (t *Timeline[T]) Len() int {
	return len(t.items)
}

// Head returns the current head index.
func (t *Timeline[T]) Head() int {
	return t.head
}

// AddNext appends item and advances head to it. If the head is not at the
// last index the entire future beyond it is discarded first; branches are
// never retained.
func (t *Timeline[T]) AddNext(item T) {
	if t.head < len(t.items)-1 {
		t.items = t.items[:t.head+1]
	}
	t.items = append(t.items, item)
	t.head = len(t.items) - 1
}

// SetHead moves the head to index i. Valid range is [-1, Len()-1].
func (t *Timeline[T]) SetHead(i int) error {
	if i < -1 || i > len(t.items)-1 {
		return ErrOutOfRange
	}
	t.head = i
	return nil
}

// Current returns the element at the head. ok is false when the head is -1.
func (t *Timeline[T]) Current() (T, bool) {
	if t.head < 0 {
		var zero T
		return zero, false
	}
	return t.items[t.head], true
}

// At returns the element at index i without moving the head.
func (t *Timeline[T]) At(i int) (T, bool) {
	if i < 0 || i >= len(t.items) {
		var zero T
		return zero, false
	}
	return t.items[i], true
}

// PopFuture removes and returns every element after the head, oldest first.
func (t *Timeline[T]) PopFuture() []T {
	if t.head >= len(t.items)-1 {
		return nil
	}
	future := make([]T, len(t.items)-t.head-1)
	copy(future, t.items[t.head+1:])
	t.items = t.items[:t.head+1]
	return future
}

// Clear empties the timeline and resets the head to -1.
func (t *Timeline[T]) Clear() {
	t.items = nil
	t.head = -1
}
