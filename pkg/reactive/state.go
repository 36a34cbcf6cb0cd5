package reactive

import "reflect"

// State is a reactive leaf cell: a single value plus the Dep that
// tracks reads of it. It is the concrete "ref" primitive concrete
// Effects and Computeds read from (spec.md's Dep is the bookkeeping;
// State is what application code actually holds).
type State[T any] struct {
	value T
	dep   *Dep
}

// NewState creates a reactive cell seeded with initial.
func NewState[T any](initial T) *State[T] {
	return &State[T]{value: initial, dep: NewDep()}
}

// Get tracks the current subscriber against this cell's Dep and
// returns the value.
func (s *State[T]) Get() T {
	s.dep.Track()
	return s.value
}

// Peek returns the value without tracking a dependency, for reads
// that must not subscribe the caller (mirrors "untrack" in the
// original system).
func (s *State[T]) Peek() T {
	return s.value
}

// Set assigns a new value and triggers subscribers if it differs from
// the previous one under reflect.DeepEqual (matching Computed's
// change-detection rule in spec.md §4.4, applied symmetrically to
// leaf writes).
func (s *State[T]) Set(value T) {
	if reflect.DeepEqual(s.value, value) {
		return
	}
	s.value = value
	s.dep.Trigger()
}

// Update atomically reads, transforms, and writes the value back.
func (s *State[T]) Update(fn func(T) T) {
	s.Set(fn(s.value))
}

// Dep exposes the backing Dep, for code that needs to Track/Trigger it
// directly (e.g. an observer proxy wrapping a field in a struct).
func (s *State[T]) Dep() *Dep { return s.dep }

// Track subscribes the current Subscriber to this cell without
// reading its value, used by Watch's deep-traversal walk.
func (s *State[T]) Track() { s.dep.Track() }
