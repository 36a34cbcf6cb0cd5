package reactive

import "sync"

// arrayIterateKey is the magic key representing "any array iteration",
// distinct from iterateKey so a plain Object's whole-object reads and
// an Array's element-order reads invalidate independently.
const arrayIterateKey = "\x00array-iterate"

// lengthKey is tracked/triggered whenever the element count changes,
// per spec.md §4.7(d).
const lengthKey = "\x00length"

// Array is a reactive, ordered, index-addressable collection: the Go
// stand-in for "reactive([...])". Index reads track that index's Dep;
// reads that walk the whole array (the read-only methods below) track
// the array-iterate key; length-changing writes trigger "length" and
// the array-iterate key together, per spec.md §4.7(d).
type Array[T any] struct {
	proxyIdentity
	mu   sync.Mutex
	data []T
	deps *keyedDeps
}

// NewArray builds a reactive Array seeded with a copy of initial.
func NewArray[T any](initial []T) *Array[T] {
	data := make([]T, len(initial))
	copy(data, initial)
	return &Array[T]{data: data, deps: newKeyedDeps()}
}

// Len tracks the length Dep and returns the current element count.
func (a *Array[T]) Len() int {
	a.deps.track(lengthKey)
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.data)
}

// Get tracks index i's Dep and returns the element there.
func (a *Array[T]) Get(i int) T {
	a.deps.track(i)
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.data[i]
}

// Set writes index i, triggering that index's Dep (SET: the length
// does not change).
func (a *Array[T]) Set(i int, value T) {
	a.mu.Lock()
	old := a.data[i]
	if valueEqual(old, value) {
		a.mu.Unlock()
		return
	}
	a.data[i] = value
	a.mu.Unlock()
	a.deps.trigger(i)
}

// mutateLength runs fn with tracking globally paused and inside a
// batch, per spec.md §4.7's rule for length-altering methods: this
// keeps an internal re-read of "length" or an index from registering
// spurious self-dependencies on the very write it's part of, and
// collapses whatever triggers fn fires into one flush.
func (a *Array[T]) mutateLength(fn func()) {
	PauseTracking()
	defer ResumeTracking()
	_ = RunBatch(fn)
}

// Push appends values, triggering "length" and the array-iterate key
// once for the whole call.
func (a *Array[T]) Push(values ...T) int {
	var n int
	a.mutateLength(func() {
		a.mu.Lock()
		a.data = append(a.data, values...)
		n = len(a.data)
		a.mu.Unlock()
		a.deps.trigger(lengthKey)
		a.deps.trigger(arrayIterateKey)
	})
	return n
}

// Pop removes and returns the last element, or the zero value and
// false if the array is empty.
func (a *Array[T]) Pop() (T, bool) {
	var out T
	var ok bool
	a.mutateLength(func() {
		a.mu.Lock()
		if len(a.data) == 0 {
			a.mu.Unlock()
			return
		}
		last := len(a.data) - 1
		out = a.data[last]
		a.data = a.data[:last]
		ok = true
		a.mu.Unlock()
		a.deps.trigger(last)
		a.deps.trigger(lengthKey)
		a.deps.trigger(arrayIterateKey)
	})
	return out, ok
}

// Shift removes and returns the first element, or the zero value and
// false if the array is empty.
func (a *Array[T]) Shift() (T, bool) {
	var out T
	var ok bool
	a.mutateLength(func() {
		a.mu.Lock()
		if len(a.data) == 0 {
			a.mu.Unlock()
			return
		}
		out = a.data[0]
		a.data = append(a.data[:0], a.data[1:]...)
		ok = true
		a.mu.Unlock()
		a.deps.trigger(lengthKey)
		a.deps.trigger(arrayIterateKey)
	})
	return out, ok
}

// Unshift prepends values, triggering "length" and the array-iterate
// key once for the whole call.
func (a *Array[T]) Unshift(values ...T) int {
	var n int
	a.mutateLength(func() {
		a.mu.Lock()
		a.data = append(append(make([]T, 0, len(values)+len(a.data)), values...), a.data...)
		n = len(a.data)
		a.mu.Unlock()
		a.deps.trigger(lengthKey)
		a.deps.trigger(arrayIterateKey)
	})
	return n
}

// Splice removes deleteCount elements starting at start and inserts
// insert in their place, mirroring JS's Array.prototype.splice, and
// returns the removed elements.
func (a *Array[T]) Splice(start, deleteCount int, insert ...T) []T {
	var removed []T
	a.mutateLength(func() {
		a.mu.Lock()
		if start < 0 {
			start = 0
		}
		if start > len(a.data) {
			start = len(a.data)
		}
		end := start + deleteCount
		if end > len(a.data) {
			end = len(a.data)
		}
		removed = append([]T(nil), a.data[start:end]...)

		tail := append([]T(nil), a.data[end:]...)
		a.data = append(a.data[:start], insert...)
		a.data = append(a.data, tail...)
		a.mu.Unlock()

		a.deps.trigger(lengthKey)
		a.deps.trigger(arrayIterateKey)
	})
	return removed
}

// snapshot tracks the array-iterate key and returns a defensive copy
// of the current elements, the shared entry point for every read-only
// traversal method below (spec.md §4.7's array read-only method list).
func (a *Array[T]) snapshot() []T {
	a.deps.track(arrayIterateKey)
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]T, len(a.data))
	copy(out, a.data)
	return out
}

// ForEach walks a snapshot of the array, tracking the array-iterate
// key once.
func (a *Array[T]) ForEach(fn func(value T, index int)) {
	snap := a.snapshot()
	for i, v := range snap {
		fn(v, i)
	}
}

// Map walks a snapshot, applying fn to every element.
func (a *Array[T]) Map(fn func(value T, index int) T) []T {
	snap := a.snapshot()
	out := make([]T, len(snap))
	for i, v := range snap {
		out[i] = fn(v, i)
	}
	return out
}

// Filter walks a snapshot, keeping elements for which fn returns true.
func (a *Array[T]) Filter(fn func(value T, index int) bool) []T {
	snap := a.snapshot()
	out := make([]T, 0, len(snap))
	for i, v := range snap {
		if fn(v, i) {
			out = append(out, v)
		}
	}
	return out
}

// Find returns the first element for which fn returns true.
func (a *Array[T]) Find(fn func(value T, index int) bool) (T, bool) {
	snap := a.snapshot()
	for i, v := range snap {
		if fn(v, i) {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// FindIndex returns the index of the first element for which fn
// returns true, or -1.
func (a *Array[T]) FindIndex(fn func(value T, index int) bool) int {
	snap := a.snapshot()
	for i, v := range snap {
		if fn(v, i) {
			return i
		}
	}
	return -1
}

// Includes tracks the array-iterate key and reports whether target
// appears in the array, per spec.md §4.7's read-only contract
// (comparisons use reflect.DeepEqual since a reactive element may
// itself be a wrapper rather than the raw value a caller compares
// against, mirroring the spec's "retry with the raw form" fallback).
func (a *Array[T]) Includes(target T) bool {
	snap := a.snapshot()
	for _, v := range snap {
		if valueEqual(v, target) {
			return true
		}
	}
	return false
}

// IndexOf returns the first index at which target appears, or -1.
func (a *Array[T]) IndexOf(target T) int {
	snap := a.snapshot()
	for i, v := range snap {
		if valueEqual(v, target) {
			return i
		}
	}
	return -1
}

// Entries returns a snapshot as (index, value) pairs.
func (a *Array[T]) Entries() []struct {
	Index int
	Value T
} {
	snap := a.snapshot()
	out := make([]struct {
		Index int
		Value T
	}, len(snap))
	for i, v := range snap {
		out[i] = struct {
			Index int
			Value T
		}{i, v}
	}
	return out
}

// ToSlice returns a defensive copy of the current elements, tracking
// the array-iterate key like the other read-only methods.
func (a *Array[T]) ToSlice() []T {
	return a.snapshot()
}
