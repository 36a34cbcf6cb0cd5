package reactive

import "reflect"

// unboundedDepth stands in for "deep: true" (traverse to any depth),
// as opposed to a caller-supplied positive integer bound.
const unboundedDepth = 1<<30 - 1

// Trackable is implemented by any reactive cell whose mere presence
// inside a traversed value should subscribe the current Subscriber,
// without needing its value read (State[T].Track has this shape).
type Trackable interface {
	Track()
}

// Skip is a marker type: embedding it in a struct (or returning it in
// place of a value) tells deep traversal to stop descending, mirroring
// spec.md §4.7's "skip" sentinel on observed targets.
type Skip struct{}

func (Skip) arborSkip() {}

type skipMarker interface{ arborSkip() }

// WatchOptions configures Watch, per spec.md §4.8 / §6.
type WatchOptions struct {
	// Immediate fires the callback once at registration, with the
	// zero value of T standing in for "no previous value".
	Immediate bool

	// Deep: 0 means no traversal beyond dereferencing the source
	// itself; a positive N bounds traversal to N levels; Unbounded()
	// requests unlimited depth (spec's boolean true).
	Deep int

	// Once stops the watcher after its first delivered callback.
	Once bool

	// Scheduler, if set, replaces the default "run inline" delivery;
	// job is the closure that re-evaluates the source and may invoke
	// the callback, isFirst is true for the first job handed to the
	// Scheduler (the Immediate delivery does not go through it).
	Scheduler func(job func(), isFirst bool)

	// OnTrack / OnTrigger are dev-only introspection hooks (spec.md §6).
	// Watch does not pass them to its Effect; they are never called.
	OnTrack   func(link *Link)
	OnTrigger func(dep *Dep)
}

// Unbounded returns the Deep value meaning "traverse without a depth
// limit" (spec.md's `deep: true`).
func Unbounded() int { return unboundedDepth }

// WatchHandle is returned by Watch; Stop detaches it from its owning
// Scope in O(1) via the Scope's child-removal trick (it keeps its own
// single-effect Scope for exactly this purpose).
type WatchHandle struct {
	scope *Scope
	eff   *Effect
}

// Pause suspends delivery of the watcher's callback.
func (h *WatchHandle) Pause() { h.eff.Pause() }

// Resume resumes delivery, replaying at most one deferred trigger.
func (h *WatchHandle) Resume() { h.eff.Resume() }

// Stop detaches the watcher permanently.
func (h *WatchHandle) Stop() { h.scope.Stop() }

// currentWatchCleanup is a per-goroutine-free slot: Watch callbacks run
// synchronously and single-threaded (spec.md §5), so a single package
// var suffices to let the running callback register its own cleanup.
var currentWatchCleanup *func()

// OnWatchCleanup registers fn to run before the next callback
// invocation, or at Stop — must be called synchronously from inside a
// Watch callback.
func OnWatchCleanup(fn func()) {
	if currentWatchCleanup != nil {
		*currentWatchCleanup = fn
	}
}

// Watch builds a getter around source (deref'd, and deep-traversed per
// opts.Deep), wraps it in an Effect, and invokes cb whenever the
// computed "current value" changes, per spec.md §4.8.
func Watch[T any](source func() T, cb func(newVal, oldVal T), opts WatchOptions) *WatchHandle {
	scope := NewScope(false)
	handle := &WatchHandle{scope: scope}

	var oldVal, latest T
	var pendingCleanup func()

	runCleanup := func() {
		if pendingCleanup != nil {
			fn := pendingCleanup
			pendingCleanup = nil
			fn()
		}
	}
	scope.OnCleanup(runCleanup)

	getter := func() T {
		val := source()
		if opts.Deep != 0 {
			visited := make(map[uintptr]struct{})
			traverse(reflect.ValueOf(val), opts.Deep, visited)
		}
		return val
	}

	deliver := func(newVal, old T) {
		prevCleanupSlot := currentWatchCleanup
		currentWatchCleanup = &pendingCleanup
		runCleanup()
		cb(newVal, old)
		currentWatchCleanup = prevCleanupSlot
		if opts.Once {
			handle.Stop()
		}
	}

	var eff *Effect
	// reeval re-runs the effect (refreshing its tracked dep-list
	// through the normal prepare/cleanup sweep) and delivers cb if the
	// value changed, per the job closure described in spec.md §4.8.
	reeval := func() {
		eff.Run()
		newVal := latest
		if reflect.DeepEqual(oldVal, newVal) {
			return
		}
		old := oldVal
		oldVal = newVal
		deliver(newVal, old)
	}

	isFirstSchedule := true
	var scheduled func()
	if opts.Scheduler != nil {
		scheduled = func() {
			opts.Scheduler(reeval, isFirstSchedule)
			isFirstSchedule = false
		}
	} else {
		scheduled = reeval
	}

	scope.Run(func() {
		eff = NewEffect(func() {
			latest = getter()
		}, scheduled)
		scope.Own(eff)
	})

	oldVal = latest
	if opts.Immediate {
		var zero T
		deliver(latest, zero)
	}

	return handle
}

// traverse walks v to the bound depth (unboundedDepth for "no limit"),
// subscribing the current Subscriber to any Trackable it finds and
// recursing into structs/slices/maps/pointers, with a visited set
// breaking pointer cycles and a skipMarker sentinel pruning a subtree.
func traverse(v reflect.Value, depth int, visited map[uintptr]struct{}) {
	if depth <= 0 || !v.IsValid() {
		return
	}

	if v.CanInterface() {
		if tr, ok := v.Interface().(Trackable); ok {
			tr.Track()
		}
		if _, ok := v.Interface().(skipMarker); ok {
			return
		}
	}

	switch v.Kind() {
	case reflect.Ptr:
		if v.IsNil() {
			return
		}
		ptr := v.Pointer()
		if _, seen := visited[ptr]; seen {
			return
		}
		visited[ptr] = struct{}{}
		traverse(v.Elem(), depth, visited)
	case reflect.Interface:
		if v.IsNil() {
			return
		}
		traverse(v.Elem(), depth, visited)
	case reflect.Struct:
		for i := 0; i < v.NumField(); i++ {
			f := v.Field(i)
			if !f.CanInterface() {
				continue
			}
			traverse(f, depth-1, visited)
		}
	case reflect.Slice, reflect.Array:
		for i := 0; i < v.Len(); i++ {
			traverse(v.Index(i), depth-1, visited)
		}
	case reflect.Map:
		iter := v.MapRange()
		for iter.Next() {
			traverse(iter.Value(), depth-1, visited)
		}
	}
}
