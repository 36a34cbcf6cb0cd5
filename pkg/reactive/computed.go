package reactive

import "reflect"

// Computed is a cached getter that is both a Subscriber (to the Deps
// its body reads) and the owner of a single Dep (to its own readers),
// per spec.md §4.4.
type Computed[T any] struct {
	subscriberCore

	dep     *Dep
	compute func() T

	value T

	// globalVersionSnapshot supports the fast bypass: if nothing in
	// the whole graph has changed since this snapshot, the value must
	// still be valid.
	globalVersionSnapshot uint64

	// OnTrigger is a dev-only introspection hook (spec.md §6). It is
	// stored only; Trigger does not call it.
	OnTrigger func(dep *Dep)
}

// NewComputed creates a memoized derivation of compute. The body does
// not run until the first Get.
func NewComputed[T any](compute func() T) *Computed[T] {
	cd := &Computed[T]{compute: compute}
	cd.dep = NewDep()
	cd.dep.computed = cd
	return cd
}

// isSubscriber implements selfReader: a Computed recognizes its own
// output Dep being read from inside its own body.
func (cd *Computed[T]) isSubscriber(sub Subscriber) bool {
	return Subscriber(cd) == sub
}

// derivedDep implements the ad-hoc interface Dep.notify uses to find a
// derived Subscriber's own output Dep without needing to name the
// generic type *Computed[T] directly.
func (cd *Computed[T]) derivedDep() *Dep { return cd.dep }

// refreshDep implements the ad-hoc interface Effect.isDirty uses to
// force a Computed dependency to re-validate before comparing versions.
func (cd *Computed[T]) refreshDep() { cd.refresh() }

// Dep returns the Computed's own output Dep, which readers subscribe
// to via Get.
func (cd *Computed[T]) Dep() *Dep { return cd.dep }

// Get tracks the Computed's own Dep as a source (so callers become its
// subscribers), refreshes the cached value if needed, and returns it.
func (cd *Computed[T]) Get() T {
	cd.dep.Track()
	cd.refresh()
	return cd.value
}

// refresh implements the four-step policy from spec.md §4.4.
func (cd *Computed[T]) refresh() {
	if cd.hasFlag(SubTracking) && !cd.hasFlag(SubDirty) {
		return
	}
	if cd.globalVersionSnapshot == globalVersion {
		return
	}
	if cd.hasFlag(SubEvaluated) && cd.depsHead() == nil && !cd.hasFlag(SubDirty) {
		return
	}
	cd.recompute()
}

func (cd *Computed[T]) recompute() {
	cd.setFlag(SubRunning)
	prepareDeps(cd)

	prevSub := setCurrentSubscriber(cd)
	prevTracking := trackingEnabled
	trackingEnabled = true

	var next T
	func() {
		defer func() {
			trackingEnabled = prevTracking
			setCurrentSubscriber(prevSub)
			cleanupDeps(cd)
			cd.clearFlag(SubRunning)
		}()
		next = cd.compute()
	}()

	cd.setFlag(SubTracking)
	cd.setFlag(SubEvaluated)
	cd.clearFlag(SubDirty)
	cd.globalVersionSnapshot = globalVersion

	if !valueEqual(cd.value, next) {
		cd.value = next
		cd.dep.version++
	}
}

// Notify implements Subscriber. Sets DIRTY; if not already notified
// (and this isn't a self-recursive read), enqueues onto the derived
// batch list. Always returns true so Dep.notify recurses into the
// Computed's own Dep (spec.md §4.4).
func (cd *Computed[T]) Notify() bool {
	cd.setFlag(SubDirty)
	if current == Subscriber(cd) {
		return true
	}
	enqueueComputed(cd)
	return true
}

// Stop detaches the Computed from all of its source Deps.
func (cd *Computed[T]) Stop() {
	clearDeps(cd)
	cd.clearFlag(SubTracking)
	cd.clearFlag(SubEvaluated)
}

// valueEqual implements the host-language "changed unless
// references/scalars compare equal" rule from spec.md §4.4. Go has no
// generic == for an unconstrained T, so this falls back to
// reflect.DeepEqual; scalars and small structs are the common case and
// this is only called once per recompute, not per read.
func valueEqual[T any](a, b T) bool {
	return reflect.DeepEqual(a, b)
}
