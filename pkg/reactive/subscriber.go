package reactive

// SubFlags is the bitfield of state any Subscriber (Effect or Computed)
// carries, per spec.md §3.
type SubFlags uint32

const (
	SubActive SubFlags = 1 << iota
	SubRunning
	SubTracking
	SubNotified
	SubDirty
	SubAllowRecurse
	SubPaused
	SubEvaluated
)

// Subscriber is the common contract of anything that tracks Deps and
// may be notified of a change: Effect and Computed. Notify reports
// whether the subscriber is a derived value, so Dep.notify knows to
// recurse into its own Dep.
type Subscriber interface {
	depsHead() *Link
	depsTail() *Link
	setDepsHead(*Link)
	setDepsTail(*Link)

	hasFlag(SubFlags) bool
	setFlag(SubFlags)
	clearFlag(SubFlags)

	batchNext() Subscriber
	setBatchNext(Subscriber)

	// Notify is called by Dep.trigger for every Link pointing at this
	// subscriber. It returns true for derived values (Computed).
	Notify() bool
}

// subscriberCore is embedded by Effect and Computed to provide the
// shared dep-list and batch-queue plumbing without duplicating it.
type subscriberCore struct {
	depsHeadPtr *Link
	depsTailPtr *Link
	flags       SubFlags
	next        Subscriber // intrusive link used by the batch queue
}

func (s *subscriberCore) depsHead() *Link         { return s.depsHeadPtr }
func (s *subscriberCore) depsTail() *Link         { return s.depsTailPtr }
func (s *subscriberCore) setDepsHead(l *Link)     { s.depsHeadPtr = l }
func (s *subscriberCore) setDepsTail(l *Link)     { s.depsTailPtr = l }
func (s *subscriberCore) hasFlag(f SubFlags) bool { return s.flags&f != 0 }
func (s *subscriberCore) setFlag(f SubFlags)      { s.flags |= f }
func (s *subscriberCore) clearFlag(f SubFlags)    { s.flags &^= f }
func (s *subscriberCore) batchNext() Subscriber   { return s.next }
func (s *subscriberCore) setBatchNext(n Subscriber) { s.next = n }

// current is the process-wide "currently running subscriber" pointer
// (spec.md §4.1, §5). Single-threaded by design; a multi-threaded host
// must partition this per reactive world.
var current Subscriber

// trackingEnabled mirrors the teacher's tracking toggle: Effect.run
// swaps it on and restores the previous value on exit, so nested runs
// compose correctly.
var trackingEnabled bool

// pausedDepth is a counter (not a bool) so nested PauseTracking calls
// — e.g. an array length-mutating method pausing tracking while it
// calls other tracked-read helpers — compose correctly.
var pausedDepth int

// PauseTracking globally suppresses Dep.Track, used by collection
// methods that must not create spurious dependency edges on
// themselves (spec.md §4.7).
func PauseTracking() { pausedDepth++ }

// ResumeTracking reverses one PauseTracking call.
func ResumeTracking() {
	if pausedDepth > 0 {
		pausedDepth--
	}
}

// CurrentSubscriber returns the subscriber presently tracking reads,
// or nil outside any effect/computed body.
func CurrentSubscriber() Subscriber { return current }

// setCurrentSubscriber swaps the active subscriber and reports the
// previous one, for save/restore around nested runs.
func setCurrentSubscriber(sub Subscriber) Subscriber {
	prev := current
	current = sub
	return prev
}

// prepareDeps runs the pre-run half of the §4.2 sweep: every Link in
// sub's dep-list is marked "not used this run" (version = -1) and the
// owning Dep's activeLink pointer is pushed to point at it, so Track
// can recognize "already have a link for this subscriber" in O(1).
func prepareDeps(sub Subscriber) {
	for link := sub.depsHead(); link != nil; link = link.nextDep {
		link.version = -1
		link.prevActiveLink = link.dep.activeLink
		link.dep.activeLink = link
	}
}

// cleanupDeps runs the post-run half of the §4.2 sweep: walking the
// dep-list tail to head, any Link still at -1 was not read this run
// and is removed; surviving Links restore their Dep's activeLink to
// the predecessor saved in prepareDeps.
func cleanupDeps(sub Subscriber) {
	link := sub.depsTail()
	for link != nil {
		prev := link.prevDep
		if link.version == -1 {
			removeLink(link)
		} else {
			link.dep.activeLink = link.prevActiveLink
			link.prevActiveLink = nil
		}
		link = prev
	}
}

// clearDeps removes every Link in sub's dep-list unconditionally, used
// by Effect.stop and Computed teardown.
func clearDeps(sub Subscriber) {
	link := sub.depsHead()
	for link != nil {
		next := link.nextDep
		removeLink(link)
		link = next
	}
	sub.setDepsHead(nil)
	sub.setDepsTail(nil)
}
