// Package reactive implements the dependency-tracking engine that powers
// Arbor's State/Computed/Effect primitives: a bipartite graph of Deps
// (observable cells) and Subscribers (effects and computeds), linked by
// Link edges, with a batched scheduler that flushes notifications in
// subscription order.
package reactive

// debugLog is set by platform-specific code (see pkg/debug).
var debugLog func(args ...interface{})

// SetDebugLog sets the debug logging function used by the reactive graph.
func SetDebugLog(fn func(args ...interface{})) {
	debugLog = fn
}

// globalVersion bumps on every Trigger anywhere in the graph. Computed
// values snapshot it to bypass re-validation when nothing could have
// changed since their last read.
var globalVersion uint64

// Dep is the identity of a single observable cell. It owns the
// doubly-linked list of Links to its current subscribers and is
// versioned so that Links can detect staleness cheaply.
type Dep struct {
	version uint64

	subsHead *Link
	subsTail *Link
	subs     int

	// computed is set when this Dep is itself the output cell of a
	// Computed value, so track() can recognize (and skip) self-reads.
	computed selfReader

	// activeLink is a transient pointer used during a subscriber's run:
	// it names "the Link between this Dep and whichever Subscriber is
	// currently executing", letting track() decide in O(1) whether a
	// Link already exists without a per-Dep map of subscribers.
	activeLink *Link

	// owner, when set, is notified when this Dep's subscriber count
	// reaches zero, so a target->key->Dep map can drop the entry.
	owner depOwner
}

// selfReader is satisfied by *Computed; it lets Dep.track recognize a
// computed reading its own output cell and skip creating a self-edge.
type selfReader interface {
	isSubscriber(Subscriber) bool
}

// depOwner is implemented by whatever map keeps a Dep alive by key
// (object/collection observers); it is told when the Dep is unused.
type depOwner interface {
	releaseDep(dep *Dep)
}

// NewDep creates a fresh, unattached Dep.
func NewDep() *Dep {
	return &Dep{}
}

// Version returns the Dep's current version counter.
func (d *Dep) Version() uint64 { return d.version }

// SetOwner attaches a map-owner used for cleanup when subs hits zero.
func (d *Dep) SetOwner(owner depOwner) { d.owner = owner }

// Track records a read of this Dep by the currently active Subscriber,
// per spec.md §4.1. It is a no-op when there is no active subscriber,
// tracking is globally paused, or the active subscriber is the Computed
// that owns this exact Dep (a self-read).
func (d *Dep) Track() {
	sub := current
	if sub == nil || pausedDepth > 0 {
		return
	}
	if d.computed != nil && d.computed.isSubscriber(sub) {
		return
	}

	link := d.activeLink
	if link == nil || link.sub != sub {
		link = newLink(d, sub)
		appendDepLink(sub, link)
		appendSubLink(d, link)
		d.activeLink = link
		d.subs++
		return
	}

	// Link already represents (d, sub): refresh its version and make
	// sure it sits at the tail of sub's dep-list, preserving "deps
	// appear in the order they were first read".
	link.version = int64(d.version)
	if subDepsTail(sub) != link {
		unlinkDepLink(sub, link)
		appendDepLink(sub, link)
	}
}

// Trigger bumps the Dep's version (and the process-wide global
// version) and notifies every current subscriber, per spec.md §4.1.
// notify() runs inside its own batch, so outside any enclosing batch
// the queued effects are flushed before Trigger returns. It walks the
// subscribers in insertion order; the batch queue prepends and flush
// reverses it once, so effects run in subscription order.
func (d *Dep) Trigger() {
	d.version++
	globalVersion++
	StartBatch()
	d.notify()
	EndBatch()
}

// derivedDepHolder is implemented by *Computed[T] regardless of T; it
// lets notify() find a derived subscriber's own output Dep to recurse
// into without naming the generic instantiation.
type derivedDepHolder interface {
	derivedDep() *Dep
}

func (d *Dep) notify() {
	for link := d.subsHead; link != nil; link = link.nextSub {
		isComputed := link.sub.Notify()
		if isComputed {
			if dh, ok := link.sub.(derivedDepHolder); ok {
				dh.derivedDep().notify()
			}
		}
	}
}
