package reactive

import "fmt"

// batchDepth > 0 defers Dep.Trigger's side effects; at depth 0 the two
// pending lists are flushed (spec.md §4.5).
var batchDepth int

// pendingEffects / pendingComputeds are intrusive singly-linked lists
// (via Subscriber.batchNext) built by prepending in Notify, so that
// walking them once more at flush time restores insertion order.
var pendingEffects Subscriber
var pendingComputeds Subscriber

// enqueueEffect prepends eff onto the effect batch list if it isn't
// already queued.
func enqueueEffect(eff Subscriber) {
	if eff.hasFlag(SubNotified) {
		return
	}
	eff.setFlag(SubNotified)
	eff.setBatchNext(pendingEffects)
	pendingEffects = eff
}

// enqueueComputed prepends cd onto the derived-value batch list if it
// isn't already queued.
func enqueueComputed(cd Subscriber) {
	if cd.hasFlag(SubNotified) {
		return
	}
	cd.setFlag(SubNotified)
	cd.setBatchNext(pendingComputeds)
	pendingComputeds = cd
}

// StartBatch defers trigger side effects until the matching EndBatch
// brings the depth back to zero.
func StartBatch() {
	batchDepth++
}

// EndBatch decrements the batch depth and, if it reaches zero, flushes
// the pending effect and derived-value queues. Nested triggers raised
// while flushing are drained within the same call. At most one error
// (the first) survives the flush; it is re-raised as a panic so that
// RunBatch/Batch can convert it back into a returned error.
func EndBatch() {
	batchDepth--
	if batchDepth > 0 {
		return
	}
	if batchDepth < 0 {
		batchDepth = 0
	}
	flush()
}

func flush() {
	var firstErr error
	for pendingComputeds != nil || pendingEffects != nil {
		computeds := pendingComputeds
		pendingComputeds = nil
		effects := pendingEffects
		pendingEffects = nil

		for s := reverseSubscribers(computeds); s != nil; {
			next := s.batchNext()
			s.setBatchNext(nil)
			s.clearFlag(SubNotified)
			s = next
		}

		for s := reverseSubscribers(effects); s != nil; {
			next := s.batchNext()
			s.setBatchNext(nil)
			s.clearFlag(SubNotified)
			if eff, ok := s.(*Effect); ok && eff.hasFlag(SubActive) {
				if err := eff.triggerCaught(); err != nil && firstErr == nil {
					firstErr = err
				}
			}
			s = next
		}
	}
	if firstErr != nil {
		panic(firstErr)
	}
}

// reverseSubscribers reverses an intrusive batchNext-linked list.
func reverseSubscribers(head Subscriber) Subscriber {
	var prev Subscriber
	for head != nil {
		next := head.batchNext()
		head.setBatchNext(prev)
		prev = head
		head = next
	}
	return prev
}

// RunBatch executes fn with triggers deferred until fn returns, then
// flushes once. Panics raised by a deferred effect during the flush
// are converted into a returned error instead of propagating past
// RunBatch, matching the "at most one error survives a batch" rule.
// EndBatch always runs, even if fn itself panics, so the graph's
// finalization (restoring queues, clearing NOTIFIED) happens on every
// exit path; a panic from fn takes priority over a flush error.
func RunBatch(fn func()) (err error) {
	StartBatch()

	var fnPanic interface{}
	func() {
		defer func() { fnPanic = recover() }()
		fn()
	}()

	func() {
		defer func() {
			if r := recover(); r != nil {
				if e, ok := r.(error); ok {
					err = e
				} else {
					err = fmt.Errorf("reactive: batch panic: %v", r)
				}
			}
		}()
		EndBatch()
	}()

	if fnPanic != nil {
		panic(fnPanic)
	}
	return err
}
