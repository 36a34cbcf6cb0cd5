package reactive

// Link is one edge between a specific Dep and a specific Subscriber.
// It is a node in two doubly-linked lists at once: the Subscriber's
// dep-list (prevDep/nextDep) and the Dep's subscriber-list
// (prevSub/nextSub). At most one Link exists between a given
// (Dep, Subscriber) pair at any time (spec.md §3).
type Link struct {
	dep *Dep
	sub Subscriber

	// version is the Dep's version as of this Link's last use this
	// run, or -1 to mark "not used this run" during the prepare/cleanup
	// sweep around a Subscriber's execution (spec.md §4.2).
	version int64

	prevSub, nextSub *Link // position within dep.subsHead/subsTail
	prevDep, nextDep *Link // position within sub's dep-list

	// prevActiveLink saves the Dep's active-link pointer from before
	// this Link became active, so nested subscriber runs restore
	// cleanly (spec.md §4.2).
	prevActiveLink *Link
}

func newLink(dep *Dep, sub Subscriber) *Link {
	return &Link{dep: dep, sub: sub, version: int64(dep.version)}
}

// Dep returns the Dep side of this edge.
func (l *Link) Dep() *Dep { return l.dep }

// Sub returns the Subscriber side of this edge.
func (l *Link) Sub() Subscriber { return l.sub }

func subDepsTail(sub Subscriber) *Link { return sub.depsTail() }

// appendDepLink splices link onto the tail of sub's dep-list.
func appendDepLink(sub Subscriber, link *Link) {
	tail := sub.depsTail()
	link.prevDep = tail
	link.nextDep = nil
	if tail != nil {
		tail.nextDep = link
	} else {
		sub.setDepsHead(link)
	}
	sub.setDepsTail(link)
}

// unlinkDepLink removes link from sub's dep-list without touching its
// position in the Dep's subscriber-list.
func unlinkDepLink(sub Subscriber, link *Link) {
	if link.prevDep != nil {
		link.prevDep.nextDep = link.nextDep
	} else {
		sub.setDepsHead(link.nextDep)
	}
	if link.nextDep != nil {
		link.nextDep.prevDep = link.prevDep
	} else {
		sub.setDepsTail(link.prevDep)
	}
	link.prevDep = nil
	link.nextDep = nil
}

// appendSubLink splices link onto the tail of dep's subscriber-list.
func appendSubLink(dep *Dep, link *Link) {
	tail := dep.subsTail
	link.prevSub = tail
	link.nextSub = nil
	if tail != nil {
		tail.nextSub = link
	} else {
		dep.subsHead = link
	}
	dep.subsTail = link
}

// unlinkSubLink removes link from dep's subscriber-list.
func unlinkSubLink(dep *Dep, link *Link) {
	if link.prevSub != nil {
		link.prevSub.nextSub = link.nextSub
	} else {
		dep.subsHead = link.nextSub
	}
	if link.nextSub != nil {
		link.nextSub.prevSub = link.prevSub
	} else {
		dep.subsTail = link.prevSub
	}
	link.prevSub = nil
	link.nextSub = nil
}

// removeLink fully detaches link from both lists and reclaims the Dep
// if its subscriber count reaches zero and it has a map owner.
func removeLink(link *Link) {
	dep := link.dep
	sub := link.sub
	unlinkDepLink(sub, link)
	unlinkSubLink(dep, link)
	dep.subs--
	if dep.activeLink == link {
		dep.activeLink = link.prevActiveLink
	}
	if dep.subs == 0 && dep.owner != nil {
		dep.owner.releaseDep(dep)
	}
}
