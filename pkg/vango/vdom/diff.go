package vdom

import (
	"fmt"
	"sort"
)

// PatchOp represents the type of patch operation
type PatchOp uint8

const (
	// OpReplaceText replaces text node content
	OpReplaceText PatchOp = 0x01
	// OpSetAttribute sets or replaces an attribute
	OpSetAttribute PatchOp = 0x02
	// OpRemoveNode removes a node
	OpRemoveNode PatchOp = 0x03
	// OpInsertNode inserts a new node
	OpInsertNode PatchOp = 0x04
	// OpUpdateEvents updates event subscriptions
	OpUpdateEvents PatchOp = 0x05
	// OpRemoveAttribute removes an attribute
	OpRemoveAttribute PatchOp = 0x06
	// OpMoveNode moves a node to a new position
	OpMoveNode PatchOp = 0x07
)

// Patch represents a single DOM mutation, in the order a host Applier
// (pkg/renderer) must execute to reproduce the tree transition.
type Patch struct {
	Op        PatchOp
	NodeID    uint32
	ParentID  uint32 // For insert/move operations
	BeforeID  uint32 // For insert/move operations (0 means append)
	Key       string // Attribute key for set/remove attribute
	Value     string // Text content or attribute value
	Node      *VNode // For insert operations
	EventBits uint32 // For event updates
}

// String returns a human-readable representation of the patch
func (p Patch) String() string {
	switch p.Op {
	case OpReplaceText:
		return fmt.Sprintf("ReplaceText(node=%d, text=%q)", p.NodeID, p.Value)
	case OpSetAttribute:
		return fmt.Sprintf("SetAttribute(node=%d, key=%q, value=%q)", p.NodeID, p.Key, p.Value)
	case OpRemoveAttribute:
		return fmt.Sprintf("RemoveAttribute(node=%d, key=%q)", p.NodeID, p.Key)
	case OpRemoveNode:
		return fmt.Sprintf("RemoveNode(node=%d)", p.NodeID)
	case OpInsertNode:
		return fmt.Sprintf("InsertNode(node=%d, parent=%d, before=%d)", p.NodeID, p.ParentID, p.BeforeID)
	case OpUpdateEvents:
		return fmt.Sprintf("UpdateEvents(node=%d, bits=%x)", p.NodeID, p.EventBits)
	case OpMoveNode:
		return fmt.Sprintf("MoveNode(node=%d, parent=%d, before=%d)", p.NodeID, p.ParentID, p.BeforeID)
	default:
		return fmt.Sprintf("Unknown(op=%d)", p.Op)
	}
}

// DiffContext holds state during diffing
type DiffContext struct {
	patches     []Patch
	nodeCounter uint32
	nodeMap     map[*VNode]uint32
}

// newDiffContext creates a new diff context
func newDiffContext() *DiffContext {
	return &DiffContext{
		patches:     make([]Patch, 0, 16),
		nodeCounter: 1,
		nodeMap:     make(map[*VNode]uint32),
	}
}

// getNodeID gets or assigns a node ID
func (ctx *DiffContext) getNodeID(node *VNode) uint32 {
	if node == nil {
		return 0
	}
	if id, ok := ctx.nodeMap[node]; ok {
		return id
	}
	id := ctx.nodeCounter
	ctx.nodeCounter++
	ctx.nodeMap[node] = id
	return id
}

func (ctx *DiffContext) addPatch(patch Patch) {
	ctx.patches = append(ctx.patches, patch)
}

// mountNode registers next and emits an insert patch placing it before
// beforeID within parentID (0 means append at the end).
func mountNode(ctx *DiffContext, next *VNode, parentID, beforeID uint32) {
	nodeID := ctx.getNodeID(next)
	ctx.addPatch(Patch{Op: OpInsertNode, NodeID: nodeID, ParentID: parentID, BeforeID: beforeID, Node: next})
}

// unmountNode emits a remove patch for prev.
func unmountNode(ctx *DiffContext, prev *VNode) {
	ctx.addPatch(Patch{Op: OpRemoveNode, NodeID: ctx.getNodeID(prev)})
}

// sameNodeType reports whether a and b represent the same logical slot
// in the tree — same kind, same element tag (if applicable), same key
// — so patching in place is valid instead of unmount+remount, per
// spec.md §4.9 step 2 / §4.10.1 step 1-2.
func sameNodeType(a, b *VNode) bool {
	if a.Kind != b.Kind {
		return false
	}
	if a.Kind == KindElement && a.Tag != b.Tag {
		return false
	}
	return a.GetKey() == b.GetKey()
}

// Diff computes the patches needed to transform prev into next.
func Diff(prev, next *VNode) []Patch {
	ctx := newDiffContext()
	diffNode(ctx, prev, next, 0)
	return ctx.patches
}

// diffNode recursively diffs two nodes, per spec.md §4.9's patch entry
// point (steps 1-2 of the general dispatch; §4.9.1/§4.9.2 for element
// updates once the node kinds and keys agree).
func diffNode(ctx *DiffContext, prev, next *VNode, parentID uint32) {
	if prev == next {
		return
	}
	if prev != nil && next == nil {
		unmountNode(ctx, prev)
		return
	}
	if prev == nil && next != nil {
		mountNode(ctx, next, parentID, 0)
		return
	}

	if !sameNodeType(prev, next) {
		unmountNode(ctx, prev)
		mountNode(ctx, next, parentID, 0)
		return
	}

	nodeID := ctx.getNodeID(prev)
	ctx.nodeMap[next] = nodeID

	switch prev.Kind {
	case KindText:
		if prev.Text != next.Text {
			ctx.addPatch(Patch{Op: OpReplaceText, NodeID: nodeID, Value: next.Text})
		}

	case KindComment:
		// Comments are not diffed after mount (spec.md §4.9).

	case KindStatic:
		if prev.HTML != next.HTML {
			// Dev-HMR content change: remove the old range, re-emit.
			ctx.addPatch(Patch{Op: OpRemoveNode, NodeID: nodeID})
			newID := ctx.nodeCounter
			ctx.nodeCounter++
			ctx.nodeMap[next] = newID
			ctx.addPatch(Patch{Op: OpInsertNode, NodeID: newID, ParentID: parentID, Node: next})
		}

	case KindElement:
		diffProps(ctx, nodeID, prev.Props, next.Props)
		diffChildren(ctx, nodeID, prev.Kids, next.Kids)

	case KindFragment:
		diffChildren(ctx, nodeID, prev.Kids, next.Kids)

	case KindPortal:
		if prev.PortalTarget != next.PortalTarget {
			ctx.addPatch(Patch{Op: OpRemoveNode, NodeID: nodeID})
			mountNode(ctx, next, parentID, 0)
		} else {
			diffChildren(ctx, nodeID, prev.Kids, next.Kids)
		}
	}
}

// diffProps implements spec.md §4.9.2's prop diff: removals for keys
// no longer present, then additions/changes in next's declaration
// order, with "value" deferred to patch last regardless of where it
// appears (some host properties, e.g. a range input's value, require
// min/max to already be set).
func diffProps(ctx *DiffContext, nodeID uint32, prevProps, nextProps Props) {
	var prevEvents, nextEvents uint32

	for _, e := range prevProps {
		if e.Key == "key" || e.Key == "ref" {
			continue
		}
		if isEventProp(e.Key) {
			prevEvents |= getEventBit(e.Key)
			continue
		}
		if _, exists := nextProps.Get(e.Key); !exists {
			ctx.addPatch(Patch{Op: OpRemoveAttribute, NodeID: nodeID, Key: e.Key})
		}
	}

	var deferredValue *PropEntry
	for i := range nextProps {
		e := nextProps[i]
		if e.Key == "key" || e.Key == "ref" {
			continue
		}
		if isEventProp(e.Key) {
			nextEvents |= getEventBit(e.Key)
			continue
		}
		if e.Key == "value" {
			deferredValue = &nextProps[i]
			continue
		}
		prevVal, existed := prevProps.Get(e.Key)
		if !existed || !propsEqual(prevVal, e.Value) {
			ctx.addPatch(Patch{Op: OpSetAttribute, NodeID: nodeID, Key: e.Key, Value: propToString(e.Value)})
		}
	}
	if deferredValue != nil {
		prevVal, existed := prevProps.Get("value")
		if !existed || !propsEqual(prevVal, deferredValue.Value) {
			ctx.addPatch(Patch{Op: OpSetAttribute, NodeID: nodeID, Key: "value", Value: propToString(deferredValue.Value)})
		}
	}

	if prevEvents != nextEvents {
		ctx.addPatch(Patch{Op: OpUpdateEvents, NodeID: nodeID, EventBits: nextEvents})
	}
}

// diffChildren dispatches to the text/array branches of spec.md §4.10.
func diffChildren(ctx *DiffContext, parentID uint32, prevKids, nextKids []VNode) {
	if len(prevKids) == 0 && len(nextKids) == 0 {
		return
	}
	if len(nextKids) == 0 {
		for i := range prevKids {
			unmountNode(ctx, &prevKids[i])
		}
		return
	}
	if len(prevKids) == 0 {
		for i := range nextKids {
			mountNode(ctx, &nextKids[i], parentID, 0)
		}
		return
	}

	hasKeys := false
	for i := range nextKids {
		if nextKids[i].GetKey() != "" {
			hasKeys = true
			break
		}
	}
	if hasKeys {
		diffKeyedChildren(ctx, parentID, prevKids, nextKids)
	} else {
		diffUnkeyedChildren(ctx, parentID, prevKids, nextKids)
	}
}

// diffUnkeyedChildren implements the unkeyed branch of spec.md §4.10:
// patch position-by-position, then unmount or mount the tail.
func diffUnkeyedChildren(ctx *DiffContext, parentID uint32, prevKids, nextKids []VNode) {
	minLen := len(prevKids)
	if len(nextKids) < minLen {
		minLen = len(nextKids)
	}
	for i := 0; i < minLen; i++ {
		diffNode(ctx, &prevKids[i], &nextKids[i], parentID)
	}
	for i := minLen; i < len(prevKids); i++ {
		unmountNode(ctx, &prevKids[i])
	}
	for i := minLen; i < len(nextKids); i++ {
		mountNode(ctx, &nextKids[i], parentID, 0)
	}
}

// diffKeyedChildren implements spec.md §4.10.1: two-ended trim of the
// stable head/tail, then a middle pass that matches remaining nodes by
// key (or, for unkeyed stragglers, by first same-type match), and
// finally an LIS-driven pass that mounts new nodes, moves nodes whose
// position fell outside the longest increasing run, and leaves LIS
// members untouched.
func diffKeyedChildren(ctx *DiffContext, parentID uint32, prevKids, nextKids []VNode) {
	i, e1, e2 := 0, len(prevKids)-1, len(nextKids)-1

	// 1. sync from the start
	for i <= e1 && i <= e2 && sameNodeType(&prevKids[i], &nextKids[i]) {
		diffNode(ctx, &prevKids[i], &nextKids[i], parentID)
		i++
	}

	// 2. sync from the end
	for i <= e1 && i <= e2 && sameNodeType(&prevKids[e1], &nextKids[e2]) {
		diffNode(ctx, &prevKids[e1], &nextKids[e2], parentID)
		e1--
		e2--
	}

	// 3. new nodes only
	if i > e1 {
		if i <= e2 {
			beforeID := uint32(0)
			if e2+1 < len(nextKids) {
				beforeID = ctx.getNodeID(&nextKids[e2+1])
			}
			for idx := i; idx <= e2; idx++ {
				mountNode(ctx, &nextKids[idx], parentID, beforeID)
			}
		}
		return
	}

	// 4. removed nodes only
	if i > e2 {
		for idx := i; idx <= e1; idx++ {
			unmountNode(ctx, &prevKids[idx])
		}
		return
	}

	// 5. true middle: match by key, then LIS to minimize moves.
	keyToNewIndex := make(map[string]int, e2-i+1)
	for newIdx := i; newIdx <= e2; newIdx++ {
		if k := nextKids[newIdx].GetKey(); k != "" {
			keyToNewIndex[k] = newIdx
		}
	}

	toBePatched := e2 - i + 1
	newIndexToOldIndex := make([]int, toBePatched) // 0 means "new mount"
	moved := false
	maxNewIndexSoFar := -1

	for oldIdx := i; oldIdx <= e1; oldIdx++ {
		oldChild := &prevKids[oldIdx]
		newIdx := -1
		if k := oldChild.GetKey(); k != "" {
			if ni, ok := keyToNewIndex[k]; ok {
				newIdx = ni
			}
		} else {
			for probe := i; probe <= e2; probe++ {
				if newIndexToOldIndex[probe-i] == 0 && nextKids[probe].GetKey() == "" && sameNodeType(oldChild, &nextKids[probe]) {
					newIdx = probe
					break
				}
			}
		}
		if newIdx < 0 {
			unmountNode(ctx, oldChild)
			continue
		}
		newIndexToOldIndex[newIdx-i] = oldIdx + 1
		if newIdx >= maxNewIndexSoFar {
			maxNewIndexSoFar = newIdx
		} else {
			moved = true
		}
		diffNode(ctx, oldChild, &nextKids[newIdx], parentID)
	}

	var increasing []int
	if moved {
		increasing = longestIncreasingSubsequence(newIndexToOldIndex)
	}

	lisPtr := len(increasing) - 1
	for k := toBePatched - 1; k >= 0; k-- {
		newIdx := i + k
		nextChild := &nextKids[newIdx]
		beforeID := uint32(0)
		if newIdx+1 < len(nextKids) {
			beforeID = ctx.getNodeID(&nextKids[newIdx+1])
		}
		if newIndexToOldIndex[k] == 0 {
			mountNode(ctx, nextChild, parentID, beforeID)
			continue
		}
		if !moved {
			continue
		}
		if lisPtr >= 0 && increasing[lisPtr] == k {
			lisPtr--
			continue
		}
		ctx.addPatch(Patch{Op: OpMoveNode, NodeID: ctx.getNodeID(nextChild), ParentID: parentID, BeforeID: beforeID})
	}
}

// longestIncreasingSubsequence returns the indices (into arr, strictly
// ascending) of one longest strictly-increasing subsequence, skipping
// zero entries entirely (they mean "new mount," never a kept-in-place
// position). O(n log n) patience-sort variant per spec.md §4.10.1.
func longestIncreasingSubsequence(arr []int) []int {
	var tails []int // indices into arr; arr[tails[k]] is the smallest possible tail of a length-(k+1) run
	predecessors := make([]int, len(arr))
	for i := range predecessors {
		predecessors[i] = -1
	}

	for i, v := range arr {
		if v == 0 {
			continue
		}
		if len(tails) == 0 || arr[tails[len(tails)-1]] < v {
			if len(tails) > 0 {
				predecessors[i] = tails[len(tails)-1]
			}
			tails = append(tails, i)
			continue
		}
		pos := sort.Search(len(tails), func(k int) bool { return arr[tails[k]] >= v })
		if pos > 0 {
			predecessors[i] = tails[pos-1]
		}
		tails[pos] = i
	}

	if len(tails) == 0 {
		return nil
	}
	seq := make([]int, len(tails))
	k := tails[len(tails)-1]
	for idx := len(tails) - 1; idx >= 0; idx-- {
		seq[idx] = k
		k = predecessors[k]
	}
	return seq
}

func getEventBit(eventName string) uint32 {
	switch eventName {
	case "onClick", "onclick":
		return 1 << 0
	case "onChange", "onchange":
		return 1 << 1
	case "onInput", "oninput":
		return 1 << 2
	case "onSubmit", "onsubmit":
		return 1 << 3
	case "onFocus", "onfocus":
		return 1 << 4
	case "onBlur", "onblur":
		return 1 << 5
	case "onKeyDown", "onkeydown":
		return 1 << 6
	case "onKeyUp", "onkeyup":
		return 1 << 7
	case "onMouseDown", "onmousedown":
		return 1 << 8
	case "onMouseUp", "onmouseup":
		return 1 << 9
	case "onMouseMove", "onmousemove":
		return 1 << 10
	case "onMouseEnter", "onmouseenter":
		return 1 << 11
	case "onMouseLeave", "onmouseleave":
		return 1 << 12
	default:
		return 1 << 31
	}
}

func propsEqual(a, b any) bool {
	return fmt.Sprintf("%v", a) == fmt.Sprintf("%v", b)
}

func propToString(v any) string {
	return fmt.Sprintf("%v", v)
}
