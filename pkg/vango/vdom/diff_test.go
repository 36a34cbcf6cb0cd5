package vdom

import "testing"

func TestDiffTextNodes(t *testing.T) {
	tests := []struct {
		name     string
		prev     *VNode
		next     *VNode
		expected []Patch
	}{
		{
			name:     "text content change",
			prev:     &VNode{Kind: KindText, Text: "Hello"},
			next:     &VNode{Kind: KindText, Text: "World"},
			expected: []Patch{{Op: OpReplaceText, NodeID: 1, Value: "World"}},
		},
		{
			name:     "text content unchanged",
			prev:     &VNode{Kind: KindText, Text: "Same"},
			next:     &VNode{Kind: KindText, Text: "Same"},
			expected: []Patch{},
		},
		{
			name: "text to element replaces",
			prev: &VNode{Kind: KindText, Text: "Text"},
			next: &VNode{Kind: KindElement, Tag: "div"},
			expected: []Patch{
				{Op: OpRemoveNode, NodeID: 1},
				{Op: OpInsertNode, NodeID: 2, Node: &VNode{Kind: KindElement, Tag: "div"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			patches := Diff(tt.prev, tt.next)
			if !patchesEqual(patches, tt.expected) {
				t.Errorf("Diff() = %v, want %v", patches, tt.expected)
			}
		})
	}
}

func TestDiffCommentsNeverRediff(t *testing.T) {
	prev := &VNode{Kind: KindComment, Text: "v-if"}
	next := &VNode{Kind: KindComment, Text: "v-else"}
	if patches := Diff(prev, next); len(patches) != 0 {
		t.Errorf("comment nodes must not be diffed after mount, got %v", patches)
	}
}

func TestDiffStaticContentChangeReemits(t *testing.T) {
	prev := &VNode{Kind: KindStatic, HTML: "<b>old</b>"}
	next := &VNode{Kind: KindStatic, HTML: "<b>new</b>"}
	patches := Diff(prev, next)
	if len(patches) != 2 || patches[0].Op != OpRemoveNode || patches[1].Op != OpInsertNode {
		t.Fatalf("static content change = %v, want [remove, insert]", patches)
	}
}

func TestDiffElementAttributes(t *testing.T) {
	tests := []struct {
		name     string
		prev     *VNode
		next     *VNode
		expected []Patch
	}{
		{
			name: "different tags replace",
			prev: &VNode{Kind: KindElement, Tag: "div"},
			next: &VNode{Kind: KindElement, Tag: "span"},
			expected: []Patch{
				{Op: OpRemoveNode, NodeID: 1},
				{Op: OpInsertNode, NodeID: 2, Node: &VNode{Kind: KindElement, Tag: "span"}},
			},
		},
		{
			name: "add attribute",
			prev: &VNode{Kind: KindElement, Tag: "div"},
			next: &VNode{Kind: KindElement, Tag: "div", Props: Props{{Key: "class", Value: "active"}}},
			expected: []Patch{
				{Op: OpSetAttribute, NodeID: 1, Key: "class", Value: "active"},
			},
		},
		{
			name: "remove attribute",
			prev: &VNode{Kind: KindElement, Tag: "div", Props: Props{{Key: "class", Value: "active"}}},
			next: &VNode{Kind: KindElement, Tag: "div"},
			expected: []Patch{
				{Op: OpRemoveAttribute, NodeID: 1, Key: "class"},
			},
		},
		{
			name: "change attribute",
			prev: &VNode{Kind: KindElement, Tag: "div", Props: Props{{Key: "class", Value: "old"}}},
			next: &VNode{Kind: KindElement, Tag: "div", Props: Props{{Key: "class", Value: "new"}}},
			expected: []Patch{
				{Op: OpSetAttribute, NodeID: 1, Key: "class", Value: "new"},
			},
		},
		{
			name: "key and ref props are never patched as attributes",
			prev: &VNode{Kind: KindElement, Tag: "li", Props: Props{{Key: "key", Value: "a"}}},
			next: &VNode{Kind: KindElement, Tag: "li", Props: Props{{Key: "key", Value: "a"}, {Key: "ref", Value: "x"}}},
			expected: []Patch{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			patches := Diff(tt.prev, tt.next)
			if !patchesEqual(patches, tt.expected) {
				t.Errorf("Diff() = %v, want %v", patches, tt.expected)
			}
		})
	}
}

// Scenario 5: Prop patch order. A new <input> with {min, max, value}
// must receive patch_prop calls in exactly that declared order, with
// "value" deferred to last regardless of declaration position.
func TestDiffPropPatchOrder(t *testing.T) {
	prev := &VNode{Kind: KindElement, Tag: "input"}
	next := &VNode{Kind: KindElement, Tag: "input", Props: Props{
		{Key: "min", Value: 0},
		{Key: "max", Value: 10},
		{Key: "value", Value: 5},
	}}

	patches := Diff(prev, next)
	var order []string
	for _, p := range patches {
		if p.Op == OpSetAttribute {
			order = append(order, p.Key)
		}
	}
	want := []string{"min", "max", "value"}
	if len(order) != len(want) {
		t.Fatalf("got %v prop patches, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("prop patch order = %v, want %v", order, want)
		}
	}
}

func TestDiffPropPatchOrderValueDeferredEvenWhenDeclaredFirst(t *testing.T) {
	prev := &VNode{Kind: KindElement, Tag: "input", Props: Props{
		{Key: "value", Value: 1},
		{Key: "min", Value: 0},
	}}
	next := &VNode{Kind: KindElement, Tag: "input", Props: Props{
		{Key: "value", Value: 2},
		{Key: "min", Value: 1},
	}}

	patches := Diff(prev, next)
	var order []string
	for _, p := range patches {
		if p.Op == OpSetAttribute {
			order = append(order, p.Key)
		}
	}
	if len(order) != 2 || order[0] != "min" || order[1] != "value" {
		t.Fatalf("prop patch order = %v, want [min value]", order)
	}
}

func TestDiffPortalTargetChangeReplaces(t *testing.T) {
	prev := &VNode{Kind: KindPortal, PortalTarget: "#modal-root", Kids: []VNode{{Kind: KindText, Text: "hi"}}}
	next := &VNode{Kind: KindPortal, PortalTarget: "#dialog-root", Kids: []VNode{{Kind: KindText, Text: "hi"}}}
	patches := Diff(prev, next)
	if len(patches) == 0 {
		t.Fatalf("expected patches for a portal target change, got none")
	}
	if patches[0].Op != OpRemoveNode {
		t.Fatalf("portal target change should remove the old portal, got %v", patches[0])
	}
}

func TestDiffNilNodes(t *testing.T) {
	tests := []struct {
		name     string
		prev     *VNode
		next     *VNode
		expected int
	}{
		{name: "both nil", prev: nil, next: nil, expected: 0},
		{name: "add node", prev: nil, next: &VNode{Kind: KindText, Text: "New"}, expected: 1},
		{name: "remove node", prev: &VNode{Kind: KindText, Text: "Old"}, next: nil, expected: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if patches := Diff(tt.prev, tt.next); len(patches) != tt.expected {
				t.Errorf("Diff() = %d patches, want %d", len(patches), tt.expected)
			}
		})
	}
}

func keyedText(key, text string) VNode {
	return VNode{Kind: KindText, Key: key, Text: text}
}

// Scenario 4: Keyed reorder. Old [a,b,c,d,e], new [a,c,d,b,e]. Expect
// head trim of a, tail trim of e, an in-place patch of c/d/b, and
// exactly one move (b), since the LIS of the middle mapping is {c,d}.
func TestDiffKeyedReorderScenario(t *testing.T) {
	old := []VNode{
		keyedText("a", "a"), keyedText("b", "b"), keyedText("c", "c"),
		keyedText("d", "d"), keyedText("e", "e"),
	}
	next := []VNode{
		keyedText("a", "a"), keyedText("c", "c"), keyedText("d", "d"),
		keyedText("b", "b"), keyedText("e", "e"),
	}

	ctx := newDiffContext()
	diffKeyedChildren(ctx, 0, old, next)

	moves := 0
	for _, p := range ctx.patches {
		if p.Op == OpMoveNode {
			moves++
		}
	}
	if moves != 1 {
		t.Fatalf("expected exactly 1 move (b), got %d moves in %v", moves, ctx.patches)
	}

	// The moved node must be "b".
	bID := ctx.getNodeID(&next[3])
	found := false
	for _, p := range ctx.patches {
		if p.Op == OpMoveNode && p.NodeID == bID {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected the move patch to target b's node id %d, got %v", bID, ctx.patches)
	}
}

func TestDiffKeyedAppendOnly(t *testing.T) {
	old := []VNode{keyedText("a", "a"), keyedText("b", "b")}
	next := []VNode{keyedText("a", "a"), keyedText("b", "b"), keyedText("c", "c")}

	ctx := newDiffContext()
	diffKeyedChildren(ctx, 0, old, next)

	inserts := 0
	for _, p := range ctx.patches {
		if p.Op == OpInsertNode {
			inserts++
		}
		if p.Op == OpMoveNode || p.Op == OpRemoveNode {
			t.Fatalf("append-only change should not move or remove anything, got %v", ctx.patches)
		}
	}
	if inserts != 1 {
		t.Fatalf("expected exactly 1 insert, got %d in %v", inserts, ctx.patches)
	}
}

func TestDiffKeyedRemovalOnly(t *testing.T) {
	old := []VNode{keyedText("a", "a"), keyedText("b", "b"), keyedText("c", "c")}
	next := []VNode{keyedText("a", "a"), keyedText("c", "c")}

	ctx := newDiffContext()
	diffKeyedChildren(ctx, 0, old, next)

	removes := 0
	for _, p := range ctx.patches {
		if p.Op == OpRemoveNode {
			removes++
		}
	}
	if removes != 1 {
		t.Fatalf("expected exactly 1 remove (b), got %d in %v", removes, ctx.patches)
	}
}

func TestDiffKeyedFullReverse(t *testing.T) {
	old := []VNode{keyedText("a", "a"), keyedText("b", "b"), keyedText("c", "c"), keyedText("d", "d")}
	next := []VNode{keyedText("d", "d"), keyedText("c", "c"), keyedText("b", "b"), keyedText("a", "a")}

	ctx := newDiffContext()
	diffKeyedChildren(ctx, 0, old, next)

	for _, p := range ctx.patches {
		if p.Op == OpInsertNode || p.Op == OpRemoveNode {
			t.Fatalf("a pure reorder must not mount or unmount anything, got %v", ctx.patches)
		}
	}
	moves := 0
	for _, p := range ctx.patches {
		if p.Op == OpMoveNode {
			moves++
		}
	}
	if moves == 0 {
		t.Fatalf("a full reverse should require at least one move")
	}
}

// Keyed-diff optimality: the number of moves equals |new| minus the
// length of the longest common (by-key) subsequence, for the case of
// no insertions/removals — verified directly against the LIS helper.
func TestLongestIncreasingSubsequence(t *testing.T) {
	tests := []struct {
		name string
		arr  []int
		want []int
	}{
		{name: "spec scenario 4 middle mapping", arr: []int{3, 4, 2}, want: []int{0, 1}},
		{name: "empty", arr: []int{}, want: nil},
		{name: "all zeros (all new mounts)", arr: []int{0, 0, 0}, want: nil},
		{name: "strictly increasing", arr: []int{1, 2, 3}, want: []int{0, 1, 2}},
		{name: "strictly decreasing", arr: []int{3, 2, 1}, want: []int{2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := longestIncreasingSubsequence(tt.arr)
			if len(got) != len(tt.want) {
				t.Fatalf("longestIncreasingSubsequence(%v) = %v, want length %d", tt.arr, got, len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("longestIncreasingSubsequence(%v) = %v, want %v", tt.arr, got, tt.want)
				}
			}
		})
	}
}

// Helper: order-insensitive patch-set comparison for tests that don't
// care about emission order (attribute add/remove on a single node).
func patchesEqual(a, b []Patch) bool {
	if len(a) != len(b) {
		return false
	}
	aMap := make(map[string]int)
	bMap := make(map[string]int)
	for _, p := range a {
		aMap[p.String()]++
	}
	for _, p := range b {
		bMap[p.String()]++
	}
	if len(aMap) != len(bMap) {
		return false
	}
	for k, v := range aMap {
		if bMap[k] != v {
			return false
		}
	}
	return true
}
