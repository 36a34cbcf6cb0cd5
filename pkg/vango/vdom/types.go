package vdom

// VKind represents the type of virtual node
type VKind uint8

const (
	// KindElement represents a DOM element node
	KindElement VKind = iota
	// KindText represents a text node
	KindText
	// KindComment represents a comment node (never diffed after mount)
	KindComment
	// KindFragment represents a fragment (multiple children without parent)
	KindFragment
	// KindPortal represents a portal (render children elsewhere in DOM)
	KindPortal
	// KindStatic represents a pre-serialized, never-diffed HTML block
	KindStatic
)

// ShapeFlag classifies what a node's children and component-ness look
// like, independent of what (if anything) changed since last render.
type ShapeFlag uint16

const (
	ShapeElement ShapeFlag = 1 << iota
	ShapeFunctionalComponent
	ShapeStatefulComponent
	ShapeTextChildren
	ShapeArrayChildren
	ShapeSlotChildren
	ShapeTeleport
	ShapeSuspense
	ShapeShouldKeepAlive
	ShapeKeptAlive
)

// PatchFlag advertises what changed about a node since its previous
// sibling-in-time render, so the patch engine can pick the cheapest
// valid update path instead of a full diff.
type PatchFlag int32

const (
	PatchText PatchFlag = 1 << iota
	PatchClass
	PatchStyle
	PatchProps
	PatchFullProps
	PatchStableFragment
	PatchKeyedFragment
	PatchUnkeyedFragment
	PatchNeedHydration
	PatchDevRootFragment
	// PatchBail is the opt-out: -2 in the original numbering scheme so
	// it never collides with a positive combination of the bits above.
	PatchBail PatchFlag = -2
)

// VNodeFlags are bitwise flags for VNode optimizations (legacy
// construction-time hints, kept alongside the richer Shape/PatchFlag
// pair above for code that only needs a quick classification).
type VNodeFlags uint8

const (
	// FlagStatic indicates this node and its children will never change
	FlagStatic VNodeFlags = 1 << iota
	// FlagHasKey indicates this node has a key for list reconciliation
	FlagHasKey
	// FlagHasRef indicates this node has a ref callback
	FlagHasRef
	// FlagHasEvents indicates this node has event listeners
	FlagHasEvents
	// FlagDirty indicates this node needs re-rendering
	FlagDirty
)

// PropEntry is one key/value pair of a node's properties. Props is an
// ordered slice rather than a map so that prop-patch order is
// deterministic and matches declaration order (spec scenario: an
// <input> declared with {min, max, value} must receive patch_prop
// calls in exactly that order, with "value" additionally deferred to
// last regardless of where it was declared — see diffProps).
type PropEntry struct {
	Key   string
	Value any
}

// Props is the ordered set of a VNode's properties/attributes,
// including event handlers, style, class, "key" and "ref".
type Props []PropEntry

// ElementRef is the host element handed to a "ref" callback; in
// js/wasm builds the DOM applier passes the element's js.Value.
type ElementRef = any

// Get returns the value for key and whether it was present.
func (p Props) Get(key string) (any, bool) {
	for _, e := range p {
		if e.Key == key {
			return e.Value, true
		}
	}
	return nil, false
}

// PropsFromMap builds a Props slice from a map literal for
// convenience. Go map iteration order is randomized, so callers that
// care about prop-patch order (e.g. min/max/value on a range input)
// must build Props directly instead of going through a map.
func PropsFromMap(m map[string]any) Props {
	p := make(Props, 0, len(m))
	for k, v := range m {
		p = append(p, PropEntry{Key: k, Value: v})
	}
	return p
}

// VNode represents a virtual DOM node.
// This struct is immutable by convention - once created, it should
// never be modified in place; diffing always produces a new tree.
type VNode struct {
	// Kind determines the type of this node
	Kind VKind

	// Tag is the element tag name (e.g., "div", "span")
	// Only used when Kind == KindElement
	Tag string

	// Props contains all properties/attributes for this node, in
	// declaration order. This includes event handlers, style, class, etc.
	Props Props

	// Kids contains child nodes
	// For KindText, this is nil
	Kids []VNode

	// Key is used for efficient list reconciliation
	// Empty string means no key
	Key string

	// Flags contains legacy construction-time optimization hints
	Flags VNodeFlags

	// Shape classifies this node's children/component kind, per
	// spec.md §3.
	Shape ShapeFlag

	// Patch advertises what changed since the previous render of this
	// position in the tree, per spec.md §3. Zero means "nothing
	// flagged" (fall back to a full diff); PatchBail means "don't
	// trust dynamic_children, do a full diff anyway."
	Patch PatchFlag

	// DynamicChildren holds indices into Kids that a compiler (or, in
	// this hand-authored tree, the node's builder) flagged as possibly
	// changing, enabling the block-children fast path of §4.9/§4.10.
	DynamicChildren []int

	// Text content (only used when Kind == KindText or KindComment)
	Text string

	// HTML is the raw, never-diffed markup for KindStatic nodes.
	HTML string

	// PortalTarget (only used when Kind == KindPortal)
	PortalTarget string
}

// NewElement creates a new element VNode.
func NewElement(tag string, props Props, children ...*VNode) *VNode {
	flags := VNodeFlags(0)
	shape := ShapeElement

	for _, e := range props {
		if isEventProp(e.Key) {
			flags |= FlagHasEvents
		}
		if e.Key == "key" {
			flags |= FlagHasKey
		}
		if e.Key == "ref" {
			flags |= FlagHasRef
		}
	}

	kids := make([]VNode, 0, len(children))
	for _, child := range children {
		if child != nil {
			kids = append(kids, *child)
		}
	}
	if len(kids) > 0 {
		if len(kids) == 1 && kids[0].Kind == KindText {
			shape |= ShapeTextChildren
		} else {
			shape |= ShapeArrayChildren
		}
	}

	return &VNode{
		Kind:  KindElement,
		Tag:   tag,
		Props: props,
		Kids:  kids,
		Flags: flags,
		Shape: shape,
	}
}

// NewText creates a new text VNode.
func NewText(text string) *VNode {
	return &VNode{Kind: KindText, Text: text}
}

// NewComment creates a new comment VNode (never diffed after mount).
func NewComment(text string) *VNode {
	return &VNode{Kind: KindComment, Text: text}
}

// NewStatic creates a pre-serialized static block: mounted by emitting
// html raw via the host's InsertStaticContent capability and never
// diffed again except on a dev-HMR content change.
func NewStatic(html string) *VNode {
	return &VNode{Kind: KindStatic, HTML: html}
}

// NewFragment creates a new fragment VNode.
func NewFragment(children ...*VNode) *VNode {
	kids := make([]VNode, 0, len(children))
	for _, child := range children {
		if child != nil {
			kids = append(kids, *child)
		}
	}
	return &VNode{Kind: KindFragment, Kids: kids, Shape: ShapeArrayChildren}
}

// NewPortal creates a new portal VNode.
func NewPortal(target string, children ...*VNode) *VNode {
	kids := make([]VNode, 0, len(children))
	for _, child := range children {
		if child != nil {
			kids = append(kids, *child)
		}
	}
	return &VNode{Kind: KindPortal, PortalTarget: target, Kids: kids, Shape: ShapeTeleport | ShapeArrayChildren}
}

// IsElement returns true if this is an element node
func (v VNode) IsElement() bool { return v.Kind == KindElement }

// IsText returns true if this is a text node
func (v VNode) IsText() bool { return v.Kind == KindText }

// IsFragment returns true if this is a fragment node
func (v VNode) IsFragment() bool { return v.Kind == KindFragment }

// IsPortal returns true if this is a portal node
func (v VNode) IsPortal() bool { return v.Kind == KindPortal }

// IsStatic returns true if this is a static, never-diffed HTML block
func (v VNode) IsStatic() bool { return v.Kind == KindStatic }

// HasFlag returns true if the specified legacy flag is set
func (v VNode) HasFlag(flag VNodeFlags) bool { return v.Flags&flag != 0 }

// HasShape returns true if the specified shape bit is set
func (v VNode) HasShape(s ShapeFlag) bool { return v.Shape&s != 0 }

// HasPatch returns true if the specified patch bit is set (meaningless
// when Patch == PatchBail, which is a sentinel, not a bitset).
func (v VNode) HasPatch(p PatchFlag) bool { return v.Patch > 0 && v.Patch&p != 0 }

// GetKey returns the key of this node, checking Props first (so a
// "key" prop set via PropsFromMap is honored) then the Key field.
func (v VNode) GetKey() string {
	if k, ok := v.Props.Get("key"); ok {
		if s, ok2 := k.(string); ok2 {
			return s
		}
	}
	return v.Key
}

func isEventProp(key string) bool {
	return len(key) > 2 && key[0] == 'o' && key[1] == 'n'
}
