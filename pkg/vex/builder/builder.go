// Package builder implements VEX's Layer 1 API: a fluent, chained
// constructor for vdom.VNode trees. Each tag gets a top-level
// constructor (Div, Span, Button, ...) returning an *ElementBuilder;
// chained setters (Class, Attr, the attribute setters in
// attributes.go) accumulate onto the same builder, and Build (or the
// implicit conversion performed by Children on a parent) materializes
// the final *vdom.VNode.
package builder

import "github.com/arborfw/arbor/pkg/vango/vdom"

// ElementBuilder accumulates an element's tag, props, and children
// before producing a vdom.VNode. props is kept as an ordered
// vdom.Props slice (not a map) so the resulting VNode's attribute
// order is deterministic across renders, matching vdom.Props itself.
type ElementBuilder struct {
	tag   string
	props vdom.Props
	kids  []*vdom.VNode
}

// newElementBuilder starts a builder for the given tag.
func newElementBuilder(tag string) *ElementBuilder {
	return &ElementBuilder{tag: tag}
}

// setProp upserts key, preserving its original position if it was
// already set (so calling e.g. Class twice doesn't reorder prior
// attributes) and appending otherwise.
func (b *ElementBuilder) setProp(key string, value interface{}) {
	for i := range b.props {
		if b.props[i].Key == key {
			b.props[i].Value = value
			return
		}
	}
	b.props = append(b.props, vdom.PropEntry{Key: key, Value: value})
}

// Children appends child nodes, in order, skipping nils so optional
// children (e.g. `cond && node` patterns) can be threaded through
// without an extra branch at the call site.
func (b *ElementBuilder) Children(children ...*vdom.VNode) *ElementBuilder {
	for _, c := range children {
		if c != nil {
			b.kids = append(b.kids, c)
		}
	}
	return b
}

// Child appends a single child node.
func (b *ElementBuilder) Child(child *vdom.VNode) *ElementBuilder {
	if child != nil {
		b.kids = append(b.kids, child)
	}
	return b
}

// Text appends a text child.
func (b *ElementBuilder) Text(text string) *ElementBuilder {
	b.kids = append(b.kids, vdom.NewText(text))
	return b
}

// Class sets the class attribute.
func (b *ElementBuilder) Class(class string) *ElementBuilder {
	b.setProp("class", class)
	return b
}

// Style sets the style attribute.
func (b *ElementBuilder) Style(style string) *ElementBuilder {
	b.setProp("style", style)
	return b
}

// ID sets the id attribute.
func (b *ElementBuilder) ID(id string) *ElementBuilder {
	b.setProp("id", id)
	return b
}

// OnClick sets the onclick handler.
func (b *ElementBuilder) OnClick(handler interface{}) *ElementBuilder {
	b.setProp("onclick", handler)
	return b
}

// OnChange sets the onchange handler.
func (b *ElementBuilder) OnChange(handler interface{}) *ElementBuilder {
	b.setProp("onchange", handler)
	return b
}

// OnInput sets the oninput handler.
func (b *ElementBuilder) OnInput(handler interface{}) *ElementBuilder {
	b.setProp("oninput", handler)
	return b
}

// OnSubmit sets the onsubmit handler.
func (b *ElementBuilder) OnSubmit(handler interface{}) *ElementBuilder {
	b.setProp("onsubmit", handler)
	return b
}

// If conditionally runs fn against the builder, for inline conditional
// chaining (e.g. Div().If(active, func(b *ElementBuilder) { b.Class("active") })).
func (b *ElementBuilder) If(cond bool, fn func(*ElementBuilder)) *ElementBuilder {
	if cond {
		fn(b)
	}
	return b
}

// Build materializes the accumulated tag/props/children into a VNode.
func (b *ElementBuilder) Build() *vdom.VNode {
	children := make([]vdom.VNode, len(b.kids))
	for i, c := range b.kids {
		if c != nil {
			children[i] = *c
		}
	}
	return &vdom.VNode{
		Kind:  vdom.KindElement,
		Tag:   b.tag,
		Props: b.props,
		Kids:  children,
	}
}

// Element constructors. Each returns a fresh *ElementBuilder for the
// named tag; the VEX route files chain Class/Children/attribute
// setters directly off the result and call Build at the root.

func Div() *ElementBuilder      { return newElementBuilder("div") }
func Span() *ElementBuilder     { return newElementBuilder("span") }
func P() *ElementBuilder        { return newElementBuilder("p") }
func H1() *ElementBuilder       { return newElementBuilder("h1") }
func H2() *ElementBuilder       { return newElementBuilder("h2") }
func H3() *ElementBuilder       { return newElementBuilder("h3") }
func H4() *ElementBuilder       { return newElementBuilder("h4") }
func A() *ElementBuilder        { return newElementBuilder("a") }
func Button() *ElementBuilder   { return newElementBuilder("button") }
func Input() *ElementBuilder    { return newElementBuilder("input") }
func Textarea() *ElementBuilder { return newElementBuilder("textarea") }
func Select() *ElementBuilder   { return newElementBuilder("select") }
func Option() *ElementBuilder   { return newElementBuilder("option") }
func Form() *ElementBuilder     { return newElementBuilder("form") }
func Label() *ElementBuilder    { return newElementBuilder("label") }
func Ul() *ElementBuilder       { return newElementBuilder("ul") }
func Ol() *ElementBuilder       { return newElementBuilder("ol") }
func Li() *ElementBuilder       { return newElementBuilder("li") }
func Nav() *ElementBuilder      { return newElementBuilder("nav") }
func Header() *ElementBuilder   { return newElementBuilder("header") }
func Footer() *ElementBuilder   { return newElementBuilder("footer") }
func Main() *ElementBuilder     { return newElementBuilder("main") }
func Article() *ElementBuilder  { return newElementBuilder("article") }
func Section() *ElementBuilder  { return newElementBuilder("section") }
func Table() *ElementBuilder    { return newElementBuilder("table") }
func Thead() *ElementBuilder    { return newElementBuilder("thead") }
func Tbody() *ElementBuilder    { return newElementBuilder("tbody") }
func Tr() *ElementBuilder       { return newElementBuilder("tr") }
func Td() *ElementBuilder       { return newElementBuilder("td") }
func Th() *ElementBuilder       { return newElementBuilder("th") }
func Img() *ElementBuilder      { return newElementBuilder("img") }
func Svg() *ElementBuilder      { return newElementBuilder("svg") }
func Path() *ElementBuilder     { return newElementBuilder("path") }
func Circle() *ElementBuilder   { return newElementBuilder("circle") }
func Strong() *ElementBuilder   { return newElementBuilder("strong") }
func Em() *ElementBuilder       { return newElementBuilder("em") }
func Small() *ElementBuilder    { return newElementBuilder("small") }
func Code() *ElementBuilder     { return newElementBuilder("code") }
func Pre() *ElementBuilder      { return newElementBuilder("pre") }
