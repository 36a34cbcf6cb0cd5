package reactive

import "sync"

// ObjectOp classifies a write delivered to Object's observers, per
// spec.md §4.7's new/old-value write protocol.
type ObjectOp int

const (
	// OpAdd is a write to a key that did not previously exist.
	OpAdd ObjectOp = iota
	// OpSet is a write to a key that existed, with a changed value.
	OpSet
	// OpDelete removes an existing key.
	OpDelete
	// OpClear wipes every key at once (collections only).
	OpClear
)

// iterateKey is the magic key meaning "any iteration or unknown-key
// read", tracked whenever a reader walks the whole object rather than
// one named field.
const iterateKey = "\x00iterate"

// keyedDeps is the per-target map of key -> Dep backing Object, Array
// and the collection wrappers: spec.md §4.7's "target -> key -> Dep"
// map, scoped to a single target instance instead of a process-global
// weak map (Go has no first-class weak map; see DESIGN.md).
type keyedDeps struct {
	mu   sync.Mutex
	deps map[interface{}]*Dep
}

func newKeyedDeps() *keyedDeps {
	return &keyedDeps{deps: make(map[interface{}]*Dep)}
}

// depFor returns the Dep for key, creating it (and wiring this map as
// its owner, so an unused Dep is dropped once its subscriber count
// reaches zero) on first access.
func (k *keyedDeps) depFor(key interface{}) *Dep {
	k.mu.Lock()
	defer k.mu.Unlock()
	d, ok := k.deps[key]
	if !ok {
		d = NewDep()
		d.SetOwner(k)
		k.deps[key] = d
	}
	return d
}

// releaseDep implements depOwner: once a key's Dep has no subscribers
// left, drop the map entry instead of holding it forever.
func (k *keyedDeps) releaseDep(dep *Dep) {
	k.mu.Lock()
	defer k.mu.Unlock()
	for key, d := range k.deps {
		if d == dep {
			delete(k.deps, key)
			return
		}
	}
}

func (k *keyedDeps) track(key interface{}) {
	k.depFor(key).Track()
}

func (k *keyedDeps) trigger(key interface{}) {
	k.depFor(key).Trigger()
}

// triggerAll fires every live key's Dep at once, used for collection
// Clear (spec.md §4.7(e)).
func (k *keyedDeps) triggerAll() {
	k.mu.Lock()
	deps := make([]*Dep, 0, len(k.deps))
	for _, d := range k.deps {
		deps = append(deps, d)
	}
	k.mu.Unlock()
	for _, d := range deps {
		d.Trigger()
	}
}

// proxyIdentity is embedded by every observer wrapper so Raw() and
// IsReactive()/IsReadonly()/IsShallow() have a uniform home, mirroring
// spec.md §4.7's sentinel-property identity protocol.
type proxyIdentity struct {
	readonly bool
	shallow  bool
}

func (p *proxyIdentity) IsReactive() bool { return !p.readonly }
func (p *proxyIdentity) IsReadonly() bool { return p.readonly }
func (p *proxyIdentity) IsShallow() bool  { return p.shallow }

// Object is a dynamic reactive key/value object: the Go stand-in for
// "reactive(plainObject)" in a host without structural property
// interception. Reads of a key subscribe that key's Dep; reads that
// walk the whole object (Keys, Range) subscribe the iterate key.
type Object struct {
	proxyIdentity
	mu   sync.Mutex
	data map[string]any
	deps *keyedDeps

	// proxyOf, when set, is the Object this one wraps read-only (so
	// Raw() returns the underlying reactive Object, per "readonly
	// wrapping composes (readonly over reactive)"); writes through the
	// wrapper panic.
	proxyOf *Object
}

// readonlyCache maps a reactive Object to its read-only view, so
// repeated Readonly() calls return the same wrapper. NewObject does not
// deduplicate: every call builds a new Object with its own Dep graph,
// so callers hold onto and reuse the returned *Object.
var (
	readonlyCache   = map[*Object]*Object{}
	readonlyCacheMu sync.Mutex
)

// NewObject builds a reactive Object seeded from initial (copied, not
// aliased).
func NewObject(initial map[string]any) *Object {
	data := make(map[string]any, len(initial))
	for k, v := range initial {
		data[k] = v
	}
	return &Object{data: data, deps: newKeyedDeps()}
}

// Readonly returns a read-only view over o: reads track exactly as o's
// do, but Set/Delete panic. Repeated calls on the same o return the
// same wrapper, matching the raw-identity invariant `raw(raw(x)) ==
// raw(x)`.
func (o *Object) Readonly() *Object {
	if o.readonly {
		return o
	}
	readonlyCacheMu.Lock()
	defer readonlyCacheMu.Unlock()
	if ro, ok := readonlyCache[o]; ok {
		return ro
	}
	ro := &Object{
		proxyIdentity: proxyIdentity{readonly: true, shallow: o.shallow},
		data:          o.data,
		deps:          o.deps,
		proxyOf:       o,
	}
	readonlyCache[o] = ro
	return ro
}

// Raw returns the underlying reactive Object (or o itself if o is not
// a readonly wrapper), satisfying `raw(reactive(x)) == x`.
func (o *Object) Raw() *Object {
	if o.proxyOf != nil {
		return o.proxyOf
	}
	return o
}

// Get tracks key's Dep and returns its value and whether it was
// present.
func (o *Object) Get(key string) (any, bool) {
	o.deps.track(key)
	o.mu.Lock()
	defer o.mu.Unlock()
	v, ok := o.data[key]
	return v, ok
}

// Has tracks key's Dep (a presence check is still a read of that key)
// and reports whether it exists.
func (o *Object) Has(key string) bool {
	_, ok := o.Get(key)
	return ok
}

// Keys tracks the iterate key (new/removed keys invalidate any reader
// that enumerated them) and returns a snapshot of the current keys.
func (o *Object) Keys() []string {
	o.deps.track(iterateKey)
	o.mu.Lock()
	defer o.mu.Unlock()
	keys := make([]string, 0, len(o.data))
	for k := range o.data {
		keys = append(keys, k)
	}
	return keys
}

// Set writes key, classifying the write as OpAdd or OpSet and
// triggering the key's Dep (and the iterate Dep, on OpAdd, since new
// keys change what a Keys()/Range() reader saw) per spec.md §4.7(c).
// Read-only Objects panic, matching a failed strict-mode proxy trap.
func (o *Object) Set(key string, value any) {
	if o.readonly {
		panic("reactive: Set on a readonly Object")
	}
	o.mu.Lock()
	old, existed := o.data[key]
	if existed && equalAny(old, value) {
		o.mu.Unlock()
		return
	}
	o.data[key] = value
	o.mu.Unlock()

	if existed {
		o.deps.trigger(key)
		return
	}
	o.deps.trigger(key)
	o.deps.trigger(iterateKey)
}

// Delete removes key, triggering its Dep and the iterate Dep, per
// spec.md §4.7(c)'s DELETE classification.
func (o *Object) Delete(key string) {
	if o.readonly {
		panic("reactive: Delete on a readonly Object")
	}
	o.mu.Lock()
	_, existed := o.data[key]
	if !existed {
		o.mu.Unlock()
		return
	}
	delete(o.data, key)
	o.mu.Unlock()

	o.deps.trigger(key)
	o.deps.trigger(iterateKey)
}

// Range tracks the iterate key and walks a snapshot of the current
// entries, so mutation during the callback cannot corrupt the walk.
func (o *Object) Range(fn func(key string, value any)) {
	o.deps.track(iterateKey)
	o.mu.Lock()
	snapshot := make(map[string]any, len(o.data))
	for k, v := range o.data {
		snapshot[k] = v
	}
	o.mu.Unlock()
	for k, v := range snapshot {
		fn(k, v)
	}
}

// equalAny compares two values for the "value actually changed" write
// guard, using the same reflect.DeepEqual policy as State and Computed.
func equalAny(a, b any) bool {
	return valueEqual(a, b)
}
