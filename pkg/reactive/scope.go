package reactive

// Scope is a hierarchical container owning Effects and child Scopes
// with a combined lifetime (spec.md §4.6). Creating a Scope links it
// to the currently active Scope unless Detached is requested.
type Scope struct {
	active bool
	paused bool

	effects  []*Effect
	children []*Scope
	cleanups []func()

	parent     *Scope
	indexInParent int
}

// currentScope is the process-wide "currently active scope" pointer
// (spec.md §4.6, §5).
var currentScope *Scope

// CurrentScope returns the scope presently active, or nil.
func CurrentScope() *Scope { return currentScope }

// NewScope creates a Scope. Unless detached, it is linked as a child
// of the currently active scope so stopping the parent stops it too.
func NewScope(detached bool) *Scope {
	s := &Scope{active: true, indexInParent: -1}
	if !detached && currentScope != nil {
		s.parent = currentScope
		s.indexInParent = len(currentScope.children)
		currentScope.children = append(currentScope.children, s)
	}
	return s
}

// Run makes s the active scope for the duration of fn, restoring the
// previous active scope afterward (even if fn panics).
func (s *Scope) Run(fn func()) {
	prev := currentScope
	currentScope = s
	defer func() { currentScope = prev }()
	fn()
}

// Own registers an Effect as belonging to this scope, so Stop/Pause/
// Resume cascade to it.
func (s *Scope) Own(eff *Effect) {
	s.effects = append(s.effects, eff)
}

// OnCleanup registers a callback run when the scope is stopped, after
// its effects and before its children are stopped.
func (s *Scope) OnCleanup(fn func()) {
	s.cleanups = append(s.cleanups, fn)
}

// Pause recursively pauses every owned effect and child scope.
func (s *Scope) Pause() {
	if s.paused {
		return
	}
	s.paused = true
	for _, e := range s.effects {
		e.Pause()
	}
	for _, c := range s.children {
		c.Pause()
	}
}

// Resume recursively resumes every owned effect and child scope.
func (s *Scope) Resume() {
	if !s.paused {
		return
	}
	s.paused = false
	for _, e := range s.effects {
		e.Resume()
	}
	for _, c := range s.children {
		c.Resume()
	}
}

// Stop stops every owned effect, runs cleanup callbacks, stops every
// child scope, and detaches itself from its parent in O(1) using the
// index saved at creation (swap-with-last).
func (s *Scope) Stop() {
	s.stop(true)
}

// stop is Stop's implementation. detach controls whether s removes
// itself from its parent's child list; a cascading Stop from the
// parent passes false since the parent is about to drop its whole
// child list anyway, avoiding O(n^2) churn and the hazard of mutating
// a slice while ranging over it.
func (s *Scope) stop(detach bool) {
	if !s.active {
		return
	}
	s.active = false

	for _, e := range s.effects {
		e.Stop()
	}
	s.effects = nil

	for _, fn := range s.cleanups {
		fn()
	}
	s.cleanups = nil

	children := s.children
	s.children = nil
	for _, c := range children {
		c.stop(false)
	}

	if detach && s.parent != nil && s.indexInParent >= 0 {
		siblings := s.parent.children
		last := len(siblings) - 1
		if s.indexInParent <= last {
			siblings[s.indexInParent] = siblings[last]
			siblings[s.indexInParent].indexInParent = s.indexInParent
			s.parent.children = siblings[:last]
		}
	}
	s.parent = nil
	s.indexInParent = -1
}

// Active reports whether the scope has not been stopped.
func (s *Scope) Active() bool { return s.active }
