package server

import (
	"fmt"
	"sync"

	"github.com/arborfw/arbor/pkg/reactive"
	"github.com/arborfw/arbor/pkg/scheduler"
	"github.com/arborfw/arbor/pkg/vango"
	"github.com/arborfw/arbor/pkg/vango/vdom"
)

// ComponentInstance is one server-driven instance of a component: its
// render function plus the reactive state it closes over. Rendering
// is wired as a Scope-owned Effect (spec.md §4.11) rather than a plain
// function call, so a SetState write is what schedules the fiber —
// there is no separate manual "mark dirty" step at the call site.
type ComponentInstance struct {
	ID        string
	SessionID string
	Fiber     *scheduler.Fiber
	Context   *vango.Context

	RenderFunc func(ctx *vango.Context) *vdom.VNode

	// state is a reactive keyed container: SetState triggers the render
	// Effect's dependents exactly like any other reactive write.
	state *reactive.Object

	scope  *reactive.Scope
	effect *reactive.Effect

	// Event handlers registered by the component
	mu       sync.RWMutex
	handlers map[uint32]func() // nodeID -> handler

	// LastVNode is the tree produced by the most recent Effect run.
	LastVNode *vdom.VNode
}

// NewComponentInstance creates a new component instance. The render
// Effect itself is wired by Bind once a Fiber exists.
func NewComponentInstance(id, sessionID string, render func(ctx *vango.Context) *vdom.VNode) *ComponentInstance {
	return &ComponentInstance{
		ID:         id,
		SessionID:  sessionID,
		RenderFunc: render,
		state:      reactive.NewObject(nil),
		handlers:   make(map[uint32]func()),
	}
}

// Bind creates the component's render Effect inside its own Scope and
// ties the Effect's scheduler callback to marking fiber dirty. Once
// bound, a render is produced by calling Refresh from the fiber's
// RenderFunc — never by calling RenderFunc directly.
func (c *ComponentInstance) Bind(sched *scheduler.Scheduler, fiber *scheduler.Fiber) {
	c.Fiber = fiber
	c.scope = reactive.NewScope(true)
	c.scope.Run(func() {
		c.effect = reactive.NewEffect(func() {
			c.LastVNode = c.RenderFunc(c.Context)
		}, func() {
			sched.MarkDirty(fiber)
		})
		c.scope.Own(c.effect)
	})
}

// Refresh re-runs the render Effect (refreshing its tracked
// dependencies) and returns the freshly rendered tree. The scheduler
// calls this from the fiber's RenderFunc during a flush.
func (c *ComponentInstance) Refresh() *vdom.VNode {
	c.effect.Run()
	return c.LastVNode
}

// Stop tears down the component's render Effect and any child scopes.
func (c *ComponentInstance) Stop() {
	if c.scope != nil {
		c.scope.Stop()
	}
}

// SetState writes key in the component's reactive state container.
// Any dependent read during the last render (RenderFunc calling
// GetState) means this write marks the fiber dirty automatically
// through the render Effect's scheduler callback.
func (c *ComponentInstance) SetState(key string, value interface{}) {
	c.state.Set(key, value)
}

// GetState tracks key's dependency and retrieves component state.
func (c *ComponentInstance) GetState(key string) (interface{}, bool) {
	return c.state.Get(key)
}

// RegisterHandler registers an event handler for a node.
func (c *ComponentInstance) RegisterHandler(nodeID uint32, handler func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers[nodeID] = handler

	// Also register the mapping in the global registry
	// so that events can find this component by node ID
	GetRegistry().MapNodeToComponent(nodeID, c)
}

// HandleEvent processes an event for this component.
func (c *ComponentInstance) HandleEvent(nodeID uint32, eventType string) error {
	c.mu.RLock()
	handler, ok := c.handlers[nodeID]
	c.mu.RUnlock()

	if !ok {
		return fmt.Errorf("no handler for node %d", nodeID)
	}

	// Execute the handler; any SetState call inside it schedules a
	// re-render through the component's render Effect.
	handler()

	return nil
}

// ComponentRegistry manages component instances
type ComponentRegistry struct {
	mu         sync.RWMutex
	instances  map[string]*ComponentInstance // instanceID -> instance
	bySession  map[string][]*ComponentInstance // sessionID -> instances
	byNodeID   map[uint32]*ComponentInstance // nodeID -> instance
}

// NewComponentRegistry creates a new registry
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		instances: make(map[string]*ComponentInstance),
		bySession: make(map[string][]*ComponentInstance),
		byNodeID:  make(map[uint32]*ComponentInstance),
	}
}

// Register adds a component instance to the registry
func (r *ComponentRegistry) Register(instance *ComponentInstance) {
	r.mu.Lock()
	defer r.mu.Unlock()
	
	r.instances[instance.ID] = instance
	r.bySession[instance.SessionID] = append(r.bySession[instance.SessionID], instance)
}

// Unregister removes a component instance
func (r *ComponentRegistry) Unregister(instanceID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	
	instance, ok := r.instances[instanceID]
	if !ok {
		return
	}
	
	delete(r.instances, instanceID)
	
	// Remove from session list
	if sessions, ok := r.bySession[instance.SessionID]; ok {
		for i, inst := range sessions {
			if inst.ID == instanceID {
				r.bySession[instance.SessionID] = append(sessions[:i], sessions[i+1:]...)
				break
			}
		}
	}
	
	// Remove node mappings
	for nodeID, inst := range r.byNodeID {
		if inst.ID == instanceID {
			delete(r.byNodeID, nodeID)
		}
	}
}

// GetByID retrieves a component by instance ID
func (r *ComponentRegistry) GetByID(id string) (*ComponentInstance, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	instance, ok := r.instances[id]
	return instance, ok
}

// GetByNodeID retrieves a component by node ID
func (r *ComponentRegistry) GetByNodeID(nodeID uint32) (*ComponentInstance, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	instance, ok := r.byNodeID[nodeID]
	return instance, ok
}

// GetBySession retrieves all components for a session
func (r *ComponentRegistry) GetBySession(sessionID string) []*ComponentInstance {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.bySession[sessionID]
}

// MapNodeToComponent maps a node ID to a component instance
func (r *ComponentRegistry) MapNodeToComponent(nodeID uint32, instance *ComponentInstance) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byNodeID[nodeID] = instance
}

// CleanupSession removes all components for a session
func (r *ComponentRegistry) CleanupSession(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	
	instances := r.bySession[sessionID]
	for _, instance := range instances {
		delete(r.instances, instance.ID)
		
		// Remove node mappings
		for nodeID, inst := range r.byNodeID {
			if inst.ID == instance.ID {
				delete(r.byNodeID, nodeID)
			}
		}
	}
	
	delete(r.bySession, sessionID)
}

// Global registry instance
var globalRegistry = NewComponentRegistry()

// GetRegistry returns the global component registry
func GetRegistry() *ComponentRegistry {
	return globalRegistry
}