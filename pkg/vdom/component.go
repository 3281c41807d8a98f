package vdom

// ComponentType identifies a component kind. Descriptors compare component
// identity by *ComponentType pointer, so declare each type once:
//
//	var Counter = vdom.Stateful("Counter", func(c *vdom.Instance) any {
//	    return vdom.Span(vdom.Textf("%d", c.State["n"]))
//	})
type ComponentType struct {
	// Name is used in logs, metrics and tree documents.
	Name string

	// Stateful marks components whose Instance carries state across
	// renders. Stateful components are never reused through an unkeyed
	// structural match found by scanning; see ReusableByStructure.
	Stateful bool

	// Render produces the component's children payload.
	Render func(c *Instance) any

	// Init runs once when an instance is created, before the first render.
	Init func(c *Instance)

	// DidMount runs after the pass that created the instance has finished.
	DidMount func(c *Instance)

	// WillUnmount runs before the instance's host nodes are detached.
	WillUnmount func(c *Instance)

	// ChildContext extends the context passed to descendants.
	ChildContext func(c *Instance) map[string]any
}

// ReusableByStructure reports whether an unkeyed descriptor of this type may
// adopt an old instance found by the fallback scan. Function components keep
// nothing between renders so reuse is safe; stateful ones are not reused.
func (t *ComponentType) ReusableByStructure() bool {
	return t != nil && !t.Stateful
}

// Func declares a function component.
func Func(name string, render func(c *Instance) any) *ComponentType {
	return &ComponentType{Name: name, Render: render}
}

// Stateful declares a stateful component.
func Stateful(name string, render func(c *Instance) any) *ComponentType {
	return &ComponentType{Name: name, Stateful: true, Render: render}
}

// Instance is a mounted component.
type Instance struct {
	Type    *ComponentType
	Props   Props
	Content any            // Children passed to the component
	Context map[string]any // Context inherited from ancestors
	State   map[string]any // Persistent state (stateful components)

	// Renders counts Render calls on this instance.
	Renders int

	// VNode is the descriptor currently bound to this instance.
	VNode *VNode

	mounted   bool
	unmounted bool
}

// NewInstance creates an instance for t.
func NewInstance(t *ComponentType) *Instance {
	return &Instance{
		Type:  t,
		State: make(map[string]any),
	}
}

// Mounted reports whether DidMount has run.
func (c *Instance) Mounted() bool {
	return c.mounted
}

// Unmounted reports whether the instance has been torn down.
func (c *Instance) Unmounted() bool {
	return c.unmounted
}

// MarkMounted records that DidMount ran.
func (c *Instance) MarkMounted() {
	c.mounted = true
}

// MarkUnmounted records that the instance was torn down.
func (c *Instance) MarkUnmounted() {
	c.unmounted = true
}

// Render calls the component's render function.
func (c *Instance) Render() any {
	c.Renders++
	if c.Type == nil || c.Type.Render == nil {
		return nil
	}
	return c.Type.Render(c)
}
