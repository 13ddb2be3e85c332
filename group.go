package routemanager

import (
	"github.com/fasthttp/routemanager/statetree"
)

// HookMiddleware wraps the enter and exit hooks of the states declared by a
// group.
type HookMiddleware func(statetree.HookFunc) statetree.HookFunc

// Group declares states under a common parent.
type Group struct {
	manager    *Manager
	parent     *statetree.State // nil for the top level
	middleware []HookMiddleware
}

// Group returns a group declaring states under the state with the given ID.
// An empty ID is the top level.
func (m *Manager) Group(id string) *Group {
	g := &Group{manager: m}

	if len(id) == 0 {
		return g
	}

	g.parent = m.tree.Find(id)
	if g.parent == nil {
		panic("no state registered with id '" + id + "'")
	}

	return g
}

// Group returns a subgroup declaring states under the child with the given
// name. The subgroup inherits the middleware of the group.
func (g *Group) Group(name string) *Group {
	var parent *statetree.State

	if g.parent == nil {
		parent = g.manager.tree.Find(name)
	} else {
		parent = g.parent.Child(name)
	}

	if parent == nil {
		panic("no state named '" + name + "' in group '" + g.ID() + "'")
	}

	return &Group{
		manager:    g.manager,
		parent:     parent,
		middleware: append([]HookMiddleware(nil), g.middleware...),
	}
}

// ID returns the ID of the parent state, empty for the top level.
func (g *Group) ID() string {
	if g.parent == nil {
		return ""
	}

	return g.parent.ID()
}

// Route is a shortcut for group.Handle(name, statetree.Route(route), hooks)
func (g *Group) Route(name, route string, hooks statetree.Hooks) *statetree.State {
	return g.Handle(name, statetree.Route(route), hooks)
}

// Pathless is a shortcut for group.Handle(name, statetree.Pathless(), hooks)
func (g *Group) Pathless(name string, hooks statetree.Hooks) *statetree.State {
	return g.Handle(name, statetree.Pathless(), hooks)
}

// Regexp is a shortcut for group.Handle(name, statetree.Regexp(expr, captures...), hooks)
func (g *Group) Regexp(name, expr string, captures []string, hooks statetree.Hooks) *statetree.State {
	return g.Handle(name, statetree.Regexp(expr, captures...), hooks)
}

// NotFound declares the reserved 404 state. It must be called on the top
// level group.
func (g *Group) NotFound(hooks statetree.Hooks) *statetree.State {
	if g.parent != nil {
		panic("the " + statetree.NotFoundName + " state must be declared at the top level")
	}

	return g.Handle(statetree.NotFoundName, statetree.Pathless(), hooks)
}

// Handle declares a new state with the given pattern and hooks and returns
// it, so priority and enabled flag can be set.
func (g *Group) Handle(name string, pattern statetree.Pattern, hooks statetree.Hooks) *statetree.State {
	s := statetree.NewState(name, pattern).SetHooks(g.applyMiddleware(hooks))

	if g.parent == nil {
		g.manager.Add(s)
	} else {
		g.parent.Add(s)
	}

	return s
}

// AddMiddleware adds a middleware wrapping the hooks of the states declared
// afterwards by the group.
func (g *Group) AddMiddleware(mw HookMiddleware) {
	g.middleware = append(g.middleware, mw)
}

func (g *Group) applyMiddleware(hooks statetree.Hooks) statetree.Hooks {
	if len(g.middleware) == 0 {
		return hooks
	}

	return statetree.Hooks{
		Enter: g.wrap(hooks.Enter),
		Exit:  g.wrap(hooks.Exit),
	}
}

func (g *Group) wrap(fn statetree.HookFunc) statetree.HookFunc {
	if fn == nil {
		fn = func(*statetree.HookContext) {}
	}

	for i := len(g.middleware) - 1; i >= 0; i-- {
		fn = g.middleware[i](fn)
	}

	return fn
}
