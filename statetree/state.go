package statetree

import (
	"sort"
	"strings"

	gstrings "github.com/savsgio/gotils/strings"
	"go.uber.org/atomic"
)

var (
	// Always is an enabled flag that is always set.
	Always Enabled = constant(true)

	// Never is an enabled flag that is never set.
	Never Enabled = constant(false)
)

func (c constant) Enabled() bool {
	return bool(c)
}

// EnabledIf returns Always or Never.
func EnabledIf(enabled bool) Enabled {
	if enabled {
		return Always
	}

	return Never
}

// Enabled calls fn.
func (fn EnabledFunc) Enabled() bool {
	return fn()
}

// NewToggle returns a toggle with the given initial value.
func NewToggle(enabled bool) *Toggle {
	return &Toggle{v: atomic.NewBool(enabled)}
}

// Enabled returns the current value of the toggle.
func (t *Toggle) Enabled() bool {
	return t.v.Load()
}

// Set sets the toggle. The new value is seen by the next resolution.
func (t *Toggle) Set(enabled bool) {
	t.v.Store(enabled)
}

// NewState returns a new state with the given name and pattern.
//
// The name must not be empty and must not contain '.'.
func NewState(name string, pattern Pattern) *State {
	switch {
	case len(name) == 0:
		panic("state name must not be empty")
	case strings.Contains(name, idSeparator):
		panic("state name '" + name + "' must not contain '" + idSeparator + "'")
	}

	return &State{
		name:    name,
		pattern: pattern,
	}
}

// Name returns the name of the state.
func (s *State) Name() string {
	return s.name
}

// ID returns the names of the state and its ancestors joined by '.', from
// the top level down (e.g. "posts.comments").
func (s *State) ID() string {
	names := make([]string, 0, 4)

	for n := s; n != nil && !n.root; n = n.parent {
		names = append(names, n.name)
	}

	for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
		names[i], names[j] = names[j], names[i]
	}

	return strings.Join(names, idSeparator)
}

// Pattern returns the route pattern of the state.
func (s *State) Pattern() Pattern {
	return s.pattern
}

// Parent returns the parent state, or nil for a top-level or detached state.
func (s *State) Parent() *State {
	if s.parent == nil || s.parent.root {
		return nil
	}

	return s.parent
}

// Children returns the children in declaration order.
func (s *State) Children() []*State {
	return append([]*State(nil), s.children...)
}

// IsLeaf reports whether the state has no children.
func (s *State) IsLeaf() bool {
	return len(s.children) == 0
}

// Child returns the child with the given name, or nil.
func (s *State) Child(name string) *State {
	for _, child := range s.children {
		if child.name == name {
			return child
		}
	}

	return nil
}

// Find returns the descendant with the given relative ID (e.g.
// "post.comments"), or nil.
func (s *State) Find(id string) *State {
	n := s

	for _, name := range strings.Split(id, idSeparator) {
		if n = n.Child(name); n == nil {
			return nil
		}
	}

	return n
}

// Priority returns the priority of the state.
func (s *State) Priority() int {
	return int(s.priority.Load())
}

// SetPriority sets the priority used to order the state among its siblings.
// Higher priorities are tried first.
func (s *State) SetPriority(priority int) *State {
	s.priority.Store(int64(priority))

	return s
}

// Enabled reports whether the state may currently be resolved.
func (s *State) Enabled() bool {
	return s.enabled == nil || s.enabled.Enabled()
}

// SetEnabled sets the enabled flag. A nil flag means always enabled.
func (s *State) SetEnabled(enabled Enabled) *State {
	s.enabled = enabled

	return s
}

// OnEnter sets the enter hook.
func (s *State) OnEnter(fn HookFunc) *State {
	s.hooks.Enter = fn

	return s
}

// OnExit sets the exit hook.
func (s *State) OnExit(fn HookFunc) *State {
	s.hooks.Exit = fn

	return s
}

// SetHooks sets both hooks.
func (s *State) SetHooks(hooks Hooks) *State {
	s.hooks = hooks

	return s
}

// Enter runs the enter hook, if any.
func (s *State) Enter(ctx *HookContext) {
	if s.hooks.Enter != nil {
		s.hooks.Enter(ctx)
	}
}

// Exit runs the exit hook, if any.
func (s *State) Exit(ctx *HookContext) {
	if s.hooks.Exit != nil {
		s.hooks.Exit(ctx)
	}
}

// Add appends children to the state, keeping declaration order.
//
// WARNING: Not concurrency-safe! Build the tree before resolving.
func (s *State) Add(children ...*State) *State {
	for _, child := range children {
		switch {
		case child == nil:
			panic("child state must not be nil")
		case child.root:
			panic("the tree root can't be added as a child")
		case child.parent != nil:
			panic("state '" + child.name + "' already belongs to '" + child.parent.ID() + "'")
		case s.isDescendantOf(child):
			panic("state '" + child.name + "' can't be added to its own subtree")
		case gstrings.Include(s.childNames(), child.name):
			panic("a state named '" + child.name + "' is already registered under '" + s.ID() + "'")
		}

		child.parent = s
		s.children = append(s.children, child)
	}

	return s
}

func (s *State) isDescendantOf(ancestor *State) bool {
	for n := s; n != nil; n = n.parent {
		if n == ancestor {
			return true
		}
	}

	return false
}

func (s *State) childNames() []string {
	names := make([]string, len(s.children))
	for i, child := range s.children {
		names[i] = child.name
	}

	return names
}

// candidates returns the enabled children ordered by priority, highest
// first. Equal priorities keep declaration order. The reserved 404 state of
// the root is left out.
func (s *State) candidates() candidates {
	cs := make(candidates, 0, len(s.children))

	for _, child := range s.children {
		if s.root && child.name == NotFoundName {
			continue
		}

		if !child.Enabled() {
			continue
		}

		cs = append(cs, candidate{state: child, priority: child.priority.Load()})
	}

	sort.Stable(cs)

	return cs
}

// Len returns the number of candidates.
func (cs candidates) Len() int {
	return len(cs)
}

// Swap swaps two candidates.
func (cs candidates) Swap(i, j int) {
	cs[i], cs[j] = cs[j], cs[i]
}

// Less checks if the candidate 'i' must be tried before the candidate 'j'.
func (cs candidates) Less(i, j int) bool {
	return cs[i].priority > cs[j].priority
}
