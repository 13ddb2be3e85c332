package statetree

import (
	"regexp"

	"go.uber.org/atomic"
)

// Kind is the kind of a route pattern.
type Kind uint8

// Outcome is the result kind of a resolution.
type Outcome uint8

// Params maps parameter names to the textual values bound from a location.
type Params map[string]string

type part struct {
	kind  Kind
	value string // literal text or parameter name
}

// Pattern matches the route fragment of one state against the remaining
// segments of a location. The zero value is a pathless pattern.
type Pattern struct {
	kind  Kind
	route string
	parts []part

	regex    *regexp.Regexp
	captures []string

	// endAnchored is set when the expression asserts the end of the text,
	// so only the whole remainder can be tested against it.
	endAnchored bool
}

// Match is a successful pattern match.
type Match struct {
	Consumed int
	Params   Params
}

// HookFunc is an enter or exit hook of a state.
type HookFunc func(ctx *HookContext)

// Hooks groups the enter and exit hooks of a state.
type Hooks struct {
	Enter HookFunc
	Exit  HookFunc
}

// HookContext is passed to enter and exit hooks.
type HookContext struct {
	// State is the state being entered or exited.
	State *State

	// Params are the merged parameters of the resolution that triggered the
	// transition.
	Params Params

	// Location is the location that triggered the transition.
	Location string

	// TransitionID correlates every hook call of one transition.
	TransitionID string
}

// Enabled reports whether a state may currently be resolved.
type Enabled interface {
	Enabled() bool
}

// EnabledFunc is a computed enabled flag, evaluated at each resolution.
type EnabledFunc func() bool

// Toggle is an enabled flag that may be flipped from any goroutine.
type Toggle struct {
	v *atomic.Bool
}

type constant bool

// State is a node of the state tree.
type State struct {
	name    string
	pattern Pattern
	root    bool

	priority atomic.Int64
	enabled  Enabled

	parent   *State
	children []*State

	hooks Hooks
}

// candidate is a state together with the priority it had when its siblings
// were ordered.
type candidate struct {
	state    *State
	priority int64
}

type candidates []candidate

// Tree owns the top-level states and resolves locations against them.
type Tree struct {
	root *State
}

// Link is one element of a resolved chain.
type Link struct {
	State    *State
	Params   Params
	Consumed int
}

// Chain is the root-to-leaf sequence of states produced by one resolution.
type Chain struct {
	// Location is the location as given to Resolve.
	Location string

	// Segments are the tokenized segments of Location.
	Segments []string

	Links []Link

	// Params merges the params of every link, deeper links winning.
	Params Params

	// NotFound is set when the chain is the 404 fallback.
	NotFound bool
}

// Transition is the ordered set of states to exit and enter when moving from
// one chain to another.
type Transition struct {
	// Exit lists the states to exit, deepest first.
	Exit []Link

	// Enter lists the states to enter, shallowest first.
	Enter []Link

	// Params are the merged params of the new chain.
	Params Params
}
