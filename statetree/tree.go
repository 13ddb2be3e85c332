package statetree

// New returns an empty tree.
func New() *Tree {
	return &Tree{
		root: &State{root: true},
	}
}

// Add adds top-level states to the tree.
//
// WARNING: Not concurrency-safe!
func (t *Tree) Add(states ...*State) {
	t.root.Add(states...)
}

// States returns the top-level states in declaration order.
func (t *Tree) States() []*State {
	return t.root.Children()
}

// Find returns the state with the given ID (e.g. "posts.comments"), or nil.
func (t *Tree) Find(id string) *State {
	if len(id) == 0 {
		return nil
	}

	return t.root.Find(id)
}

// NotFound returns the reserved top-level 404 state, or nil.
func (t *Tree) NotFound() *State {
	return t.root.Child(NotFoundName)
}

// Walk calls fn for every state, parents before children, in declaration
// order. depth is 0 for top-level states.
func (t *Tree) Walk(fn func(s *State, depth int)) {
	var walk func(s *State, depth int)

	walk = func(s *State, depth int) {
		fn(s, depth)

		for _, child := range s.children {
			walk(child, depth+1)
		}
	}

	for _, s := range t.root.children {
		walk(s, 0)
	}
}

// Resolve finds the chain of states matching the location.
//
// Only leaf states can be routed to: a chain always ends at a leaf whose
// ancestors, together with the leaf, consume every segment. Among siblings,
// enabled states are tried by descending priority, then declaration order,
// and a state whose subtree can't consume the rest of the location is
// skipped in favor of the next sibling.
//
// If nothing matches, the enabled top-level 404 state, if any, is returned
// as a single element chain with the NotFound outcome. Otherwise the
// outcome is Unmatched and the chain is nil.
func (t *Tree) Resolve(location string) (*Chain, Outcome) {
	segments := SplitLocation(location)

	if links, ok := t.root.resolve(segments, 0); ok {
		return newChain(location, segments, links, false), Matched
	}

	if nf := t.NotFound(); nf != nil && nf.Enabled() {
		return newChain(location, segments, []Link{{State: nf}}, true), NotFound
	}

	return nil, Unmatched
}

// resolve tries the candidates among the children of s against segments.
// On success it returns a slice holding depth empty links followed by the
// links of the matched subtree, so every level fills its own slot on the
// way back up.
func (s *State) resolve(segments []string, depth int) ([]Link, bool) {
	for _, c := range s.candidates() {
		child := c.state

		for _, m := range child.pattern.alternatives(segments) {
			rest := segments[m.Consumed:]

			if child.IsLeaf() {
				if len(rest) > 0 {
					continue
				}

				links := make([]Link, depth+1)
				links[depth] = Link{State: child, Params: m.Params, Consumed: m.Consumed}

				return links, true
			}

			if links, ok := child.resolve(rest, depth+1); ok {
				links[depth] = Link{State: child, Params: m.Params, Consumed: m.Consumed}

				return links, true
			}
		}
	}

	return nil, false
}
