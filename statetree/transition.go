package statetree

// Diff computes the transition from the previous chain to the next one.
//
// The chains share a prefix as long as both the states and their own params
// are equal, so a changed param re-enters its state and every state below
// it. States past the prefix are exited deepest first, then the new ones are
// entered shallowest first. Either chain may be nil.
func Diff(previous, next *Chain) Transition {
	var prev, curr []Link

	if previous != nil {
		prev = previous.Links
	}

	if next != nil {
		curr = next.Links
	}

	k := commonPrefix(prev, curr)

	exit := make([]Link, 0, len(prev)-k)
	for i := len(prev) - 1; i >= k; i-- {
		exit = append(exit, prev[i])
	}

	enter := make([]Link, len(curr)-k)
	copy(enter, curr[k:])

	t := Transition{
		Exit:  exit,
		Enter: enter,
	}

	if next != nil {
		t.Params = next.Params.Clone()
	}

	return t
}

// Empty reports whether the transition neither exits nor enters a state.
func (t Transition) Empty() bool {
	return len(t.Exit) == 0 && len(t.Enter) == 0
}

func commonPrefix(a, b []Link) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	for i := 0; i < n; i++ {
		if a[i].State != b[i].State || !a[i].Params.Equal(b[i].Params) {
			return i
		}
	}

	return n
}
