package statetree

import "sort"

// Get returns the value bound to name, or an empty string.
func (p Params) Get(name string) string {
	return p[name]
}

// Equal reports whether p and other bind the same names to the same values.
// A nil Params equals an empty one.
func (p Params) Equal(other Params) bool {
	if len(p) != len(other) {
		return false
	}

	for name, value := range p {
		if v, ok := other[name]; !ok || v != value {
			return false
		}
	}

	return true
}

// Clone returns a copy of p.
func (p Params) Clone() Params {
	if p == nil {
		return nil
	}

	c := make(Params, len(p))
	for name, value := range p {
		c[name] = value
	}

	return c
}

// Names returns the bound names in lexical order.
func (p Params) Names() []string {
	names := make([]string, 0, len(p))
	for name := range p {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// with binds name to value, allocating the map on first use.
func (p Params) with(name, value string) Params {
	if p == nil {
		p = make(Params)
	}

	p[name] = value

	return p
}

// mergeParams folds the params of the links in order, so deeper links
// override shallower ones.
func mergeParams(links []Link) Params {
	merged := make(Params)

	for _, link := range links {
		for name, value := range link.Params {
			merged[name] = value
		}
	}

	return merged
}
