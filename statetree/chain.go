package statetree

import (
	"github.com/valyala/bytebufferpool"
)

func newChain(location string, segments []string, links []Link, notFound bool) *Chain {
	return &Chain{
		Location: location,
		Segments: segments,
		Links:    links,
		Params:   mergeParams(links),
		NotFound: notFound,
	}
}

// Leaf returns the last state of the chain, or nil for an empty chain.
func (c *Chain) Leaf() *State {
	if c == nil || len(c.Links) == 0 {
		return nil
	}

	return c.Links[len(c.Links)-1].State
}

// States returns the states of the chain, root first.
func (c *Chain) States() []*State {
	if c == nil {
		return nil
	}

	states := make([]*State, len(c.Links))
	for i, link := range c.Links {
		states[i] = link.State
	}

	return states
}

// Prefix returns the chain made of the first n links, nil when n is not
// positive and c itself when n covers every link.
func (c *Chain) Prefix(n int) *Chain {
	if c == nil || n <= 0 {
		return nil
	}

	if n >= len(c.Links) {
		return c
	}

	return newChain(c.Location, c.Segments, c.Links[:n:n], c.NotFound)
}

// Consumed returns the number of segments consumed along the chain.
func (c *Chain) Consumed() int {
	n := 0

	if c != nil {
		for _, link := range c.Links {
			n += link.Consumed
		}
	}

	return n
}

// String renders the chain as "posts > post(postId=1) > comments".
func (c *Chain) String() string {
	if c == nil {
		return ""
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	for i, link := range c.Links {
		if i > 0 {
			buf.WriteString(" > ")
		}

		buf.WriteString(link.State.name)

		if len(link.Params) == 0 {
			continue
		}

		buf.WriteByte('(')

		for j, name := range link.Params.Names() {
			if j > 0 {
				buf.WriteByte(',')
			}

			buf.WriteString(name)
			buf.WriteByte('=')
			buf.WriteString(link.Params[name])
		}

		buf.WriteByte(')')
	}

	return buf.String()
}
