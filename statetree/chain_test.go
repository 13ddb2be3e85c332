package statetree

import (
	"reflect"
	"testing"
)

func TestChainString(t *testing.T) {
	tree := New()
	tree.Add(
		NewState("posts", Route("posts")).Add(
			NewState("post", Route(":postId/:slug")).Add(
				NewState("comments", Route("comments")),
			),
		),
	)

	chain, _ := tree.Resolve("posts/1/hello/comments")

	want := "posts > post(postId=1,slug=hello) > comments"
	if s := chain.String(); s != want {
		t.Errorf("Chain.String() == %q, want %q", s, want)
	}
}

func TestChainNil(t *testing.T) {
	var chain *Chain

	if chain.Leaf() != nil {
		t.Error("Chain.Leaf() of a nil chain must be nil")
	}

	if chain.States() != nil {
		t.Error("Chain.States() of a nil chain must be nil")
	}

	if n := chain.Consumed(); n != 0 {
		t.Errorf("Chain.Consumed() == %d, want 0", n)
	}

	if s := chain.String(); s != "" {
		t.Errorf("Chain.String() == %q, want empty", s)
	}
}

func TestChainPrefix(t *testing.T) {
	tree := New()
	tree.Add(
		NewState("post", Route("posts/:postId")).Add(
			NewState("comment", Route("comments/:commentId")),
		),
	)

	chain, _ := tree.Resolve("posts/1/comments/2")

	if p := chain.Prefix(0); p != nil {
		t.Errorf("Chain.Prefix(0) == %v, want nil", p)
	}

	if p := chain.Prefix(2); p != chain {
		t.Error("Chain.Prefix(len) must return the chain itself")
	}

	p := chain.Prefix(1)
	if ids := chainIDs(p); !reflect.DeepEqual(ids, []string{"post"}) {
		t.Errorf("Chain.Prefix(1) states == %v, want [post]", ids)
	}

	if !p.Params.Equal(Params{"postId": "1"}) {
		t.Errorf("Chain.Prefix(1) params == %v, want postId=1", p.Params)
	}

	if len(chain.Links) != 2 {
		t.Errorf("Chain.Prefix must not modify the chain, got %d links", len(chain.Links))
	}
}
