package routemanager

import (
	"testing"

	"github.com/fasthttp/routemanager/statetree"
	"github.com/stretchr/testify/assert"
)

func TestResultString(t *testing.T) {
	m := New()
	m.Add(
		statetree.NewState("post", statetree.Route("posts/:postId")).Add(
			statetree.NewState("comment", statetree.Route("comments/:commentId")),
		),
	)

	res, _ := m.SetLocation("posts/1/comments/2")
	assert.Equal(t, "enter post\nenter post.comment\nparam commentId=2\nparam postId=1\n", res.String())

	res, _ = m.SetLocation("posts/1/comments/3")
	assert.Equal(t, "exit post.comment\nenter post.comment\nparam commentId=3\nparam postId=1\n", res.String())

	res, _ = m.SetLocation("posts/1/comments/3")
	assert.Equal(t, "param commentId=3\nparam postId=1\n", res.String())

	res = m.Reset()
	assert.Equal(t, "exit post.comment\nexit post\n", res.String())
}

func TestResultStringUnmatched(t *testing.T) {
	m := New()

	res, ok := m.SetLocation("nope")

	assert.False(t, ok)
	assert.Empty(t, res.String())
}
