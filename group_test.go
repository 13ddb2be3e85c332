package routemanager

import (
	"testing"

	"github.com/fasthttp/routemanager/statetree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func catchPanic(testFunc func()) (recv interface{}) {
	defer func() {
		recv = recover()
	}()

	testFunc()
	return
}

func TestGroup(t *testing.T) {
	m := New()
	top := m.Group("")

	assert.Empty(t, top.ID())

	posts := top.Route("posts", "posts", statetree.Hooks{})
	top.NotFound(statetree.Hooks{})

	g := m.Group("posts")
	assert.Equal(t, "posts", g.ID())

	post := g.Route("post", ":postId", statetree.Hooks{})
	g.Group("post").Pathless("show", statetree.Hooks{})
	g.Group("post").Regexp("archive", `(\d{4})`, []string{"year"}, statetree.Hooks{})

	assert.Equal(t, posts, post.Parent())
	assert.Equal(t, "posts.post.show", m.Find("posts.post.show").ID())
	assert.Equal(t, statetree.KindRegexp, m.Find("posts.post.archive").Pattern().Kind())
	assert.Equal(t, m.Tree().NotFound(), m.Find(statetree.NotFoundName))

	res, ok := m.SetLocation("posts/1/2012")
	require.True(t, ok)
	assert.Equal(t, "2012", res.Chain.Params.Get("year"))
	assert.Equal(t, "1", res.Chain.Params.Get("postId"))
}

func TestGroupPanics(t *testing.T) {
	m := New()
	m.Group("").Route("posts", "posts", statetree.Hooks{})

	if err := catchPanic(func() { m.Group("nope") }); err == nil {
		t.Error("an error was expected with an unknown state id")
	}

	if err := catchPanic(func() { m.Group("posts").Group("nope") }); err == nil {
		t.Error("an error was expected with an unknown child name")
	}

	if err := catchPanic(func() { m.Group("posts").NotFound(statetree.Hooks{}) }); err == nil {
		t.Error("an error was expected when declaring the 404 state below the top level")
	}

	if err := catchPanic(func() { m.Group("").Route("posts", "other", statetree.Hooks{}) }); err == nil {
		t.Error("an error was expected with a duplicated name")
	}

	if err := catchPanic(func() { m.Group("posts").Route("bad", "a//b", statetree.Hooks{}) }); err == nil {
		t.Error("an error was expected with an invalid route")
	}
}

func TestGroupMiddleware(t *testing.T) {
	var calls []string

	tag := func(name string) HookMiddleware {
		return func(next statetree.HookFunc) statetree.HookFunc {
			return func(ctx *statetree.HookContext) {
				calls = append(calls, name+" "+ctx.State.Name())
				next(ctx)
			}
		}
	}

	m := New()

	top := m.Group("")
	top.AddMiddleware(tag("outer"))
	top.Route("a", "a", statetree.Hooks{
		Enter: func(ctx *statetree.HookContext) { calls = append(calls, "enter a") },
	})

	sub := top.Group("a")
	sub.AddMiddleware(tag("inner"))
	sub.Route("b", "b", statetree.Hooks{
		Exit: func(ctx *statetree.HookContext) { calls = append(calls, "exit b") },
	})

	// Middleware added afterwards is not inherited by existing subgroups.
	top.AddMiddleware(tag("late"))

	m.SetLocation("a/b")
	assert.Equal(t, []string{"outer a", "enter a", "outer b", "inner b"}, calls)

	calls = nil
	m.Reset()
	assert.Equal(t, []string{"outer b", "inner b", "exit b", "outer a"}, calls)
}

func TestGroupWithoutMiddleware(t *testing.T) {
	m := New()

	s := m.Group("").Pathless("home", statetree.Hooks{})

	// Hooks are kept as given, so states without hooks stay without hooks.
	assert.NotPanics(t, func() {
		s.Enter(&statetree.HookContext{State: s})
		s.Exit(&statetree.HookContext{State: s})
	})
}
