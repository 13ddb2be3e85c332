// Package routemanager routes locations to a tree of states.
//
// A location such as "posts/1/comments" is resolved against the state tree
// (see package statetree) into a chain of states from the top level down to
// a leaf. The Manager keeps the active chain and, on each location change,
// exits the states that are no longer part of it, deepest first, then
// enters the new ones, shallowest first. A state whose params changed is
// exited and entered again, along with everything below it.
//
//	m := routemanager.New()
//	m.Add(
//		statetree.NewState("posts", statetree.Route("posts")).Add(
//			statetree.NewState("post", statetree.Route(":postId")).
//				OnEnter(func(ctx *statetree.HookContext) {
//					fmt.Println("post", ctx.Params.Get("postId"))
//				}),
//		),
//	)
//	m.SetLocation("posts/1")
package routemanager
