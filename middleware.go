package routemanager

// Middleware is run around the hooks of a location change.
type Middleware interface {
	Handle(*Result)
}

// MiddlewareFunc is a function adapter for Middleware.
type MiddlewareFunc func(*Result)

// Handle calls fn.
func (fn MiddlewareFunc) Handle(res *Result) {
	fn(res)
}

// Before registers middlewares run after a location is resolved and before
// any exit hook. They are skipped for unmatched locations.
//
// WARNING: Not concurrency-safe!
func (m *Manager) Before(mws ...Middleware) {
	m.before = append(m.before, mws...)
}

// After registers middlewares run once the new chain is active.
//
// WARNING: Not concurrency-safe!
func (m *Manager) After(mws ...Middleware) {
	m.after = append(m.after, mws...)
}
