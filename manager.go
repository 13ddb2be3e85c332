package routemanager

import (
	"context"
	"sync"
	"time"

	"github.com/fasthttp/routemanager/statetree"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/fasthttp/routemanager"

// Manager owns a state tree and its active chain. Each location change
// resolves the location, exits the states that are no longer active,
// deepest first, then enters the new ones, shallowest first.
type Manager struct {
	tree *statetree.Tree

	mu       sync.Mutex
	chain    *statetree.Chain
	location string

	before []Middleware
	after  []Middleware

	logger  zerolog.Logger
	metrics *metrics
	tracer  trace.Tracer
}

// Result describes one location change.
type Result struct {
	// ID identifies the transition in logs, spans and hook contexts.
	ID string

	Location string
	Outcome  statetree.Outcome

	// Chain is the resolved chain, nil when Outcome is Unmatched.
	Chain *statetree.Chain

	Transition statetree.Transition
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger. Transitions are logged at debug level and
// unmatched locations at warn level.
func WithLogger(logger zerolog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithMetrics registers the manager metrics in the given registerer.
func WithMetrics(registerer prometheus.Registerer) Option {
	return func(m *Manager) {
		m.metrics = newMetrics(registerer)
	}
}

// WithTracer sets the tracer used to record one span per location change.
// The default tracer comes from the global OpenTelemetry provider.
func WithTracer(tracer trace.Tracer) Option {
	return func(m *Manager) {
		m.tracer = tracer
	}
}

// New returns a new Manager with an empty state tree.
func New(opts ...Option) *Manager {
	m := &Manager{
		tree:   statetree.New(),
		logger: zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.tracer == nil {
		m.tracer = otel.Tracer(tracerName)
	}

	return m
}

// Add adds top-level states.
//
// WARNING: Not concurrency-safe! Build the tree before the first location
// change.
func (m *Manager) Add(states ...*statetree.State) {
	m.tree.Add(states...)
}

// Tree returns the state tree.
func (m *Manager) Tree() *statetree.Tree {
	return m.tree
}

// Find returns the state with the given ID, or nil.
func (m *Manager) Find(id string) *statetree.State {
	return m.tree.Find(id)
}

// SetLocation is a shortcut for SetLocationContext(context.Background(), location).
func (m *Manager) SetLocation(location string) (*Result, bool) {
	return m.SetLocationContext(context.Background(), location)
}

// SetLocationContext resolves the location and runs the transition from the
// active chain to the resolved one. It returns false, leaving the active
// chain untouched, when the location is unmatched.
//
// Location changes are serialized: a change waits for the one in progress to
// finish. Hooks run while the change is in progress and must not change the
// location of the same manager.
func (m *Manager) SetLocationContext(ctx context.Context, location string) (*Result, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	res := &Result{
		ID:       uuid.NewString(),
		Location: location,
	}

	_, span := m.tracer.Start(ctx, "routemanager.SetLocation",
		trace.WithAttributes(
			attribute.String("routemanager.location", location),
			attribute.String("routemanager.transition_id", res.ID),
		),
	)
	defer span.End()

	m.location = location

	start := time.Now()
	chain, outcome := m.tree.Resolve(location)
	m.metrics.observeResolution(outcome, time.Since(start))

	res.Outcome = outcome
	span.SetAttributes(attribute.String("routemanager.outcome", outcome.String()))

	if outcome == statetree.Unmatched {
		m.logger.Warn().
			Str("location", location).
			Str("transition", res.ID).
			Msg("No state matches the location")
		span.SetStatus(codes.Error, "unmatched location")

		return res, false
	}

	res.Chain = chain
	res.Transition = statetree.Diff(m.chain, chain)

	m.logger.Debug().
		Str("location", location).
		Str("transition", res.ID).
		Str("outcome", outcome.String()).
		Str("chain", chain.String()).
		Int("exits", len(res.Transition.Exit)).
		Int("enters", len(res.Transition.Enter)).
		Msg("Location resolved")

	for _, mw := range m.before {
		mw.Handle(res)
	}

	m.run(res)
	m.chain = chain

	for _, mw := range m.after {
		mw.Handle(res)
	}

	span.SetAttributes(
		attribute.String("routemanager.state", chain.Leaf().ID()),
		attribute.Int("routemanager.exits", len(res.Transition.Exit)),
		attribute.Int("routemanager.enters", len(res.Transition.Enter)),
	)

	return res, true
}

// run calls the exit hooks, deepest first, then the enter hooks, shallowest
// first. A state leaves the active chain right before its exit hook and
// joins it right before its enter hook, so a panicking hook never gets a
// state exited or entered twice.
func (m *Manager) run(res *Result) {
	previous := m.chain

	active := 0
	if previous != nil {
		active = len(previous.Links)
	}

	for _, link := range res.Transition.Exit {
		active--
		m.chain = previous.Prefix(active)

		m.logger.Debug().Str("state", link.State.ID()).Str("transition", res.ID).Msg("Exiting state")
		link.State.Exit(m.hookContext(res, link.State))
		m.metrics.observeTransition(transitionExit, link.State)
	}

	for _, link := range res.Transition.Enter {
		active++
		m.chain = res.Chain.Prefix(active)

		m.logger.Debug().Str("state", link.State.ID()).Str("transition", res.ID).Msg("Entering state")
		link.State.Enter(m.hookContext(res, link.State))
		m.metrics.observeTransition(transitionEnter, link.State)
	}
}

func (m *Manager) hookContext(res *Result, state *statetree.State) *statetree.HookContext {
	return &statetree.HookContext{
		State:        state,
		Params:       res.Transition.Params,
		Location:     res.Location,
		TransitionID: res.ID,
	}
}

// Reset exits every active state, deepest first, and clears the active chain.
func (m *Manager) Reset() *Result {
	m.mu.Lock()
	defer m.mu.Unlock()

	res := &Result{
		ID:         uuid.NewString(),
		Outcome:    statetree.Unmatched,
		Transition: statetree.Diff(m.chain, nil),
	}

	m.run(res)
	m.chain = nil
	m.location = ""

	return res
}

// Location returns the last location given to the manager, matched or not.
func (m *Manager) Location() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.location
}

// Chain returns the active chain, or nil.
func (m *Manager) Chain() *statetree.Chain {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.chain
}

// CurrentState returns the active leaf state, or nil.
func (m *Manager) CurrentState() *statetree.State {
	return m.Chain().Leaf()
}

// Params returns a copy of the merged params of the active chain.
func (m *Manager) Params() statetree.Params {
	chain := m.Chain()
	if chain == nil {
		return statetree.Params{}
	}

	return chain.Params.Clone()
}
