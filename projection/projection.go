// Package projection is the substrate that turns the event.Event stream
// into queryable state: plugins register Repository values on a Builder,
// Drain dispatches every event to every repository once, in registration
// order, and the resulting Context exposes read-only typed queries.
package projection

import (
	"iter"
	"sort"

	"github.com/protodata-io/protodata/event"
)

// Repository is one plugin-declared projection: Routes maps the event
// kinds this repository cares about to a function extracting the record's
// key from the event, and Apply folds an event into the next state for
// that key. New supplies the zero state for a key seen for the first time.
type Repository[S any] struct {
	New    func() S
	Routes map[event.Kind]func(ev event.Event) (key string, ok bool)
	Apply  func(state S, ev event.Event) S
}

// boundRepository erases S so a Builder can hold repositories of different
// record types in one slice.
type boundRepository interface {
	name() string
	route(ev event.Event) (key string, ok bool)
	apply(key string, ev event.Event)
	snapshot() map[string]any
}

type repositoryInstance[S any] struct {
	repoName string
	repo     Repository[S]
	state    map[string]S
}

func (r *repositoryInstance[S]) name() string { return r.repoName }

func (r *repositoryInstance[S]) route(ev event.Event) (string, bool) {
	route, ok := r.repo.Routes[ev.Kind()]
	if !ok {
		return "", false
	}
	return route(ev)
}

func (r *repositoryInstance[S]) apply(key string, ev event.Event) {
	current, ok := r.state[key]
	if !ok {
		current = r.repo.New()
	}
	r.state[key] = r.repo.Apply(current, ev)
}

func (r *repositoryInstance[S]) snapshot() map[string]any {
	out := make(map[string]any, len(r.state))
	for k, v := range r.state {
		out[k] = v
	}
	return out
}

// Builder accumulates the repositories a plugin registers via Plugin.FillIn.
type Builder struct {
	repos []boundRepository
}

// Register adds a named repository to the substrate. name is the query
// key callers later pass to Query.
func Register[S any](b *Builder, name string, repo Repository[S]) {
	b.repos = append(b.repos, &repositoryInstance[S]{
		repoName: name,
		repo:     repo,
		state:    make(map[string]S),
	})
}

// Drain dispatches every event in seq to every registered repository, in
// registration order, then freezes the accumulated state into a Context.
// Per spec, this must complete fully — and no renderer may observe any
// state — before the returned Context is handed to a renderer.
func (b *Builder) Drain(seq iter.Seq[event.Event]) *Context {
	for ev := range seq {
		for _, r := range b.repos {
			key, ok := r.route(ev)
			if !ok {
				continue
			}
			r.apply(key, ev)
		}
	}

	byName := make(map[string]map[string]any, len(b.repos))
	for _, r := range b.repos {
		byName[r.name()] = r.snapshot()
	}
	return &Context{byName: byName}
}

// Context is the read-only state left after Drain. It is handed to each
// Renderer once per pipeline run and never mutated again.
type Context struct {
	byName map[string]map[string]any
}

// Query returns every record of type S held by the named repository,
// optionally filtered by pred, ordered by key. Map iteration order is
// randomized per run, so results are sorted by key first — the same fix
// optionsFrom applies to proto reflection's unordered Range — to keep
// renderer output deterministic across runs over the same input. An
// unknown name yields an empty result rather than an error: a renderer
// given an unrelated source set and no matching projection must still run.
func Query[S any](ctx *Context, name string, pred func(S) bool) []S {
	records := ctx.byName[name]
	keys := make([]string, 0, len(records))
	for k := range records {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]S, 0, len(records))
	for _, k := range keys {
		s, ok := records[k].(S)
		if !ok {
			continue
		}
		if pred != nil && !pred(s) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// QueryBuilder offers a fluent alternative to calling Query directly,
// matching the select(type) -> QueryBuilder shape renderers are written
// against.
type QueryBuilder[S any] struct {
	ctx  *Context
	name string
	pred func(S) bool
}

// Select begins a typed query against the named repository.
func Select[S any](ctx *Context, name string) *QueryBuilder[S] {
	return &QueryBuilder[S]{ctx: ctx, name: name}
}

// Where narrows the query to records matching pred. Calling Where more
// than once intersects the predicates.
func (q *QueryBuilder[S]) Where(pred func(S) bool) *QueryBuilder[S] {
	prev := q.pred
	if prev == nil {
		q.pred = pred
		return q
	}
	q.pred = func(s S) bool { return prev(s) && pred(s) }
	return q
}

// Results executes the query.
func (q *QueryBuilder[S]) Results() []S {
	return Query[S](q.ctx, q.name, q.pred)
}
