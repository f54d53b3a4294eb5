// Package executor drives the publish run: it repeatedly computes the
// frontier of packages whose dependencies are all published, dispatches the
// wave concurrently, and records progress in the publish state. An empty
// frontier with packages still outstanding means the declarations are cyclic
// and the run fails without partial continuation.
package executor

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/vk/shipwave/internal/catalog"
	"github.com/vk/shipwave/internal/ctxlog"
	"github.com/vk/shipwave/internal/dag"
)

// Publisher is the dispatcher contract the executor hands each scheduled
// package to. A nil return means the package counts as published.
type Publisher interface {
	Publish(ctx context.Context, pkg *catalog.Package) error
}

// Executor owns the publish state for one run. Construct with New; not safe
// to reuse across runs.
type Executor struct {
	graph      *dag.Graph
	catalog    catalog.Catalog
	publisher  Publisher
	numWorkers int

	mu        sync.Mutex
	published map[string]struct{}
}

// New creates an Executor over the graph and catalog. workers caps how many
// wave members publish concurrently; values below 1 mean sequential.
func New(g *dag.Graph, cat catalog.Catalog, pub Publisher, workers int) *Executor {
	if workers < 1 {
		workers = 1
	}
	return &Executor{
		graph:      g,
		catalog:    cat,
		publisher:  pub,
		numWorkers: workers,
		published:  make(map[string]struct{}, g.Len()),
	}
}

// Run executes waves until every node is published or the schedule stalls.
// Any publish failure aborts the run immediately; packages published in
// earlier waves stay published.
func (e *Executor) Run(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)

	for wave := 0; ; wave++ {
		state := e.snapshot()
		if len(state) == e.graph.Len() {
			logger.Debug("All packages published, run complete.", "waves", wave)
			return nil
		}

		frontier := e.graph.Frontier(state)
		if len(frontier) == 0 {
			// No progress is possible: the remaining packages wait on each other.
			return &dag.CycleError{Remaining: e.graph.Remaining(state)}
		}

		logger.Info("🌊 Dispatching wave.", "wave", wave, "packages", frontier)
		grp, waveCtx := errgroup.WithContext(ctx)
		grp.SetLimit(e.numWorkers)
		for _, name := range frontier {
			pkg := e.catalog[name]
			grp.Go(func() error {
				if err := e.publisher.Publish(waveCtx, pkg); err != nil {
					return fmt.Errorf("publishing %s: %w", pkg.Name, err)
				}
				e.markPublished(pkg.Name)
				return nil
			})
		}
		if err := grp.Wait(); err != nil {
			return err
		}
	}
}

// Published reports how many packages this run has marked published.
func (e *Executor) Published() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.published)
}

// markPublished adds one package to the publish state. The state only ever
// grows; there is no removal path.
func (e *Executor) markPublished(name string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.published[name] = struct{}{}
}

// snapshot copies the publish state so frontier computation never races
// with in-flight wave members.
func (e *Executor) snapshot() map[string]struct{} {
	e.mu.Lock()
	defer e.mu.Unlock()
	state := make(map[string]struct{}, len(e.published))
	for name := range e.published {
		state[name] = struct{}{}
	}
	return state
}
