package dag

import (
	"context"
	"sort"

	"github.com/vk/shipwave/internal/catalog"
	"github.com/vk/shipwave/internal/ctxlog"
)

// Graph is the directed dependency graph over catalog package names.
// Node set is exactly the catalog's key set; every edge target is a node.
type Graph struct {
	// deps maps a package name to the set of in-catalog packages it depends on.
	deps map[string]map[string]struct{}
}

// Build constructs the graph from the catalog. For every package, each
// declared dependency name becomes an edge only if that name is itself a
// catalog package; out-of-catalog names are assumed already available and
// dropped. Self-references are ignored. Build has no error path: a package
// with no usable dependency declarations simply has no edges.
func Build(ctx context.Context, cat catalog.Catalog) *Graph {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Build: starting graph construction.", "package_count", len(cat))

	g := &Graph{deps: make(map[string]map[string]struct{}, len(cat))}
	for name, pkg := range cat {
		edges := make(map[string]struct{})
		for dep := range pkg.Dependencies {
			if dep == name {
				continue
			}
			if _, ok := cat[dep]; !ok {
				logger.Debug("Build: dropping out-of-catalog dependency.", "package", name, "dependency", dep)
				continue
			}
			edges[dep] = struct{}{}
		}
		g.deps[name] = edges
	}

	logger.Debug("Build: graph construction complete.", "node_count", len(g.deps))
	return g
}

// Len returns the number of nodes in the graph.
func (g *Graph) Len() int {
	return len(g.deps)
}

// Dependencies returns the sorted in-catalog dependency names of the given
// package, or nil if the package is not a node.
func (g *Graph) Dependencies(name string) []string {
	edges, ok := g.deps[name]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(edges))
	for dep := range edges {
		out = append(out, dep)
	}
	sort.Strings(out)
	return out
}

// Frontier returns the sorted names of all nodes that are not yet published
// and whose every dependency is already published. A node with no edges is
// eligible in the first frontier it appears in.
func (g *Graph) Frontier(published map[string]struct{}) []string {
	var frontier []string
	for name, edges := range g.deps {
		if _, done := published[name]; done {
			continue
		}
		ready := true
		for dep := range edges {
			if _, done := published[dep]; !done {
				ready = false
				break
			}
		}
		if ready {
			frontier = append(frontier, name)
		}
	}
	sort.Strings(frontier)
	return frontier
}

// Remaining returns the sorted names of all nodes not yet published.
func (g *Graph) Remaining(published map[string]struct{}) []string {
	var remaining []string
	for name := range g.deps {
		if _, done := published[name]; !done {
			remaining = append(remaining, name)
		}
	}
	sort.Strings(remaining)
	return remaining
}
