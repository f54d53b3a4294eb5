// Package dag builds the dependency graph over the package catalog and
// computes the frontier of publishable packages. The graph contains only
// edges whose target is itself a catalog package; dependencies on anything
// outside the workspace can never block a publish and are dropped at build
// time. The graph is immutable once built.
package dag
