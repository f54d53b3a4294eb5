package catalog

import "sort"

// Package is the immutable record for a single publishable package found in
// the workspace. Dependencies holds only declared names; version ranges are
// irrelevant to ordering and are discarded at load time.
type Package struct {
	Name         string
	Version      string
	Dir          string
	Dependencies map[string]struct{}
}

// DependencyNames returns the declared dependency names in sorted order.
func (p *Package) DependencyNames() []string {
	names := make([]string, 0, len(p.Dependencies))
	for name := range p.Dependencies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Catalog maps package name to its record. It is built once by Load and
// read-only afterwards.
type Catalog map[string]*Package

// Names returns all package names in sorted order.
func (c Catalog) Names() []string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
