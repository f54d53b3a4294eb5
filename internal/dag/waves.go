package dag

// Waves computes the full wave plan for the graph without dispatching
// anything: wave 0 is the frontier of an empty publish state, wave N+1 the
// frontier after every package in waves 0..N is marked published. Every node
// lands in exactly one wave, strictly after all of its dependencies. Returns
// a CycleError if the plan stalls before covering all nodes.
func Waves(g *Graph) ([][]string, error) {
	published := make(map[string]struct{}, g.Len())
	var waves [][]string

	for len(published) < g.Len() {
		frontier := g.Frontier(published)
		if len(frontier) == 0 {
			return nil, &CycleError{Remaining: g.Remaining(published)}
		}
		waves = append(waves, frontier)
		for _, name := range frontier {
			published[name] = struct{}{}
		}
	}

	return waves, nil
}
