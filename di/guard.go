package di

// cycleGuard tracks the components under construction within one resolution chain.
// A fresh guard is created for every top-level Get and threaded through the
// recursive field resolutions of that call.
type cycleGuard struct {
	active map[string]struct{}
	chain  []string
}

func newCycleGuard() *cycleGuard {
	return &cycleGuard{active: map[string]struct{}{}}
}

// enter marks name as under construction, failing if it already is.
func (g *cycleGuard) enter(name string) error {
	if _, ok := g.active[name]; ok {
		return CircularDependencyError{Name: name, Chain: append([]string(nil), g.chain...)}
	}
	g.active[name] = struct{}{}
	g.chain = append(g.chain, name)
	return nil
}

// leave pops name once its construction finished, so siblings sharing a
// dependency are not reported as cycles.
func (g *cycleGuard) leave(name string) {
	delete(g.active, name)
	if n := len(g.chain); n > 0 && g.chain[n-1] == name {
		g.chain = g.chain[:n-1]
	}
}
