package varelim

// Closure saturates the affects graph to its transitive closure (§4.4): if
// x affects y and y affects z, x must also be recorded as affecting z,
// since a later mutation of x invalidates y's recorded value and
// therefore z's too. It runs to a fixed point — the graph only ever
// grows, and the name set is finite, so this always terminates.
//
// Whenever an edge source -> target is added and source is not a local
// binding, target is marked as depending on a global; direct edges are
// already marked this way by AnalyzeInitializers, so this only needs to
// handle edges introduced by the closure itself.
func Closure(t *Table) {
	if len(t.Affects) == 0 {
		return
	}
	sources := make([]string, 0, len(t.Affects))
	for _, name := range t.Order {
		if _, ok := t.Affects[name]; ok {
			sources = append(sources, name)
		}
	}

	for {
		changed := false
		for _, s := range sources {
			nonLocal := !isLocalSource(t, s)
			mids := make([]string, 0, len(t.Affects[s]))
			for mid := range t.Affects[s] {
				mids = append(mids, mid)
			}
			for _, mid := range mids {
				for target := range t.Affects[mid] {
					if t.Affects[s][target] {
						continue
					}
					t.Affects[s][target] = true
					changed = true
					if nonLocal {
						if b, ok := t.Bindings[target]; ok {
							b.DependsOnGlobal = true
						}
					}
				}
			}
		}
		if !changed {
			return
		}
	}
}

func isLocalSource(t *Table, name string) bool {
	b, ok := t.Bindings[name]
	return ok && b.IsLocal
}
