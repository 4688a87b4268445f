package scc

import "github.com/katalvlaran/boolscc/symbolic"

// filterSCC applies the two-stage filter of §4.5 to a raw candidate SCC:
// trivial-colour removal always runs; the long-lived filter runs only
// when longLived is set. The result may be empty, meaning the candidate
// was not a genuine (non-trivial, or non-long-lived) SCC under any
// colour.
func filterSCC(g symbolic.Graph, vars []symbolic.VariableId, c symbolic.SCV, longLived bool) symbolic.SCV {
	if c == nil || c.IsEmpty() {
		return c
	}

	validColors := c.Minus(c.PickVertex()).Colors()
	c = c.IntersectColors(validColors)
	if c.IsEmpty() || !longLived {
		return c
	}

	safe := c.Colors()
	for _, v := range vars {
		if safe.IsEmpty() {
			break
		}
		escape := g.VarCanPostOut(v, c)
		stay := c.Minus(escape)
		safe = safe.Intersect(stay.Colors())
	}
	return c.IntersectColors(safe)
}
