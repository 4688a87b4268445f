// Package scc implements the two SCC enumeration generators (§4.3, §4.4)
// and the filtering they share (§4.5): forward–backward, which explores a
// worklist of candidate universes by splitting on a pivot's forward/
// backward reachable sets, and chain, which reuses the boundary of an
// already-processed piece to seed the next pivot instead of picking an
// arbitrary vertex.
//
// Both generators are step.GeneratorStep implementations over a pure-value
// State; live sub-computations (trimming, reachability) are held as their
// own Snapshot bytes rather than boxed objects, so the whole generator
// state round-trips through YAML without any backend-specific code here.
package scc

import (
	"github.com/katalvlaran/boolscc/reach"
	"github.com/katalvlaran/boolscc/symbolic"
)

// Config configures either SCC generator.
type Config struct {
	Scc symbolic.SccConfig
	// ReachAlgo selects the step operator the forward/backward sub-
	// reachability computations use. The zero value, reach.AlgoSaturation,
	// is the algorithm both §4.3 and §4.4 describe; reach.AlgoBFS gives
	// the `fwd-bwd-bfs` CLI variant the same generator under a different
	// reachability engine, which the algorithm-agreement property (§8)
	// requires to produce the same SCCs.
	ReachAlgo reach.Algo
}
