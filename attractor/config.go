// Package attractor implements attractor enumeration: the Xie–Beerel
// generator (§4.6), a simplified chain specialised to bottom SCCs, and
// the ITGR preprocessor (§4.7) that shrinks the universe and prunes dead
// variables before Xie–Beerel runs over it.
package attractor

import "github.com/katalvlaran/boolscc/symbolic"

// Config configures the Xie–Beerel generator.
type Config struct {
	Attr symbolic.AttractorConfig
}
