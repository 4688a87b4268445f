package symbolic

// TrimSetting selects which trimming reduction an SccConfig applies
// before pivoting. The zero value is TrimNone.
type TrimSetting int

const (
	// TrimNone performs no trimming (identity computation).
	TrimNone TrimSetting = iota
	// TrimSources removes relative sources (states with no predecessor
	// within the candidate universe) until a fixed point.
	TrimSources
	// TrimSinks removes relative sinks until a fixed point.
	TrimSinks
	// TrimBoth tries sources first, falling back to sinks within a step.
	TrimBoth
)

// String renders the canonical CLI spelling of a TrimSetting.
func (t TrimSetting) String() string {
	switch t {
	case TrimNone:
		return "none"
	case TrimSources:
		return "sources"
	case TrimSinks:
		return "sinks"
	case TrimBoth:
		return "both"
	default:
		return "unknown"
	}
}

// ParseTrimSetting parses the canonical CLI spelling of a TrimSetting.
func ParseTrimSetting(s string) (TrimSetting, bool) {
	switch s {
	case "none":
		return TrimNone, true
	case "sources":
		return TrimSources, true
	case "sinks":
		return TrimSinks, true
	case "both":
		return TrimBoth, true
	default:
		return TrimNone, false
	}
}

// ReachabilityConfig bounds a single reachability (or trap/trimming)
// computation: the graph it runs over, the active variables it may use,
// and the resource caps that turn into Cancelled results when exceeded.
type ReachabilityConfig struct {
	Graph Graph
	// ActiveVariables is the ordered set of variables the step operator
	// may use. Every entry must satisfy 0 <= v < Graph.VariableCount().
	ActiveVariables []VariableId
	// MaxIterations caps the number of fixpoint iterations; 0 means
	// unbounded.
	MaxIterations int
	// MaxSymbolicSize caps the SCV's SymbolicSize() after each union; 0
	// means unbounded.
	MaxSymbolicSize int
}

// SccConfig configures the SCC enumeration generators.
type SccConfig struct {
	Graph           Graph
	ActiveVariables []VariableId
	// Trim selects the trimming reduction applied to each candidate
	// universe before pivoting.
	Trim TrimSetting
	// FilterLongLived, when set, drops every colour of a candidate SCC in
	// which some single variable update leads out of the SCC from all of
	// its states (§4.5).
	FilterLongLived bool
}

// AttractorConfig configures the attractor enumeration generators.
type AttractorConfig struct {
	Graph           Graph
	ActiveVariables []VariableId
	MaxSymbolicSize int
}

// ToReachabilityConfig converts an AttractorConfig into a
// ReachabilityConfig with the same graph, active variables and symbolic
// size cap.
func (c AttractorConfig) ToReachabilityConfig() ReachabilityConfig {
	return ReachabilityConfig{
		Graph:           c.Graph,
		ActiveVariables: c.ActiveVariables,
		MaxSymbolicSize: c.MaxSymbolicSize,
	}
}
