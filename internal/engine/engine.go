// Package engine defines the boundary to the sampling engine that actually
// times benchmark bodies and fits trends. TrendBench only drives it; the
// engine's bookkeeping stays opaque behind State.
package engine

import "trendbench/internal/suite"

// State is the engine-owned progress handle for a run in flight. The driver
// never inspects it, it only threads it back into Classify and Step. Each
// Step consumes the previous State; holding on to an old one is a bug.
type State interface{}

// Engine is the consumed sampling capability.
type Engine interface {
	// Begin builds the initial run state for a suite.
	Begin(spec *suite.Node) State

	// Classify inspects progress without mutating it. Once the run is
	// finished it returns the result tree and true; the tree's shape
	// mirrors the suite the run began from.
	Classify(s State) (*suite.Outcome, bool)

	// Step performs exactly one incremental unit of sampling and returns
	// the successor state. It must not be called on a finished state.
	Step(s State) State
}
