// Package sim provides a scripted sampling engine so TrendBench can be tried
// (and tested) without a real benchmark engine attached. It fabricates
// trends; nothing is actually timed.
package sim

import (
	"math/rand"
	"strings"
	"time"

	"trendbench/internal/engine"
	"trendbench/internal/suite"
)

// Engine steps through the suite's leaves in declaration order, spending
// StepsPerLeaf steps on each, then reports the scripted (or synthesized)
// trend for it.
type Engine struct {
	StepsPerLeaf int

	// Script maps dotted leaf paths (see Key) to predeclared fits.
	// Unscripted leaves get a synthesized plausible trend.
	Script map[string]suite.Fit

	// StepDelay makes each step cost wall time, so the live UI has
	// something to show. Leave zero in tests.
	StepDelay time.Duration

	rng *rand.Rand
}

func New(stepsPerLeaf int, seed int64) *Engine {
	if stepsPerLeaf < 1 {
		stepsPerLeaf = 1
	}
	return &Engine{
		StepsPerLeaf: stepsPerLeaf,
		Script:       make(map[string]suite.Fit),
		rng:          rand.New(rand.NewSource(seed)),
	}
}

// Key builds the Script key for a leaf path.
func Key(path ...string) string {
	return strings.Join(path, ".")
}

type runState struct {
	spec  *suite.Node
	paths [][]string
	fits  map[string]suite.Fit
	leaf  int // index of the leaf currently being sampled
	left  int // steps remaining for that leaf
}

func (e *Engine) Begin(spec *suite.Node) engine.State {
	return &runState{
		spec:  spec,
		paths: spec.LeafPaths(),
		fits:  make(map[string]suite.Fit),
		left:  e.StepsPerLeaf,
	}
}

func (e *Engine) Classify(s engine.State) (*suite.Outcome, bool) {
	rs := s.(*runState)
	if rs.leaf < len(rs.paths) {
		return nil, false
	}
	return e.assemble(rs.spec, nil, rs.fits), true
}

func (e *Engine) Step(s engine.State) engine.State {
	rs := s.(*runState)
	if e.StepDelay > 0 {
		time.Sleep(e.StepDelay)
	}

	// The previous state is consumed; the fits map carries over because
	// nobody may touch the old state again.
	next := *rs
	next.left--
	if next.left <= 0 {
		key := Key(next.paths[next.leaf]...)
		fit, ok := e.Script[key]
		if !ok {
			fit = e.synthesize()
		}
		next.fits[key] = fit
		next.leaf++
		next.left = e.StepsPerLeaf
	}
	return &next
}

// synthesize fabricates a believable trend for an unscripted leaf.
func (e *Engine) synthesize() suite.Fit {
	return suite.Fit{Trend: suite.Trend{
		Slope:         20 + e.rng.Float64()*800, // ns per sample unit
		Intercept:     e.rng.Float64() * 50,
		GoodnessOfFit: 0.955 + e.rng.Float64()*0.045,
	}}
}

func (e *Engine) assemble(n *suite.Node, prefix []string, fits map[string]suite.Fit) *suite.Outcome {
	path := append(append([]string{}, prefix...), n.Name)
	o := &suite.Outcome{Name: n.Name, Kind: n.Kind}
	switch n.Kind {
	case suite.Single:
		o.Fit = fits[Key(path...)]
	case suite.Series:
		for _, v := range n.Variants {
			o.Variants = append(o.Variants, suite.VariantFit{
				Name: v,
				Fit:  fits[Key(append(path, v)...)],
			})
		}
	case suite.Group:
		for _, c := range n.Children {
			o.Children = append(o.Children, e.assemble(c, path, fits))
		}
	}
	return o
}
