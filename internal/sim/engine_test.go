package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trendbench/internal/report"
	"trendbench/internal/suite"
)

func nestedSpec() *suite.Node {
	return suite.NewGroup("suite",
		suite.NewSingle("warmup"),
		suite.NewGroup("collections",
			suite.NewSeries("remove", "old", "new"),
			suite.NewSingle("insert"),
		),
	)
}

func TestShapePreservation(t *testing.T) {
	spec := nestedSpec()
	eng := New(3, 42)

	state := eng.Begin(spec)
	steps := 0
	for {
		if _, done := eng.Classify(state); done {
			break
		}
		state = eng.Step(state)
		steps++
		require.Less(t, steps, 10_000, "engine does not terminate")
	}

	// Monotonic: once finished, it stays finished.
	tree, done := eng.Classify(state)
	require.True(t, done)
	_, doneAgain := eng.Classify(state)
	assert.True(t, doneAgain)

	// Total work is bounded by the engine's own budget.
	assert.Equal(t, spec.CountLeaves()*eng.StepsPerLeaf, steps)

	// The flattened paths must equal the suite's depth-first leaf paths,
	// in the same order.
	var got [][]string
	for _, r := range report.Flatten(tree) {
		got = append(got, r.Name)
	}
	assert.Equal(t, spec.LeafPaths(), got)
}

func TestScriptedFailuresCarryThrough(t *testing.T) {
	spec := suite.NewSeries("s", "ok", "bad")
	eng := New(2, 1)
	eng.Script[Key("s", "ok")] = suite.Fit{
		Trend: suite.Trend{Slope: 3, Intercept: 10, GoodnessOfFit: 0.99},
	}
	eng.Script[Key("s", "bad")] = suite.Fit{Err: assert.AnError}

	state := eng.Begin(spec)
	for {
		tree, done := eng.Classify(state)
		if !done {
			state = eng.Step(state)
			continue
		}
		require.Len(t, tree.Variants, 2)
		assert.NoError(t, tree.Variants[0].Fit.Err)
		assert.ErrorIs(t, tree.Variants[1].Fit.Err, assert.AnError)
		return
	}
}

func TestSynthesizedTrendsAreClean(t *testing.T) {
	eng := New(1, 7)
	for i := 0; i < 100; i++ {
		f := eng.synthesize()
		require.NoError(t, f.Err)
		assert.Greater(t, f.Trend.Slope, 0.0)
		assert.GreaterOrEqual(t, f.Trend.GoodnessOfFit, 0.95)
		assert.LessOrEqual(t, f.Trend.GoodnessOfFit, 1.0)
	}
}
