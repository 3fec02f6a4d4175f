package report

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trendbench/internal/suite"
)

func goodFit(slope, intercept float64) suite.Fit {
	return suite.Fit{Trend: suite.Trend{Slope: slope, Intercept: intercept, GoodnessOfFit: 0.99}}
}

func TestThroughputFormula(t *testing.T) {
	got := Throughput(suite.Trend{Slope: 2.0, Intercept: 100.0})
	assert.InDelta(t, 1e9*2.0/(1e3-100.0), got, 1e-6)
	assert.InDelta(t, 2222222.2222, got, 0.001)
}

func TestThroughputNonFinite(t *testing.T) {
	v := Throughput(suite.Trend{Slope: 5.0, Intercept: 1000.0})
	assert.True(t, math.IsInf(v, 0) || math.IsNaN(v), "expected non-finite, got %v", v)
}

func TestFlattenSingle(t *testing.T) {
	o := &suite.Outcome{Name: "parseInt", Kind: suite.Single, Fit: goodFit(2.0, 100.0)}

	flat := Flatten(o)
	require.Len(t, flat, 1)
	assert.Equal(t, []string{"parseInt"}, flat[0].Name)
	require.NotNil(t, flat[0].NsPerRun)
	assert.InDelta(t, 1e9*2.0/900.0, *flat[0].NsPerRun, 1e-6)
}

func TestFlattenSeriesOrder(t *testing.T) {
	o := &suite.Outcome{
		Name: "remove",
		Kind: suite.Series,
		Variants: []suite.VariantFit{
			{Name: "old", Fit: goodFit(1.0, 0)},
			{Name: "new", Fit: goodFit(2.0, 0)},
		},
	}

	flat := Flatten(o)
	require.Len(t, flat, 2)
	assert.Equal(t, []string{"remove", "old"}, flat[0].Name)
	assert.Equal(t, []string{"remove", "new"}, flat[1].Name)
}

func TestFlattenNestedGroupsDepthFirst(t *testing.T) {
	o := &suite.Outcome{
		Name: "suite",
		Kind: suite.Group,
		Children: []*suite.Outcome{
			{Name: "warmup", Kind: suite.Single, Fit: goodFit(1, 0)},
			{
				Name: "collections",
				Kind: suite.Group,
				Children: []*suite.Outcome{
					{
						Name: "remove",
						Kind: suite.Series,
						Variants: []suite.VariantFit{
							{Name: "old", Fit: goodFit(1, 0)},
							{Name: "new", Fit: goodFit(1, 0)},
						},
					},
					{Name: "insert", Kind: suite.Single, Fit: goodFit(1, 0)},
				},
			},
		},
	}

	flat := Flatten(o)
	var names [][]string
	for _, r := range flat {
		names = append(names, r.Name)
	}
	assert.Equal(t, [][]string{
		{"suite", "warmup"},
		{"suite", "collections", "remove", "old"},
		{"suite", "collections", "remove", "new"},
		{"suite", "collections", "insert"},
	}, names)
}

func TestFlattenNullPropagation(t *testing.T) {
	o := &suite.Outcome{
		Name: "mixed",
		Kind: suite.Series,
		Variants: []suite.VariantFit{
			{Name: "broken", Fit: suite.Fit{Err: errors.New("degenerate samples")}},
			{Name: "divzero", Fit: goodFit(5.0, 1000.0)}, // non-finite throughput
			{Name: "fine", Fit: goodFit(2.0, 0)},
		},
	}

	flat := Flatten(o)
	require.Len(t, flat, 3)
	assert.Nil(t, flat[0].NsPerRun, "failed fit must render as null")
	assert.Nil(t, flat[1].NsPerRun, "non-finite throughput must render as null")
	assert.NotNil(t, flat[2].NsPerRun)
}
