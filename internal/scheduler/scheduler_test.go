package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trendbench/internal/engine"
	"trendbench/internal/report"
	"trendbench/internal/sim"
	"trendbench/internal/suite"
)

// countdownEngine finishes after a fixed number of steps and then reports a
// canned outcome. State is just the remaining step count.
type countdownEngine struct {
	total   int
	outcome *suite.Outcome
	steps   int
	onStep  func(step int)
}

func (e *countdownEngine) Begin(spec *suite.Node) engine.State { return e.total }

func (e *countdownEngine) Classify(s engine.State) (*suite.Outcome, bool) {
	if s.(int) > 0 {
		return nil, false
	}
	return e.outcome, true
}

func (e *countdownEngine) Step(s engine.State) engine.State {
	e.steps++
	if e.onStep != nil {
		e.onStep(e.steps)
	}
	return s.(int) - 1
}

func singleOutcome(name string) *suite.Outcome {
	return &suite.Outcome{
		Name: name,
		Kind: suite.Single,
		Fit:  suite.Fit{Trend: suite.Trend{Slope: 1, GoodnessOfFit: 0.99}},
	}
}

func collectReport(t *testing.T, ch chan report.Report) report.Report {
	t.Helper()
	select {
	case r := <-ch:
		return r
	case <-time.After(2 * time.Second):
		t.Fatal("no report delivered")
		return report.Report{}
	}
}

func TestRunReachesFinishedAndDeliversOnce(t *testing.T) {
	eng := &countdownEngine{total: 25, outcome: singleOutcome("parseInt")}
	delivered := make(chan report.Report, 4)
	d := NewDriver(eng, SinkFunc(func(r report.Report) { delivered <- r }), nil)

	err := d.Run(context.Background(), suite.NewSingle("parseInt"))
	require.NoError(t, err)

	assert.Equal(t, 25, eng.steps, "one engine step per scheduled task")
	assert.Equal(t, uint64(25), d.Stats.Count())

	rep := collectReport(t, delivered)
	require.Len(t, rep.Results, 1)
	assert.Equal(t, []string{"parseInt"}, rep.Results[0].Name)

	// Exactly one delivery per run.
	select {
	case <-delivered:
		t.Fatal("report delivered more than once")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestRunRejectsInvalidSuite(t *testing.T) {
	eng := &countdownEngine{total: 1, outcome: singleOutcome("x")}
	d := NewDriver(eng, SinkFunc(func(report.Report) {}), nil)

	err := d.Run(context.Background(), &suite.Node{})
	require.Error(t, err)
	assert.Zero(t, eng.steps, "engine must not be stepped for an invalid suite")
}

func TestCancelIsFailStop(t *testing.T) {
	// An engine that never finishes: cancellation is the only way out and
	// no report may be emitted.
	eng := &countdownEngine{total: 1 << 30, outcome: singleOutcome("x")}
	delivered := make(chan report.Report, 1)
	d := NewDriver(eng, SinkFunc(func(r report.Report) { delivered <- r }), nil)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	err := d.Run(ctx, suite.NewSingle("x"))
	require.ErrorIs(t, err, context.Canceled)

	select {
	case <-delivered:
		t.Fatal("interrupted run must not deliver a report")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestHostTasksInterleaveBetweenSteps(t *testing.T) {
	hostRan := false
	sawHostByStepFour := false

	eng := &countdownEngine{total: 10, outcome: singleOutcome("x")}
	var d *Driver
	eng.onStep = func(step int) {
		if step == 3 {
			// Submitted mid-run: must execute before the next step,
			// not after the suite finishes.
			d.Submit(func() { hostRan = true })
		}
		if step == 4 {
			sawHostByStepFour = hostRan
		}
	}
	d = NewDriver(eng, SinkFunc(func(report.Report) {}), nil)

	require.NoError(t, d.Run(context.Background(), suite.NewSingle("x")))
	assert.True(t, hostRan)
	assert.True(t, sawHostByStepFour, "host task should run between step 3 and step 4")
}

func TestDeliveryIsFireAndContinue(t *testing.T) {
	// A sink that never returns must not wedge the run loop.
	block := make(chan struct{})
	defer close(block)

	eng := &countdownEngine{total: 3, outcome: singleOutcome("x")}
	d := NewDriver(eng, SinkFunc(func(report.Report) { <-block }), nil)

	doneCh := make(chan error, 1)
	go func() { doneCh <- d.Run(context.Background(), suite.NewSingle("x")) }()

	select {
	case err := <-doneCh:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run blocked on the sink")
	}
}

func TestUpdatesCarryFinalSnapshot(t *testing.T) {
	eng := &countdownEngine{total: 5, outcome: singleOutcome("x")}
	updates := make(UpdateChan, 16)
	d := NewDriver(eng, SinkFunc(func(report.Report) {}), updates)

	require.NoError(t, d.Run(context.Background(), suite.NewSingle("x")))

	var sawDone bool
	for {
		select {
		case s := <-updates:
			if s.Done {
				sawDone = true
				assert.Equal(t, uint64(5), s.Steps)
			}
			continue
		default:
		}
		break
	}
	assert.True(t, sawDone, "final snapshot should be flagged done")
}

func TestEndToEndSeriesScenario(t *testing.T) {
	spec := suite.NewSeries("remove", "listRemoveOld", "listRemoveNew")

	eng := sim.New(50, 1)
	eng.Script[sim.Key("remove", "listRemoveOld")] = suite.Fit{
		Trend: suite.Trend{Slope: 0.05618, Intercept: 0, GoodnessOfFit: 0.999},
	}
	eng.Script[sim.Key("remove", "listRemoveNew")] = suite.Fit{
		Trend: suite.Trend{Slope: 0.05739, Intercept: 0, GoodnessOfFit: 0.995},
	}

	delivered := make(chan report.Report, 1)
	d := NewDriver(eng, SinkFunc(func(r report.Report) { delivered <- r }), nil)
	require.NoError(t, d.Run(context.Background(), spec))

	rep := collectReport(t, delivered)
	assert.Nil(t, rep.Warning, "clean fits should not warn")
	require.Len(t, rep.Results, 2)

	assert.Equal(t, []string{"remove", "listRemoveOld"}, rep.Results[0].Name)
	require.NotNil(t, rep.Results[0].NsPerRun)
	assert.InDelta(t, 1e9*0.05618/1e3, *rep.Results[0].NsPerRun, 1e-6)

	assert.Equal(t, []string{"remove", "listRemoveNew"}, rep.Results[1].Name)
	require.NotNil(t, rep.Results[1].NsPerRun)
	assert.InDelta(t, 1e9*0.05739/1e3, *rep.Results[1].NsPerRun, 1e-6)
}
