// Package scheduler drives a benchmark suite to completion one engine step
// at a time, without ever blocking the host on the full run.
package scheduler

import (
	"context"
	"time"

	"trendbench/internal/engine"
	"trendbench/internal/report"
	"trendbench/internal/stats"
	"trendbench/internal/suite"
)

const updateInterval = 100 * time.Millisecond

// Snapshot is sent over the updates channel for UIs.
type Snapshot struct {
	Steps       uint64
	Elapsed     time.Duration
	StepsPerSec float64

	// Pre-calculated step latency percentiles (cheap copy for the UI)
	P50StepMs  float64
	P99StepMs  float64
	LastStepUs int64

	Done bool
}

// UpdateChan is the channel type
type UpdateChan chan Snapshot

// Sink receives the single report produced at the end of a run.
type Sink interface {
	Deliver(report.Report)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(report.Report)

func (f SinkFunc) Deliver(r report.Report) { f(r) }

// Driver owns the run state and the step loop. One Driver drives one run;
// discard it afterwards.
type Driver struct {
	Engine engine.Engine
	Sink   Sink
	Stats  *stats.StepStats

	// Event Channel
	Updates UpdateChan

	queue      *Queue
	start      time.Time
	lastUpdate time.Time
}

func NewDriver(eng engine.Engine, sink Sink, updates UpdateChan) *Driver {
	if updates == nil {
		// Avoid nil panics if not provided
		updates = make(UpdateChan, 10)
	}
	return &Driver{
		Engine:  eng,
		Sink:    sink,
		Stats:   stats.NewStepStats(),
		Updates: updates,
		queue:   NewQueue(64),
	}
}

// Submit enqueues a host task on the driver's queue. It runs on the drain
// worker, interleaved between engine steps.
func (d *Driver) Submit(fn func()) {
	d.queue.Submit(fn)
}

// Run drives the suite until the engine reports it finished, then builds the
// report and hands it to the sink exactly once (fire-and-continue). Each
// engine step is a discrete task on the queue: Run never spends more than
// one step inside a single task.
//
// Cancelling the context is fail-stop: the loop simply stops scheduling
// steps and no report is ever delivered for the run.
func (d *Driver) Run(ctx context.Context, spec *suite.Node) error {
	if err := spec.Validate(); err != nil {
		return err
	}

	d.start = time.Now()
	state := d.Engine.Begin(spec)
	done := make(chan struct{})

	var step func()
	step = func() {
		tree, finished := d.Engine.Classify(state)
		if finished {
			// The loop only re-enters from a freshly returned state,
			// so Step is never called past this point.
			rep := report.Build(tree)
			go d.Sink.Deliver(rep)
			d.sendUpdate(0, true)
			close(done)
			return
		}

		t0 := time.Now()
		state = d.Engine.Step(state) // consumes the previous state
		dt := time.Since(t0)
		d.Stats.Record(dt)
		d.sendUpdate(dt.Microseconds(), false)
		d.queue.Submit(step)
	}
	d.queue.Submit(step)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-done:
			return nil
		case fn := <-d.queue.Tasks():
			fn()
		}
	}
}

func (d *Driver) sendUpdate(lastStepUs int64, done bool) {
	now := time.Now()
	if !done && now.Sub(d.lastUpdate) < updateInterval {
		return
	}
	d.lastUpdate = now

	elapsed := now.Sub(d.start)
	steps := d.Stats.Count()
	rate := 0.0
	if elapsed > 0 {
		rate = float64(steps) / elapsed.Seconds()
	}

	s := Snapshot{
		Steps:       steps,
		Elapsed:     elapsed,
		StepsPerSec: rate,
		P50StepMs:   d.Stats.GetP50StepMs(),
		P99StepMs:   d.Stats.GetP99StepMs(),
		LastStepUs:  lastStepUs,
		Done:        done,
	}

	// Non-blocking send
	select {
	case d.Updates <- s:
	default:
		// Drop update if channel full, UI acts as backpressure
	}
}
