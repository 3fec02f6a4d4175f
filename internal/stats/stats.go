package stats

import (
	"sync/atomic"
	"time"
)

// StepStats aggregates the driver's own step loop metrics: how many engine
// steps ran and how long each took. This observes the driver, not the
// benchmarks — benchmark timing lives entirely inside the engine.
type StepStats struct {
	Steps uint64 // atomic

	// Per-step wall time (microseconds)
	StepTime *SafeHistogram
}

func NewStepStats() *StepStats {
	return &StepStats{
		StepTime: NewSafeHistogram(),
	}
}

// Record adds one completed engine step.
func (s *StepStats) Record(d time.Duration) {
	atomic.AddUint64(&s.Steps, 1)
	s.StepTime.RecordValue(d.Microseconds())
}

func (s *StepStats) Count() uint64 {
	return atomic.LoadUint64(&s.Steps)
}

func (s *StepStats) GetP50StepMs() float64 {
	return float64(s.StepTime.ValueAtQuantile(50)) / 1000.0 // ms
}

func (s *StepStats) GetP99StepMs() float64 {
	return float64(s.StepTime.ValueAtQuantile(99)) / 1000.0 // ms
}

func (s *StepStats) MeanStepMs() float64 {
	return s.StepTime.Mean() / 1000.0
}
