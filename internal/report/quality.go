package report

import "trendbench/internal/suite"

// Interference tiers over the worst goodness-of-fit in the suite. Boundaries
// are exclusive on the low side: exactly 0.85 stays in the weak tier and
// exactly 0.95 produces no warning.
const (
	strongFitFloor = 0.85
	weakFitFloor   = 0.95
)

const (
	warnStrong = "Heavy timing interference detected: benchmark samples fit their trend poorly, " +
		"which usually means other processes competed for the machine. Close other running " +
		"programs and re-run; TrendBench cannot correct for system-wide noise on its own."
	warnWeak = "Possible timing interference detected. Consider closing resource-intensive " +
		"programs before re-running the suite."
)

// Assess inspects every successful fit in the tree and returns at most one
// suite-wide warning. Failed fits are skipped, not counted as zero; a suite
// where every fit failed produces no warning.
func Assess(o *suite.Outcome) *string {
	worst := 1.0
	o.WalkFits(func(f suite.Fit) {
		if f.Err != nil {
			return
		}
		if f.Trend.GoodnessOfFit < worst {
			worst = f.Trend.GoodnessOfFit
		}
	})

	switch {
	case worst < strongFitFloor:
		s := warnStrong
		return &s
	case worst < weakFitFloor:
		s := warnWeak
		return &s
	default:
		return nil
	}
}
