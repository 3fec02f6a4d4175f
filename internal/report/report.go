// Package report reduces a finished benchmark outcome tree into the flat,
// transmittable report handed to the parent process.
package report

import "trendbench/internal/suite"

// FlatResult is one leaf measurement. Name is the full path from the suite
// root to the leaf; NsPerRun is nil when the fit failed or the derived
// throughput was non-finite.
type FlatResult struct {
	Name     []string `json:"name"`
	NsPerRun *float64 `json:"nsPerRun"`
}

// Report is the wire contract consumed by parent processes. Field names and
// null semantics are load-bearing; do not rename.
type Report struct {
	Warning *string      `json:"warning"`
	Results []FlatResult `json:"results"`
}

// Build reduces a finished outcome tree into a Report.
func Build(o *suite.Outcome) Report {
	return Report{
		Warning: Assess(o),
		Results: Flatten(o),
	}
}
