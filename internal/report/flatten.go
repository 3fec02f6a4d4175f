package report

import (
	"math"

	"trendbench/internal/suite"
)

// Flatten maps a finished outcome tree into a flat result list, depth-first
// in declaration order. No sorting, no deduplication.
func Flatten(o *suite.Outcome) []FlatResult {
	var out []FlatResult
	switch o.Kind {
	case suite.Single:
		out = append(out, FlatResult{
			Name:     []string{o.Name},
			NsPerRun: nsPerRun(o.Fit),
		})
	case suite.Series:
		for _, v := range o.Variants {
			out = append(out, FlatResult{
				Name:     []string{o.Name, v.Name},
				NsPerRun: nsPerRun(v.Fit),
			})
		}
	case suite.Group:
		for _, c := range o.Children {
			for _, r := range Flatten(c) {
				r.Name = append([]string{o.Name}, r.Name...)
				out = append(out, r)
			}
		}
	}
	return out
}

// Throughput derives nanoseconds-per-run from a fitted trend.
//
// This is the closed form of: evaluate the line at x = 1000 sample units,
// convert to a per-second rate via 1e9, invert back to ns per run. Computed
// in one division to avoid a divide-then-divide rounding path. An intercept
// of exactly 1000 divides by zero and yields ±Inf (or NaN); callers treat
// non-finite as "no estimate".
func Throughput(t suite.Trend) float64 {
	return 1e9 * t.Slope / (1e3 - t.Intercept)
}

// nsPerRun normalizes a fit into the wire value: nil on fit failure and on
// non-finite throughput.
func nsPerRun(f suite.Fit) *float64 {
	if f.Err != nil {
		return nil
	}
	v := Throughput(f.Trend)
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return nil
	}
	return &v
}
