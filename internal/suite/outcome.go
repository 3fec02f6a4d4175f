package suite

// Trend is a linear model fitted by the sampling engine over
// (sample count, elapsed ns) observations.
type Trend struct {
	Slope         float64
	Intercept     float64
	GoodnessOfFit float64 // [0,1], how well the line explains the samples
}

// Fit is the per-leaf fitting result. Err is set when the engine could not
// produce a usable trend (degenerate or insufficient samples); the Trend
// fields are meaningless in that case.
type Fit struct {
	Trend Trend
	Err   error
}

// VariantFit pairs one series variant with its fit.
type VariantFit struct {
	Name string
	Fit  Fit
}

// Outcome is the finished result tree. Its shape mirrors the Node tree the
// run started from: no leaf is added, dropped or reordered.
type Outcome struct {
	Name     string
	Kind     Kind
	Fit      Fit          // Single only
	Variants []VariantFit // Series only, declaration order
	Children []*Outcome   // Group only, declaration order
}

// WalkFits visits every leaf fit depth-first in declaration order. Group
// nodes carry no fit and are not visited themselves.
func (o *Outcome) WalkFits(visit func(Fit)) {
	switch o.Kind {
	case Single:
		visit(o.Fit)
	case Series:
		for _, v := range o.Variants {
			visit(v.Fit)
		}
	case Group:
		for _, c := range o.Children {
			c.WalkFits(visit)
		}
	}
}
