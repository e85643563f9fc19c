package solver

import (
	"math"

	"github.com/vortsim/vortsim/internal/grid"
)

// Forcing combines a static spatial force template, computed once at setup,
// with a time envelope that gates it during a short pulse. The template is a
// rectangular band near one domain edge, weighted along the transverse axis
// by exp(-2 y'²/r²); force-y is identically zero in this configuration.
type Forcing struct {
	ForceX *grid.Scalar
	ForceY *grid.Scalar
	spec   ForcingSpec
}

func NewForcing(g *grid.Grid, spec ForcingSpec) *Forcing {
	f := &Forcing{
		ForceX: grid.NewScalar(g),
		ForceY: grid.NewScalar(g),
		spec:   spec,
	}
	r2 := spec.Radius * spec.Radius
	for i := 0; i < g.NX; i++ {
		x := g.X[i]
		if x < spec.XMin || x > spec.XMax {
			continue
		}
		for j := 0; j < g.NY; j++ {
			dy := g.Y[j] - spec.CenterY
			f.ForceX.Set(i, j, spec.Magnitude*math.Exp(-2.0*dy*dy/r2))
		}
	}
	return f
}

// Envelope returns the pulse activation factor in [0, 1] at simulation time
// t: zero outside [TStart, TEnd], a linear ramp up over the first quarter of
// the window, one through the middle half, and a linear ramp down over the
// final quarter. The compact smooth support keeps the driving term from
// destabilizing the explicit integrator.
func (f *Forcing) Envelope(t float64) float64 {
	start, end := f.spec.TStart, f.spec.TEnd
	if t <= start || t >= end {
		return 0
	}
	quarter := (end - start) / 4.0
	switch {
	case t < start+quarter:
		return (t - start) / quarter
	case t > end-quarter:
		return (end - t) / quarter
	default:
		return 1
	}
}
