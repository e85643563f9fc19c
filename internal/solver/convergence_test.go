package solver

import (
	"math"
	"testing"

	"github.com/vortsim/vortsim/internal/grid"
)

// acousticSolver builds an unforced, inviscid solver carrying a smooth
// standing acoustic wave, advancing with a prescribed timestep.
func acousticSolver(t *testing.T, dt float64) *Solver {
	t.Helper()
	g, err := grid.New(34, 34, grid.Bounds{XMin: 0, XMax: 1, YMin: 0, YMax: 1})
	if err != nil {
		t.Fatal(err)
	}
	p := quiescentParams()
	p.Nu, p.Kappa = 0, 0
	p.FixedDt = dt
	p.CFLInterval = 0
	s, err := New(g, p)
	if err != nil {
		t.Fatal(err)
	}
	perturb(s, 1e-2)
	return s
}

func maxInteriorDiff(a, b *Solver) float64 {
	max := 0.0
	for i := 1; i <= a.grid.NX-2; i++ {
		ra, rb := a.fields.Density.Row(i), b.fields.Density.Row(i)
		for k := range ra {
			if d := math.Abs(ra[k] - rb[k]); d > max {
				max = d
			}
		}
	}
	return max
}

// TestRK4ConvergenceOrder verifies the fourth-order accuracy of the time
// integration on a smooth acoustic wave: covering the same interval with
// twice as many half-size steps must shrink the time-discretization error
// by roughly 2⁴. The spatial operator is identical across runs, so only the
// temporal error is compared.
func TestRK4ConvergenceOrder(t *testing.T) {
	const dt0 = 4e-5 // comfortably inside the acoustic CFL limit for dx=1/32

	coarse := acousticSolver(t, dt0)
	coarse.Advance()

	medium := acousticSolver(t, dt0/2)
	medium.Advance()
	medium.Advance()

	fine := acousticSolver(t, dt0/4)
	for i := 0; i < 4; i++ {
		fine.Advance()
	}

	errCoarse := maxInteriorDiff(coarse, medium)
	errMedium := maxInteriorDiff(medium, fine)

	if errMedium == 0 {
		t.Fatal("refinement produced identical solutions; perturbation too small")
	}
	ratio := errCoarse / errMedium
	if ratio < 8 {
		t.Errorf("error ratio %v too small for a 4th-order scheme (want ~16)", ratio)
	}
}
