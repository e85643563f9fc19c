// Package metrics provides named probes over the solver state: conserved
// totals and flow-strength indicators sampled during a run.
package metrics

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/vortsim/vortsim/internal/solver"
)

// TotalMass sums density over the interior cells, scaled by the cell area.
// With periodic boundaries and zero net forcing this is conserved to
// floating-point tolerance, which makes it the cheapest sanity probe.
type TotalMass struct {
	last float64
}

func NewTotalMass() *TotalMass { return &TotalMass{} }

func (m *TotalMass) Name() string { return "mass" }

func (m *TotalMass) Observe(s *solver.Solver, _ float64) {
	g := s.Grid()
	rho := s.Density()
	sum := 0.0
	for i := 1; i <= g.NX-2; i++ {
		sum += floats.Sum(rho.Row(i))
	}
	m.last = sum * g.Dx * g.Dy
}

func (m *TotalMass) Value() float64 { return m.last }
func (m *TotalMass) Reset()         { m.last = 0 }

// KineticEnergy integrates ½ρ|v|² over the interior.
type KineticEnergy struct {
	last float64
}

func NewKineticEnergy() *KineticEnergy { return &KineticEnergy{} }

func (m *KineticEnergy) Name() string { return "kinetic_energy" }

func (m *KineticEnergy) Observe(s *solver.Solver, _ float64) {
	g := s.Grid()
	rho := s.Density()
	vx, vy := s.Velocity()
	sum := 0.0
	for i := 1; i <= g.NX-2; i++ {
		for j := 1; j <= g.NY-2; j++ {
			u, v := vx.At(i, j), vy.At(i, j)
			sum += 0.5 * rho.At(i, j) * (u*u + v*v)
		}
	}
	m.last = sum * g.Dx * g.Dy
}

func (m *KineticEnergy) Value() float64 { return m.last }
func (m *KineticEnergy) Reset()         { m.last = 0 }

// PeakVorticity tracks the largest vorticity magnitude seen over the run.
type PeakVorticity struct {
	peak float64
}

func NewPeakVorticity() *PeakVorticity { return &PeakVorticity{} }

func (m *PeakVorticity) Name() string { return "peak_vorticity" }

func (m *PeakVorticity) Observe(s *solver.Solver, _ float64) {
	if v := s.MaxAbsVorticity(); v > m.peak {
		m.peak = v
	}
}

func (m *PeakVorticity) Value() float64 { return m.peak }
func (m *PeakVorticity) Reset()         { m.peak = 0 }

// MaxSpeed reports the current fastest flow speed on the grid.
type MaxSpeed struct {
	last float64
}

func NewMaxSpeed() *MaxSpeed { return &MaxSpeed{} }

func (m *MaxSpeed) Name() string { return "max_speed" }

func (m *MaxSpeed) Observe(s *solver.Solver, _ float64) {
	vx, vy := s.Velocity()
	max := 0.0
	for idx := range vx.V {
		s2 := vx.V[idx]*vx.V[idx] + vy.V[idx]*vy.V[idx]
		if s2 > max {
			max = s2
		}
	}
	m.last = math.Sqrt(max)
}

func (m *MaxSpeed) Value() float64 { return m.last }
func (m *MaxSpeed) Reset()         { m.last = 0 }

// Default returns the standard probe set for a run.
func Default() []solver.Metric {
	return []solver.Metric{
		NewTotalMass(),
		NewKineticEnergy(),
		NewPeakVorticity(),
		NewMaxSpeed(),
	}
}
