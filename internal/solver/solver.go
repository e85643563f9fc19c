package solver

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/vortsim/vortsim/internal/grid"
)

// CFL safety factors: advective/acoustic limits get 0.8 of a cell crossing,
// diffusive limits 0.2 of a cell squared.
const (
	advectiveSafety = 0.8
	diffusiveSafety = 0.2
	// denomFloor keeps the speed and sound denominators positive when the
	// fluid is at rest.
	denomFloor = 1e-10
)

// Clock tracks elapsed simulation time, the step counter and the current
// timestep. Mutated only by Advance.
type Clock struct {
	Time float64
	Step int
	Dt   float64
}

// Warning is a non-fatal health diagnostic stamped with its step and time.
type Warning struct {
	Step    int
	Time    float64
	Message string
}

func (w Warning) Error() string {
	return fmt.Sprintf("step %d (t=%.6f): %s", w.Step, w.Time, w.Message)
}

// Solver owns all field memory and drives it forward with the classical
// explicit 4-stage Runge-Kutta scheme. Not safe for concurrent use; one
// Advance call is atomic with respect to the visible FieldState.
type Solver struct {
	grid    *grid.Grid
	par     Params
	fields  *FieldState
	diag    *Diagnostics
	forcing *Forcing

	snapshot *FieldState
	stages   [4]*stageDeriv

	clock     Clock
	heatCoeff float64

	cflRecomputes int
	warnings      []Warning
}

// New builds a solver over the given grid, applies the quiescent initial
// state and computes initial diagnostics. Params are validated here; a bad
// configuration is rejected rather than left to produce NaNs.
func New(g *grid.Grid, par Params) (*Solver, error) {
	if err := par.validate(); err != nil {
		return nil, err
	}
	s := &Solver{
		grid:      g,
		par:       par,
		fields:    NewFieldState(g),
		diag:      NewDiagnostics(g),
		forcing:   NewForcing(g, par.Forcing),
		snapshot:  NewFieldState(g),
		heatCoeff: par.Gamma * par.Kappa,
	}
	for k := range s.stages {
		s.stages[k] = newStageDeriv(g)
	}
	s.Reset()
	return s, nil
}

// Reset restores the uniform quiescent atmosphere and rewinds the clock.
func (s *Solver) Reset() {
	s.fields.MassFluxX.Fill(0)
	s.fields.MassFluxY.Fill(0)
	s.fields.Density.Fill(s.par.Rho0)
	s.fields.Pressure.Fill(s.par.P0)
	s.fields.EnforceBoundaries()
	s.diag.Recompute(s.grid, s.fields, s.par.GasR)
	s.clock = Clock{Dt: s.par.FixedDt}
	s.cflRecomputes = 0
	s.warnings = s.warnings[:0]
}

// Advance executes exactly one RK4 pass: snapshot, four staged derivative
// evaluations with partial updates in between, combine, final boundary
// enforcement and diagnostics. The timestep is recomputed from the CFL
// limits every CFLInterval steps, including before the very first step.
func (s *Solver) Advance() {
	if s.par.FixedDt > 0 {
		s.clock.Dt = s.par.FixedDt
	} else if s.clock.Step%s.par.CFLInterval == 0 {
		s.clock.Dt = s.computeTimestep()
		s.cflRecomputes++
	}

	t0 := s.clock.Time
	dt := s.clock.Dt

	s.snapshot.CopyFrom(s.fields)

	// Diagnostics already match the snapshot on entry.
	s.evalStage(0)
	s.applyStage(0, 0.5)

	s.clock.Time = t0 + dt/2
	s.evalStage(1)
	s.applyStage(1, 0.5)

	s.evalStage(2)
	s.applyStage(2, 1.0)

	s.clock.Time = t0 + dt
	s.evalStage(3)

	s.combine()
	s.fields.EnforceBoundaries()
	s.diag.Recompute(s.grid, s.fields, s.par.GasR)

	s.clock.Step++
	s.checkHealth()
}

// applyStage sets FieldState = snapshot + c·stage[k], then re-enforces
// boundaries and recomputes diagnostics so the next stage sees a consistent
// state.
func (s *Solver) applyStage(k int, c float64) {
	st := s.stages[k]
	apply := func(dst, base, d *grid.Scalar) {
		for idx := range dst.V {
			dst.V[idx] = base.V[idx] + c*d.V[idx]
		}
	}
	apply(s.fields.MassFluxX, s.snapshot.MassFluxX, st.dMassFluxX)
	apply(s.fields.MassFluxY, s.snapshot.MassFluxY, st.dMassFluxY)
	apply(s.fields.Density, s.snapshot.Density, st.dDensity)
	apply(s.fields.Pressure, s.snapshot.Pressure, st.dPressure)
	s.fields.EnforceBoundaries()
	s.diag.Recompute(s.grid, s.fields, s.par.GasR)
}

// combine assembles the final RK4 update from the four stage buffers:
// snapshot + (k0 + 2k1 + 2k2 + k3)/6.
func (s *Solver) combine() {
	k0, k1, k2, k3 := s.stages[0], s.stages[1], s.stages[2], s.stages[3]
	mix := func(dst, base, a, b, c, d *grid.Scalar) {
		for idx := range dst.V {
			dst.V[idx] = base.V[idx] +
				(a.V[idx]+2*b.V[idx]+2*c.V[idx]+d.V[idx])/6.0
		}
	}
	mix(s.fields.MassFluxX, s.snapshot.MassFluxX, k0.dMassFluxX, k1.dMassFluxX, k2.dMassFluxX, k3.dMassFluxX)
	mix(s.fields.MassFluxY, s.snapshot.MassFluxY, k0.dMassFluxY, k1.dMassFluxY, k2.dMassFluxY, k3.dMassFluxY)
	mix(s.fields.Density, s.snapshot.Density, k0.dDensity, k1.dDensity, k2.dDensity, k3.dDensity)
	mix(s.fields.Pressure, s.snapshot.Pressure, k0.dPressure, k1.dPressure, k2.dPressure, k3.dPressure)
}

// computeTimestep scans the diagnostics for the fastest flow and sound
// signals and returns the most restrictive of the four stability limits:
// advective, acoustic, viscous-diffusive and thermal-diffusive. Ghost cells
// mirror interior cells, so a whole-grid maximum equals the interior one.
func (s *Solver) computeTimestep() float64 {
	speedMax := math.Sqrt(floats.Max(s.diag.Speed2.V)) + denomFloor
	soundMax := math.Sqrt(s.par.Gamma*s.par.GasR*floats.Max(s.diag.Temp.V)) + denomFloor

	dt := advectiveSafety * s.grid.DMin / speedMax
	dt = math.Min(dt, advectiveSafety*s.grid.DMin/soundMax)
	if s.par.Nu > 0 {
		dt = math.Min(dt, diffusiveSafety*s.grid.DMin2/s.par.Nu)
	}
	if s.par.Kappa > 0 {
		dt = math.Min(dt, diffusiveSafety*s.grid.DMin2/s.par.Kappa)
	}
	return dt
}

// checkHealth records a non-fatal warning when a field leaves its physically
// valid range. The fields are left untouched: the scheme is not guaranteed
// stable outside its parameter regime, and the warning is the only
// mitigation beyond the shrinking CFL timestep.
func (s *Solver) checkHealth() {
	bad := func(name string, v *grid.Scalar) {
		for idx, x := range v.V {
			if x <= 0 || math.IsNaN(x) || math.IsInf(x, 0) {
				s.warnings = append(s.warnings, Warning{
					Step:    s.clock.Step,
					Time:    s.clock.Time,
					Message: fmt.Sprintf("%s left valid range: %g at cell (%d,%d)", name, x, idx/v.NY, idx%v.NY),
				})
				return
			}
		}
	}
	bad("density", s.fields.Density)
	bad("pressure", s.fields.Pressure)
	bad("temperature", s.diag.Temp)
}

// Grid returns the static geometry.
func (s *Solver) Grid() *grid.Grid { return s.grid }

// Clock returns a copy of the simulation clock.
func (s *Solver) Clock() Clock { return s.clock }

// Warnings returns the health diagnostics recorded so far.
func (s *Solver) Warnings() []Warning { return s.warnings }

// Vorticity exposes the derived vorticity field for rendering and metrics.
// Callers must treat it as read-only and must not retain it across steps.
func (s *Solver) Vorticity() *grid.Scalar { return s.diag.Vorticity }

// Velocity exposes the derived velocity components under the same read-only
// contract as Vorticity.
func (s *Solver) Velocity() (vx, vy *grid.Scalar) { return s.diag.VelX, s.diag.VelY }

// Density exposes the conserved density field, read-only.
func (s *Solver) Density() *grid.Scalar { return s.fields.Density }

// Pressure exposes the conserved pressure field, read-only.
func (s *Solver) Pressure() *grid.Scalar { return s.fields.Pressure }

// Temperature exposes the derived temperature field, read-only.
func (s *Solver) Temperature() *grid.Scalar { return s.diag.Temp }

// MaxAbsVorticity returns the largest vorticity magnitude on the grid,
// the usual normalization reference for color mapping.
func (s *Solver) MaxAbsVorticity() float64 {
	m := 0.0
	for _, v := range s.diag.Vorticity.V {
		if a := math.Abs(v); a > m {
			m = a
		}
	}
	return m
}
