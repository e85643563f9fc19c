package solver

import "fmt"

// Params is the fixed physical and numerical configuration of a Solver,
// supplied once at construction and immutable thereafter.
type Params struct {
	// Gas properties.
	Gamma   float64 // specific-heat ratio
	GasR    float64 // specific gas constant
	Rho0    float64 // initial density
	P0      float64 // initial pressure
	Nu      float64 // kinematic viscosity
	Kappa   float64 // thermal diffusivity
	Forcing ForcingSpec

	// CFLInterval is the number of steps between timestep recomputations.
	// Stability changes slowly relative to the flow, so recomputing every
	// step is wasteful.
	CFLInterval int

	// FixedDt, when positive, disables the CFL controller entirely and
	// advances with the given timestep.
	FixedDt float64
}

// ForcingSpec describes the driving-force patch: a rectangular band in x,
// Gaussian-weighted about CenterY with half-height Radius, active between
// TStart and TEnd.
type ForcingSpec struct {
	XMin, XMax float64
	CenterY    float64
	Radius     float64
	Magnitude  float64
	TStart     float64
	TEnd       float64
}

func (p Params) validate() error {
	if p.Gamma <= 1 {
		return fmt.Errorf("solver: specific-heat ratio must exceed 1, got %g", p.Gamma)
	}
	if p.GasR <= 0 {
		return fmt.Errorf("solver: gas constant must be positive, got %g", p.GasR)
	}
	if p.Rho0 <= 0 || p.P0 <= 0 {
		return fmt.Errorf("solver: initial density and pressure must be positive, got %g, %g", p.Rho0, p.P0)
	}
	if p.Nu < 0 || p.Kappa < 0 {
		return fmt.Errorf("solver: diffusion coefficients must be non-negative, got nu=%g kappa=%g", p.Nu, p.Kappa)
	}
	if p.CFLInterval <= 0 && p.FixedDt <= 0 {
		return fmt.Errorf("solver: CFL interval must be positive, got %d", p.CFLInterval)
	}
	if f := p.Forcing; f.TEnd < f.TStart {
		return fmt.Errorf("solver: forcing window ends before it starts (%g > %g)", f.TStart, f.TEnd)
	}
	if f := p.Forcing; f.Magnitude != 0 && f.Radius <= 0 {
		return fmt.Errorf("solver: forcing radius must be positive, got %g", f.Radius)
	}
	return nil
}
