package solver

import "github.com/vortsim/vortsim/internal/grid"

// stageDeriv is one Runge-Kutta stage buffer: the timestep-scaled derivative
// of each conserved quantity, captured at a fixed point within one step and
// never overwritten across stages.
type stageDeriv struct {
	dMassFluxX *grid.Scalar
	dMassFluxY *grid.Scalar
	dDensity   *grid.Scalar
	dPressure  *grid.Scalar
}

func newStageDeriv(g *grid.Grid) *stageDeriv {
	return &stageDeriv{
		dMassFluxX: grid.NewScalar(g),
		dMassFluxY: grid.NewScalar(g),
		dDensity:   grid.NewScalar(g),
		dPressure:  grid.NewScalar(g),
	}
}

// evalStage discretizes the right-hand side of the flow equations at the
// current FieldState and Diagnostics, storing dt-scaled derivatives into
// stage buffer k. Only interior cells are written; ghosts belong to boundary
// enforcement.
//
// Per interior cell the stencils produce the pressure gradient, the gradient
// of the velocity divergence, the divergence of the flux-velocity outer
// product, and the Laplacians of velocity and temperature, assembled as
//
//	d(mf)  = dt ( -div(mf·v) - ∇p + F·env + ν(∇²v + ∇(div v)/3) )
//	d(rho) = dt ( -div(mf) )
//	d(prs) = dt ( -(v·∇)p - γ p div(v) + γκ ∇²T )
func (s *Solver) evalStage(k int) {
	g := s.grid
	f := s.fields
	d := s.diag
	st := s.stages[k]

	dt := s.clock.Dt
	env := s.forcing.Envelope(s.clock.Time)
	nu := s.par.Nu
	kp := s.heatCoeff
	gamma := s.par.Gamma

	mfx, mfy := f.MassFluxX, f.MassFluxY
	prs := f.Pressure
	vx, vy := d.VelX, d.VelY
	div, temp := d.Div, d.Temp

	for i := 1; i <= g.NX-2; i++ {
		for j := 1; j <= g.NY-2; j++ {
			pGradX := (prs.At(i+1, j) - prs.At(i-1, j)) * g.Dx1
			pGradY := (prs.At(i, j+1) - prs.At(i, j-1)) * g.Dy1

			divGradX := (div.At(i+1, j) - div.At(i-1, j)) * g.Dx1
			divGradY := (div.At(i, j+1) - div.At(i, j-1)) * g.Dy1

			// div(mf·v), x and y components of the outer-product flux.
			convX := (mfx.At(i+1, j)*vx.At(i+1, j)-mfx.At(i-1, j)*vx.At(i-1, j))*g.Dx1 +
				(mfx.At(i, j+1)*vy.At(i, j+1)-mfx.At(i, j-1)*vy.At(i, j-1))*g.Dy1
			convY := (mfy.At(i+1, j)*vx.At(i+1, j)-mfy.At(i-1, j)*vx.At(i-1, j))*g.Dx1 +
				(mfy.At(i, j+1)*vy.At(i, j+1)-mfy.At(i, j-1)*vy.At(i, j-1))*g.Dy1

			lapVX := (vx.At(i+1, j)-2*vx.At(i, j)+vx.At(i-1, j))*g.Dx2 +
				(vx.At(i, j+1)-2*vx.At(i, j)+vx.At(i, j-1))*g.Dy2
			lapVY := (vy.At(i+1, j)-2*vy.At(i, j)+vy.At(i-1, j))*g.Dx2 +
				(vy.At(i, j+1)-2*vy.At(i, j)+vy.At(i, j-1))*g.Dy2
			lapT := (temp.At(i+1, j)-2*temp.At(i, j)+temp.At(i-1, j))*g.Dx2 +
				(temp.At(i, j+1)-2*temp.At(i, j)+temp.At(i, j-1))*g.Dy2

			st.dMassFluxX.Set(i, j, dt*(-convX-pGradX+
				s.forcing.ForceX.At(i, j)*env+
				nu*(lapVX+divGradX/3.0)))
			st.dMassFluxY.Set(i, j, dt*(-convY-pGradY+
				s.forcing.ForceY.At(i, j)*env+
				nu*(lapVY+divGradY/3.0)))

			st.dDensity.Set(i, j, dt*(-((mfx.At(i+1, j)-mfx.At(i-1, j))*g.Dx1+
				(mfy.At(i, j+1)-mfy.At(i, j-1))*g.Dy1)))

			st.dPressure.Set(i, j, dt*(-(vx.At(i, j)*pGradX+vy.At(i, j)*pGradY)-
				gamma*prs.At(i, j)*div.At(i, j)+
				kp*lapT))
		}
	}
}
