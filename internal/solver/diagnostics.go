package solver

import "github.com/vortsim/vortsim/internal/grid"

// Diagnostics are pure functions of the current FieldState, recomputed in
// full whenever the fields change and never persisted independently.
type Diagnostics struct {
	VelX      *grid.Scalar
	VelY      *grid.Scalar
	Speed2    *grid.Scalar
	Temp      *grid.Scalar
	Div       *grid.Scalar
	Vorticity *grid.Scalar
}

func NewDiagnostics(g *grid.Grid) *Diagnostics {
	return &Diagnostics{
		VelX:      grid.NewScalar(g),
		VelY:      grid.NewScalar(g),
		Speed2:    grid.NewScalar(g),
		Temp:      grid.NewScalar(g),
		Div:       grid.NewScalar(g),
		Vorticity: grid.NewScalar(g),
	}
}

// Recompute derives velocity, temperature and speed² at every cell, then
// estimates divergence and vorticity on the interior with centered
// differences. The two stencil grids are not part of FieldState and get
// their own periodic ghost fill here.
//
// Density reaching zero divides by zero; that regime is a numerical blow-up
// and is not recovered.
func (d *Diagnostics) Recompute(g *grid.Grid, f *FieldState, gasR float64) {
	for idx := range f.Density.V {
		rho := f.Density.V[idx]
		vx := f.MassFluxX.V[idx] / rho
		vy := f.MassFluxY.V[idx] / rho
		d.VelX.V[idx] = vx
		d.VelY.V[idx] = vy
		d.Speed2.V[idx] = vx*vx + vy*vy
		d.Temp.V[idx] = f.Pressure.V[idx] / (gasR * rho)
	}

	nx, ny := g.NX, g.NY
	vx, vy := d.VelX, d.VelY
	for i := 1; i <= nx-2; i++ {
		for j := 1; j <= ny-2; j++ {
			d.Div.Set(i, j,
				(vx.At(i+1, j)-vx.At(i-1, j))*g.Dx1+
					(vy.At(i, j+1)-vy.At(i, j-1))*g.Dy1)
			d.Vorticity.Set(i, j,
				(vy.At(i+1, j)-vy.At(i-1, j))*g.Dx1-
					(vx.At(i, j+1)-vx.At(i, j-1))*g.Dy1)
		}
	}
	d.Div.WrapEdges()
	d.Vorticity.WrapEdges()
}
