package solver

import "github.com/vortsim/vortsim/internal/grid"

// FieldState holds the four conserved quantities over the full grid,
// ghost cells included. Density and pressure are positive by physical
// construction; nothing enforces that numerically (see health checks).
type FieldState struct {
	MassFluxX *grid.Scalar
	MassFluxY *grid.Scalar
	Density   *grid.Scalar
	Pressure  *grid.Scalar
}

func NewFieldState(g *grid.Grid) *FieldState {
	return &FieldState{
		MassFluxX: grid.NewScalar(g),
		MassFluxY: grid.NewScalar(g),
		Density:   grid.NewScalar(g),
		Pressure:  grid.NewScalar(g),
	}
}

func (f *FieldState) each() []*grid.Scalar {
	return []*grid.Scalar{f.MassFluxX, f.MassFluxY, f.Density, f.Pressure}
}

// EnforceBoundaries fills the ghost layers of every conserved quantity from
// the opposite interior edge. Must run after every partial or full update,
// before any derivative is taken.
func (f *FieldState) EnforceBoundaries() {
	for _, s := range f.each() {
		s.WrapEdges()
	}
}

// CopyFrom overwrites f with src, cell for cell.
func (f *FieldState) CopyFrom(src *FieldState) {
	f.MassFluxX.CopyFrom(src.MassFluxX)
	f.MassFluxY.CopyFrom(src.MassFluxY)
	f.Density.CopyFrom(src.Density)
	f.Pressure.CopyFrom(src.Pressure)
}
