package grid

import (
	"fmt"
	"math"
)

// Bounds is the physical extent of the domain.
type Bounds struct {
	XMin, XMax float64
	YMin, YMax float64
}

// Grid holds the static geometry of a uniform periodic grid with one ghost
// layer per side per axis. Interior cells are [1, N-2]; index 0 and N-1 are
// periodic-image cells written only by boundary enforcement.
type Grid struct {
	NX, NY int
	Bounds Bounds

	Dx, Dy float64
	// Centered first-derivative coefficients 1/(2dx), 1/(2dy).
	Dx1, Dy1 float64
	// Second-derivative coefficients 1/dx², 1/dy².
	Dx2, Dy2 float64
	// Minimal spacing and its square, used by the CFL controller.
	DMin, DMin2 float64

	// Cell-center coordinates, indexed like the fields (ghosts included).
	X, Y []float64
}

// New validates the geometry and precomputes all derived constants.
// Degenerate bounds or grid dimensions are configuration errors.
func New(nx, ny int, b Bounds) (*Grid, error) {
	if nx < 3 || ny < 3 {
		return nil, fmt.Errorf("grid: dimensions must be at least 3, got %dx%d", nx, ny)
	}
	if b.XMin >= b.XMax {
		return nil, fmt.Errorf("grid: degenerate x bounds [%g, %g]", b.XMin, b.XMax)
	}
	if b.YMin >= b.YMax {
		return nil, fmt.Errorf("grid: degenerate y bounds [%g, %g]", b.YMin, b.YMax)
	}

	g := &Grid{NX: nx, NY: ny, Bounds: b}
	// The interior cells tile the physical extent; ghosts sit one spacing
	// outside.
	g.Dx = (b.XMax - b.XMin) / float64(nx-2)
	g.Dy = (b.YMax - b.YMin) / float64(ny-2)
	g.Dx1 = 1.0 / (2.0 * g.Dx)
	g.Dy1 = 1.0 / (2.0 * g.Dy)
	g.Dx2 = 1.0 / (g.Dx * g.Dx)
	g.Dy2 = 1.0 / (g.Dy * g.Dy)
	g.DMin = math.Min(g.Dx, g.Dy)
	g.DMin2 = g.DMin * g.DMin

	g.X = make([]float64, nx)
	for i := range g.X {
		g.X[i] = b.XMin + (float64(i)-0.5)*g.Dx
	}
	g.Y = make([]float64, ny)
	for j := range g.Y {
		g.Y[j] = b.YMin + (float64(j)-0.5)*g.Dy
	}
	return g, nil
}

// Interior reports whether (i, j) is an interior cell.
func (g *Grid) Interior(i, j int) bool {
	return i >= 1 && i <= g.NX-2 && j >= 1 && j <= g.NY-2
}
