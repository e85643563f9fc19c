package grid

// Scalar is one NX×NY field stored row-major in x (index i*NY+j).
type Scalar struct {
	NX, NY int
	V      []float64
}

func NewScalar(g *Grid) *Scalar {
	return &Scalar{NX: g.NX, NY: g.NY, V: make([]float64, g.NX*g.NY)}
}

func (s *Scalar) At(i, j int) float64     { return s.V[i*s.NY+j] }
func (s *Scalar) Set(i, j int, v float64) { s.V[i*s.NY+j] = v }

// Fill sets every cell, ghosts included.
func (s *Scalar) Fill(v float64) {
	for i := range s.V {
		s.V[i] = v
	}
}

// CopyFrom overwrites s with src. Both must share dimensions.
func (s *Scalar) CopyFrom(src *Scalar) {
	copy(s.V, src.V)
}

// Row returns the interior slice of row i, handy for reductions.
func (s *Scalar) Row(i int) []float64 {
	return s.V[i*s.NY+1 : i*s.NY+s.NY-1]
}

// WrapEdges copies the opposite interior edge into each ghost layer,
// realizing the periodic topology: ghost 0 images interior N-2, ghost N-1
// images interior 1, independently per axis.
func (s *Scalar) WrapEdges() {
	nx, ny := s.NX, s.NY
	for j := 0; j < ny; j++ {
		s.V[j] = s.V[(nx-2)*ny+j]
		s.V[(nx-1)*ny+j] = s.V[ny+j]
	}
	for i := 0; i < nx; i++ {
		s.V[i*ny] = s.V[i*ny+ny-2]
		s.V[i*ny+ny-1] = s.V[i*ny+1]
	}
}
