package solver

import (
	"context"
	"math"
	"testing"

	"github.com/vortsim/vortsim/internal/grid"
)

func testGrid(t *testing.T, n int) *grid.Grid {
	t.Helper()
	g, err := grid.New(n, n, grid.Bounds{XMin: 0, XMax: 1, YMin: 0, YMax: 1})
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func testParams() Params {
	return Params{
		Gamma: 1.4,
		GasR:  287.0,
		Rho0:  1.293,
		P0:    1.013e5,
		Nu:    1.5e-3,
		Kappa: 2.0e-3,
		Forcing: ForcingSpec{
			XMin: 0.02, XMax: 0.10,
			CenterY: 0.5, Radius: 0.08,
			Magnitude: 6.0e3,
			TStart:    0.001, TEnd: 0.011,
		},
		CFLInterval: 20,
	}
}

// quiescentParams silences the forcing pulse entirely.
func quiescentParams() Params {
	p := testParams()
	p.Forcing.Magnitude = 0
	p.Forcing.TStart, p.Forcing.TEnd = 0, 0
	return p
}

func TestNewRejectsBadParams(t *testing.T) {
	g := testGrid(t, 10)
	bad := []func(*Params){
		func(p *Params) { p.Gamma = 1.0 },
		func(p *Params) { p.GasR = 0 },
		func(p *Params) { p.Rho0 = -1 },
		func(p *Params) { p.P0 = 0 },
		func(p *Params) { p.Nu = -1e-3 },
		func(p *Params) { p.CFLInterval = 0 },
		func(p *Params) { p.Forcing.TStart = 1; p.Forcing.TEnd = 0 },
	}
	for i, mutate := range bad {
		p := testParams()
		mutate(&p)
		if _, err := New(g, p); err == nil {
			t.Errorf("case %d: expected construction error", i)
		}
	}
}

func TestQuiescentSteadyState(t *testing.T) {
	s, err := New(testGrid(t, 18), quiescentParams())
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 10; i++ {
		s.Advance()
	}

	for idx := range s.fields.Density.V {
		if s.fields.Density.V[idx] != 1.293 {
			t.Fatalf("density drifted at %d: %v", idx, s.fields.Density.V[idx])
		}
		if s.fields.Pressure.V[idx] != 1.013e5 {
			t.Fatalf("pressure drifted at %d: %v", idx, s.fields.Pressure.V[idx])
		}
		if s.fields.MassFluxX.V[idx] != 0 || s.fields.MassFluxY.V[idx] != 0 {
			t.Fatalf("flux appeared at %d", idx)
		}
	}
	if len(s.Warnings()) != 0 {
		t.Errorf("unexpected warnings: %v", s.Warnings())
	}
}

// perturb superimposes a smooth density/pressure wave so the fields actually
// move; boundaries and diagnostics are restored afterwards.
func perturb(s *Solver, eps float64) {
	g := s.grid
	for i := 0; i < g.NX; i++ {
		w := eps * math.Sin(2*math.Pi*g.X[i])
		for j := 0; j < g.NY; j++ {
			s.fields.Density.Set(i, j, s.par.Rho0*(1+w))
			s.fields.Pressure.Set(i, j, s.par.P0*(1+s.par.Gamma*w))
		}
	}
	s.fields.EnforceBoundaries()
	s.diag.Recompute(s.grid, s.fields, s.par.GasR)
}

func interiorMass(s *Solver) float64 {
	sum := 0.0
	for i := 1; i <= s.grid.NX-2; i++ {
		for _, v := range s.fields.Density.Row(i) {
			sum += v
		}
	}
	return sum
}

func TestMassConservation(t *testing.T) {
	s, err := New(testGrid(t, 34), quiescentParams())
	if err != nil {
		t.Fatal(err)
	}
	perturb(s, 1e-2)

	before := interiorMass(s)
	for i := 0; i < 50; i++ {
		s.Advance()
	}
	after := interiorMass(s)

	if rel := math.Abs(after-before) / before; rel > 1e-10 {
		t.Errorf("interior mass drifted: %v -> %v (rel %.3e)", before, after, rel)
	}
}

func TestBoundaryPeriodicityAfterAdvance(t *testing.T) {
	s, err := New(testGrid(t, 34), testParams())
	if err != nil {
		t.Fatal(err)
	}
	perturb(s, 1e-2)
	for i := 0; i < 5; i++ {
		s.Advance()
	}

	check := func(name string, f *grid.Scalar) {
		nx, ny := f.NX, f.NY
		for j := 0; j < ny; j++ {
			if f.At(0, j) != f.At(nx-2, j) || f.At(nx-1, j) != f.At(1, j) {
				t.Fatalf("%s: x periodicity broken at j=%d", name, j)
			}
		}
		for i := 0; i < nx; i++ {
			if f.At(i, 0) != f.At(i, ny-2) || f.At(i, ny-1) != f.At(i, 1) {
				t.Fatalf("%s: y periodicity broken at i=%d", name, i)
			}
		}
	}
	check("mass-flux-x", s.fields.MassFluxX)
	check("mass-flux-y", s.fields.MassFluxY)
	check("density", s.fields.Density)
	check("pressure", s.fields.Pressure)
	check("divergence", s.diag.Div)
	check("vorticity", s.diag.Vorticity)
}

func TestTimestepCadence(t *testing.T) {
	p := testParams()
	p.CFLInterval = 5
	s, err := New(testGrid(t, 18), p)
	if err != nil {
		t.Fatal(err)
	}

	// K+1 advances recompute the timestep exactly twice: once before the
	// first step, once at step K.
	for i := 0; i < p.CFLInterval+1; i++ {
		s.Advance()
	}
	if s.cflRecomputes != 2 {
		t.Errorf("CFL recomputations: got %d, want 2", s.cflRecomputes)
	}
}

func TestFixedDtDisablesCFL(t *testing.T) {
	p := quiescentParams()
	p.FixedDt = 1e-6
	p.CFLInterval = 0
	s, err := New(testGrid(t, 18), p)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 7; i++ {
		s.Advance()
	}
	if s.cflRecomputes != 0 {
		t.Errorf("CFL ran despite fixed dt: %d recomputations", s.cflRecomputes)
	}
	if s.clock.Dt != 1e-6 {
		t.Errorf("dt: got %v, want 1e-6", s.clock.Dt)
	}
	if math.Abs(s.clock.Time-7e-6) > 1e-15 {
		t.Errorf("time: got %v, want 7e-6", s.clock.Time)
	}
}

func TestCFLMonotonicity(t *testing.T) {
	base := quiescentParams()
	dtOf := func(p Params) float64 {
		s, err := New(testGrid(t, 18), p)
		if err != nil {
			t.Fatal(err)
		}
		return s.computeTimestep()
	}

	dt0 := dtOf(base)
	if dt0 <= 0 {
		t.Fatalf("timestep must be positive, got %v", dt0)
	}

	moreNu := base
	moreNu.Nu *= 100
	if dt := dtOf(moreNu); dt > dt0 {
		t.Errorf("raising viscosity grew dt: %v > %v", dt, dt0)
	}

	moreKappa := base
	moreKappa.Kappa *= 100
	if dt := dtOf(moreKappa); dt > dt0 {
		t.Errorf("raising thermal diffusivity grew dt: %v > %v", dt, dt0)
	}
}

func TestCFLAcousticLimit(t *testing.T) {
	p := quiescentParams()
	p.Nu, p.Kappa = 0, 0
	s, err := New(testGrid(t, 34), p)
	if err != nil {
		t.Fatal(err)
	}

	// At rest the binding limit is acoustic: 0.8 dmin / c with
	// c = sqrt(gamma R T) = sqrt(gamma p / rho).
	c := math.Sqrt(p.Gamma * p.P0 / p.Rho0)
	want := advectiveSafety * s.grid.DMin / c
	got := s.computeTimestep()
	if math.Abs(got-want)/want > 1e-6 {
		t.Errorf("acoustic dt: got %v, want %v", got, want)
	}
}

func TestHealthWarnings(t *testing.T) {
	s, err := New(testGrid(t, 18), quiescentParams())
	if err != nil {
		t.Fatal(err)
	}
	s.fields.Density.Set(3, 3, -0.5)
	s.checkHealth()

	if len(s.Warnings()) == 0 {
		t.Fatal("expected a health warning for negative density")
	}
	w := s.Warnings()[0]
	if w.Error() == "" {
		t.Error("warning must render a message")
	}
}

func TestResetRestoresQuiescence(t *testing.T) {
	s, err := New(testGrid(t, 18), testParams())
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 20; i++ {
		s.Advance()
	}
	if s.clock.Step != 20 {
		t.Fatalf("step count: got %d", s.clock.Step)
	}

	s.Reset()
	if s.clock.Step != 0 || s.clock.Time != 0 {
		t.Error("clock not rewound")
	}
	for idx := range s.fields.Density.V {
		if s.fields.Density.V[idx] != s.par.Rho0 {
			t.Fatal("density not restored")
		}
	}
}

// stubMetric avoids an import cycle with the metrics package in these
// in-package tests.
type stubMetric struct {
	name  string
	calls int
}

func (m *stubMetric) Name() string                 { return m.name }
func (m *stubMetric) Observe(_ *Solver, _ float64) { m.calls++ }
func (m *stubMetric) Value() float64               { return float64(m.calls) }
func (m *stubMetric) Reset()                       { m.calls = 0 }

func TestRunSamplesSeries(t *testing.T) {
	p := quiescentParams()
	// Power-of-two timestep keeps the clock arithmetic exact, so the step
	// count is deterministic.
	p.FixedDt = 1.0 / 65536
	p.CFLInterval = 0
	s, err := New(testGrid(t, 18), p)
	if err != nil {
		t.Fatal(err)
	}

	m := &stubMetric{name: "probe"}
	res, err := s.Run(context.Background(), RunConfig{
		Duration:    10.0 / 65536,
		SampleEvery: 2,
	}, []Metric{m})
	if err != nil {
		t.Fatal(err)
	}

	if res.StepsTaken != 10 {
		t.Errorf("steps: got %d, want 10", res.StepsTaken)
	}
	// Initial sample plus one every 2 steps.
	if len(res.Times) != 6 {
		t.Errorf("samples: got %d, want 6", len(res.Times))
	}
	if len(res.Series["probe"]) != len(res.Times) {
		t.Errorf("series length %d != times length %d", len(res.Series["probe"]), len(res.Times))
	}
	if _, ok := res.Metrics["probe"]; !ok {
		t.Error("final metric value missing")
	}
}

func TestRunHonorsContext(t *testing.T) {
	s, err := New(testGrid(t, 18), quiescentParams())
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := s.Run(ctx, RunConfig{Duration: 1}, nil); err == nil {
		t.Error("expected context error")
	}
}
