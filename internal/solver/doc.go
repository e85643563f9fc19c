// Package solver integrates the compressible flow equations that form and
// propel a two-dimensional vortex sheet on a uniform periodic grid.
//
// The pieces compose leaf to root:
//
//   - [FieldState]: the four conserved quantities (mass flux x/y, density,
//     pressure) plus periodic boundary enforcement
//   - [Diagnostics]: velocity, temperature, divergence, vorticity derived
//     from the current FieldState
//   - [Forcing]: a static spatial force template gated by a pulse envelope
//   - [Solver]: the classical RK4 integrator and CFL timestep controller
//
// One Advance call is a pure, blocking computation with no suspension
// points: snapshot, four staged derivative evaluations, combine, boundary
// enforcement, diagnostics. The Solver exclusively owns all field memory;
// everything handed outward is a read-only view.
//
// # Ordering
//
// Boundary enforcement must follow every partial update and precede every
// derivative evaluation, because the centered stencils read one neighbor on
// each side. Advance maintains this invariant internally.
package solver
