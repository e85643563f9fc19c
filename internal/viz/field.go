package viz

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vortsim/vortsim/internal/solver"
)

// arrowGlyphs cover the eight compass directions, index = round(angle/45°).
var arrowGlyphs = []rune{'→', '↗', '↑', '↖', '←', '↙', '↓', '↘'}

// rampColor maps a normalized vorticity value in [-1, 1] onto the theme's
// diverging ramp.
func rampColor(v float64, th Theme) lipgloss.Color {
	if v > 1 {
		v = 1
	} else if v < -1 {
		v = -1
	}
	end := th.Pos
	t := v
	if v < 0 {
		end = th.Neg
		t = -v
	}
	r := th.Zero[0] + int(t*float64(end[0]-th.Zero[0]))
	g := th.Zero[1] + int(t*float64(end[1]-th.Zero[1]))
	b := th.Zero[2] + int(t*float64(end[2]-th.Zero[2]))
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", r, g, b))
}

// RenderVorticity draws the interior vorticity field, two grid rows per
// terminal row using half blocks, colors clamped against the current peak
// magnitude.
func RenderVorticity(s *solver.Solver, th Theme) string {
	g := s.Grid()
	vort := s.Vorticity()
	ref := s.MaxAbsVorticity()
	if ref < 1e-12 {
		ref = 1e-12
	}

	var b strings.Builder
	// Top of the domain first; j decreases down the screen.
	for j := g.NY - 2; j >= 1; j -= 2 {
		jLow := j - 1
		for i := 1; i <= g.NX-2; i++ {
			top := rampColor(vort.At(i, j)/ref, th)
			style := lipgloss.NewStyle().Foreground(top)
			if jLow >= 1 {
				style = style.Background(rampColor(vort.At(i, jLow)/ref, th))
			}
			b.WriteString(style.Render("▀"))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// RenderVelocity draws one arrow glyph per cell block, direction from the
// velocity angle and color intensity from the local speed. Cells slower
// than a small fraction of the current maximum stay blank.
func RenderVelocity(s *solver.Solver, th Theme) string {
	g := s.Grid()
	vx, vy := s.Velocity()

	maxSpeed := 0.0
	for idx := range vx.V {
		sp := math.Hypot(vx.V[idx], vy.V[idx])
		if sp > maxSpeed {
			maxSpeed = sp
		}
	}
	if maxSpeed < 1e-12 {
		maxSpeed = 1e-12
	}

	// 2x2 grid cells per glyph keeps the aspect ratio near square.
	var b strings.Builder
	for j := g.NY - 2; j >= 1; j -= 2 {
		for i := 1; i <= g.NX-2; i += 2 {
			u, v := vx.At(i, j), vy.At(i, j)
			speed := math.Hypot(u, v)
			if speed < 0.02*maxSpeed {
				b.WriteByte(' ')
				continue
			}
			angle := math.Atan2(v, u)
			oct := ((int(math.Round(angle/(math.Pi/4))) % 8) + 8) % 8
			c := rampColor(speed/maxSpeed, th)
			b.WriteString(lipgloss.NewStyle().Foreground(c).Render(string(arrowGlyphs[oct])))
		}
		b.WriteByte('\n')
	}
	return b.String()
}
