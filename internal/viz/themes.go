package viz

import "github.com/charmbracelet/lipgloss"

// Theme is the color scheme of the live view. Neg and Pos are the endpoints
// of the diverging vorticity ramp (counterclockwise vs clockwise rotation);
// Zero is the quiescent background.
type Theme struct {
	Name    string
	Header  lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Warning lipgloss.Color
	Neg     [3]int
	Zero    [3]int
	Pos     [3]int
}

var (
	ThemeOcean = Theme{
		Name:    "ocean",
		Header:  lipgloss.Color("#00a8cc"),
		Text:    lipgloss.Color("#e0f0ff"),
		Muted:   lipgloss.Color("#4488aa"),
		Warning: lipgloss.Color("#ffcc00"),
		Neg:     [3]int{0x00, 0x77, 0xbe},
		Zero:    [3]int{0x00, 0x1a, 0x33},
		Pos:     [3]int{0xff, 0x6b, 0x6b},
	}

	ThemeInferno = Theme{
		Name:    "inferno",
		Header:  lipgloss.Color("#ff8800"),
		Text:    lipgloss.Color("#fff5e0"),
		Muted:   lipgloss.Color("#885533"),
		Warning: lipgloss.Color("#ff4444"),
		Neg:     [3]int{0x22, 0x00, 0x55},
		Zero:    [3]int{0x11, 0x08, 0x08},
		Pos:     [3]int{0xff, 0xaa, 0x00},
	}

	ThemeMono = Theme{
		Name:    "mono",
		Header:  lipgloss.Color("#ffffff"),
		Text:    lipgloss.Color("#ffffff"),
		Muted:   lipgloss.Color("#888888"),
		Warning: lipgloss.Color("#ffffff"),
		Neg:     [3]int{0x30, 0x30, 0x30},
		Zero:    [3]int{0x00, 0x00, 0x00},
		Pos:     [3]int{0xff, 0xff, 0xff},
	}

	Themes = []Theme{ThemeOcean, ThemeInferno, ThemeMono}
)

// GetTheme returns a theme by name, falling back to ocean.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeOcean
}
