package config

// Presets are named variations of the default setup.
var Presets = map[string]func() *Config{
	// classic is the standard smoke-ring pulse.
	"classic": Default,

	// gentle halves the pulse strength and doubles the diffusion for a
	// slower, smoother ring that stays well inside the stable regime.
	"gentle": func() *Config {
		c := Default()
		c.Forcing.Magnitude /= 2
		c.Gas.Nu *= 2
		c.Gas.Kappa *= 2
		return c
	},

	// strong drives a faster ring; expect sharper gradients and a smaller
	// CFL timestep.
	"strong": func() *Config {
		c := Default()
		c.Forcing.Magnitude *= 2
		c.Forcing.TEnd = c.Forcing.TStart + 1.5*(c.Forcing.TEnd-c.Forcing.TStart)
		return c
	},

	// highres doubles the interior resolution on the same domain.
	"highres": func() *Config {
		c := Default()
		c.Grid.NX = 2*(c.Grid.NX-2) + 2
		c.Grid.NY = 2*(c.Grid.NY-2) + 2
		c.View.StepsPerFrame = 12
		return c
	},

	// inviscid switches off both diffusion terms; useful for conservation
	// checks, not guaranteed stable for long pulses.
	"inviscid": func() *Config {
		c := Default()
		c.Gas.Nu = 0
		c.Gas.Kappa = 0
		return c
	},
}

// GetPreset returns a fresh Config for the named preset, or nil.
func GetPreset(name string) *Config {
	fn, ok := Presets[name]
	if !ok {
		return nil
	}
	return fn()
}

// ListPresets returns the available preset names.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
