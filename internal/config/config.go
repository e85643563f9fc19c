package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Defaults reproduce the classic smoke-ring setup: a quiescent atmosphere
// at sea-level conditions with a short forcing pulse near the left edge.
const (
	DefaultNX       = 66
	DefaultNY       = 66
	DefaultRho0     = 1.293
	DefaultP0       = 1.013e5
	DefaultGamma    = 1.4
	DefaultGasR     = 287.0
	DefaultNu       = 1.5e-3
	DefaultKappa    = 2.0e-3
	DefaultDuration = 0.05
	DefaultCFLEvery = 20
)

type Config struct {
	Grid    GridConfig    `yaml:"grid"`
	Gas     GasConfig     `yaml:"gas"`
	Forcing ForcingConfig `yaml:"forcing"`
	Run     RunConfig     `yaml:"run"`
	View    ViewConfig    `yaml:"view"`
}

type GridConfig struct {
	NX   int     `yaml:"nx"`
	NY   int     `yaml:"ny"`
	XMin float64 `yaml:"xmin"`
	XMax float64 `yaml:"xmax"`
	YMin float64 `yaml:"ymin"`
	YMax float64 `yaml:"ymax"`
}

type GasConfig struct {
	Rho0  float64 `yaml:"rho0"`
	P0    float64 `yaml:"p0"`
	Gamma float64 `yaml:"gamma"`
	GasR  float64 `yaml:"gas_r"`
	Nu    float64 `yaml:"viscosity"`
	Kappa float64 `yaml:"thermal_diffusivity"`
}

type ForcingConfig struct {
	XMin      float64 `yaml:"xmin"`
	XMax      float64 `yaml:"xmax"`
	CenterY   float64 `yaml:"center_y"`
	Radius    float64 `yaml:"radius"`
	Magnitude float64 `yaml:"magnitude"`
	TStart    float64 `yaml:"t_start"`
	TEnd      float64 `yaml:"t_end"`
}

type RunConfig struct {
	Duration    float64 `yaml:"duration"`
	SampleEvery int     `yaml:"sample_every"`
	CFLInterval int     `yaml:"cfl_interval"`
	FixedDt     float64 `yaml:"fixed_dt"`
}

type ViewConfig struct {
	StepsPerFrame int    `yaml:"steps_per_frame"`
	FrameRate     int    `yaml:"frame_rate"`
	Theme         string `yaml:"theme"`
}

func Default() *Config {
	return &Config{
		Grid: GridConfig{
			NX: DefaultNX, NY: DefaultNY,
			XMin: 0, XMax: 1, YMin: 0, YMax: 1,
		},
		Gas: GasConfig{
			Rho0: DefaultRho0, P0: DefaultP0,
			Gamma: DefaultGamma, GasR: DefaultGasR,
			Nu: DefaultNu, Kappa: DefaultKappa,
		},
		Forcing: ForcingConfig{
			XMin: 0.02, XMax: 0.10,
			CenterY: 0.5, Radius: 0.08,
			Magnitude: 6.0e3,
			TStart:    0.001, TEnd: 0.011,
		},
		Run: RunConfig{
			Duration:    DefaultDuration,
			SampleEvery: 5,
			CFLInterval: DefaultCFLEvery,
		},
		View: ViewConfig{
			StepsPerFrame: 6,
			FrameRate:     30,
			Theme:         "ocean",
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate rejects configurations that would silently produce NaNs:
// degenerate bounds, too-small grids, non-physical gas parameters.
func (c *Config) Validate() error {
	if c.Grid.NX < 3 || c.Grid.NY < 3 {
		return fmt.Errorf("config: grid must be at least 3x3, got %dx%d", c.Grid.NX, c.Grid.NY)
	}
	if c.Grid.XMin >= c.Grid.XMax || c.Grid.YMin >= c.Grid.YMax {
		return fmt.Errorf("config: degenerate domain bounds [%g,%g]x[%g,%g]",
			c.Grid.XMin, c.Grid.XMax, c.Grid.YMin, c.Grid.YMax)
	}
	if c.Gas.Rho0 <= 0 || c.Gas.P0 <= 0 {
		return fmt.Errorf("config: density and pressure must be positive")
	}
	if c.Gas.Gamma <= 1 || c.Gas.GasR <= 0 {
		return fmt.Errorf("config: gamma must exceed 1 and gas constant must be positive")
	}
	if c.Gas.Nu < 0 || c.Gas.Kappa < 0 {
		return fmt.Errorf("config: diffusion coefficients must be non-negative")
	}
	if c.Forcing.TEnd < c.Forcing.TStart {
		return fmt.Errorf("config: forcing window ends before it starts")
	}
	if c.Forcing.Magnitude != 0 && c.Forcing.Radius <= 0 {
		return fmt.Errorf("config: forcing radius must be positive")
	}
	if c.Run.Duration <= 0 {
		return fmt.Errorf("config: duration must be positive, got %g", c.Run.Duration)
	}
	if c.Run.CFLInterval <= 0 && c.Run.FixedDt <= 0 {
		return fmt.Errorf("config: cfl_interval must be positive")
	}
	return nil
}
