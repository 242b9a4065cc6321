package config

import (
	"fmt"
	"os"
	"time"

	"github.com/baptiste-lrx/Orbital-Trajectory-Simulator/internal/physics"
	"github.com/baptiste-lrx/Orbital-Trajectory-Simulator/internal/trajectory"
	"gopkg.in/yaml.v3"
)

// Config is a scenario file: the primary body, the launch and the solver.
type Config struct {
	Body   BodyConfig        `yaml:"body"`
	Launch trajectory.Params `yaml:"launch"`
	Solver SolverConfig      `yaml:"solver"`
}

type BodyConfig struct {
	G      float64 `yaml:"g"`
	Mass   float64 `yaml:"mass"`
	Radius float64 `yaml:"radius"`
}

type SolverConfig struct {
	Method    string   `yaml:"method"`
	Samples   int      `yaml:"samples"`
	RTol      float64  `yaml:"rtol"`
	ATol      float64  `yaml:"atol"`
	MaxSteps  int      `yaml:"max_steps"`
	MaxStep   float64  `yaml:"max_step"`
	FirstStep float64  `yaml:"first_step"`
	FixedStep float64  `yaml:"fixed_step"`
	Timeout   Duration `yaml:"timeout"`
}

// Duration is a time.Duration written as "30s" in YAML.
type Duration time.Duration

func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*d = Duration(parsed)
	return nil
}

func DefaultConfig() *Config {
	opts := trajectory.DefaultOptions()
	return &Config{
		Body: BodyConfig{
			G:      physics.Earth.G,
			Mass:   physics.Earth.M,
			Radius: physics.Earth.R,
		},
		Launch: trajectory.DefaultParams(),
		Solver: SolverConfig{
			Method:    opts.Method,
			Samples:   opts.Samples,
			RTol:      opts.RTol,
			ATol:      opts.ATol,
			MaxSteps:  opts.MaxSteps,
			MaxStep:   opts.MaxStep,
			FirstStep: opts.FirstStep,
			FixedStep: opts.FixedStep,
		},
	}
}

// Load reads a scenario file. Fields missing from the file keep their
// defaults.
func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver reads a scenario file on top of base, which is left untouched.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := base.Clone()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
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

func (c *Config) Constants() physics.Constants {
	return physics.Constants{G: c.Body.G, M: c.Body.Mass, R: c.Body.Radius}
}

func (c *Config) Params() trajectory.Params { return c.Launch }

func (c *Config) Options() trajectory.Options {
	return trajectory.Options{
		Method:    c.Solver.Method,
		Samples:   c.Solver.Samples,
		RTol:      c.Solver.RTol,
		ATol:      c.Solver.ATol,
		MaxSteps:  c.Solver.MaxSteps,
		MaxStep:   c.Solver.MaxStep,
		FirstStep: c.Solver.FirstStep,
		FixedStep: c.Solver.FixedStep,
		Timeout:   time.Duration(c.Solver.Timeout),
	}
}

// Validate checks the whole scenario before any run is attempted.
func (c *Config) Validate() error {
	if err := c.Constants().Validate(); err != nil {
		return fmt.Errorf("body: %w", err)
	}
	if err := c.Launch.Validate(); err != nil {
		return fmt.Errorf("launch: %w", err)
	}
	if err := c.Options().Validate(c.Launch.Duration); err != nil {
		return fmt.Errorf("solver: %w", err)
	}
	return nil
}

// Clone returns an independent copy.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}
