// Package config provides configuration loading and access for the tracer.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Seeding policies.
const (
	SeedCircle = "circle"
	SeedRake   = "rake"
)

// ErrInvalid is wrapped by every validation failure in Load.
var ErrInvalid = errors.New("config: invalid value")

// Config holds all tracer configuration parameters.
type Config struct {
	Run       RunConfig       `yaml:"run"`
	Field     FieldConfig     `yaml:"field"`
	Seeding   SeedingConfig   `yaml:"seeding"`
	Device    DeviceConfig    `yaml:"device"`
	Output    OutputConfig    `yaml:"output"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Viewer    ViewerConfig    `yaml:"viewer"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// RunConfig holds the integration parameters.
type RunConfig struct {
	NumSteps int     `yaml:"num_steps"` // recorded rows, including the seed row
	NumSeeds int     `yaml:"num_seeds"`
	DT       float64 `yaml:"dt"`
}

// FieldConfig selects the vector field. An empty Path uses the synthetic field.
type FieldConfig struct {
	Path      string          `yaml:"path"`
	Synthetic SyntheticConfig `yaml:"synthetic"`
}

// SyntheticConfig holds generator parameters for field.Synthesize.
type SyntheticConfig struct {
	Kind       string     `yaml:"kind"` // uniform | jet
	Dims       [3]int     `yaml:"dims"`
	Velocity   [3]float64 `yaml:"velocity"`
	Radius     float64    `yaml:"radius"`
	Swirl      float64    `yaml:"swirl"`
	Turbulence float64    `yaml:"turbulence"`
	NoiseScale float64    `yaml:"noise_scale"`
	Seed       int64      `yaml:"seed"`
}

// SeedingConfig holds seed placement parameters.
type SeedingConfig struct {
	Policy   string     `yaml:"policy"` // circle | rake
	Center   [3]float64 `yaml:"center"`
	Radius   float64    `yaml:"radius"`
	RakeFrom [3]float64 `yaml:"rake_from"`
	RakeTo   [3]float64 `yaml:"rake_to"`
}

// DeviceConfig holds worker pool parameters.
type DeviceConfig struct {
	Workers           int `yaml:"workers"`            // 0 = GOMAXPROCS
	ParallelThreshold int `yaml:"parallel_threshold"` // lanes below this run inline
}

// OutputConfig holds output parameters.
type OutputConfig struct {
	WriteVTP      bool   `yaml:"write_vtp"`
	VTPPath       string `yaml:"vtp_path"`
	Dir           string `yaml:"dir"` // CSV telemetry directory, empty = disabled
	SkipExhausted bool   `yaml:"skip_exhausted"`
}

// TelemetryConfig holds logging and statistics parameters.
type TelemetryConfig struct {
	ProgressInterval int `yaml:"progress_interval"` // steps per progress window
}

// ViewerConfig holds streamview display settings.
type ViewerConfig struct {
	Width     int     `yaml:"width"`
	Height    int     `yaml:"height"`
	TargetFPS int     `yaml:"target_fps"`
	Distance  float64 `yaml:"distance"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	DT32     float32
	Workers  int
	Center   [3]float32
	RakeFrom [3]float32
	RakeTo   [3]float32
	Velocity [3]float32
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Init must be called before Cfg")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only overwrites fields present in the file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Seeding.Policy {
	case SeedCircle, SeedRake:
	default:
		return fmt.Errorf("%w: seeding.policy %q", ErrInvalid, c.Seeding.Policy)
	}
	if c.Device.Workers < 0 {
		return fmt.Errorf("%w: device.workers %d", ErrInvalid, c.Device.Workers)
	}
	if c.Run.NumSteps < 0 || c.Run.NumSeeds < 0 {
		return fmt.Errorf("%w: negative run size", ErrInvalid)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.DT32 = float32(c.Run.DT)

	c.Derived.Workers = c.Device.Workers
	if c.Derived.Workers == 0 {
		c.Derived.Workers = runtime.GOMAXPROCS(0)
	}

	c.Derived.Center = to32(c.Seeding.Center)
	c.Derived.RakeFrom = to32(c.Seeding.RakeFrom)
	c.Derived.RakeTo = to32(c.Seeding.RakeTo)
	c.Derived.Velocity = to32(c.Field.Synthetic.Velocity)
}

// SetRun overrides the run parameters and refreshes derived values.
func (c *Config) SetRun(numSteps, numSeeds int, dt float64) {
	c.Run.NumSteps = numSteps
	c.Run.NumSeeds = numSeeds
	c.Run.DT = dt
	c.computeDerived()
}

func to32(v [3]float64) [3]float32 {
	return [3]float32{float32(v[0]), float32(v[1]), float32(v[2])}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
