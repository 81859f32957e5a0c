package parselect

import (
	"fmt"
	"io"
	"os"

	"code.cloudfoundry.org/bytefmt"
	"gopkg.in/yaml.v2"

	"github.com/rektorphi/parselect/bench"
	"github.com/rektorphi/parselect/heat"
	"github.com/rektorphi/parselect/input"
	"github.com/rektorphi/parselect/par"
)

// Config represents all parameters shared by the drivers.
type Config struct {
	// Workers limits the goroutines of a parallel pass, 0 uses all processors and 1 runs sequentially.
	Workers int `yaml:"workers"`
	// Grain is the minimum number of elements per goroutine, 0 uses the default.
	Grain int `yaml:"grain,omitempty"`
	// Iterations is the number of timed benchmark runs, at least 1.
	Iterations int `yaml:"iterations"`
	// PrintLimit is the length below which results are printed to stdout.
	PrintLimit int `yaml:"printLimit"`
	// MaxMemory caps the buffers a driver allocates, e.g. "2G". Empty means unlimited.
	MaxMemory string `yaml:"maxMemory,omitempty"`

	Seed int64 `yaml:"seed"`
	Low  int32 `yaml:"low"`
	High int32 `yaml:"high"`

	// OutputInterval is the number of heat iterations between energy reports.
	OutputInterval int `yaml:"outputInterval,omitempty"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Iterations:     bench.DefaultIterations,
		PrintLimit:     40,
		Seed:           input.DefaultSeed,
		Low:            0,
		High:           100,
		OutputInterval: heat.DefaultOutputInterval,
	}
}

// ExampleConfig returns a static configuration with example values.
func ExampleConfig() (res *Config) {
	res = DefaultConfig()
	res.Workers = 8
	res.Grain = par.DefaultGrain
	res.MaxMemory = bytefmt.ByteSize(4 * bytefmt.GIGABYTE)
	return
}

// LoadConfigFromFile loads a Config from file system.
func LoadConfigFromFile(name string) (*Config, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadConfig(f)
}

// LoadConfig loads a Config from a reader. Fields missing in the input keep their default values.
func LoadConfig(r io.Reader) (*Config, error) {
	cfg := DefaultConfig()
	decoder := yaml.NewDecoder(r)
	err := decoder.Decode(cfg)
	if err == io.EOF {
		err = nil
	}
	if err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

// WriteConfig writes a Config to a writer.
func WriteConfig(w io.Writer, cfg *Config) error {
	encoder := yaml.NewEncoder(w)
	defer encoder.Close()
	return encoder.Encode(cfg)
}

// Validate checks the configuration values for consistency.
func (cfg *Config) Validate() error {
	if cfg.Workers < 0 {
		return fmt.Errorf("invalid configuration: workers %d must not be negative", cfg.Workers)
	}
	if cfg.Grain < 0 {
		return fmt.Errorf("invalid configuration: grain %d must not be negative", cfg.Grain)
	}
	if cfg.Iterations < 1 {
		return fmt.Errorf("invalid configuration: iterations %d must be at least 1", cfg.Iterations)
	}
	if cfg.High < cfg.Low {
		return fmt.Errorf("invalid configuration: range [%d, %d] is empty", cfg.Low, cfg.High)
	}
	if _, err := cfg.maxMemory(); err != nil {
		return err
	}
	return nil
}

// Options returns the parallel pass options of this configuration.
func (cfg *Config) Options() par.Options {
	return par.Options{Workers: cfg.Workers, Grain: cfg.Grain}
}

func (cfg *Config) maxMemory() (uint64, error) {
	if len(cfg.MaxMemory) == 0 {
		return 0, nil
	}
	bs, err := bytefmt.ToBytes(cfg.MaxMemory)
	if err != nil {
		return 0, fmt.Errorf("invalid configuration: maxMemory %q: %w", cfg.MaxMemory, err)
	}
	return bs, nil
}
