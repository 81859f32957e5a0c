package parselect

import (
	"errors"
	"fmt"

	"code.cloudfoundry.org/bytefmt"

	"github.com/rektorphi/parselect/bench"
	"github.com/rektorphi/parselect/input"
	"github.com/rektorphi/parselect/par"
	"github.com/rektorphi/parselect/util"
)

// ErrMemoryLimit is returned when a driver would allocate more than the configured maximum.
var ErrMemoryLimit = errors.New("memory limit exceeded")

// A Lab is the runtime data structure shared by a driver and its kernels.
type Lab struct {
	cfg       *Config
	opts      par.Options
	maxMemory uint64
	log       util.Logger
}

// NewLab creates a Lab from the parameters in a Config struct.
// Returns an error if any configuration values are invalid.
func NewLab(cfg *Config, log util.Logger) (*Lab, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	mm, _ := cfg.maxMemory()
	if log == nil {
		log = util.NopLogger{}
	}
	return &Lab{cfg: cfg, opts: cfg.Options(), maxMemory: mm, log: log}, nil
}

// Config returns the configuration of this lab.
func (l *Lab) Config() *Config {
	return l.cfg
}

// Options returns the parallel pass options kernels of this lab run with.
func (l *Lab) Options() par.Options {
	return l.opts
}

// Log returns the logger of this lab.
func (l *Lab) Log() util.Logger {
	return l.log
}

// Reserve checks that a driver may allocate the given amount of memory.
func (l *Lab) Reserve(bytes uint64) error {
	if l.maxMemory > 0 && bytes > l.maxMemory {
		return fmt.Errorf("%w: need %s, limit %s", ErrMemoryLimit, bytefmt.ByteSize(bytes), bytefmt.ByteSize(l.maxMemory))
	}
	util.DetailLogger(l.log).Printf("Reserving %s", bytefmt.ByteSize(bytes))
	return nil
}

// Input returns n seeded uniform integers in the configured range.
func (l *Lab) Input(n int) ([]int32, error) {
	return input.Uniform(n, l.cfg.Low, l.cfg.High, l.cfg.Seed)
}

// Bench times kernel for the configured number of iterations and logs the result.
func (l *Lab) Bench(name string, bytesPerIteration uint64, kernel func() error) (*bench.Result, error) {
	res, err := bench.Run(bench.Config{
		Name:              name,
		Iterations:        l.cfg.Iterations,
		BytesPerIteration: bytesPerIteration,
		Log:               l.log,
	}, kernel)
	if err != nil {
		return nil, err
	}
	l.log.Printf("%s", res)
	return res, nil
}
