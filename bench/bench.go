// Package bench times repeated runs of a kernel and reports the memory bandwidth they achieved.
package bench

import (
	"fmt"
	"time"

	"code.cloudfoundry.org/bytefmt"
	"github.com/montanaflynn/stats"

	"github.com/rektorphi/parselect/util"
)

// DefaultIterations is the number of timed runs when none is configured.
const DefaultIterations = 100

// Config describes one benchmark.
type Config struct {
	Name string
	// Iterations is the number of timed runs, after one untimed warm-up run. Values <= 0 mean DefaultIterations.
	Iterations int
	// BytesPerIteration is the amount of memory one run reads and writes.
	BytesPerIteration uint64
	Log               util.Logger
}

// Result holds the timings of a benchmark.
type Result struct {
	Name              string
	Iterations        int
	BytesPerIteration uint64
	Total             time.Duration
	// Samples are the durations of the individual runs in seconds.
	Samples stats.Float64Data
}

// Run calls kernel once to warm up and then cfg.Iterations times while timing it.
// The first error returned by kernel aborts the benchmark.
func Run(cfg Config, kernel func() error) (*Result, error) {
	if cfg.Iterations <= 0 {
		cfg.Iterations = DefaultIterations
	}
	log := cfg.Log
	if log == nil {
		log = util.NopLogger{}
	}
	if err := kernel(); err != nil {
		return nil, fmt.Errorf("bench %s: warm-up: %w", cfg.Name, err)
	}
	res := &Result{
		Name:              cfg.Name,
		Iterations:        cfg.Iterations,
		BytesPerIteration: cfg.BytesPerIteration,
		Samples:           make(stats.Float64Data, cfg.Iterations),
	}
	start := time.Now()
	for it := 0; it < cfg.Iterations; it++ {
		t := time.Now()
		if err := kernel(); err != nil {
			return nil, fmt.Errorf("bench %s: iteration %d: %w", cfg.Name, it, err)
		}
		d := time.Since(t)
		res.Samples[it] = d.Seconds()
		util.DetailLogger(log).Printf("%s iteration %d took %v", cfg.Name, it, d)
	}
	res.Total = time.Since(start)
	return res, nil
}

// Bandwidth returns the bytes moved per second over all timed runs.
func (r *Result) Bandwidth() float64 {
	s := r.Total.Seconds()
	if s <= 0 {
		return 0
	}
	return float64(r.BytesPerIteration) * float64(r.Iterations) / s
}

// GBps returns Bandwidth in 10^9 bytes per second.
func (r *Result) GBps() float64 {
	return r.Bandwidth() * 1e-9
}

// Summary returns mean, standard deviation, median and minimum of the run durations in seconds.
// The deviation of a single run is 0.
func (r *Result) Summary() (mean, std, median, fastest float64) {
	var err error
	if mean, err = r.Samples.Mean(); err != nil {
		mean = 0
	}
	if len(r.Samples) > 1 {
		if std, err = r.Samples.StandardDeviationSample(); err != nil {
			std = 0
		}
	}
	if median, err = r.Samples.Median(); err != nil {
		median = 0
	}
	if fastest, err = r.Samples.Min(); err != nil {
		fastest = 0
	}
	return
}

// PeakGBps returns the bandwidth of the fastest run in 10^9 bytes per second.
func (r *Result) PeakGBps() float64 {
	_, _, _, fastest := r.Summary()
	if fastest <= 0 {
		return 0
	}
	return float64(r.BytesPerIteration) / fastest * 1e-9
}

func (r *Result) String() string {
	mean, std, median, _ := r.Summary()
	return fmt.Sprintf("%s: %d x %s in %v, m= %.3fms (+/- %.3fms) med= %.3fms, %s/s",
		r.Name, r.Iterations, bytefmt.ByteSize(r.BytesPerIteration), r.Total,
		mean*1e3, std*1e3, median*1e3, bytefmt.ByteSize(uint64(r.Bandwidth())))
}
