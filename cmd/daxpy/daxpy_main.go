package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/rektorphi/parselect"
	"github.com/rektorphi/parselect/daxpy"
	"github.com/rektorphi/parselect/util"
)

func main() {
	util.LogLevel = util.LInfo

	var cfgFile = flag.String("cfg", "", "Configuration file")
	var verbose = flag.Bool("v", false, "Verbose logging")
	var workers = flag.Int("w", -1, "Number of worker goroutines, 0 uses all processors, 1 runs sequentially")
	var iterations = flag.Int("n", -1, "Number of timed benchmark iterations, at least 1")
	var a = flag.Float64("a", 2.0, "Scalar factor")
	flag.Parse()

	if *verbose {
		util.LogLevel = util.LDetail
		log.SetFlags(log.Ltime | log.Lmicroseconds)
	}

	if flag.Arg(0) == "example" {
		parselect.WriteConfig(os.Stdout, parselect.ExampleConfig())
		return
	}
	os.Exit(run(*cfgFile, *workers, *iterations, *a, flag.Args()))
}

func run(cfgFile string, workers, iterations int, a float64, args []string) int {
	logger := util.NewLogger("[daxpy] ")
	n, err := parselect.ParseLength(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v!\n", err)
		return 1
	}
	cfg, err := parselect.LoadConfigOrDefault(cfgFile, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		return 1
	}
	if workers >= 0 {
		cfg.Workers = workers
	}
	if iterations >= 0 {
		cfg.Iterations = iterations
	}
	lab, err := parselect.NewLab(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		return 1
	}
	if err := lab.Reserve(2 * 8 * uint64(n)); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		return 1
	}

	x := make([]float64, n)
	y := make([]float64, n)
	opts := lab.Options()
	err = daxpy.Initialize(x, y, opts)
	if err == nil {
		err = daxpy.Daxpy(a, x, y, opts)
	}
	if err != nil || !daxpy.Check(a, y) {
		fmt.Fprintln(os.Stderr, "ERROR!")
		if err != nil {
			logger.Printf("%v", err)
		}
		return 1
	}
	fmt.Fprintln(os.Stderr, "OK!")

	res, err := lab.Bench("daxpy", daxpy.BytesPerIteration(n), func() error {
		return daxpy.Daxpy(a, x, y, opts)
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		return 1
	}
	fmt.Fprintf(os.Stderr, "Bandwidth [GB/s]: %g\n", res.GBps())
	return 0
}
