package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"code.cloudfoundry.org/bytefmt"

	"github.com/rektorphi/parselect"
	"github.com/rektorphi/parselect/heat"
	"github.com/rektorphi/parselect/util"
)

func main() {
	util.LogLevel = util.LInfo

	var cfgFile = flag.String("cfg", "", "Configuration file")
	var verbose = flag.Bool("v", false, "Verbose logging")
	var workers = flag.Int("w", -1, "Number of worker goroutines, 0 uses all processors, 1 runs sequentially")
	flag.Parse()

	if *verbose {
		util.LogLevel = util.LDetail
		log.SetFlags(log.Ltime | log.Lmicroseconds)
	}

	if flag.Arg(0) == "example" {
		parselect.WriteConfig(os.Stdout, parselect.ExampleConfig())
		return
	}
	os.Exit(run(*cfgFile, *workers, flag.Args()))
}

func run(cfgFile string, workers int, args []string) int {
	logger := util.NewLogger("[heat] ")
	if len(args) != 3 {
		fmt.Fprintln(os.Stderr, "ERROR: incorrect arguments")
		fmt.Fprintf(os.Stderr, "  %s <nx> <ny> <ni>\n", os.Args[0])
		return 1
	}
	var dims [3]int
	for i, arg := range args {
		v, err := strconv.Atoi(arg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: invalid argument %q: %v\n", arg, err)
			return 1
		}
		dims[i] = v
	}
	p, err := heat.NewParams(dims[0], dims[1], dims[2])
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
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
	lab, err := parselect.NewLab(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		return 1
	}
	if err := lab.Reserve(p.BytesPerIteration()); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		return 1
	}

	start := time.Now()
	_, energy, err := heat.Run(p, cfg.OutputInterval, lab.Options(), logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		return 1
	}
	seconds := time.Since(start).Seconds()

	gridBytes := p.BytesPerIteration()
	bandwidth := float64(gridBytes) * float64(p.Iterations) / seconds * 1e-9
	fmt.Fprintf(os.Stderr, "Domain %dx%d (%s): %g GB/s\n", p.Nx, p.Ny, bytefmt.ByteSize(gridBytes), bandwidth)
	logger.Printf("E(t=%g) = %g", float64(p.Iterations)*p.Dt, energy)
	return 0
}
