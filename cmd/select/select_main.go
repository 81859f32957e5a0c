package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"unsafe"

	"github.com/rektorphi/parselect"
	"github.com/rektorphi/parselect/selection"
	"github.com/rektorphi/parselect/util"
)

func isMultipleOf3(x int32) bool {
	return x%3 == 0
}

func main() {
	util.LogLevel = util.LInfo

	var cfgFile = flag.String("cfg", "", "Configuration file")
	var verbose = flag.Bool("v", false, "Verbose logging")
	var workers = flag.Int("w", -1, "Number of worker goroutines, 0 uses all processors, 1 runs sequentially")
	var iterations = flag.Int("n", -1, "Number of timed benchmark iterations, at least 1")
	var variant = flag.String("variant", "twophase", "Implementation to run: seq, par or twophase")
	flag.Parse()

	if *verbose {
		util.LogLevel = util.LDetail
		log.SetFlags(log.Ltime | log.Lmicroseconds)
	}

	if flag.Arg(0) == "example" {
		parselect.WriteConfig(os.Stdout, parselect.ExampleConfig())
		return
	}
	os.Exit(run(*cfgFile, *workers, *iterations, *variant, flag.Args()))
}

func run(cfgFile string, workers, iterations int, variant string, args []string) int {
	logger := util.NewLogger("[select] ")
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

	kernel, err := newKernel(variant, lab)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		return 1
	}
	if err := lab.Reserve(bytesPerElement * uint64(n)); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		return 1
	}
	v, err := lab.Input(n)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		return 1
	}

	w, err := kernel(v)
	if err == nil {
		err = verify(w)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "ERROR!")
		logger.Printf("%s: %v", variant, err)
		return 1
	}
	fmt.Fprintln(os.Stderr, "OK!")

	if n < cfg.PrintLimit {
		fmt.Printf("w = %s\n", join(w))
	}

	res, err := lab.Bench("select-"+variant, bytesPerElement*uint64(n), func() error {
		_, err := kernel(v)
		return err
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		return 1
	}
	fmt.Fprintf(os.Stderr, "Bandwidth [GB/s]: %g\n", res.GBps())
	return 0
}

// v is read, the counts are written, then v and the counts are read and the output is written.
const bytesPerElement = 3*uint64(unsafe.Sizeof(int32(0))) + 2*uint64(unsafe.Sizeof(uint64(0)))

func newKernel(variant string, lab *parselect.Lab) (func([]int32) ([]int32, error), error) {
	switch variant {
	case "seq":
		return func(v []int32) ([]int32, error) {
			return selection.Sequential(v, isMultipleOf3), nil
		}, nil
	case "par":
		return func(v []int32) ([]int32, error) {
			return selection.Select(v, isMultipleOf3, lab.Options())
		}, nil
	case "twophase":
		s := selection.NewSelector[int32](lab.Options())
		return func(v []int32) ([]int32, error) {
			return s.Select(v, isMultipleOf3)
		}, nil
	}
	return nil, fmt.Errorf("unknown variant '%s', available are: seq, par, twophase", variant)
}

func verify(w []int32) error {
	if len(w) == 0 {
		return fmt.Errorf("%w: no element selected", parselect.ErrVerification)
	}
	for i, x := range w {
		if !isMultipleOf3(x) {
			return fmt.Errorf("%w: element %d = %d does not match", parselect.ErrVerification, i, x)
		}
	}
	return nil
}

func join(w []int32) string {
	var sb strings.Builder
	for i, x := range w {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprint(&sb, x)
	}
	return sb.String()
}
