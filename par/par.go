// Package par runs index ranges as fork-join passes over a bounded set of goroutines.
//
// A pass splits [0, n) into contiguous chunks, runs one goroutine per chunk and returns when
// every chunk has finished. Chunks never overlap, so bodies writing only to slots of their own
// range need no locking. A panic inside a body is recovered on its goroutine and returned from
// the pass as a *PanicError.
package par

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"golang.org/x/sync/errgroup"
)

// DefaultGrain is the smallest chunk worth handing to its own goroutine.
const DefaultGrain = 4096

// Options controls how a pass is split.
type Options struct {
	// Workers is the maximum number of goroutines of a pass. Values <= 0 mean runtime.GOMAXPROCS(0).
	Workers int
	// Grain is the minimum number of indices per chunk. Values <= 0 mean DefaultGrain.
	Grain int
}

// Default returns Options using all available processors.
func Default() Options {
	return Options{}
}

// Sequential returns Options that run every pass on the calling goroutine.
func Sequential() Options {
	return Options{Workers: 1}
}

func (o Options) workers() int {
	if o.Workers <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return o.Workers
}

func (o Options) grain() int {
	if o.Grain <= 0 {
		return DefaultGrain
	}
	return o.Grain
}

// Chunks returns the number of chunks a pass over n indices is split into. It is at least 1 for n > 0.
func (o Options) Chunks(n int) int {
	if n <= 0 {
		return 0
	}
	c := (n + o.grain() - 1) / o.grain()
	if w := o.workers(); c > w {
		c = w
	}
	return c
}

// Bounds returns the half open range [lo, hi) of chunk c when n indices are split into chunks chunks.
// The first n%chunks chunks are one index longer than the rest.
func Bounds(n, chunks, c int) (lo, hi int) {
	size := n / chunks
	rem := n % chunks
	lo = c*size + min(c, rem)
	hi = lo + size
	if c < rem {
		hi++
	}
	return
}

// PanicError is returned by a pass when a body panicked.
type PanicError struct {
	// Index is the index the body was working on, or -1 if unknown.
	Index int
	Value interface{}
	Stack []byte
}

func (e *PanicError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("par: panic in parallel body: %v", e.Value)
	}
	return fmt.Sprintf("par: panic in parallel body at index %d: %v", e.Index, e.Value)
}

// Unwrap returns the panic value if it was an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// ForChunks calls body once per chunk of [0, n), concurrently unless only one chunk is needed.
// body receives the chunk number and its range. The first error returned by a body, or the first
// recovered panic, is returned after all chunks finished.
func ForChunks(n int, opts Options, body func(chunk, lo, hi int) error) error {
	chunks := opts.Chunks(n)
	switch chunks {
	case 0:
		return nil
	case 1:
		return protect(func() error { return body(0, 0, n) })
	}
	var g errgroup.Group
	for c := 0; c < chunks; c++ {
		c := c
		lo, hi := Bounds(n, chunks, c)
		g.Go(func() error {
			return protect(func() error { return body(c, lo, hi) })
		})
	}
	return g.Wait()
}

// For calls body(i) for every i in [0, n). Calls within a chunk happen in index order, calls in
// different chunks run concurrently.
func For(n int, opts Options, body func(i int)) error {
	return ForChunks(n, opts, func(_, lo, hi int) error {
		i := lo
		defer func() {
			if r := recover(); r != nil {
				panic(&PanicError{Index: i, Value: r, Stack: debug.Stack()})
			}
		}()
		for ; i < hi; i++ {
			body(i)
		}
		return nil
	})
}

// Reduce maps every index in [0, n) with f and folds the values with combine, starting from zero.
// combine must be associative; zero must be its identity.
func Reduce[V any](n int, opts Options, zero V, f func(i int) V, combine func(V, V) V) (V, error) {
	partial := make([]V, opts.Chunks(n))
	err := ForChunks(n, opts, func(c, lo, hi int) error {
		acc := zero
		for i := lo; i < hi; i++ {
			acc = combine(acc, f(i))
		}
		partial[c] = acc
		return nil
	})
	if err != nil {
		return zero, err
	}
	res := zero
	for _, p := range partial {
		res = combine(res, p)
	}
	return res, nil
}

func protect(f func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if pe, ok := r.(*PanicError); ok {
				err = pe
				return
			}
			err = &PanicError{Index: -1, Value: r, Stack: debug.Stack()}
		}
	}()
	return f()
}
