// Package selection packs the elements of a slice that satisfy a predicate into a new slice,
// keeping their order.
//
// Sequential appends matches one by one and can only run on one goroutine. Select and Selector
// compute for every index the inclusive count of matches up to it and then scatter every match to
// slot count-1 of an output of exactly the right length. Slots are unique, so the scatter runs
// concurrently without locks.
package selection

import (
	"errors"
	"fmt"

	"github.com/rektorphi/parselect/par"
	"github.com/rektorphi/parselect/scan"
)

// Predicate decides whether an element is selected. It is called concurrently and must not
// modify shared state.
type Predicate[T any] func(T) bool

// ErrCountsMismatch is returned by Scatter when the counts were not computed for the given input.
var ErrCountsMismatch = errors.New("selection: counts do not match input")

// Sequential returns the elements of in satisfying pred, in order.
func Sequential[T any](in []T, pred Predicate[T]) []T {
	out := make([]T, 0)
	for _, v := range in {
		if pred(v) {
			out = append(out, v)
		}
	}
	return out
}

// Select returns the elements of in satisfying pred, in order, using three parallel passes:
// a flag per element, an inclusive scan of the flags and a scatter of the matches.
// A panic in pred is returned as *par.PanicError.
func Select[T any](in []T, pred Predicate[T], opts par.Options) ([]T, error) {
	flags := make([]uint8, len(in))
	err := par.For(len(in), opts, func(i int) {
		if pred(in[i]) {
			flags[i] = 1
		}
	})
	if err != nil {
		return nil, err
	}

	index := make([]uint64, len(in))
	err = scan.InclusiveScan(flags, index, func(f uint8) uint64 { return uint64(f) }, scan.Sum[uint64], opts)
	if err != nil {
		return nil, err
	}

	out := make([]T, total(index))
	err = par.For(len(in), opts, func(i int) {
		if flags[i] != 0 {
			out[index[i]-1] = in[i]
		}
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// A Selector selects in two phases, Counts and Scatter, and keeps its count and output buffers
// between calls so repeated selections do not allocate once the buffers are large enough.
// The slices it returns alias these buffers and are overwritten by the next call.
// A Selector must not be used by concurrent calls.
type Selector[T any] struct {
	opts  par.Options
	index []uint64
	out   []T
}

// NewSelector creates a Selector running its passes with opts.
func NewSelector[T any](opts par.Options) *Selector[T] {
	return &Selector[T]{opts: opts}
}

// Counts returns for every index i the number of elements of in[:i+1] satisfying pred.
// The predicate is mapped and scanned in one fused pass without a flag buffer, and is called
// exactly once per element.
func (s *Selector[T]) Counts(in []T, pred Predicate[T]) ([]uint64, error) {
	s.index = resize(s.index, len(in))
	err := scan.InclusiveScan(in, s.index, func(v T) uint64 {
		if pred(v) {
			return 1
		}
		return 0
	}, scan.Sum[uint64], s.opts)
	if err != nil {
		return nil, err
	}
	return s.index, nil
}

// Scatter copies every element of in satisfying pred to position counts[i]-1 of the output.
// It calls pred once more per element.
// counts must be the result of Counts for the same input and predicate.
func (s *Selector[T]) Scatter(in []T, pred Predicate[T], counts []uint64) ([]T, error) {
	if len(counts) != len(in) {
		return nil, fmt.Errorf("%w: %d counts for %d elements", ErrCountsMismatch, len(counts), len(in))
	}
	n := total(counts)
	if n > uint64(len(in)) {
		return nil, fmt.Errorf("%w: total %d exceeds %d elements", ErrCountsMismatch, n, len(in))
	}
	s.out = resize(s.out, int(n))
	out := s.out
	err := par.For(len(in), s.opts, func(i int) {
		if pred(in[i]) {
			out[counts[i]-1] = in[i]
		}
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Select runs Counts and Scatter.
func (s *Selector[T]) Select(in []T, pred Predicate[T]) ([]T, error) {
	counts, err := s.Counts(in, pred)
	if err != nil {
		return nil, err
	}
	return s.Scatter(in, pred, counts)
}

// Index returns the counts of the last Counts call.
func (s *Selector[T]) Index() []uint64 {
	return s.index
}

// Output returns the result of the last Scatter call.
func (s *Selector[T]) Output() []T {
	return s.out
}

func total(counts []uint64) uint64 {
	if len(counts) == 0 {
		return 0
	}
	return counts[len(counts)-1]
}

func resize[E any](buf []E, n int) []E {
	if buf != nil && cap(buf) >= n {
		return buf[:n]
	}
	return make([]E, n)
}
