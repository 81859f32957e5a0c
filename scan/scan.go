// Package scan computes inclusive prefix scans of mapped sequences.
package scan

import (
	"fmt"

	"github.com/rektorphi/parselect/par"
)

// InclusiveScanSeq writes out[i] = transform(in[0]) ⊕ ... ⊕ transform(in[i]) where ⊕ is combine.
// It is the sequential reference of InclusiveScan. Panics if out is shorter than in.
func InclusiveScanSeq[T, C any](in []T, out []C, transform func(T) C, combine func(C, C) C) {
	checkLen(len(in), len(out))
	if len(in) == 0 {
		return
	}
	acc := transform(in[0])
	out[0] = acc
	for i := 1; i < len(in); i++ {
		acc = combine(acc, transform(in[i]))
		out[i] = acc
	}
}

// InclusiveScan is the parallel form of InclusiveScanSeq. combine must be associative.
//
// The input is split into chunks as by par.ForChunks. Every chunk first scans its own elements
// into out, the chunk totals are then scanned on the calling goroutine, and finally every chunk
// but the first combines the total of all chunks before it into its outputs. transform is called
// exactly once per element.
//
// Panics if out is shorter than in. A panic in transform or combine is returned as *par.PanicError;
// out is undefined in that case.
func InclusiveScan[T, C any](in []T, out []C, transform func(T) C, combine func(C, C) C, opts par.Options) error {
	checkLen(len(in), len(out))
	n := len(in)
	chunks := opts.Chunks(n)

	err := par.ForChunks(n, opts, func(_, lo, hi int) error {
		InclusiveScanSeq(in[lo:hi], out[lo:hi], transform, combine)
		return nil
	})
	if err != nil || chunks <= 1 {
		return err
	}

	// carry[c] is the total of chunks 0..c
	carry := make([]C, chunks)
	for c := 0; c < chunks; c++ {
		_, hi := par.Bounds(n, chunks, c)
		if c == 0 {
			carry[c] = out[hi-1]
		} else {
			carry[c] = combine(carry[c-1], out[hi-1])
		}
	}

	return par.ForChunks(n, opts, func(c, lo, hi int) error {
		if c == 0 {
			return nil
		}
		for i := lo; i < hi; i++ {
			out[i] = combine(carry[c-1], out[i])
		}
		return nil
	})
}

// Sum is a combine function adding counts.
func Sum[C ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~int | ~int32 | ~int64](a, b C) C {
	return a + b
}

func checkLen(in, out int) {
	if out < in {
		panic(fmt.Sprintf("scan: output length %d shorter than input length %d", out, in))
	}
}
