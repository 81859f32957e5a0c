// Package daxpy implements the y = a*x + y update used to measure memory bandwidth.
package daxpy

import (
	"fmt"
	"math"

	"github.com/rektorphi/parselect/par"
)

// Initialize sets x[i] = i and y[i] = 2. Panics if the lengths differ.
func Initialize(x, y []float64, opts par.Options) error {
	checkLen(x, y)
	return par.For(len(x), opts, func(i int) {
		x[i] = float64(i)
		y[i] = 2
	})
}

// Daxpy computes y[i] += a * x[i]. Panics if the lengths differ.
func Daxpy(a float64, x, y []float64, opts par.Options) error {
	checkLen(x, y)
	return par.For(len(x), opts, func(i int) {
		y[i] += a * x[i]
	})
}

// Check reports whether y holds the result of one Daxpy with factor a on initialized vectors.
func Check(a float64, y []float64) bool {
	tolerance := 2 * epsilon
	for i, v := range y {
		should := a*float64(i) + 2
		if math.Abs(v-should) > tolerance {
			return false
		}
	}
	return true
}

// BytesPerIteration returns the memory one Daxpy over n elements moves: x is read, y is read and written.
func BytesPerIteration(n int) uint64 {
	return uint64(3 * n * 8)
}

// epsilon is the difference between 1 and the next representable float64.
var epsilon = math.Nextafter(1, 2) - 1

func checkLen(x, y []float64) {
	if len(x) != len(y) {
		panic(fmt.Sprintf("daxpy: length mismatch %d != %d", len(x), len(y)))
	}
}
