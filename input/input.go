// Package input generates reproducible input data for the kernels.
package input

import (
	"fmt"
	"math/rand"
)

// DefaultSeed is the seed the drivers use unless configured otherwise.
const DefaultSeed = 1

// Uniform returns n integers drawn uniformly from [lo, hi] by a generator seeded with seed.
// The same arguments always return the same slice.
func Uniform(n int, lo, hi int32, seed int64) ([]int32, error) {
	if n < 0 {
		return nil, fmt.Errorf("input: negative length %d", n)
	}
	if hi < lo {
		return nil, fmt.Errorf("input: empty range [%d, %d]", lo, hi)
	}
	rng := rand.New(rand.NewSource(seed))
	span := int64(hi) - int64(lo) + 1
	v := make([]int32, n)
	for i := range v {
		v[i] = int32(int64(lo) + rng.Int63n(span))
	}
	return v, nil
}
