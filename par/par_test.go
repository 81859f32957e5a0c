package par

import (
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestBoundsCoverRange(t *testing.T) {
	for _, n := range []int{1, 2, 7, 100, 1001} {
		for chunks := 1; chunks <= n && chunks <= 16; chunks++ {
			next := 0
			for c := 0; c < chunks; c++ {
				lo, hi := Bounds(n, chunks, c)
				if lo != next {
					t.Fatalf("n=%d chunks=%d: chunk %d starts at %d, expected %d", n, chunks, c, lo, next)
				}
				if hi <= lo {
					t.Fatalf("n=%d chunks=%d: empty chunk %d [%d, %d)", n, chunks, c, lo, hi)
				}
				next = hi
			}
			if next != n {
				t.Fatalf("n=%d chunks=%d: chunks end at %d", n, chunks, next)
			}
		}
	}
}

func TestChunks(t *testing.T) {
	opts := Options{Workers: 4, Grain: 10}
	assert.Equal(t, 0, opts.Chunks(0))
	assert.Equal(t, 1, opts.Chunks(1))
	assert.Equal(t, 1, opts.Chunks(10))
	assert.Equal(t, 2, opts.Chunks(11))
	assert.Equal(t, 4, opts.Chunks(1000))
	assert.Equal(t, 1, Sequential().Chunks(1<<20))
	assert.Equal(t, 1, Default().Chunks(DefaultGrain))
}

func TestForVisitsEveryIndexOnce(t *testing.T) {
	for _, opts := range []Options{Sequential(), Default(), {Workers: 3, Grain: 1}, {Workers: 64, Grain: 5}} {
		n := 12345
		visits := make([]int32, n)
		err := For(n, opts, func(i int) {
			atomic.AddInt32(&visits[i], 1)
		})
		require.NoError(t, err)
		for i, v := range visits {
			if v != 1 {
				t.Fatalf("%+v: index %d visited %d times", opts, i, v)
			}
		}
	}
}

func TestForEmpty(t *testing.T) {
	called := false
	err := For(0, Default(), func(int) { called = true })
	assert.NoError(t, err)
	assert.False(t, called)
}

func TestForPanic(t *testing.T) {
	for _, opts := range []Options{Sequential(), {Workers: 4, Grain: 1}} {
		err := For(100, opts, func(i int) {
			if i == 42 {
				panic("boom")
			}
		})
		var pe *PanicError
		if !errors.As(err, &pe) {
			t.Fatalf("%+v: expected PanicError, got %v", opts, err)
		}
		assert.Equal(t, 42, pe.Index)
		assert.Equal(t, "boom", pe.Value)
		assert.NotEmpty(t, pe.Stack)
	}
}

func TestPanicErrorUnwrap(t *testing.T) {
	cause := errors.New("cause")
	err := For(10, Sequential(), func(int) { panic(cause) })
	assert.ErrorIs(t, err, cause)
}

func TestForChunksError(t *testing.T) {
	failure := errors.New("failure")
	err := ForChunks(1000, Options{Workers: 4, Grain: 1}, func(c, lo, hi int) error {
		if c == 2 {
			return failure
		}
		return nil
	})
	assert.ErrorIs(t, err, failure)
}

func TestReduce(t *testing.T) {
	for _, opts := range []Options{Sequential(), {Workers: 7, Grain: 3}} {
		n := 10000
		sum, err := Reduce(n, opts, 0, func(i int) int { return i }, func(a, b int) int { return a + b })
		require.NoError(t, err)
		assert.Equal(t, n*(n-1)/2, sum)
	}
	sum, err := Reduce(0, Default(), 5, func(i int) int { return i }, func(a, b int) int { return a + b })
	require.NoError(t, err)
	assert.Equal(t, 5, sum)
}

func BenchmarkFor(b *testing.B) {
	v := make([]float64, 1<<20)
	for n := 0; n < b.N; n++ {
		if err := For(len(v), Default(), func(i int) { v[i] += 1 }); err != nil {
			b.Fatalf("For failed: %v", err)
		}
	}
}
