package daxpy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rektorphi/parselect/par"
)

func TestDaxpy(t *testing.T) {
	for _, opts := range []par.Options{par.Sequential(), {Workers: 4, Grain: 16}} {
		n := 10000
		x := make([]float64, n)
		y := make([]float64, n)
		require.NoError(t, Initialize(x, y, opts))
		assert.Equal(t, 3.0, x[3])
		assert.Equal(t, 2.0, y[n-1])

		require.NoError(t, Daxpy(2.0, x, y, opts))
		if !Check(2.0, y) {
			t.Fatalf("%+v: check failed after one daxpy", opts)
		}
		require.NoError(t, Daxpy(2.0, x, y, opts))
		if Check(2.0, y) {
			t.Fatalf("%+v: check passed after two daxpys", opts)
		}
	}
}

func TestDaxpyEmpty(t *testing.T) {
	require.NoError(t, Daxpy(2.0, nil, nil, par.Default()))
	assert.True(t, Check(2.0, nil))
}

func TestDaxpyLengthMismatch(t *testing.T) {
	assert.Panics(t, func() { Daxpy(1, make([]float64, 2), make([]float64, 3), par.Default()) })
}

func TestCheckTolerance(t *testing.T) {
	y := []float64{2, 4, 6}
	assert.True(t, Check(2, y))
	y[1] += 1e-9
	assert.False(t, Check(2, y))
}

func TestBytesPerIteration(t *testing.T) {
	assert.Equal(t, uint64(24000), BytesPerIteration(1000))
}

func TestInitialize(t *testing.T) {
	x := []float64{9, 9, 9, 9, 9}
	y := make([]float64, 5)
	require.NoError(t, Initialize(x, y, par.Options{Workers: 2, Grain: 1}))
	assert.Equal(t, []float64{0, 1, 2, 3, 4}, x)
	assert.Equal(t, []float64{2, 2, 2, 2, 2}, y)
}

func BenchmarkDaxpy(b *testing.B) {
	n := 1 << 22
	x := make([]float64, n)
	y := make([]float64, n)
	if err := Initialize(x, y, par.Default()); err != nil {
		b.Fatalf("initialize failed: %v", err)
	}
	b.SetBytes(int64(BytesPerIteration(n)))
	for i := 0; i < b.N; i++ {
		if err := Daxpy(2.0, x, y, par.Default()); err != nil {
			b.Fatalf("daxpy failed: %v", err)
		}
	}
}
