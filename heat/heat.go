// Package heat solves the 2D heat equation on a single rectangular grid with an explicit
// finite-difference scheme.
//
// The grid is stored row-major, u[x*Ny+y]. Row x=0 is held at temperature 1, every other edge at 0.
package heat

import (
	"fmt"

	"github.com/rektorphi/parselect/par"
	"github.com/rektorphi/parselect/util"
)

// Alpha is the thermal diffusivity.
const Alpha = 1.0

// DefaultOutputInterval is the number of iterations between two energy log lines.
const DefaultOutputInterval = 1000

// Params are the problem parameters.
type Params struct {
	Nx, Ny int
	// Iterations is the number of time steps.
	Iterations int
	Dx, Dt     float64
}

// NewParams derives the spacing and a stable time step from the grid size.
func NewParams(nx, ny, iterations int) (Params, error) {
	if nx < 3 || ny < 3 {
		return Params{}, fmt.Errorf("heat: grid %dx%d too small, need at least 3x3", nx, ny)
	}
	if iterations < 0 {
		return Params{}, fmt.Errorf("heat: negative iteration count %d", iterations)
	}
	dx := 1.0 / float64(nx)
	return Params{Nx: nx, Ny: ny, Iterations: iterations, Dx: dx, Dt: dx * dx / (5 * Alpha)}, nil
}

// Gamma is the stencil weight of the neighbours.
func (p Params) Gamma() float64 {
	return Alpha * p.Dt / (p.Dx * p.Dx)
}

// Cells returns the number of grid points.
func (p Params) Cells() int {
	return p.Nx * p.Ny
}

// BytesPerIteration returns the memory one Step moves: the old grid is read, the new one written.
func (p Params) BytesPerIteration() uint64 {
	return uint64(2 * p.Cells() * 8)
}

func (p Params) index(x, y int) int {
	return x*p.Ny + y
}

// ApplyBoundary sets the edges of u, corners excluded, to the boundary temperatures.
func ApplyBoundary(u []float64, p Params) {
	for y := 1; y < p.Ny-1; y++ {
		u[p.index(0, y)] = 1
		u[p.index(p.Nx-1, y)] = 0
	}
	for x := 1; x < p.Nx-1; x++ {
		u[p.index(x, 0)] = 0
		u[p.index(x, p.Ny-1)] = 0
	}
}

// Step applies the boundary to uOld and writes one time step of every interior point into uNew.
// It returns the energy of the interior of uNew.
func Step(uNew, uOld []float64, p Params, opts par.Options) (float64, error) {
	if len(uNew) != p.Cells() || len(uOld) != p.Cells() {
		panic(fmt.Sprintf("heat: grids of %d and %d points for %dx%d domain", len(uNew), len(uOld), p.Nx, p.Ny))
	}
	ApplyBoundary(uOld, p)
	g := p.Gamma()
	w := p.Ny - 2
	area := p.Dx * p.Dx
	return par.Reduce((p.Nx-2)*w, opts, 0.0, func(k int) float64 {
		x, y := 1+k/w, 1+k%w
		i := p.index(x, y)
		v := (1-4*g)*uOld[i] + g*(uOld[i+p.Ny]+uOld[i-p.Ny]+uOld[i+1]+uOld[i-1])
		uNew[i] = v
		return v * area
	}, func(a, b float64) float64 { return a + b })
}

// Run starts from a zero grid and performs p.Iterations steps. It returns the latest grid, boundary
// included, and the energy of its interior.
// Every outputInterval steps the energy is logged; outputInterval <= 0 means DefaultOutputInterval.
func Run(p Params, outputInterval int, opts par.Options, log util.Logger) ([]float64, float64, error) {
	if outputInterval <= 0 {
		outputInterval = DefaultOutputInterval
	}
	if log == nil {
		log = util.NopLogger{}
	}
	uNew := make([]float64, p.Cells())
	uOld := make([]float64, p.Cells())
	energy := 0.0
	for it := 0; it < p.Iterations; it++ {
		e, err := Step(uNew, uOld, p, opts)
		if err != nil {
			return nil, 0, fmt.Errorf("heat: iteration %d: %w", it, err)
		}
		energy = e
		if it%outputInterval == 0 {
			log.Printf("E(t=%g) = %g", float64(it)*p.Dt, energy)
		}
		uNew, uOld = uOld, uNew
	}
	ApplyBoundary(uOld, p)
	return uOld, energy, nil
}
