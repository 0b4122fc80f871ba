package usecase

import (
	"context"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

// linearProgram is a maximization LP over n variables, constrained by
// inequality rows coeffs·x <= bound. Non-negativity is not implicit; callers
// add -x_i <= 0 rows for it.
type linearProgram struct {
	objective []float64 // maximize objective·x
	rows      []float64 // flattened constraint matrix, row-major
	bounds    []float64
	n         int
}

func newLinearProgram(objective []float64) *linearProgram {
	return &linearProgram{objective: objective, n: len(objective)}
}

// addConstraint appends one inequality row coeffs·x <= bound.
func (p *linearProgram) addConstraint(coeffs []float64, bound float64) {
	p.rows = append(p.rows, coeffs...)
	p.bounds = append(p.bounds, bound)
}

type lpSolution struct {
	x   []float64
	err error
}

// solve converts the program to standard form and runs gonum's simplex
// solver. The solve itself has no cancellation point, so it runs on its own
// goroutine and the context deadline bounds the wall-clock wait; on timeout
// the goroutine is abandoned and the context error returned.
func (p *linearProgram) solve(ctx context.Context) ([]float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Maximization via negated objective.
	c := make([]float64, p.n)
	for i, v := range p.objective {
		c[i] = -v
	}

	g := mat.NewDense(len(p.bounds), p.n, p.rows)
	cStd, aStd, bStd := lp.Convert(c, g, p.bounds, nil, nil)

	done := make(chan lpSolution, 1)
	go func() {
		_, xStd, err := lp.Simplex(cStd, aStd, bStd, 1e-10, nil)
		if err != nil {
			done <- lpSolution{err: err}
			return
		}
		// Convert splits each variable into positive and negative parts.
		x := make([]float64, p.n)
		for i := range x {
			x[i] = xStd[i] - xStd[p.n+i]
		}
		done <- lpSolution{x: x}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case sol := <-done:
		return sol.x, sol.err
	}
}
