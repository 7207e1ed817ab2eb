// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"errors"
	"fmt"
)

// ErrNewtonNonConvergence indicates that Newton-Raphson iterations did not converge
var ErrNewtonNonConvergence = errors.New("no convergence in nonlinear solver")

// NonConvergenceError holds the state of a time step whose iterations did not converge
type NonConvergenceError struct {
	Step       int     // time step index
	Time       float64 // time
	Iterations int     // number of iterations performed
	ResidualU  float64 // normalised residual of displacements at the last iteration
	UpdateU    float64 // normalised update of displacements at the last iteration
}

// Error returns the error message
func (o *NonConvergenceError) Error() string {
	return fmt.Sprintf("%v: step %d @ t=%g after %d iterations (residual u = %g, update u = %g)",
		ErrNewtonNonConvergence, o.Step, o.Time, o.Iterations, o.ResidualU, o.UpdateU)
}

// Unwrap returns ErrNewtonNonConvergence
func (o *NonConvergenceError) Unwrap() error { return ErrNewtonNonConvergence }

// Solver implements the Newton-Raphson procedure of one time step
type Solver struct {

	// data
	Dom     *Domain  // domain
	Met     *Metrics // metrics; may be nil
	Verbose bool     // show convergence table

	// norms of the current step
	ResErr0 Norms // residual at the first iteration
	ResErr  Norms // residual at the current iteration
	ResErrN Norms // normalised residual
	UpdErr0 Norms // update at the first iteration
	UpdErr  Norms // update at the current iteration
	UpdErrN Norms // normalised update

	// statistics of the last step
	It        int       // number of iterations
	LinIts    int       // total number of linear iterations
	LinSolves int       // number of linear solutions
	LinFails  int       // number of linear solutions that did not converge
	ResHist   []float64 // normalised residual of displacements at each iteration
}

// NewSolver returns a new Newton-Raphson solver
func NewSolver(d *Domain, met *Metrics, verbose bool) *Solver {
	return &Solver{Dom: d, Met: met, Verbose: verbose}
}

// reset initialises the norms of a new step
func (o *Solver) reset() {
	o.ResErr0.Reset()
	o.ResErr.Reset()
	o.ResErrN.Reset()
	o.UpdErr0.Reset()
	o.UpdErr.Reset()
	o.UpdErrN.Reset()
	o.It, o.LinIts, o.LinSolves, o.LinFails = 0, 0, 0, 0
	o.ResHist = o.ResHist[:0]
}
