// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package linsys

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/exp/linsolve"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// ErrBreakdown indicates that an iterative solver cannot proceed
var ErrBreakdown = errors.New("linear solver breakdown")

// Control holds the stopping criteria of iterative solvers
//  The solver stops when |r| <= max(Tol, Reduce·|r0|) or after MaxIt iterations
type Control struct {
	MaxIt  int     // max number of iterations
	Tol    float64 // absolute tolerance
	Reduce float64 // relative reduction w.r.t the initial residual; ignored if zero
}

// Result holds the outcome of a linear solution
type Result struct {
	Iterations int     // number of iterations
	Residual   float64 // final residual norm |b - A x|
	Converged  bool    // stopping criterion has been satisfied
}

// minRelTol is the smallest relative tolerance handed to linsolve
const minRelTol = 1e-30

// CG solves A x = b with the preconditioned conjugate gradients method.
// x holds the initial guess on input. Non-convergence is reported through Result
//  Note: the correction δx of A δx = r0 is computed with linsolve using the unit
//        right-hand side r0/|r0|, so that Tol and Reduce translate into a relative tolerance
func CG(A Operator, x, b []float64, P Preconditioner, ctrl Control) (res Result, err error) {

	// check
	m, n := A.Dims()
	if m != n || len(x) != n || len(b) != n {
		return res, fmt.Errorf("CG: size mismatch: A is %d×%d, len(x)=%d and len(b)=%d", m, n, len(x), len(b))
	}
	if P == nil {
		P = Identity{}
	}

	// r0 = b - A x
	r := make([]float64, n)
	A.Apply(r, x)
	floats.SubTo(r, b, r)
	r0 := floats.Norm(r, 2)
	res.Residual = r0
	tol := ctrl.Tol
	if ctrl.Reduce > 0 {
		tol = math.Max(tol, ctrl.Reduce*r0)
	}
	if r0 <= tol {
		res.Converged = true
		return
	}
	if ctrl.MaxIt < 1 {
		return
	}

	// solve A δx = r0/|r0|
	floats.Scale(1/r0, r)
	sol, e := linsolve.Iterative(mulVecToer{A}, mat.NewVecDense(n, r), &linsolve.CG{}, &linsolve.Settings{
		Tolerance:     math.Max(tol/r0, minRelTol),
		MaxIterations: ctrl.MaxIt,
		PreconSolve:   preconSolve(P),
	})
	res.Iterations = sol.Stats.Iterations
	res.Residual = r0 * sol.ResidualNorm
	switch {
	case e == nil:
		res.Converged = true
	case errors.Is(e, linsolve.ErrIterationLimit):
	default:
		return res, fmt.Errorf("CG: %v: %w", e, ErrBreakdown)
	}
	if math.IsNaN(res.Residual) || math.IsInf(res.Residual, 0) {
		res.Converged = false
		return res, fmt.Errorf("CG: residual is %g after %d iterations: %w", res.Residual, res.Iterations, ErrBreakdown)
	}

	// x += |r0| δx
	floats.AddScaled(x, r0, sol.X.RawVector().Data[:n])
	return
}

// mulVecToer adapts an Operator to linsolve
type mulVecToer struct {
	Operator
}

// MulVecTo computes dst := A x. Transposed products are not available
func (o mulVecToer) MulVecTo(dst *mat.VecDense, trans bool, x mat.Vector) {
	if trans {
		panic("linsys: transposed operator products are not available")
	}
	y := rawData(dst)
	o.Apply(y, rawData(x))
	writeBack(dst, y)
}

// preconSolve adapts a Preconditioner to linsolve. The preconditioners are applied as M⁻¹ for both M and Mᵀ
func preconSolve(P Preconditioner) func(dst *mat.VecDense, trans bool, rhs mat.Vector) error {
	return func(dst *mat.VecDense, trans bool, rhs mat.Vector) error {
		z := rawData(dst)
		P.Solve(z, rawData(rhs))
		writeBack(dst, z)
		return nil
	}
}

// rawData returns the contiguous data of v; a copy is made for strided or non-raw vectors
func rawData(v mat.Vector) []float64 {
	if rv, ok := v.(mat.RawVectorer); ok {
		if raw := rv.RawVector(); raw.Inc == 1 {
			return raw.Data[:v.Len()]
		}
	}
	return mat.VecDenseCopyOf(v).RawVector().Data
}

// writeBack copies v into dst if v is not the storage of dst
func writeBack(dst *mat.VecDense, v []float64) {
	if dst.RawVector().Inc != 1 {
		dst.CopyVec(mat.NewVecDense(len(v), v))
	}
}
