// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package linsys

import (
	"errors"
	"fmt"
	"math"

	"github.com/cpmech/gosl/io"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// ErrSingular indicates that a matrix cannot be factorised
var ErrSingular = errors.New("singular matrix")

// SolveDirect solves A x = b with a dense LU factorisation. Suitable for small and medium systems
func SolveDirect(A *Matrix, x, b []float64) (res Result, err error) {
	m, n := A.Dims()
	if m != n || len(x) != n || len(b) != m {
		return res, fmt.Errorf("SolveDirect: size mismatch: A is %d×%d, len(x)=%d and len(b)=%d", m, n, len(x), len(b))
	}
	var lu mat.LU
	lu.Factorize(A.ToDense())
	if math.IsInf(lu.Cond(), 1) {
		return res, fmt.Errorf("SolveDirect: %w", ErrSingular)
	}
	xv := mat.NewVecDense(len(x), x)
	if err = lu.SolveVecTo(xv, false, mat.NewVecDense(len(b), b)); err != nil {
		var cond mat.Condition
		if !errors.As(err, &cond) {
			return
		}
		io.Pfyel("warning: SolveDirect: matrix is ill-conditioned; cond = %g\n", float64(cond))
		err = nil
	}

	// residual
	r := make([]float64, len(b))
	A.Apply(r, x)
	floats.Sub(r, b)
	res.Iterations = 1
	res.Residual = floats.Norm(r, 2)
	res.Converged = true
	return
}
