// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package linsys

import (
	"errors"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func init() {
	io.Verbose = false
}

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

// laplacian returns the 1D Laplacian with n dofs assembled from 2-node "cells"
func laplacian(n int) (A *Matrix) {
	groups := make([][]int, n-1)
	for e := 0; e < n-1; e++ {
		groups[e] = []int{e, e + 1}
	}
	A = NewMatrix(n, groups, nil)
	for _, g := range groups {
		A.Add(g[0], g[0], 1)
		A.Add(g[0], g[1], -1)
		A.Add(g[1], g[0], -1)
		A.Add(g[1], g[1], 1)
	}
	A.Add(0, 0, 1)
	A.Add(n-1, n-1, 1)
	return
}

func Test_csr01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("csr01. pattern and extraction")

	// dofs 0,1 couple with everything; 2,3 do not couple with each other
	groups := [][]int{{0, 1, 2, 3}}
	A := NewMatrix(4, groups, func(i, j int) bool { return i < 2 || j < 2 })
	chk.Int(tst, "nnz", A.NNZ(), 14)
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			if A.find(i, j) >= 0 {
				A.Set(i, j, float64(10*i+j))
			}
		}
	}
	chk.Float64(tst, "A(2,3)", 1e-17, A.At(2, 3), 0)
	chk.Float64(tst, "A(3,3)", 1e-17, A.At(3, 3), 33)
	chk.Float64(tst, "A(3,1)", 1e-17, A.At(3, 1), 31)

	y := make([]float64, 4)
	A.Apply(y, []float64{1, 1, 1, 1})
	chk.Array(tst, "A·1", 1e-15, y, []float64{6, 46, 63, 94})

	B := A.Extract(Range{2, 4}, Range{0, 2})
	m, n := B.Dims()
	chk.Ints(tst, "size", []int{m, n}, []int{2, 2})
	Bd := B.ToDense()
	chk.Deep2(tst, "B", 1e-17, [][]float64{{Bd.At(0, 0), Bd.At(0, 1)}, {Bd.At(1, 0), Bd.At(1, 1)}}, [][]float64{{20, 21}, {30, 31}})
	chk.Array(tst, "diag", 1e-17, A.Diag(), []float64{0, 11, 22, 33})

	// transpose of 4×2 block
	C := A.Extract(Range{0, 4}, Range{0, 2}).Transpose()
	m, n = C.Dims()
	chk.Ints(tst, "size(Cᵀ)", []int{m, n}, []int{2, 4})
	chk.Float64(tst, "Cᵀ(1,3)", 1e-17, C.At(1, 3), 31)
	chk.Float64(tst, "Cᵀ(0,2)", 1e-17, C.At(0, 2), 20)
	chk.Int(tst, "nnz(Cᵀ)", C.NNZ(), 8)

	// transposed pattern is sorted; entries can be addressed
	C.Add(1, 3, 1)
	chk.Float64(tst, "Cᵀ(1,3)", 1e-17, C.At(1, 3), 32)
	Cd, Ad := C.ToDense(), A.ToDense()
	for i := 0; i < 4; i++ {
		for j := 0; j < 2; j++ {
			if i == 3 && j == 1 {
				continue
			}
			chk.Float64(tst, "Cᵀ(j,i)", 1e-17, Cd.At(j, i), Ad.At(i, j))
		}
	}

	defer func() {
		if r := recover(); r == nil {
			tst.Errorf("Add out of pattern should have panicked")
		}
	}()
	A.Add(2, 3, 1)
}

func Test_cg01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("cg01. preconditioned CG")

	n := 30
	A := laplacian(n)
	xcor := make([]float64, n)
	for i := 0; i < n; i++ {
		xcor[i] = float64(i%7) - 3
	}
	b := make([]float64, n)
	A.Apply(b, xcor)

	for _, kind := range []string{"identity", "jacobi", "ssor"} {
		P, err := NewPreconditioner(kind, A, 1.2)
		if err != nil {
			tst.Errorf("NewPreconditioner failed: %v\n", err)
			return
		}
		x := make([]float64, n)
		res, err := CG(A, x, b, P, Control{MaxIt: 10 * n, Tol: 1e-12})
		if err != nil {
			tst.Errorf("CG failed: %v\n", err)
			return
		}
		io.Pforan("%-8s: %d iterations; residual = %g\n", kind, res.Iterations, res.Residual)
		if !res.Converged {
			tst.Errorf("%s: CG did not converge", kind)
			return
		}
		chk.Array(tst, "x("+kind+")", 1e-9, x, xcor)
	}

	// not enough iterations
	x := make([]float64, n)
	res, err := CG(A, x, b, nil, Control{MaxIt: 2, Tol: 1e-12})
	if err != nil || res.Converged {
		tst.Errorf("CG with 2 iterations must not converge. err = %v", err)
	}

	// relative reduction
	x = make([]float64, n)
	res, err = CG(A, x, b, nil, Control{MaxIt: 10 * n, Reduce: 1e-6})
	if err != nil || !res.Converged {
		tst.Errorf("CG with reduction control failed. err = %v", err)
	}

	// invalid
	if _, err = NewPreconditioner("ilu", A, 1); err == nil {
		tst.Errorf("ilu preconditioner should have failed")
	}
	if _, err = NewPreconditioner("ssor", A, 2); err == nil {
		tst.Errorf("ω=2 should have failed")
	}
}

func Test_direct01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("direct01. LU and Dirichlet conditions")

	n := 10
	A := laplacian(n)
	b := make([]float64, n)
	for i := range b {
		b[i] = 1
	}
	fixed := make([]bool, n)
	vals := make([]float64, n)
	fixed[0], vals[0] = true, 2
	fixed[n-1], vals[n-1] = true, -1
	A.ApplyDirichlet(b, fixed, vals)
	chk.Float64(tst, "A(1,0)", 1e-17, A.At(1, 0), 0)
	chk.Float64(tst, "A(0,1)", 1e-17, A.At(0, 1), 0)

	x := make([]float64, n)
	res, err := SolveDirect(A, x, b)
	if err != nil {
		tst.Errorf("SolveDirect failed: %v\n", err)
		return
	}
	chk.Float64(tst, "residual", 1e-13, res.Residual, 0)
	chk.Float64(tst, "x0", 1e-14, x[0], 2)
	chk.Float64(tst, "xn", 1e-14, x[n-1], -1)

	// CG on the same symmetric system
	y := make([]float64, n)
	P, _ := NewPreconditioner("jacobi", A, 1)
	_, err = CG(A, y, b, P, Control{MaxIt: 100, Tol: 1e-13})
	if err != nil {
		tst.Errorf("CG failed: %v\n", err)
		return
	}
	chk.Array(tst, "CG vs LU", 1e-11, y, x)

	// singular
	S := NewMatrix(2, [][]int{{0, 1}}, nil)
	if _, err = SolveDirect(S, make([]float64, 2), []float64{1, 1}); err == nil {
		tst.Errorf("singular matrix should have failed")
	}
}

func Test_operator01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("operator01. sums, products and inverses")

	n := 8
	A := laplacian(n)
	x := []float64{1, 2, 3, 4, -1, -2, -3, -4}
	P, _ := NewPreconditioner("ssor", A, 0.65)
	Ainv := NewInverse(A, P, Control{MaxIt: 100, Reduce: 1e-12})

	y := make([]float64, n)
	Product(Ainv, A).Apply(y, x)
	chk.Array(tst, "A⁻¹ A x", 1e-10, y, x)
	if Ainv.Failed || Ainv.NumApp != 1 {
		tst.Errorf("inverse failed: %+v", Ainv.Last)
	}

	// A + A A⁻¹ A = 2A
	Sum(A, Product(A, Ainv, A)).Apply(y, x)
	z := make([]float64, n)
	A.Apply(z, x)
	for i := range z {
		z[i] *= 2
	}
	chk.Array(tst, "(A + A A⁻¹ A) x", 1e-9, y, z)
	m, k := Product(A, Ainv).Dims()
	chk.Ints(tst, "size", []int{m, k}, []int{n, n})
}

func Test_operator02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("operator02. first inner error is kept")

	// the zero matrix breaks CG down unless the right-hand side vanishes
	Z := NewMatrix(2, [][]int{{0, 1}}, nil)
	Zinv := NewInverse(Z, nil, Control{MaxIt: 5, Reduce: 1e-8})
	y := make([]float64, 2)
	Zinv.Apply(y, []float64{1, 1})
	if !errors.Is(Zinv.Err, ErrBreakdown) {
		tst.Errorf("first application must break down. err = %v", Zinv.Err)
		return
	}
	Zinv.Apply(y, []float64{0, 0})
	if !Zinv.Last.Converged {
		tst.Errorf("second application must converge")
	}
	if !errors.Is(Zinv.Err, ErrBreakdown) || !Zinv.Failed {
		tst.Errorf("breakdown of first application must be kept. err = %v", Zinv.Err)
	}
	chk.Int(tst, "number of applications", Zinv.NumApp, 2)
}
