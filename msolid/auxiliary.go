// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/mat"
)

// MINDET is the minimum determinant allowed when inverting small tensors
const MINDET = 1.0e-14

// Alloc2 allocates a second order tensor [n][n]
func Alloc2(n int) (a [][]float64) {
	a = make([][]float64, n)
	for i := 0; i < n; i++ {
		a[i] = make([]float64, n)
	}
	return
}

// Alloc4 allocates a fourth order tensor [n][n][n][n]
func Alloc4(n int) (D [][][][]float64) {
	D = make([][][][]float64, n)
	for i := 0; i < n; i++ {
		D[i] = make([][][]float64, n)
		for j := 0; j < n; j++ {
			D[i][j] = Alloc2(n)
		}
	}
	return
}

// SetIdentity sets a := I
func SetIdentity(a [][]float64) {
	for i := range a {
		for j := range a[i] {
			a[i][j] = 0
		}
		a[i][i] = 1
	}
}

// Kron is the Kronecker delta
func Kron(i, j int) float64 {
	if i == j {
		return 1
	}
	return 0
}

// Trace returns tr(a)
func Trace(a [][]float64) (res float64) {
	for i := range a {
		res += a[i][i]
	}
	return
}

// Dev computes the deviatoric part r := a - tr(a)/n I
func Dev(r, a [][]float64) {
	n := len(a)
	tr := Trace(a) / float64(n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			r[i][j] = a[i][j] - tr*Kron(i, j)
		}
	}
}

// Norm2 returns the Frobenius norm of a
func Norm2(a [][]float64) float64 {
	var sum float64
	for i := range a {
		for j := range a[i] {
			sum += a[i][j] * a[i][j]
		}
	}
	return math.Sqrt(sum)
}

// toDense copies a into a gonum matrix
func toDense(a [][]float64) *mat.Dense {
	n := len(a)
	m := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		m.SetRow(i, a[i][:n])
	}
	return m
}

// Det returns det(a)
func Det(a [][]float64) float64 {
	return mat.Det(toDense(a))
}

// Inv computes ai := inv(a) and returns det(a)
func Inv(ai, a [][]float64) (det float64, err error) {
	m := toDense(a)
	det = mat.Det(m)
	if math.Abs(det) < MINDET {
		return det, chk.Err("cannot invert tensor with det=%g", det)
	}
	var res mat.Dense
	if err = res.Inverse(m); err != nil {
		return
	}
	for i := range ai {
		for j := range ai[i] {
			ai[i][j] = res.At(i, j)
		}
	}
	return
}
