// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package linsys

import (
	"github.com/cpmech/gosl/chk"
)

// Preconditioner computes z := M⁻¹ r
type Preconditioner interface {
	Solve(z, r []float64)
}

// pcallocators holds all available preconditioners
var pcallocators = map[string]func(A *Matrix, ω float64) Preconditioner{
	"identity": func(A *Matrix, ω float64) Preconditioner { return Identity{} },
	"jacobi":   func(A *Matrix, ω float64) Preconditioner { return newRelaxation(A, ω, false, false) },
	"sor":      func(A *Matrix, ω float64) Preconditioner { return newRelaxation(A, ω, true, false) },
	"ssor":     func(A *Matrix, ω float64) Preconditioner { return newRelaxation(A, ω, true, true) },
}

// NewPreconditioner returns a new preconditioner
//  kind -- "identity", "jacobi", "sor" or "ssor"
//  ω    -- relaxation factor
func NewPreconditioner(kind string, A *Matrix, ω float64) (Preconditioner, error) {
	allocator, ok := pcallocators[kind]
	if !ok {
		return nil, chk.Err("cannot find preconditioner named %q", kind)
	}
	if m, n := A.Dims(); m != n {
		return nil, chk.Err("preconditioner requires a square matrix. %d×%d is invalid", m, n)
	}
	if ω <= 0 || ω >= 2 {
		return nil, chk.Err("relaxation factor must be in (0,2). ω=%g is invalid", ω)
	}
	return allocator(A, ω), nil
}

// Identity implements z := r
type Identity struct{}

// Solve computes z := r
func (Identity) Solve(z, r []float64) { copy(z, r) }

// relaxation implements Jacobi (D/ω), SOR (D/ω + L) and SSOR ω/(2-ω) (D/ω + L) D⁻¹ (D/ω + U) preconditioners
type relaxation struct {
	A         *Matrix
	ω         float64
	d         []float64 // diagonal; zeros are replaced by ones
	sweep     bool
	symmetric bool
}

func newRelaxation(A *Matrix, ω float64, sweep, symmetric bool) *relaxation {
	o := &relaxation{A: A, ω: ω, d: A.Diag(), sweep: sweep, symmetric: symmetric}
	for i, v := range o.d {
		if v == 0 {
			o.d[i] = 1
		}
	}
	return o
}

func (o *relaxation) Solve(z, r []float64) {
	n := len(o.d)

	// Jacobi
	if !o.sweep {
		for i := 0; i < n; i++ {
			z[i] = o.ω * r[i] / o.d[i]
		}
		return
	}

	// forward: (D/ω + L) z = r
	A := o.A.RawMatrix()
	for i := 0; i < n; i++ {
		s := r[i]
		for k := A.Indptr[i]; k < A.Indptr[i+1]; k++ {
			if j := A.Ind[k]; j < i {
				s -= A.Data[k] * z[j]
			}
		}
		z[i] = o.ω * s / o.d[i]
	}
	if !o.symmetric {
		return
	}

	// scale: w = (2-ω)/ω D y
	for i := 0; i < n; i++ {
		z[i] *= (2 - o.ω) / o.ω * o.d[i]
	}

	// backward: (D/ω + U) z = w
	for i := n - 1; i >= 0; i-- {
		s := z[i]
		for k := A.Indptr[i]; k < A.Indptr[i+1]; k++ {
			if j := A.Ind[k]; j > i {
				s -= A.Data[k] * z[j]
			}
		}
		z[i] = o.ω * s / o.d[i]
	}
}
