// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/agtmwebtoon/MLSolver/inp"
	"github.com/cpmech/gosl/chk"
)

// Elem defines what elements must calculate
type Elem interface {

	// information
	Id() int     // returns the cell Id
	Eqs() []int  // returns the global equations numbers; local order is [u..., p..., J...]
	Nlocal() int // returns the number of local dofs

	// Update refreshes the integration point records from the total solution y
	Update(y []float64) (err error)

	// AddToSystem computes the local tangent and the local right-hand side (negative of residuals)
	//  ramp -- load factor t/t_end applied to natural boundary conditions
	AddToSystem(ls *LocalSystem, ramp float64) (err error)
}

// ElemCondensable defines elements whose local dofs can be eliminated at the cell level
type ElemCondensable interface {
	Blocks() (nu, np, nj int) // returns the sizes of the local u, p and J blocks
}

// ElemDiagnostics defines elements that compute post-processing quantities
type ElemDiagnostics interface {
	Volumes() (v0, v, dil2 float64) // returns ∫dV, ∫det(F)dV and ∫(det(F)-J̃)²dV
	MeanTauNorm() float64           // returns the volume average of |τ|
}

// LocalSystem holds the local tangent and right-hand side of one cell
type LocalSystem struct {
	K [][]float64 // [nloc][nloc] tangent
	R []float64   // [nloc] negative of residuals
}

// NewLocalSystem allocates a local system with n dofs
func NewLocalSystem(n int) (o *LocalSystem) {
	o = &LocalSystem{K: make([][]float64, n), R: make([]float64, n)}
	for i := 0; i < n; i++ {
		o.K[i] = make([]float64, n)
	}
	return
}

// Zero clears K and R
func (o *LocalSystem) Zero() {
	for i := range o.R {
		o.R[i] = 0
		for j := range o.K[i] {
			o.K[i][j] = 0
		}
	}
}

// eallocators holds all available elements
var eallocators = make(map[string]func(d *Domain, c *inp.Cell) (Elem, error))

// NewElem allocates a new element by name
func NewElem(name string, d *Domain, c *inp.Cell) (e Elem, err error) {
	allocator, ok := eallocators[name]
	if !ok {
		return nil, chk.Err("cannot find element named %q", name)
	}
	return allocator(d, c)
}
