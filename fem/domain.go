// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"

	"github.com/agtmwebtoon/MLSolver/inp"
	"github.com/agtmwebtoon/MLSolver/linsys"
	"github.com/agtmwebtoon/MLSolver/shp"
	"github.com/cpmech/gosl/chk"
)

// Solution holds the solution data @ the current time step
type Solution struct {
	T     float64   // current time
	Step  int       // current time step index
	Un    []float64 // [Ny] converged solution at the end of the previous step
	Delta []float64 // [Ny] accumulated increment within the current step
	Dx    []float64 // [Ny] Newton update of the current iteration
	Y     []float64 // [Ny] trial total solution Un + Delta
}

// NewSolution allocates a new solution with ny dofs
func NewSolution(ny int) *Solution {
	return &Solution{
		Un:    make([]float64, ny),
		Delta: make([]float64, ny),
		Dx:    make([]float64, ny),
		Y:     make([]float64, ny),
	}
}

// Total computes and returns Y = Un + Delta
func (o *Solution) Total() []float64 {
	for i, v := range o.Un {
		o.Y[i] = v + o.Delta[i]
	}
	return o.Y
}

// Domain holds the discrete problem on one mesh
//  Global equations are ordered by blocks: [u | p | J]. Displacements are numbered
//  per vertex (v·ndim + component); p̃ and J̃ dofs are numbered per cell
type Domain struct {

	// init
	Prm *inp.Parameters // input data
	Msh *inp.Mesh       // mesh

	// dofs
	Ndim       int          // space dimension
	Nu, Np, Nj int          // number of u, p and J equations
	Ny         int          // total number of equations
	U, P, J    linsys.Range // blocks
	Elems      []Elem       // elements
	Cons       *Constraints // essential boundary conditions

	// system
	K   *linsys.Matrix // global tangent
	Fb  []float64      // global right-hand side: negative of residuals
	Sol *Solution      // solution state

	// auxiliary
	ls   []*LocalSystem // [nelems] local systems
	cond []*condensed   // [nelems] condensation data; allocated on demand
}

// NewDomain allocates the elements, numbers the equations and builds the sparsity pattern
func NewDomain(prm *inp.Parameters, msh *inp.Mesh) (o *Domain, err error) {

	// check
	if msh.Ndim != prm.FESystem.Ndim {
		return nil, chk.Err("mesh has ndim=%d but ndim=%d is requested", msh.Ndim, prm.FESystem.Ndim)
	}
	if len(msh.Cells) == 0 {
		return nil, chk.Err("mesh has no cells")
	}

	// blocks
	o = &Domain{Prm: prm, Msh: msh, Ndim: msh.Ndim}
	o.Nu = len(msh.Verts) * o.Ndim
	o.U = linsys.Range{Lo: 0, Hi: o.Nu}

	// p and J blocks: the discontinuous basis has the same size in all cells
	dgp, err := shp.NewDgp(msh.Cells[0].Shp.Gndim, prm.FESystem.PolyDegree-1)
	if err != nil {
		return nil, err
	}
	o.Np, o.Nj = dgp.N*len(msh.Cells), dgp.N*len(msh.Cells)
	o.P = linsys.Range{Lo: o.Nu, Hi: o.Nu + o.Np}
	o.J = linsys.Range{Lo: o.Nu + o.Np, Hi: o.Nu + o.Np + o.Nj}

	// elements
	o.Elems = make([]Elem, len(msh.Cells))
	for i, c := range msh.Cells {
		o.Elems[i], err = NewElem("u3f", o, c)
		if err != nil {
			return nil, err
		}
	}
	o.Ny = o.J.Hi

	// sparsity pattern
	groups := make([][]int, len(o.Elems))
	o.ls = make([]*LocalSystem, len(o.Elems))
	for i, e := range o.Elems {
		groups[i] = e.Eqs()
		o.ls[i] = NewLocalSystem(e.Nlocal())
	}
	o.K = linsys.NewMatrix(o.Ny, groups, o.couple)
	o.Fb = make([]float64, o.Ny)

	// constraints
	o.Cons, err = NewConstraints(o)
	if err != nil {
		return
	}

	// initial state: J̃ = 1 is the constant mode of the discontinuous basis
	o.Sol = NewSolution(o.Ny)
	for _, e := range o.Elems {
		if c, ok := e.(ElemCondensable); ok {
			nu, np, _ := c.Blocks()
			o.Sol.Un[e.Eqs()[nu+np]] = 1
		}
	}
	for _, e := range o.Elems {
		if err = e.Update(o.Sol.Total()); err != nil {
			return
		}
	}
	return
}

// block returns 0, 1 or 2 if eq is a u, p or J equation, respectively
func (o *Domain) block(eq int) int {
	switch {
	case eq < o.P.Lo:
		return 0
	case eq < o.J.Lo:
		return 1
	}
	return 2
}

// couple tells whether equations i and j interact: u-J and p-p blocks are empty
func (o *Domain) couple(i, j int) bool {
	bi, bj := o.block(i), o.block(j)
	switch {
	case bi == 1 && bj == 1:
		return false
	case bi+bj == 2:
		return false
	}
	return true
}

// Volumes returns the reference volume, the current volume and the L2 norm of det(F) - J̃
func (o *Domain) Volumes() (v0, v, dilErr float64) {
	for _, e := range o.Elems {
		if d, ok := e.(ElemDiagnostics); ok {
			a, b, c := d.Volumes()
			v0 += a
			v += b
			dilErr += c
		}
	}
	return v0, v, math.Sqrt(dilErr)
}

// CellTauNorms returns the volume average of |τ| for each cell
func (o *Domain) CellTauNorms() (res []float64) {
	res = make([]float64, len(o.Elems))
	for i, e := range o.Elems {
		if d, ok := e.(ElemDiagnostics); ok {
			res[i] = d.MeanTauNorm()
		}
	}
	return
}

// HighestPoint returns the current coordinates of the vertex with the largest y coordinate
// in the deformed configuration given by the total solution y.
// Vertices within 1e-12·scale of the largest y are ties; the lowest vertex id is taken
func (o *Domain) HighestPoint(y []float64) (x []float64) {
	ycur := func(v *inp.Vert) float64 { return v.C[1] + y[v.Id*o.Ndim+1] }
	ymax := math.Inf(-1)
	for _, v := range o.Msh.Verts {
		ymax = math.Max(ymax, ycur(v))
	}
	tol := 1e-12 * o.Prm.Geometry.Scale
	var best *inp.Vert
	for _, v := range o.Msh.Verts {
		if ycur(v) >= ymax-tol && (best == nil || v.Id < best.Id) {
			best = v
		}
	}
	x = make([]float64, o.Ndim)
	if best == nil {
		return
	}
	for i := 0; i < o.Ndim; i++ {
		x[i] = best.C[i] + y[best.Id*o.Ndim+i]
	}
	return
}
