// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"sort"

	"github.com/agtmwebtoon/MLSolver/linsys"
	"github.com/cpmech/gosl/chk"
)

// keycomponents maps displacement keys to components
var keycomponents = map[string]int{"ux": 0, "uy": 1, "uz": 2}

// Constraints holds the essential boundary conditions applied to the Newton updates
//  The prescribed values are applied at the first iteration of each step; the following
//  iterations use the homogeneous version, so constrained dofs do not change anymore
type Constraints struct {
	Eqs   []int     // sorted constrained equations
	Fixed []bool    // [Ny] flags constrained equations
	Vals  []float64 // [Ny] values of updates at constrained equations (current iteration)
	full  []float64 // [Ny] inhomogeneous values
}

// NewConstraints collects the constrained equations from the Dirichlet sets of the input data
//  Keys of components that do not exist (e.g. "uz" in 2D) are ignored
func NewConstraints(d *Domain) (o *Constraints, err error) {
	o = &Constraints{Fixed: make([]bool, d.Ny), Vals: make([]float64, d.Ny), full: make([]float64, d.Ny)}
	for _, bc := range d.Prm.Dirichlet {
		verts := d.Msh.FaceTag2verts[bc.Tag] // tags may be absent; e.g. 2 on the Cook's membrane
		for _, key := range bc.Keys {
			comp, ok := keycomponents[key]
			if !ok {
				return nil, chk.Err("cannot handle Dirichlet key %q", key)
			}
			if comp >= d.Ndim {
				continue
			}
			for _, v := range verts {
				eq := v*d.Ndim + comp
				if !o.Fixed[eq] {
					o.Fixed[eq] = true
					o.Eqs = append(o.Eqs, eq)
				}
				o.full[eq] = bc.Value
			}
		}
	}
	sort.Ints(o.Eqs)
	return
}

// Make sets the values of the constraints for Newton iteration it
//  it == 0: inhomogeneous; it == 1: homogeneous; it > 1: unchanged
func (o *Constraints) Make(it int) {
	switch it {
	case 0:
		copy(o.Vals, o.full)
	case 1:
		o.Homogenize()
	}
}

// Homogenize sets all prescribed values to zero
func (o *Constraints) Homogenize() {
	for _, eq := range o.Eqs {
		o.Vals[eq] = 0
	}
}

// IsConstrained tells whether equation eq is constrained
func (o *Constraints) IsConstrained(eq int) bool {
	return o.Fixed[eq]
}

// ApplyTo eliminates the constrained rows and columns of the assembled system K x = fb.
// The inhomogeneous values are moved to the right-hand side and the diagonal entries are kept
func (o *Constraints) ApplyTo(K *linsys.Matrix, fb []float64) {
	if len(o.Eqs) == 0 {
		return
	}
	K.ApplyDirichlet(fb, o.Fixed, o.Vals)
}

// Distribute sets the constrained entries of x with the current prescribed values
func (o *Constraints) Distribute(x []float64) {
	for _, eq := range o.Eqs {
		x[eq] = o.Vals[eq]
	}
}
