// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"math"

	"github.com/cpmech/gosl/chk"

	"github.com/agtmwebtoon/MLSolver/shp"
)

// boundary tags of generated meshes
const (
	CookClampedTag = 1  // face x=0 of Cook's membrane
	CookThickTag   = 2  // faces |z|=0.5 of Cook's membrane
	CookFreeTag    = 3  // remaining boundary faces of Cook's membrane
	CookLoadedTag  = 11 // face x=48 of Cook's membrane
	BoxPressureTag = 6  // central patch of face y=1 of box
)

const gentol = 1e-6 // tolerance to locate face centres

// FaceTagger returns the tag of a boundary face given the coordinates of its centre
type FaceTagger func(xc []float64) int

// NewMesh generates or reads the mesh described by geometry data
func NewMesh(ndim, degree int, g *Geometry) (*Mesh, error) {
	switch g.Kind {
	case "cook":
		return GenCooksMembrane(ndim, degree, g.CellCount, g.Scale)
	case "box":
		return GenHyperRectangle(ndim, degree, g.GlobalRefinement, g.Scale)
	case "file":
		return ReadMsh(g.Mshfile, g.Scale)
	}
	return nil, chk.Err("geometry kind %q is not available", g.Kind)
}

// GenCooksMembrane generates Cook's membrane: the quadrilateral (0,0), (48,44), (48,60), (0,44)
// with ncells cells along x and y; in 3D, the thickness spans z in [-2.5, 2.5] with 2 cells
func GenCooksMembrane(ndim, degree, ncells int, scale float64) (o *Mesh, err error) {
	if ncells < 1 {
		return nil, chk.Err("number of cells per edge must be positive. %d is invalid", ncells)
	}
	ndiv := []int{ncells, ncells, 2}
	xmin := []float64{0, 0, -2.5}
	xmax := []float64{48, 44, 2.5}
	o, err = genLattice(ndim, degree, ndiv, xmin, xmax, func(xc []float64) int {
		switch {
		case math.Abs(xc[0]) < gentol:
			return CookClampedTag
		case math.Abs(xc[0]-48) < gentol:
			return CookLoadedTag
		case ndim == 3 && math.Abs(math.Abs(xc[2])-0.5) < gentol:
			return CookThickTag
		}
		return CookFreeTag
	})
	if err != nil {
		return
	}

	// y-transform; bilinear, thus exact at the vertices of quadratic cells too
	for _, v := range o.Verts {
		x, y := v.C[0], v.C[1]
		ylow := (44.0 / 48.0) * x
		yupp := 44.0 + (16.0/48.0)*x
		θ := y / 44.0
		v.C[1] = (1-θ)*ylow + θ*yupp
	}
	o.scale(scale)
	err = o.Derive()
	return
}

// GenHyperRectangle generates the unit square (2D) or cube (3D) with 2^max(1,nrefine) cells along
// each direction. Boundary faces are tagged by direction: 0: x=0, 1: x=1, 2: y=0, 3: y=1, 4: z=0, 5: z=1.
// The faces on y=1 with 0.25 < x,z < 0.75 (3D) or x < 0.5 (2D) are tagged BoxPressureTag
func GenHyperRectangle(ndim, degree, nrefine int, scale float64) (o *Mesh, err error) {
	if nrefine < 1 {
		nrefine = 1
	}
	n := 1 << nrefine
	ndiv := []int{n, n, n}
	xmin := []float64{0, 0, 0}
	xmax := []float64{1, 1, 1}
	o, err = genLattice(ndim, degree, ndiv, xmin, xmax, func(xc []float64) int {
		for i := 0; i < ndim; i++ {
			if math.Abs(xc[i]) < gentol {
				return 2 * i
			}
			if math.Abs(xc[i]-1) < gentol {
				if i == 1 {
					if ndim == 3 && xc[0] > 0.25 && xc[0] < 0.75 && xc[2] > 0.25 && xc[2] < 0.75 {
						return BoxPressureTag
					}
					if ndim == 2 && xc[0] < 0.5 {
						return BoxPressureTag
					}
				}
				return 2*i + 1
			}
		}
		return NoTag
	})
	if err != nil {
		return
	}
	o.scale(scale)
	err = o.Derive()
	return
}

// genLattice generates a structured mesh of Lagrange cells over the box [xmin, xmax]
func genLattice(ndim, degree int, ndiv []int, xmin, xmax []float64, tagger FaceTagger) (o *Mesh, err error) {

	// cell type
	var ctype string
	switch {
	case ndim == 2 && degree == 1:
		ctype = "qua4"
	case ndim == 2 && degree == 2:
		ctype = "qua9"
	case ndim == 3 && degree == 1:
		ctype = "hex8"
	case ndim == 3 && degree == 2:
		ctype = "hex27"
	default:
		return nil, chk.Err("cannot generate mesh with ndim=%d and degree=%d", ndim, degree)
	}
	s := shp.Get(ctype, 0)

	// vertices
	o = new(Mesh)
	nv := []int{1, 1, 1}
	nc := []int{1, 1, 1}
	for i := 0; i < ndim; i++ {
		nc[i] = ndiv[i]
		nv[i] = degree*ndiv[i] + 1
	}
	o.Verts = make([]*Vert, nv[0]*nv[1]*nv[2])
	for k := 0; k < nv[2]; k++ {
		for j := 0; j < nv[1]; j++ {
			for i := 0; i < nv[0]; i++ {
				id := i + nv[0]*(j+nv[1]*k)
				idx := []int{i, j, k}
				v := &Vert{Id: id, C: make([]float64, ndim)}
				for d := 0; d < ndim; d++ {
					v.C[d] = xmin[d] + (xmax[d]-xmin[d])*float64(idx[d])/float64(nv[d]-1)
				}
				o.Verts[id] = v
			}
		}
	}

	// cells
	np := degree + 1
	abc := make([]int, 3)
	xc := make([]float64, ndim)
	for ck := 0; ck < nc[2]; ck++ {
		for cj := 0; cj < nc[1]; cj++ {
			for ci := 0; ci < nc[0]; ci++ {
				cidx := []int{ci, cj, ck}
				c := &Cell{Id: len(o.Cells), Type: ctype, Verts: make([]int, s.Nverts), FTags: make([]int, 2*ndim)}
				for m := 0; m < s.Nverts; m++ {
					r := m
					for d := 0; d < 3; d++ {
						abc[d] = 0
						if d < ndim {
							abc[d] = degree*cidx[d] + r%np
							r /= np
						}
					}
					c.Verts[m] = abc[0] + nv[0]*(abc[1]+nv[1]*abc[2])
				}
				for f := 0; f < 2*ndim; f++ {
					c.FTags[f] = NoTag
					dir := f / 2
					if (f%2 == 0 && cidx[dir] != 0) || (f%2 == 1 && cidx[dir] != nc[dir]-1) {
						continue
					}
					for d := 0; d < ndim; d++ {
						xc[d] = 0
						for _, l := range s.FaceLocalVerts[f] {
							xc[d] += o.Verts[c.Verts[l]].C[d]
						}
						xc[d] /= float64(len(s.FaceLocalVerts[f]))
					}
					c.FTags[f] = tagger(xc)
				}
				o.Cells = append(o.Cells, c)
			}
		}
	}
	return
}

// scale multiplies all coordinates by a factor
func (o *Mesh) scale(factor float64) {
	for _, v := range o.Verts {
		for i := range v.C {
			v.C[i] *= factor
		}
	}
}
