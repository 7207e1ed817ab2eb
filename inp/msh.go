// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"encoding/json"
	"math"
	"os"
	"sort"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/agtmwebtoon/MLSolver/shp"
)

// constants
const NoTag = -1 // tag of faces without boundary condition (e.g. interior faces)

// Vert holds vertex data
type Vert struct {
	Id  int       `json:"id"`  // id
	Tag int       `json:"tag"` // tag
	C   []float64 `json:"c"`   // coordinates (size==2 or 3)
}

// Cell holds cell data
type Cell struct {

	// input data
	Id    int    `json:"id"`    // id
	Tag   int    `json:"tag"`   // tag
	Type  string `json:"type"`  // geometry type (string); e.g. "hex27"
	Verts []int  `json:"verts"` // vertices in lattice order
	FTags []int  `json:"ftags"` // edge (2D) or face (3D) tags; NoTag means no boundary

	// derived
	Shp *shp.Shape `json:"-"` // shape structure
}

// CellFaceId structure
type CellFaceId struct {
	C   *Cell // cell
	Fid int   // face id
}

// Mesh holds a mesh for FE analyses
type Mesh struct {

	// from JSON
	Verts []*Vert `json:"verts"` // vertices
	Cells []*Cell `json:"cells"` // cells

	// derived
	FnamePath  string  `json:"-"` // complete filename path
	Ndim       int     `json:"-"` // space dimension
	Xmin, Xmax float64 `json:"-"` // min and max x-coordinate
	Ymin, Ymax float64 `json:"-"` // min and max y-coordinate
	Zmin, Zmax float64 `json:"-"` // min and max z-coordinate

	// derived: maps
	FaceTag2cells map[int][]CellFaceId `json:"-"` // face tag => set of cells
	FaceTag2verts map[int][]int        `json:"-"` // face tag => vertices on tagged face
	Ctype2cells   map[string][]*Cell   `json:"-"` // cell type => set of cells
}

// ReadMsh reads a mesh for FE analyses
func ReadMsh(fn string, scale float64) (o *Mesh, err error) {

	// read file
	b, err := os.ReadFile(fn)
	if err != nil {
		return nil, chk.Err("ReadMsh: cannot read mesh file %q:\n%v", fn, err)
	}

	// decode
	o = new(Mesh)
	if err = json.Unmarshal(b, o); err != nil {
		return nil, chk.Err("ReadMsh: cannot unmarshal mesh file %q:\n%v", fn, err)
	}
	o.FnamePath = fn

	// scale
	if scale > 0 && scale != 1 {
		o.scale(scale)
	}
	err = o.Derive()
	return
}

// Derive checks the mesh and computes derived data
func (o *Mesh) Derive() (err error) {

	// check
	if len(o.Verts) < 2 {
		return chk.Err("mesh must have at least 2 vertices")
	}
	if len(o.Cells) < 1 {
		return chk.Err("mesh must have at least 1 cell")
	}

	// vertex related derived data
	o.Xmin, o.Xmax = math.Inf(1), math.Inf(-1)
	o.Ymin, o.Ymax = math.Inf(1), math.Inf(-1)
	o.Zmin, o.Zmax = math.Inf(1), math.Inf(-1)
	for i, v := range o.Verts {

		// check vertex id
		if v.Id != i {
			return chk.Err("vertices ids must coincide with order in \"verts\" list. %d != %d", v.Id, i)
		}

		// coordinates
		nd := len(v.C)
		if nd < 2 || nd > 3 {
			return chk.Err("number of vertex coordinates must be 2 or 3. %d is invalid", nd)
		}

		// limits
		o.Xmin = math.Min(o.Xmin, v.C[0])
		o.Xmax = math.Max(o.Xmax, v.C[0])
		o.Ymin = math.Min(o.Ymin, v.C[1])
		o.Ymax = math.Max(o.Ymax, v.C[1])
		if nd > 2 {
			o.Zmin = math.Min(o.Zmin, v.C[2])
			o.Zmax = math.Max(o.Zmax, v.C[2])
		}
	}
	if math.IsInf(o.Zmin, 1) {
		o.Zmin, o.Zmax = 0, 0
	}

	// cells
	o.FaceTag2cells = make(map[int][]CellFaceId)
	o.FaceTag2verts = make(map[int][]int)
	o.Ctype2cells = make(map[string][]*Cell)
	for i, c := range o.Cells {

		// check id
		if c.Id != i {
			return chk.Err("cells ids must coincide with order in \"cells\" list. %d != %d", c.Id, i)
		}

		// shape structure
		c.Shp = shp.Get(c.Type, 0)
		if c.Shp == nil {
			return chk.Err("cannot find shape type %q of cell %d", c.Type, c.Id)
		}
		if i == 0 {
			o.Ndim = c.Shp.Gndim
		}
		if c.Shp.Gndim != o.Ndim {
			return chk.Err("all cells must have the same geometry dimension. cell %d of type %q is invalid", c.Id, c.Type)
		}
		if len(c.Verts) != c.Shp.Nverts {
			return chk.Err("cell %d of type %q must have %d vertices. %d is invalid", c.Id, c.Type, c.Shp.Nverts, len(c.Verts))
		}
		for _, v := range c.Verts {
			if v < 0 || v >= len(o.Verts) {
				return chk.Err("cell %d has invalid vertex %d", c.Id, v)
			}
			if len(o.Verts[v].C) < o.Ndim {
				return chk.Err("vertex %d of cell %d must have %d coordinates", v, c.Id, o.Ndim)
			}
		}

		// face tags
		nfaces := len(c.Shp.FaceLocalVerts)
		if len(c.FTags) == 0 {
			c.FTags = make([]int, nfaces)
			for k := range c.FTags {
				c.FTags[k] = NoTag
			}
		}
		if len(c.FTags) != nfaces {
			return chk.Err("cell %d must have %d face tags. %d is invalid", c.Id, nfaces, len(c.FTags))
		}
		for k, ftag := range c.FTags {
			if ftag == NoTag {
				continue
			}
			o.FaceTag2cells[ftag] = append(o.FaceTag2cells[ftag], CellFaceId{c, k})
			for _, l := range c.Shp.FaceLocalVerts[k] {
				o.FaceTag2verts[ftag] = append(o.FaceTag2verts[ftag], c.Verts[l])
			}
		}

		// cell type => cells
		o.Ctype2cells[c.Type] = append(o.Ctype2cells[c.Type], c)
	}

	// remove duplicates
	for ftag, verts := range o.FaceTag2verts {
		o.FaceTag2verts[ftag] = unique(verts)
	}
	return
}

// CellCoords returns the coordinates matrix x[ndim][nverts] of a cell
func (o *Mesh) CellCoords(c *Cell) (x [][]float64) {
	x = make([][]float64, o.Ndim)
	for i := 0; i < o.Ndim; i++ {
		x[i] = make([]float64, len(c.Verts))
		for m, v := range c.Verts {
			x[i][m] = o.Verts[v].C[i]
		}
	}
	return
}

// FaceCentre returns the centre of face idxface of cell c (average of face vertices)
func (o *Mesh) FaceCentre(c *Cell, idxface int) (xc []float64) {
	xc = make([]float64, o.Ndim)
	lverts := c.Shp.FaceLocalVerts[idxface]
	for _, l := range lverts {
		for i := 0; i < o.Ndim; i++ {
			xc[i] += o.Verts[c.Verts[l]].C[i]
		}
	}
	for i := 0; i < o.Ndim; i++ {
		xc[i] /= float64(len(lverts))
	}
	return
}

// unique returns the sorted set of ints in a
func unique(a []int) (res []int) {
	sort.Ints(a)
	for i, v := range a {
		if i == 0 || v != a[i-1] {
			res = append(res, v)
		}
	}
	return
}

// String returns a JSON representation of *Vert
func (o *Vert) String() string {
	l := io.Sf("{\"id\":%4d, \"tag\":%6d, \"c\":[", o.Id, o.Tag)
	for i, x := range o.C {
		if i > 0 {
			l += ", "
		}
		l += io.Sf("%23.15e", x)
	}
	l += "] }"
	return l
}

// String returns a JSON representation of *Cell
func (o *Cell) String() string {
	l := io.Sf("{\"id\":%d, \"tag\":%d, \"type\":%q, \"verts\":[", o.Id, o.Tag, o.Type)
	for i, x := range o.Verts {
		if i > 0 {
			l += ", "
		}
		l += io.Sf("%d", x)
	}
	l += "], \"ftags\":["
	for i, x := range o.FTags {
		if i > 0 {
			l += ", "
		}
		l += io.Sf("%d", x)
	}
	l += "] }"
	return l
}

// String returns a JSON representation of *Mesh
func (o Mesh) String() string {
	l := "{\n  \"verts\" : [\n"
	for i, x := range o.Verts {
		if i > 0 {
			l += ",\n"
		}
		l += io.Sf("    %v", x)
	}
	l += "\n  ],\n  \"cells\" : [\n"
	for i, x := range o.Cells {
		if i > 0 {
			l += ",\n"
		}
		l += io.Sf("    %v", x)
	}
	l += "\n  ]\n}"
	return l
}
