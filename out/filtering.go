// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"math"
	"sort"

	"github.com/agtmwebtoon/MLSolver/inp"
)

// Point holds a vertex and its results
type Point struct {
	Vid  int                  // vertex id
	X    []float64            // reference coordinates
	Dist float64              // distance from the first point of a set
	Vals map[string][]float64 // [ntimes] maps keys such as "ux" to time series
}

// Points is a set of points
type Points []*Point

// Locator defines interface for locating vertices
type Locator interface {
	Locate(m *inp.Mesh) Points
}

// At implements locator at point
type At []float64

// N implements vertex locator with ids of vertices
type N []int

// Face implements locator of vertices on the face with the given tag
type Face int

// AlongX implements LineLocator with []float64{y_cte} or []float64{y_cte, z_cte}
type AlongX []float64

// AlongY implements LineLocator with []float64{x_cte} or []float64{x_cte, z_cte}
type AlongY []float64

// Locate finds the vertex at the given coordinates
func (o At) Locate(m *inp.Mesh) Points {
	if len(o) < m.Ndim {
		return nil
	}
	for _, v := range m.Verts {
		if dist(v.C, o, m.Ndim) < TolC {
			return Points{newPoint(v, nil)}
		}
	}
	return nil
}

// Locate finds vertices
func (o N) Locate(m *inp.Mesh) (res Points) {
	var A []float64 // reference point
	for _, vid := range o {
		if vid < 0 || vid >= len(m.Verts) {
			return nil
		}
		q := newPoint(m.Verts[vid], A)
		res = append(res, q)
		if A == nil {
			A = q.X
		}
	}
	return
}

// Locate finds the vertices on a tagged face; they are sorted by coordinates
func (o Face) Locate(m *inp.Mesh) (res Points) {
	vids := append([]int{}, m.FaceTag2verts[int(o)]...)
	sortVerts(m, vids)
	return N(vids).Locate(m)
}

// Locate finds vertices along x; they are sorted by x
func (o AlongX) Locate(m *inp.Mesh) (res Points) {
	return along(m, 0, []int{1, 2}, o)
}

// Locate finds vertices along y; they are sorted by y
func (o AlongY) Locate(m *inp.Mesh) (res Points) {
	return along(m, 1, []int{0, 2}, o)
}

// AllNodes returns a locator for all vertices
func AllNodes(m *inp.Mesh) N {
	res := make([]int, len(m.Verts))
	for i := range m.Verts {
		res[i] = i
	}
	return res
}

// along finds the vertices with constant coordinates in the directions dirs
func along(m *inp.Mesh, idir int, dirs []int, ctes []float64) (res Points) {
	var vids []int
	for _, v := range m.Verts {
		ok := true
		for i, cte := range ctes {
			if i >= len(dirs) || dirs[i] >= m.Ndim {
				break
			}
			if math.Abs(v.C[dirs[i]]-cte) > TolC {
				ok = false
				break
			}
		}
		if ok {
			vids = append(vids, v.Id)
		}
	}
	sort.Slice(vids, func(i, j int) bool {
		return m.Verts[vids[i]].C[idir] < m.Verts[vids[j]].C[idir]
	})
	return N(vids).Locate(m)
}

// sortVerts sorts vertices by x, then y, then z
func sortVerts(m *inp.Mesh, vids []int) {
	sort.Slice(vids, func(i, j int) bool {
		a, b := m.Verts[vids[i]].C, m.Verts[vids[j]].C
		for k := 0; k < m.Ndim; k++ {
			if math.Abs(a[k]-b[k]) > TolC {
				return a[k] < b[k]
			}
		}
		return false
	})
}

func newPoint(v *inp.Vert, A []float64) *Point {
	q := &Point{Vid: v.Id, X: v.C, Vals: make(map[string][]float64)}
	if A != nil {
		q.Dist = dist(q.X, A, len(A))
	}
	return q
}

func dist(a, b []float64, ndim int) (res float64) {
	for i := 0; i < ndim; i++ {
		res += (a[i] - b[i]) * (a[i] - b[i])
	}
	return math.Sqrt(res)
}
