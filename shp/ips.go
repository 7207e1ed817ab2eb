// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

import (
	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/integrate/quad"
)

// Ipoint holds the natural coordinates and weight of an integration point: [r, s, t, w]
type Ipoint []float64

// GaussIps returns n^gndim tensor-product Gauss-Legendre points on [-1,1]^gndim
func GaussIps(gndim, n int) (ips []Ipoint, err error) {
	if n < 1 {
		return nil, chk.Err("number of integration points per direction must be positive. n=%d is invalid", n)
	}
	if gndim < 1 || gndim > 3 {
		return nil, chk.Err("cannot compute integration points for gndim=%d", gndim)
	}
	x := make([]float64, n)
	w := make([]float64, n)
	quad.Legendre{}.FixedLocations(x, w, -1, 1)
	nip := ipow(n, gndim)
	ips = make([]Ipoint, nip)
	idx := make([]int, 3)
	for p := 0; p < nip; p++ {
		lattice(idx, p, n, gndim)
		ip := Ipoint{0, 0, 0, 1}
		for i := 0; i < gndim; i++ {
			ip[i] = x[idx[i]]
			ip[3] *= w[idx[i]]
		}
		ips[p] = ip
	}
	return
}

// GetIps returns the volume and face integration points for a shape
//  n -- number of points along each direction (quadrature order)
func GetIps(geoType string, n int) (ips, ipsFace []Ipoint, err error) {
	s, ok := factory[geoType]
	if !ok {
		return nil, nil, chk.Err("cannot find shape type %q", geoType)
	}
	ips, err = GaussIps(s.Gndim, n)
	if err != nil {
		return
	}
	if s.Gndim > 1 {
		ipsFace, err = GaussIps(s.Gndim-1, n)
	}
	return
}
