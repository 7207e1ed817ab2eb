// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// Dgp implements a discontinuous basis spanning the complete polynomials of
// a given degree in natural coordinates: {r^i s^j t^k | i+j+k <= degree}.
// The first function is the constant 1
type Dgp struct {
	Gndim  int      // geometry dimension
	Degree int      // complete degree
	N      int      // number of basis functions
	Exps   [][3]int // exponents of each monomium
}

// NewDgp returns a new discontinuous basis
func NewDgp(gndim, degree int) (o *Dgp, err error) {
	if gndim < 1 || gndim > 3 {
		return nil, chk.Err("Dgp: gndim=%d is invalid", gndim)
	}
	if degree < 0 {
		return nil, chk.Err("Dgp: degree=%d is invalid", degree)
	}
	o = &Dgp{Gndim: gndim, Degree: degree}
	for d := 0; d <= degree; d++ {
		for i := d; i >= 0; i-- {
			if gndim == 1 {
				if i == d {
					o.Exps = append(o.Exps, [3]int{i, 0, 0})
				}
				continue
			}
			for j := d - i; j >= 0; j-- {
				k := d - i - j
				if gndim == 2 && k > 0 {
					continue
				}
				o.Exps = append(o.Exps, [3]int{i, j, k})
			}
		}
	}
	o.N = len(o.Exps)
	return
}

// Calc computes the basis functions S[N] at natural coordinates r
func (o *Dgp) Calc(S []float64, r []float64) {
	for n, e := range o.Exps {
		S[n] = 1
		for i := 0; i < o.Gndim; i++ {
			if e[i] > 0 {
				S[n] *= math.Pow(r[i], float64(e[i]))
			}
		}
	}
}
