// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

// Tensor-product Lagrange shapes. Local vertices follow the lattice order
//  m = a + (p+1)·b + (p+1)²·c    with a, b, c in [0, p]
// natural coordinate of lattice index a: ξ_a = -1 + 2a/p. Faces are numbered
//  0: r=-1  1: r=+1  2: s=-1  3: s=+1  4: t=-1  5: t=+1
// and face vertices follow the lattice order of the remaining directions

func init() {
	register("lin2", 1, 1, "", "lin2")
	register("lin3", 1, 2, "", "lin2")
	register("qua4", 2, 1, "lin2", "qua4")
	register("qua9", 2, 2, "lin3", "qua4")
	register("hex8", 3, 1, "qua4", "hex8")
	register("hex27", 3, 2, "qua9", "hex8")
}

// register adds a Lagrange shape to the factory
func register(name string, gndim, degree int, faceType, basicType string) {
	var o Shape
	o.Type = name
	o.Gndim = gndim
	o.Degree = degree
	o.BasicType = basicType
	o.FaceType = faceType
	o.Func = lagrangeFunc(gndim, degree)
	if gndim > 1 {
		o.FaceFunc = lagrangeFunc(gndim-1, degree)
	}

	// vertices
	np := degree + 1
	o.Nverts = ipow(np, gndim)
	o.NatCoords = make([][]float64, gndim)
	for i := 0; i < gndim; i++ {
		o.NatCoords[i] = make([]float64, o.Nverts)
	}
	idx := make([]int, 3)
	for m := 0; m < o.Nverts; m++ {
		lattice(idx, m, np, gndim)
		for i := 0; i < gndim; i++ {
			o.NatCoords[i][m] = lagrangeNode(idx[i], degree)
		}
	}

	// faces
	if gndim > 1 {
		o.FaceNvertsMax = ipow(np, gndim-1)
		o.FaceLocalVerts = make([][]int, 2*gndim)
		for f := 0; f < 2*gndim; f++ {
			dir, fixed := f/2, 0
			if f%2 == 1 {
				fixed = degree
			}
			for m := 0; m < o.Nverts; m++ {
				lattice(idx, m, np, gndim)
				if idx[dir] == fixed {
					o.FaceLocalVerts[f] = append(o.FaceLocalVerts[f], m)
				}
			}
		}
	}

	o.init_scratchpad()
	factory[name] = &o
}

// lagrangeFunc returns the tensor-product shape function of given degree (1 or 2)
func lagrangeFunc(gndim, degree int) ShpFunc {
	np := degree + 1
	nverts := ipow(np, gndim)
	return func(S []float64, dSdR [][]float64, r []float64, derivs bool, idxface int) {
		var L, dL [3][3]float64
		for i := 0; i < gndim; i++ {
			lagrange1d(L[i][:np], dL[i][:np], r[i], degree)
		}
		var idx [3]int
		for m := 0; m < nverts; m++ {
			lattice(idx[:], m, np, gndim)
			S[m] = 1
			for i := 0; i < gndim; i++ {
				S[m] *= L[i][idx[i]]
			}
			if !derivs {
				continue
			}
			for j := 0; j < gndim; j++ {
				dSdR[m][j] = 1
				for i := 0; i < gndim; i++ {
					if i == j {
						dSdR[m][j] *= dL[i][idx[i]]
					} else {
						dSdR[m][j] *= L[i][idx[i]]
					}
				}
			}
		}
	}
}

// lagrange1d evaluates the 1D Lagrange polynomials and their derivatives at ξ
func lagrange1d(L, dL []float64, ξ float64, degree int) {
	switch degree {
	case 1:
		L[0] = (1 - ξ) / 2
		L[1] = (1 + ξ) / 2
		dL[0] = -0.5
		dL[1] = 0.5
	case 2:
		L[0] = ξ * (ξ - 1) / 2
		L[1] = 1 - ξ*ξ
		L[2] = ξ * (ξ + 1) / 2
		dL[0] = ξ - 0.5
		dL[1] = -2 * ξ
		dL[2] = ξ + 0.5
	}
}

// lagrangeNode returns the natural coordinate of lattice index a
func lagrangeNode(a, degree int) float64 {
	return -1.0 + 2.0*float64(a)/float64(degree)
}

// lattice computes the lattice indices of local vertex m
func lattice(idx []int, m, np, gndim int) {
	for i := 0; i < gndim; i++ {
		idx[i] = m % np
		m /= np
	}
}

// Lattice returns the local vertex corresponding to lattice indices (a, b, c)
func Lattice(np int, abc ...int) (m int) {
	stride := 1
	for _, a := range abc {
		m += a * stride
		stride *= np
	}
	return
}

func ipow(b, e int) (res int) {
	res = 1
	for i := 0; i < e; i++ {
		res *= b
	}
	return
}
