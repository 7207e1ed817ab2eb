// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package shp implements shape structures/routines
package shp

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
	"gonum.org/v1/gonum/mat"
)

// constants
const MINDET = 1.0e-14 // minimum determinant allowed for dxdR

// ShpFunc computes shape functions S and, if derivs, their derivatives dSdR at natural coordinates r
type ShpFunc func(S []float64, dSdR [][]float64, r []float64, derivs bool, idxface int)

// Shape holds the data of one tensor-product Lagrange cell and the scratchpad of its
// evaluations. Shapes from the factory are shared and must be copied with Get(type, id>0)
// before being used concurrently
type Shape struct {

	// geometry
	Type           string      // name; e.g. "qua9"
	Func           ShpFunc     // shape/derivs function callback function
	FaceFunc       ShpFunc     // face shape/derivs function callback function
	BasicType      string      // geometry of basic element; e.g. "qua9" => "qua4"
	FaceType       string      // geometry of face; e.g. "qua9" => "lin3"
	Gndim          int         // geometry of shape; e.g. "lin3" => gnd == 1 (even in 3D simulations)
	Degree         int         // polynomial degree along each direction
	Nverts         int         // number of vertices in cell; e.g. "qua9" => 9
	FaceNvertsMax  int         // number of vertices on each face
	FaceLocalVerts [][]int     // face local vertices [nfaces][...]
	NatCoords      [][]float64 // natural coordinates [gndim][nverts]

	// scratchpad: volume
	S    []float64   // [nverts] shape functions
	G    [][]float64 // [nverts][gndim] G == dSdx. derivative of shape function
	J    float64     // Jacobian: determinant of dxdr
	DSdR [][]float64 // [nverts][gndim] derivatives of S w.r.t natural coordinates

	// scratchpad: face
	Sf     []float64   // [FaceNvertsMax] shape functions values
	Fnvec  []float64   // [gndim] face normal vector multiplied by Jf
	DSfdRf [][]float64 // [FaceNvertsMax][gndim-1] derivatives of Sf w.r.t natural coordinates

	// auxiliary
	dxdR *mat.Dense // [gndim][gndim] dx/dR
	dRdx *mat.Dense // [gndim][gndim] inverse of dx/dR
	dfdR *mat.Dense // [gndim][gndim-1] dx/dRf of face
}

// factory holds all Shapes available
var factory = make(map[string]*Shape)

// Get returns an existent Shape structure
//  Note: 1) returns nil on errors
//        2) use goroutineId > 0 to get a copy
func Get(geoType string, goroutineId int) *Shape {
	s, ok := factory[geoType]
	if !ok {
		return nil
	}
	if goroutineId > 0 {
		return s.GetCopy()
	}
	return s
}

// GetCopy returns a new shape with the same geometry and its own scratchpad
func (o Shape) GetCopy() *Shape {
	p := Shape{
		Type:           o.Type,
		Func:           o.Func,
		FaceFunc:       o.FaceFunc,
		BasicType:      o.BasicType,
		FaceType:       o.FaceType,
		Gndim:          o.Gndim,
		Degree:         o.Degree,
		Nverts:         o.Nverts,
		FaceNvertsMax:  o.FaceNvertsMax,
		FaceLocalVerts: o.FaceLocalVerts, // read-only
		NatCoords:      o.NatCoords,      // read-only
	}
	p.init_scratchpad()
	return &p
}

// IpRealCoords returns the real coordinates (y) of an integration point
func (o *Shape) IpRealCoords(x [][]float64, ip Ipoint) (y []float64) {
	y = make([]float64, len(x))
	o.Func(o.S, o.DSdR, ip, false, -1)
	for i := range y {
		for m := 0; m < o.Nverts; m++ {
			y[i] += o.S[m] * x[i][m]
		}
	}
	return
}

// CalcAtIp calculates S and, if derivs, G = dS/dx and J = det(dx/dR) at natural coordinates ip
//  Input:
//   x[ndim][nverts] -- coordinates matrix of solid element; ndim == Gndim
func (o *Shape) CalcAtIp(x [][]float64, ip Ipoint, derivs bool) (err error) {

	// S and dSdR
	o.Func(o.S, o.DSdR, ip, derivs, -1)
	if !derivs {
		return
	}
	if o.Gndim < 2 || len(x) != o.Gndim {
		return chk.Err("%s: derivatives need ndim == gndim >= 2; len(x)=%d", o.Type, len(x))
	}

	// dx_i/dR_j := sum_n x^n_i dS^n/dR_j
	n := o.Gndim
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			var v float64
			for m := 0; m < o.Nverts; m++ {
				v += x[i][m] * o.DSdR[m][j]
			}
			o.dxdR.Set(i, j, v)
		}
	}

	// dRdx := inv(dxdR)
	o.J = mat.Det(o.dxdR)
	if math.Abs(o.J) < MINDET {
		return chk.Err("%s: cannot invert dxdR; det=%g is too small", o.Type, o.J)
	}
	if err = o.dRdx.Inverse(o.dxdR); err != nil {
		return chk.Err("%s: cannot invert dxdR:\n%v", o.Type, err)
	}

	// G == dSdx  =>  dS^m/dx_j := sum_i dS^m/dR_i dR_i/dx_j
	for m := 0; m < o.Nverts; m++ {
		for j := 0; j < n; j++ {
			o.G[m][j] = 0
			for i := 0; i < n; i++ {
				o.G[m][j] += o.DSdR[m][i] * o.dRdx.At(i, j)
			}
		}
	}
	return
}

// CalcAtFaceIp calculates face data such as Sf and Fnvec
//  Input:
//   x[ndim][nverts] -- coordinates matrix of solid element
//   ipf             -- local/natural coordinates of face
//   idxface         -- local index of face
//  Output:
//   Sf and Fnvec; |Fnvec| is the ratio between the real and natural face measures
func (o *Shape) CalcAtFaceIp(x [][]float64, ipf Ipoint, idxface int) (err error) {

	// skip 1D elements
	if o.Gndim == 1 {
		return
	}
	if idxface < 0 || idxface >= len(o.FaceLocalVerts) {
		return chk.Err("%s: face index %d is out of range", o.Type, idxface)
	}

	// Sf and dSfdR
	o.FaceFunc(o.Sf, o.DSfdRf, ipf, true, idxface)

	// dxf_i/dRf_j := sum_n xf^n_i dSf^n/dRf_j
	for i := 0; i < o.Gndim; i++ {
		for j := 0; j < o.Gndim-1; j++ {
			var v float64
			for k, n := range o.FaceLocalVerts[idxface] {
				v += x[i][n] * o.DSfdRf[k][j]
			}
			o.dfdR.Set(i, j, v)
		}
	}

	// face normal vector: rotated tangent (2D) or cross product of tangents (3D)
	t := o.dfdR
	if o.Gndim == 2 {
		o.Fnvec[0] = t.At(1, 0)
		o.Fnvec[1] = -t.At(0, 0)
		return
	}
	o.Fnvec[0] = t.At(1, 0)*t.At(2, 1) - t.At(2, 0)*t.At(1, 1)
	o.Fnvec[1] = t.At(2, 0)*t.At(0, 1) - t.At(0, 0)*t.At(2, 1)
	o.Fnvec[2] = t.At(0, 0)*t.At(1, 1) - t.At(1, 0)*t.At(0, 1)
	return
}

// FaceJ returns the face Jacobian; i.e. the norm of Fnvec
//  Note: must be called after CalcAtFaceIp
func (o *Shape) FaceJ() float64 {
	return math.Sqrt(mat.Dot(mat.NewVecDense(len(o.Fnvec), o.Fnvec), mat.NewVecDense(len(o.Fnvec), o.Fnvec)))
}

// init_scratchpad allocates the scratchpad
func (o *Shape) init_scratchpad() {
	o.S = make([]float64, o.Nverts)
	o.DSdR = utl.Alloc(o.Nverts, o.Gndim)
	o.G = utl.Alloc(o.Nverts, o.Gndim)
	o.dxdR = mat.NewDense(o.Gndim, o.Gndim, nil)
	o.dRdx = mat.NewDense(o.Gndim, o.Gndim, nil)
	if o.Gndim > 1 {
		o.Sf = make([]float64, o.FaceNvertsMax)
		o.DSfdRf = utl.Alloc(o.FaceNvertsMax, o.Gndim-1)
		o.Fnvec = make([]float64, o.Gndim)
		o.dfdR = mat.NewDense(o.Gndim, o.Gndim-1, nil)
	}
}
