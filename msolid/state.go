// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import "github.com/cpmech/gosl/chk"

// IpRecord holds the data cached at one integration point of one cell.
// The record owns its model; it is never shared between cells
type IpRecord struct {

	// essential
	Ndim int   // space dimension
	Mdl  Model // material model

	// cached after Update
	F     [][]float64     // deformation gradient F = I + Grad(u)
	Finv  [][]float64     // F⁻¹
	Tau   [][]float64     // τ: Kirchhoff stress
	Jc    [][][][]float64 // J·c: spatial tangent modulus
	DPsi  float64         // ∂Ψvol/∂J
	D2Psi float64         // ∂²Ψvol/∂J²
}

// NewIpRecord allocates a record with a new model and initialises it to the undeformed state
func NewIpRecord(mdlName string, ndim int, prms Prms) (o *IpRecord, err error) {
	o = new(IpRecord)
	err = o.Setup(mdlName, ndim, prms)
	return
}

// Setup allocates the model and sets the record at F = I, p̃ = 0 and J̃ = 1
func (o *IpRecord) Setup(mdlName string, ndim int, prms Prms) (err error) {
	o.Mdl, err = New(mdlName)
	if err != nil {
		return
	}
	if err = o.Mdl.Init(ndim, prms); err != nil {
		return
	}
	o.Ndim = ndim
	o.F = Alloc2(ndim)
	o.Finv = Alloc2(ndim)
	o.Tau = Alloc2(ndim)
	o.Jc = Alloc4(ndim)
	return o.Update(Alloc2(ndim), 0, 1)
}

// Update computes F = I + gradU and refreshes all cached quantities.
//  gradU -- total displacement gradient w.r.t. the reference configuration
//  ptil  -- total trial pressure
//  Jtil  -- total trial dilatation
func (o *IpRecord) Update(gradU [][]float64, ptil, Jtil float64) (err error) {
	for i := 0; i < o.Ndim; i++ {
		for j := 0; j < o.Ndim; j++ {
			o.F[i][j] = Kron(i, j) + gradU[i][j]
		}
	}
	if err = o.Mdl.Update(o.F, ptil, Jtil); err != nil {
		return
	}
	if _, err = Inv(o.Finv, o.F); err != nil {
		return chk.Err("cannot compute inverse of F:\n%v", err)
	}
	o.Mdl.CalcTau(o.Tau)
	o.Mdl.CalcJc(o.Jc)
	o.DPsi = o.Mdl.DPsiVolDJ()
	o.D2Psi = o.Mdl.D2PsiVolDJ2()
	return
}

func (o *IpRecord) DetF() float64   { return o.Mdl.DetF() }
func (o *IpRecord) Ptilde() float64 { return o.Mdl.Ptilde() }
func (o *IpRecord) Jtilde() float64 { return o.Mdl.Jtilde() }

// TauNorm returns the Frobenius norm of τ
func (o *IpRecord) TauNorm() float64 {
	return Norm2(o.Tau)
}
