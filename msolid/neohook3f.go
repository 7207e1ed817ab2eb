// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"fmt"
	"math"
)

// NeoHook3f implements a compressible Neo-Hookean model for the three-field (u-p-J) formulation
//  Ψ = c1 (tr(b̄) - ndim) + Ψvol(J̃)   with   Ψvol = κ/4 (J̃² - 1 - 2 ln J̃)
type NeoHook3f struct {

	// parameters
	Mu float64 // μ: shear modulus
	Nu float64 // ν: Poisson's coefficient

	// derived
	Ndim  int     // space dimension
	Kappa float64 // κ: bulk modulus
	C1    float64 // c1 = μ/2

	// state
	detF float64     // det(F)
	ptil float64     // p̃
	Jtil float64     // J̃
	bbar [][]float64 // b̄ = F̄ F̄ᵀ with F̄ = J^(-1/ndim) F

	// auxiliary
	taub [][]float64 // τ̄ = 2 c1 b̄
	taui [][]float64 // τ_iso = dev(τ̄)
}

// add model to factory
func init() {
	allocators["neohook-3f"] = func() Model { return new(NeoHook3f) }
}

// Init initialises model
func (o *NeoHook3f) Init(ndim int, prms Prms) (err error) {

	// parameters
	for _, p := range prms {
		switch p.N {
		case "mu":
			o.Mu = p.V
		case "nu":
			o.Nu = p.V
		}
	}

	// derived
	o.Ndim = ndim
	o.Kappa = (2.0 * o.Mu * (1.0 + o.Nu)) / (3.0 * (1.0 - 2.0*o.Nu))
	o.C1 = o.Mu / 2.0
	if !(o.Kappa > 0) || math.IsInf(o.Kappa, 0) {
		return fmt.Errorf("%w: μ=%g and ν=%g give κ=%g; κ must be positive", ErrInvalidMaterialParameters, o.Mu, o.Nu, o.Kappa)
	}

	// state: undeformed
	o.detF, o.ptil, o.Jtil = 1, 0, 1
	o.bbar = Alloc2(ndim)
	o.taub = Alloc2(ndim)
	o.taui = Alloc2(ndim)
	SetIdentity(o.bbar)
	return
}

// GetPrms gets (an example) of parameters
func (o NeoHook3f) GetPrms() Prms {
	return Prms{
		&Prm{N: "mu", V: 80.194e6},
		&Prm{N: "nu", V: 0.4999},
	}
}

// Update computes the state for given deformation gradient F, trial pressure p̃ and dilatation J̃
func (o *NeoHook3f) Update(F [][]float64, ptil, Jtil float64) (err error) {
	det := Det(F)
	if !(det > 0) {
		return fmt.Errorf("%w: det(F)=%g", ErrKinematicInversion, det)
	}
	o.detF, o.ptil, o.Jtil = det, ptil, Jtil

	// b̄ = F̄ F̄ᵀ = J^(-2/ndim) F Fᵀ
	n := o.Ndim
	s := math.Pow(det, -2.0/float64(n))
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			o.bbar[i][j] = 0
			for k := 0; k < n; k++ {
				o.bbar[i][j] += F[i][k] * F[j][k]
			}
			o.bbar[i][j] *= s
		}
	}

	// τ̄ and τ_iso
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			o.taub[i][j] = 2.0 * o.C1 * o.bbar[i][j]
		}
	}
	Dev(o.taui, o.taub)
	return
}

// CalcTau computes τ = τ_iso + τ_vol with τ_vol = p̃ J I
func (o *NeoHook3f) CalcTau(τ [][]float64) {
	pJ := o.ptil * o.detF
	for i := 0; i < o.Ndim; i++ {
		for j := 0; j < o.Ndim; j++ {
			τ[i][j] = o.taui[i][j] + pJ*Kron(i, j)
		}
	}
}

// CalcJc computes the spatial tangent Jc = Jc_vol + Jc_iso
//  Jc_vol = p̃ J (I⊗I - 2 𝕊)
//  Jc_iso = 2/n tr(τ̄) P - 2/n (τ_iso⊗I + I⊗τ_iso)      (c̄ = 0)
//  P = 𝕊 - 1/n I⊗I
func (o *NeoHook3f) CalcJc(D [][][][]float64) {
	n := o.Ndim
	nf := float64(n)
	pJ := o.ptil * o.detF
	trτb := Trace(o.taub)
	var δij, δkl, sym float64
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			δij = Kron(i, j)
			for k := 0; k < n; k++ {
				for l := 0; l < n; l++ {
					δkl = Kron(k, l)
					sym = 0.5 * (Kron(i, k)*Kron(j, l) + Kron(i, l)*Kron(j, k))
					D[i][j][k][l] = pJ*(δij*δkl-2.0*sym) +
						(2.0/nf)*trτb*(sym-δij*δkl/nf) -
						(2.0/nf)*(o.taui[i][j]*δkl+δij*o.taui[k][l])
				}
			}
		}
	}
}

// DPsiVolDJ returns ∂Ψvol/∂J = κ/2 (J̃ - 1/J̃)
func (o *NeoHook3f) DPsiVolDJ() float64 {
	return (o.Kappa / 2.0) * (o.Jtil - 1.0/o.Jtil)
}

// D2PsiVolDJ2 returns ∂²Ψvol/∂J² = κ/2 (1 + 1/J̃²)
func (o *NeoHook3f) D2PsiVolDJ2() float64 {
	return (o.Kappa / 2.0) * (1.0 + 1.0/(o.Jtil*o.Jtil))
}

func (o *NeoHook3f) DetF() float64   { return o.detF }
func (o *NeoHook3f) Ptilde() float64 { return o.ptil }
func (o *NeoHook3f) Jtilde() float64 { return o.Jtil }
