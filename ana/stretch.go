// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package ana implements analytical solutions
package ana

import (
	"fmt"
	"math"

	"github.com/agtmwebtoon/MLSolver/msolid"
	"github.com/cpmech/gosl/chk"
)

// Stretch implements the solution of the compressible Neo-Hookean solid under a homogeneous
// deformation with principal stretches λ aligned with the coordinate axes
//
//    F = diag(λ₀, λ₁, λ₂)      J = λ₀ λ₁ λ₂      p̃ = ∂Ψvol/∂J (J̃ = J)
//
//    Ψ = μ/2 (tr(b̄) - ndim) + κ/4 (J² - 1 - 2 ln J)
//
type Stretch struct {

	// input
	Ndim int     // space dimension
	Mu   float64 // μ: shear modulus
	Nu   float64 // ν: Poisson's coefficient

	// derived
	Kappa float64 // κ: bulk modulus
}

// Init initialises this structure
func (o *Stretch) Init(ndim int, prms msolid.Prms) (err error) {
	if ndim != 2 && ndim != 3 {
		return chk.Err("space dimension must be 2 or 3. ndim=%d is invalid", ndim)
	}
	o.Ndim = ndim
	o.Mu, o.Nu = 1, 0.3
	for _, p := range prms {
		switch p.N {
		case "mu":
			o.Mu = p.V
		case "nu":
			o.Nu = p.V
		}
	}
	o.Kappa = (2.0 * o.Mu * (1.0 + o.Nu)) / (3.0 * (1.0 - 2.0*o.Nu))
	if !(o.Kappa > 0) || math.IsInf(o.Kappa, 0) {
		return fmt.Errorf("%w: μ=%g and ν=%g give κ=%g", msolid.ErrInvalidMaterialParameters, o.Mu, o.Nu, o.Kappa)
	}
	return
}

// J returns the volume ratio
func (o Stretch) J(λ []float64) (J float64) {
	J = 1
	for i := 0; i < o.Ndim; i++ {
		J *= λ[i]
	}
	return
}

// PsiVol returns the volumetric part of the strain energy
func (o Stretch) PsiVol(J float64) float64 {
	return o.Kappa / 4.0 * (J*J - 1.0 - 2.0*math.Log(J))
}

// Pressure returns p̃ = ∂Ψvol/∂J
func (o Stretch) Pressure(J float64) float64 {
	return o.Kappa / 2.0 * (J - 1.0/J)
}

// Psi returns the strain energy
func (o Stretch) Psi(λ []float64) float64 {
	J := o.J(λ)
	s := math.Pow(J, -2.0/float64(o.Ndim))
	var trb float64
	for i := 0; i < o.Ndim; i++ {
		trb += s * λ[i] * λ[i]
	}
	return o.Mu/2.0*(trb-float64(o.Ndim)) + o.PsiVol(J)
}

// Tau returns the principal Kirchhoff stresses
//  τᵢ = μ J^(-2/ndim) (λᵢ² - tr(λ²)/ndim) + p̃ J
func (o Stretch) Tau(λ []float64) (τ []float64) {
	n := o.Ndim
	J := o.J(λ)
	s := math.Pow(J, -2.0/float64(n))
	var mean float64
	for i := 0; i < n; i++ {
		mean += λ[i] * λ[i] / float64(n)
	}
	pJ := o.Pressure(J) * J
	τ = make([]float64, n)
	for i := 0; i < n; i++ {
		τ[i] = o.Mu*s*(λ[i]*λ[i]-mean) + pJ
	}
	return
}

// Uniaxial returns the lateral stretch of a bar stretched by λ along x with free lateral faces
func (o Stretch) Uniaxial(λ float64) (λl float64, err error) {
	if !(λ > 0) {
		return 0, chk.Err("stretch must be positive. λ=%g is invalid", λ)
	}
	λs := make([]float64, o.Ndim)
	f := func(x float64) float64 {
		λs[0] = λ
		for i := 1; i < o.Ndim; i++ {
			λs[i] = x
		}
		return o.Tau(λs)[1]
	}

	// bracket; the lateral stress increases with the lateral stretch
	a, b := 1.0, 1.0
	for k := 0; f(a) > 0; k++ {
		if k > 60 {
			return 0, chk.Err("cannot bracket lateral stretch for λ=%g", λ)
		}
		a /= 2
	}
	for k := 0; f(b) < 0; k++ {
		if k > 60 {
			return 0, chk.Err("cannot bracket lateral stretch for λ=%g", λ)
		}
		b *= 2
	}

	// bisection
	for k := 0; k < 200 && b-a > 1e-15*b; k++ {
		λl = (a + b) / 2
		if f(λl) > 0 {
			b = λl
		} else {
			a = λl
		}
	}
	λl = (a + b) / 2
	return
}
