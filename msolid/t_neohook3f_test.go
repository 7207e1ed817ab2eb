// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"errors"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
	"gonum.org/v1/gonum/diff/fd"
)

func init() {
	io.Verbose = false
}

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

func get_neohook(tst *testing.T, ndim int, mu, nu float64) *NeoHook3f {
	var m NeoHook3f
	err := m.Init(ndim, Prms{&Prm{N: "mu", V: mu}, &Prm{N: "nu", V: nu}})
	if err != nil {
		tst.Fatalf("Init failed: %v\n", err)
	}
	return &m
}

func Test_neohook01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("neohook01. reference state")

	for _, ndim := range []int{2, 3} {
		m := get_neohook(tst, ndim, 1e6, 0.3)
		chk.Float64(tst, "κ", 1e-6, m.Kappa, 2.0*1e6*1.3/(3.0*0.4))
		chk.Float64(tst, "c1", 1e-15, m.C1, 0.5e6)

		F := Alloc2(ndim)
		SetIdentity(F)
		err := m.Update(F, 0, 1)
		if err != nil {
			tst.Errorf("Update failed: %v\n", err)
			return
		}
		τ := Alloc2(ndim)
		m.CalcTau(τ)
		chk.Deep2(tst, "τ(I)", 1e-9, τ, Alloc2(ndim))
		chk.Float64(tst, "det(I)", 1e-15, m.DetF(), 1)
		chk.Float64(tst, "∂Ψ/∂J(1)", 1e-15, m.DPsiVolDJ(), 0)
	}
}

func Test_neohook02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("neohook02. isochoric deformation and symmetry")

	m := get_neohook(tst, 3, 1.0, 0.3)
	τ := Alloc2(3)

	// simple shear keeps det(F) = 1 => with p̃ = 0 the volumetric part vanishes
	for _, γ := range []float64{0.1, 0.5, 1.5} {
		F := [][]float64{
			{1, γ, 0},
			{0, 1, 0},
			{0, 0, 1},
		}
		err := m.Update(F, 0, 1)
		if err != nil {
			tst.Errorf("Update failed: %v\n", err)
			return
		}
		m.CalcTau(τ)
		chk.Float64(tst, "det(F)", 1e-15, m.DetF(), 1)
		chk.Float64(tst, "tr(τ)", 1e-14, Trace(τ), 0)
		io.Pforan("γ=%g  τ=%v\n", γ, τ)
	}

	// symmetry for general F and p̃
	F := [][]float64{
		{1.1, 0.2, -0.1},
		{0.05, 0.9, 0.3},
		{-0.2, 0.1, 1.2},
	}
	for _, ptil := range []float64{-10, 0, 3.5} {
		err := m.Update(F, ptil, 1.05)
		if err != nil {
			tst.Errorf("Update failed: %v\n", err)
			return
		}
		m.CalcTau(τ)
		for i := 0; i < 3; i++ {
			for j := i + 1; j < 3; j++ {
				chk.Float64(tst, io.Sf("τ%d%d-τ%d%d", i, j, j, i), 1e-14, τ[i][j]-τ[j][i], 0)
			}
		}
		chk.Float64(tst, "tr(τ)", 1e-13, Trace(τ), 3*ptil*m.DetF())
	}
}

func Test_neohook03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("neohook03. volumetric derivatives")

	m := get_neohook(tst, 3, 1.0, 0.3)
	F := Alloc2(3)
	SetIdentity(F)
	settings := &fd.Settings{Formula: fd.Central}
	for _, J := range utl.LinSpace(0.2, 3.0, 11) {
		m.Update(F, 0, J)
		ana := m.D2PsiVolDJ2()
		if ana <= 0 {
			tst.Errorf("∂²Ψ/∂J² must be positive. %g is invalid\n", ana)
			return
		}
		num := fd.Derivative(func(x float64) float64 {
			m.Update(F, 0, x)
			return m.DPsiVolDJ()
		}, J, settings)
		chk.AnaNum(tst, io.Sf("∂²Ψ/∂J²(%.3f)", J), 1e-7, ana, num, chk.Verbose)
	}
}

func Test_neohook04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("neohook04. errors")

	for _, prms := range [][]float64{{1, 0.5}, {1, 0.6}, {-1, 0.3}, {0, 0.3}} {
		var m NeoHook3f
		err := m.Init(3, Prms{&Prm{N: "mu", V: prms[0]}, &Prm{N: "nu", V: prms[1]}})
		if !errors.Is(err, ErrInvalidMaterialParameters) {
			tst.Errorf("μ=%g ν=%g should have failed with invalid parameters. err = %v\n", prms[0], prms[1], err)
			return
		}
		io.Pforan("%v\n", err)
	}

	m := get_neohook(tst, 3, 1, 0.3)
	F := [][]float64{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, -0.5},
	}
	err := m.Update(F, 0, 1)
	if !errors.Is(err, ErrKinematicInversion) {
		tst.Errorf("det(F)<0 should have failed with kinematic inversion. err = %v\n", err)
	}
}

func Test_neohook05(tst *testing.T) {

	//verbose()
	chk.PrintTitle("neohook05. spatial tangent")

	// dτ along F(ε) = (I + ε h) F must be  Jc:sym(h) + h τ + τ hᵀ
	for _, ndim := range []int{2, 3} {
		m := get_neohook(tst, ndim, 1.0, 0.3)
		F0 := [][]float64{
			{1.1, 0.2, -0.1},
			{0.05, 0.9, 0.3},
			{-0.2, 0.1, 1.2},
		}
		h0 := [][]float64{
			{0.3, -0.7, 0.2},
			{0.4, 0.1, -0.5},
			{0.6, 0.2, -0.3},
		}
		F, h := Alloc2(ndim), Alloc2(ndim)
		for i := 0; i < ndim; i++ {
			copy(F[i], F0[i][:ndim])
			copy(h[i], h0[i][:ndim])
		}
		ptil, Jtil := 0.7, 0.95

		// analytical
		err := m.Update(F, ptil, Jtil)
		if err != nil {
			tst.Errorf("Update failed: %v\n", err)
			return
		}
		τ, D := Alloc2(ndim), Alloc4(ndim)
		m.CalcTau(τ)
		m.CalcJc(D)
		ana := Alloc2(ndim)
		for i := 0; i < ndim; i++ {
			for j := 0; j < ndim; j++ {
				for k := 0; k < ndim; k++ {
					ana[i][j] += h[i][k]*τ[k][j] + τ[i][k]*h[j][k]
					for l := 0; l < ndim; l++ {
						ana[i][j] += D[i][j][k][l] * 0.5 * (h[k][l] + h[l][k])
					}
				}
			}
		}

		// numerical
		Fε, τε := Alloc2(ndim), Alloc2(ndim)
		for i := 0; i < ndim; i++ {
			for j := 0; j < ndim; j++ {
				num := fd.Derivative(func(ε float64) float64 {
					for a := 0; a < ndim; a++ {
						for b := 0; b < ndim; b++ {
							Fε[a][b] = F[a][b]
							for c := 0; c < ndim; c++ {
								Fε[a][b] += ε * h[a][c] * F[c][b]
							}
						}
					}
					m.Update(Fε, ptil, Jtil)
					m.CalcTau(τε)
					return τε[i][j]
				}, 0, &fd.Settings{Formula: fd.Central})
				chk.AnaNum(tst, io.Sf("%dD: dτ%d%d", ndim, i, j), 1e-7, ana[i][j], num, chk.Verbose)
			}
		}
	}
}
