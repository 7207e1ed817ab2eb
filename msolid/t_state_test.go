// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"errors"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func Test_state01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("state01. setup")

	prms := Prms{&Prm{N: "mu", V: 1e6}, &Prm{N: "nu", V: 0.3}}
	rec, err := NewIpRecord("neohook-3f", 3, prms)
	if err != nil {
		tst.Errorf("NewIpRecord failed: %v\n", err)
		return
	}
	io.Pforan("F = %v\n", rec.F)
	I := Alloc2(3)
	SetIdentity(I)
	chk.Deep2(tst, "F", 1e-15, rec.F, I)
	chk.Deep2(tst, "F⁻¹", 1e-15, rec.Finv, I)
	chk.Deep2(tst, "τ", 1e-9, rec.Tau, Alloc2(3))
	chk.Float64(tst, "det(F)", 1e-15, rec.DetF(), 1)
	chk.Float64(tst, "p̃", 1e-15, rec.Ptilde(), 0)
	chk.Float64(tst, "J̃", 1e-15, rec.Jtilde(), 1)
	chk.Float64(tst, "∂Ψ/∂J", 1e-15, rec.DPsi, 0)

	_, err = NewIpRecord("unknown-model", 3, prms)
	if err == nil {
		tst.Errorf("unknown model should have failed\n")
		return
	}

	_, err = NewIpRecord("neohook-3f", 3, Prms{&Prm{N: "mu", V: 1}, &Prm{N: "nu", V: 0.5}})
	if !errors.Is(err, ErrInvalidMaterialParameters) {
		tst.Errorf("ν=0.5 should have failed. err = %v\n", err)
	}
}

func Test_state02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("state02. update is idempotent")

	prms := Prms{&Prm{N: "mu", V: 10}, &Prm{N: "nu", V: 0.45}}
	rec, err := NewIpRecord("neohook-3f", 2, prms)
	if err != nil {
		tst.Errorf("NewIpRecord failed: %v\n", err)
		return
	}
	gradU := [][]float64{
		{0.05, -0.02},
		{0.10, 0.03},
	}
	err = rec.Update(gradU, 1.5, 1.02)
	if err != nil {
		tst.Errorf("Update failed: %v\n", err)
		return
	}
	τ := [][]float64{append([]float64{}, rec.Tau[0]...), append([]float64{}, rec.Tau[1]...)}
	Finv := [][]float64{append([]float64{}, rec.Finv[0]...), append([]float64{}, rec.Finv[1]...)}
	jc := rec.Jc[0][1][1][0]
	dpsi, d2psi, detF := rec.DPsi, rec.D2Psi, rec.DetF()

	err = rec.Update(gradU, 1.5, 1.02)
	if err != nil {
		tst.Errorf("Update failed: %v\n", err)
		return
	}
	chk.Deep2(tst, "τ", 1e-17, rec.Tau, τ)
	chk.Deep2(tst, "F⁻¹", 1e-17, rec.Finv, Finv)
	chk.Float64(tst, "Jc0110", 1e-17, rec.Jc[0][1][1][0], jc)
	chk.Float64(tst, "∂Ψ/∂J", 1e-17, rec.DPsi, dpsi)
	chk.Float64(tst, "∂²Ψ/∂J²", 1e-17, rec.D2Psi, d2psi)
	chk.Float64(tst, "det(F)", 1e-17, rec.DetF(), detF)

	// F F⁻¹ = I
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			var sum float64
			for k := 0; k < 2; k++ {
				sum += rec.F[i][k] * rec.Finv[k][j]
			}
			chk.Float64(tst, io.Sf("(F F⁻¹)%d%d", i, j), 1e-15, sum, Kron(i, j))
		}
	}
	chk.Float64(tst, "det(F)", 1e-15, detF, 1.05*1.03+0.02*0.10)
}

func Test_state03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("state03. inversion")

	prms := Prms{&Prm{N: "mu", V: 10}, &Prm{N: "nu", V: 0.3}}
	rec, err := NewIpRecord("neohook-3f", 3, prms)
	if err != nil {
		tst.Errorf("NewIpRecord failed: %v\n", err)
		return
	}
	gradU := Alloc2(3)
	gradU[1][1] = -2.0
	err = rec.Update(gradU, 0, 1)
	if !errors.Is(err, ErrKinematicInversion) {
		tst.Errorf("inverted F should have failed. err = %v\n", err)
	}
}
