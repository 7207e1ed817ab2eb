// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package msolid implements models for solids based on continuum mechanics
package msolid

import (
	"errors"

	"github.com/cpmech/gosl/chk"
)

// error kinds raised by material models
var (
	ErrInvalidMaterialParameters = errors.New("invalid material parameters")
	ErrKinematicInversion        = errors.New("kinematic inversion: det(F) <= 0")
)

// Prm holds a named material parameter
type Prm struct {
	N string  `json:"n" yaml:"n"` // name
	V float64 `json:"v" yaml:"v"` // value
}

// Prms is a set of parameters
type Prms []*Prm

// Find returns the parameter named n or nil if not found
func (o Prms) Find(n string) *Prm {
	for _, p := range o {
		if p.N == n {
			return p
		}
	}
	return nil
}

// Model defines the capabilities of a large-deformation mixed (u-p-J) solid model.
// Implementations are driven from the total deformation gradient; there is no
// history to be carried between calls to Update
type Model interface {
	Init(ndim int, prms Prms) error                 // Init initialises model
	GetPrms() Prms                                  // GetPrms gets (an example) of parameters
	Update(F [][]float64, ptil, Jtil float64) error // Update computes the state for F, p̃ and J̃
	CalcTau(τ [][]float64)                          // CalcTau computes the Kirchhoff stress τ [ndim][ndim]
	CalcJc(D [][][][]float64)                       // CalcJc computes the spatial tangent J·c [ndim]^4
	DPsiVolDJ() float64                             // DPsiVolDJ returns ∂Ψvol/∂J at J̃
	D2PsiVolDJ2() float64                           // D2PsiVolDJ2 returns ∂²Ψvol/∂J² at J̃
	DetF() float64                                  // DetF returns det(F)
	Ptilde() float64                                // Ptilde returns p̃
	Jtilde() float64                                // Jtilde returns J̃
}

// allocators holds all available models
var allocators = map[string]func() Model{}

// New allocates a model by name; e.g. "neohook-3f"
func New(name string) (model Model, err error) {
	allocator, ok := allocators[name]
	if !ok {
		return nil, chk.Err("model %q is not available in msolid database", name)
	}
	return allocator(), nil
}

// Names returns the names of available models
func Names() (names []string) {
	for name := range allocators {
		names = append(names, name)
	}
	return
}
