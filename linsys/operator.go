// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package linsys

import (
	"gonum.org/v1/gonum/floats"
)

// Operator defines linear maps y := A x
type Operator interface {
	Dims() (m, n int)
	Apply(y, x []float64)
}

// sum implements y := A x + B x
type sum struct {
	a, b Operator
	tmp  []float64
}

// Sum returns the operator A + B
func Sum(a, b Operator) Operator {
	m, _ := a.Dims()
	return &sum{a, b, make([]float64, m)}
}

func (o *sum) Dims() (m, n int) { return o.a.Dims() }

func (o *sum) Apply(y, x []float64) {
	o.a.Apply(y, x)
	o.b.Apply(o.tmp, x)
	floats.Add(y, o.tmp)
}

// product implements y := A B C ... x
type product struct {
	ops  []Operator
	tmps [][]float64
}

// Product returns the operator ops[0] ops[1] ... ops[n-1]
func Product(ops ...Operator) Operator {
	o := &product{ops: ops, tmps: make([][]float64, len(ops)-1)}
	for k := 1; k < len(ops); k++ {
		m, _ := ops[k].Dims()
		o.tmps[k-1] = make([]float64, m)
	}
	return o
}

func (o *product) Dims() (m, n int) {
	m, _ = o.ops[0].Dims()
	_, n = o.ops[len(o.ops)-1].Dims()
	return
}

func (o *product) Apply(y, x []float64) {
	last := len(o.ops) - 1
	if last == 0 {
		o.ops[0].Apply(y, x)
		return
	}
	o.ops[last].Apply(o.tmps[last-1], x)
	for k := last - 1; k > 0; k-- {
		o.ops[k].Apply(o.tmps[k-1], o.tmps[k])
	}
	o.ops[0].Apply(y, o.tmps[0])
}

// Inverse implements y := A⁻¹ x computed with preconditioned conjugate gradients
type Inverse struct {
	A    Operator       // operator to be inverted
	P    Preconditioner // preconditioner
	Ctrl Control        // solver control

	// statistics
	Last   Result // result of last application
	NumApp int    // number of applications
	Failed bool   // some application did not converge
	Err    error  // first error
}

// NewInverse returns a new inverse operator
func NewInverse(A Operator, P Preconditioner, ctrl Control) *Inverse {
	return &Inverse{A: A, P: P, Ctrl: ctrl}
}

// Dims returns the dimensions of operator
func (o *Inverse) Dims() (m, n int) {
	m, n = o.A.Dims()
	return n, m
}

// Apply computes y := A⁻¹ x starting from y = 0
func (o *Inverse) Apply(y, x []float64) {
	for i := range y {
		y[i] = 0
	}
	var err error
	o.Last, err = CG(o.A, y, x, o.P, o.Ctrl)
	o.NumApp++
	if err != nil && o.Err == nil {
		o.Err = err
	}
	if err != nil || !o.Last.Converged {
		o.Failed = true
	}
}
