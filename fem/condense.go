// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"context"
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// ErrSingularCondensationBlock indicates that the p-J block of a cell cannot be inverted
var ErrSingularCondensationBlock = errors.New("singular condensation block")

// condensed holds the contributions of one cell computed by the static condensation
type condensed struct {
	kbar *mat.Dense // [nu][nu] k_puᵀ k_pJ⁻ᵀ k_JJ k_pJ⁻¹ k_pu
	dpJ  *mat.Dense // [np][nj] k_pJ⁻¹ - k_pJ
}

// condense eliminates the p̃ and J̃ dofs at the cell level. It must be called after AssembleSystem.
// The u-u block of K receives k̄ and the p-J block is replaced by k_pJ⁻¹; the remaining blocks are kept
func (o *Domain) condense(ctx context.Context) (err error) {

	// allocate
	if o.cond == nil {
		o.cond = make([]*condensed, len(o.Elems))
		for k, e := range o.Elems {
			c, ok := e.(ElemCondensable)
			if !ok {
				return fmt.Errorf("element %d does not support static condensation", e.Id())
			}
			nu, np, nj := c.Blocks()
			o.cond[k] = &condensed{kbar: mat.NewDense(nu, nu, nil), dpJ: mat.NewDense(np, nj, nil)}
		}
	}

	// cell contributions. K is only read here
	err = o.parallel(ctx, func(k int, e Elem) error {
		return o.condenseCell(o.cond[k], e)
	})
	if err != nil {
		return
	}

	// scatter
	for k, e := range o.Elems {
		c := o.cond[k]
		nu, np, nj := e.(ElemCondensable).Blocks()
		eqs := e.Eqs()
		for i := 0; i < nu; i++ {
			for j := 0; j < nu; j++ {
				o.K.Add(eqs[i], eqs[j], c.kbar.At(i, j))
			}
		}
		for i := 0; i < np; i++ {
			for j := 0; j < nj; j++ {
				o.K.Add(eqs[nu+i], eqs[nu+np+j], c.dpJ.At(i, j))
			}
		}
	}
	return
}

// condenseCell computes the contributions of one cell from the global tangent
func (o *Domain) condenseCell(c *condensed, e Elem) (err error) {

	// extract blocks
	nu, np, nj := e.(ElemCondensable).Blocks()
	eqs := e.Eqs()
	kpu := mat.NewDense(np, nu, nil)
	kpJ := mat.NewDense(np, nj, nil)
	kJJ := mat.NewDense(nj, nj, nil)
	for i := 0; i < np; i++ {
		for j := 0; j < nu; j++ {
			kpu.Set(i, j, o.K.At(eqs[nu+i], eqs[j]))
		}
		for j := 0; j < nj; j++ {
			kpJ.Set(i, j, o.K.At(eqs[nu+i], eqs[nu+np+j]))
		}
	}
	for i := 0; i < nj; i++ {
		for j := 0; j < nj; j++ {
			kJJ.Set(i, j, o.K.At(eqs[nu+np+i], eqs[nu+np+j]))
		}
	}

	// k_pJ⁻¹
	var kpJinv mat.Dense
	if err = kpJinv.Inverse(kpJ); err != nil {
		var cond mat.Condition
		if !errors.As(err, &cond) || math.IsInf(float64(cond), 1) {
			return fmt.Errorf("cell %d: %w", e.Id(), ErrSingularCondensationBlock)
		}
		err = nil
	}

	// k̄ = k_puᵀ k_pJ⁻ᵀ k_JJ k_pJ⁻¹ k_pu
	var a, b, d mat.Dense
	a.Mul(&kpJinv, kpu)
	b.Mul(kJJ, &a)
	d.Mul(kpJinv.T(), &b)
	c.kbar.Mul(kpu.T(), &d)

	// k_pJ⁻¹ - k_pJ
	c.dpJ.Sub(&kpJinv, kpJ)
	return
}
