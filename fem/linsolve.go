// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"context"

	"github.com/agtmwebtoon/MLSolver/linsys"
	"github.com/cpmech/gosl/io"
	"gonum.org/v1/gonum/floats"
)

// SolveLinear solves K dx = Fb for the Newton update, after AssembleSystem.
//  Four modes are available: {condensed, full} × {CG, Direct}. Non-convergence of the
//  iterative solvers is reported through the result; the Newton procedure judges the update
func (o *Domain) SolveLinear(ctx context.Context, dx []float64) (res linsys.Result, err error) {
	for i := range dx {
		dx[i] = 0
	}
	prm := &o.Prm.LinearSolver
	switch {
	case prm.UseStaticCondensation:
		if err = o.condense(ctx); err != nil {
			return
		}
		res, err = o.solveCondensed(dx)
	case prm.Type == "Direct":
		res, err = linsys.SolveDirect(o.K, dx, o.Fb)
	default:
		res, err = o.solveSchur(dx)
	}
	if err != nil {
		return
	}
	if !res.Converged && o.Prm.Solver.Verbose {
		io.Pfred("warning: linear solver did not converge: %d iterations, residual = %g\n", res.Iterations, res.Residual)
	}
	o.Cons.Distribute(dx)
	return
}

// solveU solves Kuu du = fu with the configured solver. The tolerance is relative to |fu|
func (o *Domain) solveU(Kuu *linsys.Matrix, du, fu []float64) (res linsys.Result, err error) {
	prm := &o.Prm.LinearSolver
	if prm.Type == "Direct" {
		return linsys.SolveDirect(Kuu, du, fu)
	}
	P, err := linsys.NewPreconditioner(prm.PreconditionerType, Kuu, prm.PreconditionerRelaxation)
	if err != nil {
		return
	}
	n, _ := Kuu.Dims()
	ctrl := linsys.Control{
		MaxIt: int(float64(n) * prm.MaxItLin),
		Tol:   prm.TolLin * floats.Norm(fu, 2),
	}
	return linsys.CG(Kuu, du, fu, P, ctrl)
}

// solveCondensed solves the system after condense; the p-J block of K holds k_pJ⁻¹
func (o *Domain) solveCondensed(dx []float64) (res linsys.Result, err error) {

	// blocks
	U, P, J := o.U, o.P, o.J
	Kuu := o.K.Extract(U, U)
	Kup := o.K.Extract(U, P)
	Kpu := o.K.Extract(P, U)
	KJJ := o.K.Extract(J, J)
	KpJinv := o.K.Extract(P, J)
	KpJinvT := KpJinv.Transpose()
	fp := o.Fb[P.Lo:P.Hi]
	fJ := o.Fb[J.Lo:J.Hi]
	du, dp, dJ := dx[U.Lo:U.Hi], dx[P.Lo:P.Hi], dx[J.Lo:J.Hi]

	// fu := fu - K_up K_pJ⁻ᵀ (f_J - K_JJ K_pJ⁻¹ f_p)
	fu := make([]float64, U.Len())
	copy(fu, o.Fb[U.Lo:U.Hi])
	a := make([]float64, J.Len())
	b := make([]float64, J.Len())
	c := make([]float64, P.Len())
	d := make([]float64, U.Len())
	KpJinv.Apply(a, fp)
	KJJ.Apply(b, a)
	floats.SubTo(b, fJ, b)
	KpJinvT.Apply(c, b)
	Kup.Apply(d, c)
	floats.Sub(fu, d)

	// displacements
	res, err = o.solveU(Kuu, du, fu)
	if err != nil {
		return
	}

	// dJ = K_pJ⁻¹ (f_p - K_pu du)
	Kpu.Apply(c, du)
	floats.SubTo(c, fp, c)
	KpJinv.Apply(dJ, c)

	// dp = K_pJ⁻ᵀ (f_J - K_JJ dJ)
	KJJ.Apply(b, dJ)
	floats.SubTo(b, fJ, b)
	KpJinvT.Apply(dp, b)
	return
}

// solveSchur solves the full system with CG on the Schur complement of the displacements
//  K̃ = K_uu + K_up K_Jp⁻¹ K_JJ K_pJ⁻¹ K_pu where the inverses are computed with CG
func (o *Domain) solveSchur(dx []float64) (res linsys.Result, err error) {

	// blocks
	U, P, J := o.U, o.P, o.J
	prm := &o.Prm.LinearSolver
	Kuu := o.K.Extract(U, U)
	Kup := o.K.Extract(U, P)
	Kpu := o.K.Extract(P, U)
	KpJ := o.K.Extract(P, J)
	KJp := o.K.Extract(J, P)
	KJJ := o.K.Extract(J, J)
	fp := o.Fb[P.Lo:P.Hi]
	fJ := o.Fb[J.Lo:J.Hi]
	du, dp, dJ := dx[U.Lo:U.Hi], dx[P.Lo:P.Hi], dx[J.Lo:J.Hi]

	// inverses
	ctrl := linsys.Control{MaxIt: int(float64(P.Len()) * prm.MaxItLin), Tol: 1e-30, Reduce: prm.TolLin}
	PJp, err := linsys.NewPreconditioner("jacobi", KJp, 1)
	if err != nil {
		return
	}
	PpJ, err := linsys.NewPreconditioner("jacobi", KpJ, 1)
	if err != nil {
		return
	}
	KJpInv := linsys.NewInverse(KJp, PJp, ctrl)
	KpJInv := linsys.NewInverse(KpJ, PpJ, ctrl)
	Kppbar := linsys.Product(KJpInv, KJJ, KpJInv)
	Kcon := linsys.Sum(Kuu, linsys.Product(Kup, Kppbar, Kpu))

	// fu := fu - K_up (K_Jp⁻¹ f_J - K̄ f_p)
	fu := make([]float64, U.Len())
	copy(fu, o.Fb[U.Lo:U.Hi])
	a := make([]float64, P.Len())
	b := make([]float64, P.Len())
	d := make([]float64, U.Len())
	KJpInv.Apply(a, fJ)
	Kppbar.Apply(b, fp)
	floats.Sub(a, b)
	Kup.Apply(d, a)
	floats.Sub(fu, d)

	// displacements
	Puu, err := linsys.NewPreconditioner(prm.PreconditionerType, Kuu, prm.PreconditionerRelaxation)
	if err != nil {
		return
	}
	ctrlU := linsys.Control{MaxIt: int(float64(U.Len()) * prm.MaxItLin), Tol: prm.TolLin * floats.Norm(fu, 2)}
	res, err = linsys.CG(Kcon, du, fu, Puu, ctrlU)
	if err != nil {
		return
	}

	// dJ = K_pJ⁻¹ (f_p - K_pu du)
	c := make([]float64, P.Len())
	Kpu.Apply(c, du)
	floats.SubTo(c, fp, c)
	KpJInv.Apply(dJ, c)

	// dp = K_Jp⁻¹ (f_J - K_JJ dJ)
	e := make([]float64, J.Len())
	KJJ.Apply(e, dJ)
	floats.SubTo(e, fJ, e)
	KJpInv.Apply(dp, e)

	// inner solvers
	for _, inv := range []*linsys.Inverse{KJpInv, KpJInv} {
		if inv.Err != nil {
			return res, inv.Err
		}
		if inv.Failed {
			res.Converged = false
		}
	}
	return
}
