// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"context"
	"strings"
	"time"

	"github.com/cpmech/gosl/io"
	"gonum.org/v1/gonum/floats"
)

// Step solves the nonlinear problem of the current time step (Sol.T).
// On success, Sol.Delta holds the converged increment and the records are at Un + Delta
func (o *Solver) Step(ctx context.Context) (err error) {

	// auxiliary
	d := o.Dom
	sol := d.Sol
	prm := &d.Prm.NonlinearSolver
	o.reset()
	for i := range sol.Delta {
		sol.Delta[i] = 0
	}

	// message
	if o.Verbose {
		o.printHeader()
	}

	// iterations
	var it int
	for it = 0; it < prm.MaxItNR; it++ {

		// constraints and system
		d.Cons.Make(it)
		tasm := time.Now()
		if err = d.AssembleSystem(ctx, sol.T); err != nil {
			return
		}
		o.Met.ObserveAssembly(time.Since(tasm))

		// residual
		o.ResErr = d.Norms(d.Fb)
		if it == 0 {
			o.ResErr0 = o.ResErr
		}
		o.ResErrN = o.ResErr
		o.ResErrN.Normalize(o.ResErr0)
		o.ResHist = append(o.ResHist, o.ResErrN.U)

		// check convergence
		if it > 0 && o.UpdErrN.U <= prm.TolU && o.ResErrN.U <= prm.TolF {
			if o.Verbose {
				io.Pfgreen("%4d  CONVERGED!\n", it)
				o.printFooter()
			}
			break
		}

		// solve linear system
		res, e := d.SolveLinear(ctx, sol.Dx)
		if e != nil {
			return e
		}
		o.LinIts += res.Iterations
		o.LinSolves++
		if !res.Converged {
			o.LinFails++
		}

		// update
		o.UpdErr = d.Norms(sol.Dx)
		if it == 0 {
			o.UpdErr0 = o.UpdErr
		}
		o.UpdErrN = o.UpdErr
		o.UpdErrN.Normalize(o.UpdErr0)
		floats.Add(sol.Delta, sol.Dx)
		if err = d.UpdateRecords(ctx, sol.Total()); err != nil {
			return
		}
		o.Met.ObserveIteration(res.Iterations, res.Converged, o.ResErrN.U)

		// message
		if o.Verbose {
			o.printLine(it, res.Iterations, res.Residual)
		}
	}
	o.It = it

	// check
	if it >= prm.MaxItNR {
		return &NonConvergenceError{
			Step:       sol.Step,
			Time:       sol.T,
			Iterations: it,
			ResidualU:  o.ResErrN.U,
			UpdateU:    o.UpdErrN.U,
		}
	}
	return
}

// printHeader prints the header of the convergence table
func (o *Solver) printHeader() {
	line := strings.Repeat("_", 150)
	io.Pf("%s\n", line)
	io.Pforan("%4s  %7s  %10s  %10s  %10s  %10s  %10s  %10s  %10s  %10s  %10s\n",
		"IT", "LIN_IT", "LIN_RES", "RES_NORM", "RES_U", "RES_P", "RES_J", "NU_NORM", "NU_U", "NU_P", "NU_J")
	io.Pf("%s\n", line)
}

// printLine prints one line of the convergence table
func (o *Solver) printLine(it, linIts int, linRes float64) {
	r, u := &o.ResErrN, &o.UpdErrN
	io.Pfyel("%4d  %7d  %10.3e  %10.3e  %10.3e  %10.3e  %10.3e  %10.3e  %10.3e  %10.3e  %10.3e\n",
		it, linIts, linRes, r.Norm, r.U, r.P, r.J, u.Norm, u.U, u.P, u.J)
}

// printFooter prints the relative errors, the dilatation error and the volume ratio
func (o *Solver) printFooter() {
	ratio := func(a, b float64) float64 {
		if b == 0 {
			return a
		}
		return a / b
	}
	v0, v, dil := o.Dom.Volumes()
	io.Pf("%s\n", strings.Repeat("_", 150))
	io.Pf("Relative errors:\n")
	io.Pf("Displacement:\t%.3e\n", ratio(o.UpdErr.U, o.UpdErr0.U))
	io.Pf("Force: \t\t%.3e\n", ratio(o.ResErr.U, o.ResErr0.U))
	io.Pf("Dilatation:\t%.3e\n", dil)
	io.Pf("v / V_0:\t%.3e / %.3e = %.3e\n", v, v0, ratio(v, v0))
}
