// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package fem contains elements and solvers for running quasi-static finite strain
// simulations with the three-field (u-p̃-J̃) mixed finite element method
package fem

import (
	"context"
	"time"

	"github.com/agtmwebtoon/MLSolver/inp"
	"github.com/cpmech/gosl/io"
	"gonum.org/v1/gonum/floats"
)

// FEM holds all data for a simulation using the finite element method
type FEM struct {
	Prm     *inp.Parameters // input data
	Msh     *inp.Mesh       // mesh
	Dom     *Domain         // domain
	Solver  *Solver         // Newton-Raphson solver
	Summary *Summary        // summary structure
	Metrics *Metrics        // counters and histograms
	Sink    OutputSink      // receives converged steps; may be nil
	Verbose bool            // show messages
}

// NewFEM returns a new FEM structure
//  Input:
//   prm -- input data; PostProcess must have been called already
func NewFEM(prm *inp.Parameters) (o *FEM, err error) {
	o = &FEM{Prm: prm, Verbose: prm.Solver.Verbose}
	o.Msh, err = inp.NewMesh(prm.FESystem.Ndim, prm.FESystem.PolyDegree, &prm.Geometry)
	if err != nil {
		return
	}
	o.Dom, err = NewDomain(prm, o.Msh)
	if err != nil {
		return
	}
	o.Summary = NewSummary(prm, o.Dom)
	o.Metrics = NewMetrics()
	o.Solver = NewSolver(o.Dom, o.Metrics, o.Verbose)
	if prm.Output.Save {
		o.Sink, err = NewFileSink(prm.Output.DirOut, prm.Key, prm.Output.Encoder, o.Verbose)
	}
	return
}

// ReadFEM reads the input file and returns a new FEM structure
func ReadFEM(simfilepath string) (o *FEM, err error) {
	prm, err := inp.ReadParameters(simfilepath)
	if err != nil {
		return
	}
	return NewFEM(prm)
}

// Run runs the time loop: output at t=0, then one Newton step for each t = Δt, 2Δt, ... < t_end
func (o *FEM) Run(ctx context.Context) (err error) {

	// save summary and metrics even if the run fails
	cputime := time.Now()
	defer func() {
		if err != nil {
			o.Summary.Failure = err.Error()
		}
		if o.Prm.Output.Save {
			if e := o.Summary.Save(o.Verbose); err == nil {
				err = e
			}
		}
		if fn := o.Prm.Output.MetricsFile; fn != "" {
			if e := o.Metrics.Save(fn); err == nil {
				err = e
			}
		}
	}()

	// initial state
	d := o.Dom
	sol := d.Sol
	dt, tend := o.Prm.Time.DeltaT, o.Prm.Time.EndTime
	sol.T, sol.Step = 0, 0
	if err = o.output(); err != nil {
		return
	}

	// time loop
	sol.T += dt
	sol.Step++
	for sol.T < tend {

		// message
		if o.Verbose {
			io.Pf("\nTimestep %d @ %gs\n", sol.Step, sol.T)
		}

		// solve
		if err = o.Solver.Step(ctx); err != nil {
			return
		}
		floats.Add(sol.Un, sol.Delta)
		o.Metrics.ObserveStep(sol.T)

		// output
		if err = o.output(); err != nil {
			return
		}
		sol.T += dt
		sol.Step++
	}

	// message
	if o.Verbose {
		io.Pf("\nfinal time = %v\n", sol.T-dt)
		io.Pflmag("cpu time   = %v\n", time.Since(cputime))
	}
	return
}

// output records the converged state in the summary and hands it to the sink
func (o *FEM) output() (err error) {
	r := o.Dom.NewStepOutput(o.Summary.RunId)
	s := &StepSummary{Step: r.Step, T: r.T, V0: r.V0, V: r.V, DilErr: r.DilErr, Highest: r.Highest}
	if r.Step > 0 {
		s.Iterations = o.Solver.It
		s.LinIts = o.Solver.LinIts
		s.ResHist = append([]float64{}, o.Solver.ResHist...)
	}
	o.Summary.Append(s)
	if o.Sink != nil {
		err = o.Sink.Write(r)
	}
	return
}
