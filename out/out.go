// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package out implements FE simulation output handling for analyses and plotting
package out

import (
	"github.com/agtmwebtoon/MLSolver/fem"
	"github.com/agtmwebtoon/MLSolver/inp"
	"github.com/cpmech/gosl/chk"
)

// constants
var (
	TolC = 1e-8 // tolerance to compare x-y-z coordinates
	TolT = 1e-3 // tolerance to compare times
)

// ResultsMap maps aliases to points
type ResultsMap map[string]Points

// Results holds the saved results of one simulation
type Results struct {

	// data set by Start
	Prm *inp.Parameters // input data
	Msh *inp.Mesh       // mesh
	Sum *fem.Summary    // summary

	// defined entities and results loaded by LoadResults
	Points   ResultsMap // maps aliases to points
	TimeInds []int      // selected output indices
	Times    []float64  // selected output times

	// auxiliary
	steps map[int]*fem.StepOutput // cached step files
}

// Start starts handling of results given the input data of the simulation
func Start(prm *inp.Parameters) (o *Results, err error) {
	o = &Results{Prm: prm, Points: make(ResultsMap), steps: make(map[int]*fem.StepOutput)}
	o.Sum, err = fem.ReadSummary(prm.Output.DirOut, prm.Key, prm.Output.Encoder)
	if err != nil {
		return nil, err
	}
	o.Msh, err = inp.NewMesh(prm.FESystem.Ndim, prm.FESystem.PolyDegree, &prm.Geometry)
	if err != nil {
		return nil, err
	}
	if o.Msh.Ndim != o.Sum.Ndim || len(o.Msh.Verts) != o.Sum.Nverts {
		return nil, chk.Err("mesh (ndim=%d, nverts=%d) does not match results (ndim=%d, nverts=%d)",
			o.Msh.Ndim, len(o.Msh.Verts), o.Sum.Ndim, o.Sum.Nverts)
	}
	return
}

// StartFile reads the simulation file and starts handling of results
func StartFile(simfnpath string) (o *Results, err error) {
	prm, err := inp.ReadParameters(simfnpath)
	if err != nil {
		return
	}
	return Start(prm)
}

// Step returns the results of output index tidx
func (o *Results) Step(tidx int) (r *fem.StepOutput, err error) {
	if r, ok := o.steps[tidx]; ok {
		return r, nil
	}
	if tidx < 0 || tidx >= len(o.Sum.Steps) {
		return nil, chk.Err("output index %d is out of range [0, %d)", tidx, len(o.Sum.Steps))
	}
	r, err = fem.ReadStep(o.Sum.Dirout, o.Sum.Fnkey, o.Sum.Enc, o.Sum.Steps[tidx].Step)
	if err != nil {
		return
	}
	if r.RunId != o.Sum.RunId {
		return nil, chk.Err("step file %d belongs to run %q; summary belongs to run %q", tidx, r.RunId, o.Sum.RunId)
	}
	o.steps[tidx] = r
	return
}
