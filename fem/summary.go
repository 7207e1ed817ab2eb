// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/agtmwebtoon/MLSolver/inp"
	"github.com/cpmech/gosl/chk"
	"github.com/google/uuid"
)

// StepSummary records the convergence data of one converged time step
type StepSummary struct {
	Step       int       // time step index
	T          float64   // time
	Iterations int       // Newton iterations
	LinIts     int       // total linear iterations
	ResHist    []float64 // normalised residual of displacements at each iteration
	V0         float64   // reference volume
	V          float64   // current volume
	DilErr     float64   // L2 norm of det(F) - J̃
	Highest    []float64 // current coordinates of the highest vertex
}

// Summary records summary of outputs
type Summary struct {

	// main data
	RunId   string         // unique id of run
	Desc    string         // description of simulation
	Ndim    int            // space dimension
	Ny      int            // number of equations
	Nverts  int            // number of vertices
	Steps   []*StepSummary // converged steps; output at t=0 is step 0
	Failure string         // error message if the run has been aborted
	Dirout  string         // directory where results are stored
	Fnkey   string         // filename key of simulation
	Enc     string         // encoder type
}

// NewSummary returns a new summary with a new run id
func NewSummary(prm *inp.Parameters, d *Domain) *Summary {
	return &Summary{
		RunId:  uuid.New().String(),
		Desc:   prm.Desc,
		Ndim:   d.Ndim,
		Ny:     d.Ny,
		Nverts: len(d.Msh.Verts),
		Dirout: prm.Output.DirOut,
		Fnkey:  prm.Key,
		Enc:    prm.Output.Encoder,
	}
}

// Append adds the data of one step
func (o *Summary) Append(s *StepSummary) {
	o.Steps = append(o.Steps, s)
}

// OutTimes returns the times of all recorded steps
func (o *Summary) OutTimes() (res []float64) {
	res = make([]float64, len(o.Steps))
	for i, s := range o.Steps {
		res[i] = s.T
	}
	return
}

// Save saves summary to disc
func (o *Summary) Save(verbose bool) (err error) {
	if err = writeEncoded(out_sum_path(o.Dirout, o.Fnkey, o.Enc), o.Enc, o, verbose); err != nil {
		return chk.Err("cannot save summary:\n%v", err)
	}
	return
}

// ReadSummary reads summary back
func ReadSummary(dir, fnkey, enctype string) (o *Summary, err error) {
	o = new(Summary)
	if err = readEncoded(out_sum_path(dir, fnkey, enctype), enctype, o); err != nil {
		return nil, chk.Err("cannot read summary:\n%v", err)
	}
	return
}
